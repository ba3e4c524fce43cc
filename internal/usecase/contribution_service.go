package usecase

import (
	"context"
	"strings"

	"github.com/pitchsight/pitchsight/internal/domain/event"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
)

// Contribution glyphs, concatenated in the fixed display order goals,
// assists, yellow cards, red cards, subbed on, subbed off.
const (
	glyphGoal      = "⚽"
	glyphAssist    = "🅰️"
	glyphYellow    = "🟨"
	glyphRed       = "🟥"
	glyphSubbedOn  = "🔺"
	glyphSubbedOff = "🔻"
)

// PlayerContribution is one roster row with its per-category counts and the
// rendered glyph string.
type PlayerContribution struct {
	Player        string `json:"player"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	SubbedOn      int    `json:"subbed_on"`
	SubbedOff     int    `json:"subbed_off"`
	Contributions string `json:"contributions"`
}

// ScoreBreakdown partitions every goal by when it was scored. The three
// per-side buckets are disjoint: normal time covers periods 1-2 only, extra
// time periods 3-4 only, penalties period 5. Each goal lands in exactly one
// bucket.
type ScoreBreakdown struct {
	HomeNormal  int `json:"home_normal"`
	AwayNormal  int `json:"away_normal"`
	HomeExtra   int `json:"home_extra"`
	AwayExtra   int `json:"away_extra"`
	HomePenalty int `json:"home_penalty"`
	AwayPenalty int `json:"away_penalty"`
}

// HomeTotal is the home side's full-match goal count across all buckets.
func (b ScoreBreakdown) HomeTotal() int {
	return b.HomeNormal + b.HomeExtra + b.HomePenalty
}

// AwayTotal is the away side's full-match goal count across all buckets.
func (b ScoreBreakdown) AwayTotal() int {
	return b.AwayNormal + b.AwayExtra + b.AwayPenalty
}

// ContributionService derives per-player contribution rows and the score
// breakdown from a match's events.
type ContributionService struct {
	logger *logging.Logger
}

func NewContributionService(logger *logging.Logger) *ContributionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ContributionService{logger: logger}
}

// Compute aggregates both teams' contributions and classifies every goal
// into the score breakdown.
func (s *ContributionService) Compute(ctx context.Context, table *event.Table) (home, away []PlayerContribution, score ScoreBreakdown, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContributionService.Compute")
	defer span.End()

	home = s.teamContributions(ctx, table, table.HomeTeam())
	away = s.teamContributions(ctx, table, table.AwayTeam())
	score = s.scoreBreakdown(ctx, table)
	return home, away, score, nil
}

// teamContributions builds one team's roster from its Starting XI lineup
// plus every substitution replacement, then fills the six counters from the
// team's events. A missing Starting XI yields an empty roster, reported as a
// data-quality warning rather than an error so one broken record cannot
// abort a batch.
func (s *ContributionService) teamContributions(ctx context.Context, table *event.Table, team string) []PlayerContribution {
	events := table.TeamEvents(team)

	roster := make([]string, 0, 16)
	seen := make(map[string]int)
	addPlayer := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = len(roster)
		roster = append(roster, name)
	}

	lineupFound := false
	for _, e := range events {
		if e.Type == event.TypeStartingXI && !lineupFound {
			lineupFound = true
			for _, name := range e.Lineup {
				addPlayer(name)
			}
		}
		if e.Type == event.TypeSubstitution {
			addPlayer(e.SubstitutionReplacement)
		}
	}
	if !lineupFound {
		s.logger.WarnContext(ctx, "no starting lineup event for team", "team", team)
	}
	if len(roster) == 0 {
		return []PlayerContribution{}
	}

	rows := make([]PlayerContribution, len(roster))
	for i, name := range roster {
		rows[i] = PlayerContribution{Player: name}
	}
	bump := func(name string, counter func(*PlayerContribution)) {
		if idx, ok := seen[name]; ok {
			counter(&rows[idx])
		}
	}

	for _, e := range events {
		if e.IsGoal() {
			bump(e.Player, func(p *PlayerContribution) { p.Goals++ })
		}
		if e.PassGoalAssist {
			bump(e.Player, func(p *PlayerContribution) { p.Assists++ })
		}
		switch e.BadBehaviourCard {
		case event.CardYellow:
			bump(e.Player, func(p *PlayerContribution) { p.YellowCards++ })
		case event.CardRed:
			bump(e.Player, func(p *PlayerContribution) { p.RedCards++ })
		}
		if e.Type == event.TypeSubstitution {
			bump(e.Player, func(p *PlayerContribution) { p.SubbedOff++ })
			bump(e.SubstitutionReplacement, func(p *PlayerContribution) { p.SubbedOn++ })
		}
	}

	for i := range rows {
		rows[i].Contributions = renderGlyphs(rows[i])
	}
	return rows
}

// scoreBreakdown buckets every goal strictly by its period. Goals with a
// team outside the match's two sides are skipped.
func (s *ContributionService) scoreBreakdown(ctx context.Context, table *event.Table) ScoreBreakdown {
	var b ScoreBreakdown
	for _, e := range table.Events() {
		if !e.IsGoal() {
			continue
		}
		isHome := e.Team == table.HomeTeam()
		if !isHome && e.Team != table.AwayTeam() {
			s.logger.WarnContext(ctx, "goal with unknown team skipped", "team", e.Team, "minute", e.Minute)
			continue
		}
		switch e.Period {
		case event.PeriodFirstHalf, event.PeriodSecondHalf:
			if isHome {
				b.HomeNormal++
			} else {
				b.AwayNormal++
			}
		case event.PeriodFirstExtraTime, event.PeriodSecondExtraTime:
			if isHome {
				b.HomeExtra++
			} else {
				b.AwayExtra++
			}
		case event.PeriodPenaltyShootout:
			if isHome {
				b.HomePenalty++
			} else {
				b.AwayPenalty++
			}
		}
	}
	return b
}

func renderGlyphs(p PlayerContribution) string {
	var sb strings.Builder
	appendN := func(glyph string, n int) {
		for i := 0; i < n; i++ {
			sb.WriteString(glyph)
		}
	}
	appendN(glyphGoal, p.Goals)
	appendN(glyphAssist, p.Assists)
	appendN(glyphYellow, p.YellowCards)
	appendN(glyphRed, p.RedCards)
	appendN(glyphSubbedOn, p.SubbedOn)
	appendN(glyphSubbedOff, p.SubbedOff)
	return sb.String()
}
