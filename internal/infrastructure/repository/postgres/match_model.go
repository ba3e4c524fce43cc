package postgres

import (
	"time"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	qb "github.com/pitchsight/pitchsight/internal/platform/querybuilder"
)

type matchTableModel struct {
	ID            int64      `db:"match_id"`
	CompetitionID int64      `db:"competition_id"`
	SeasonID      int64      `db:"season_id"`
	HomeTeam      string     `db:"home_team"`
	AwayTeam      string     `db:"away_team"`
	KickoffAt     time.Time  `db:"kickoff_at"`
	ProcessedAt   *time.Time `db:"processed_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type matchInsertModel struct {
	ID            int64     `db:"match_id"`
	CompetitionID int64     `db:"competition_id"`
	SeasonID      int64     `db:"season_id"`
	HomeTeam      string    `db:"home_team"`
	AwayTeam      string    `db:"away_team"`
	KickoffAt     time.Time `db:"kickoff_at"`
}

func matchBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"match_id",
		"competition_id",
		"season_id",
		"home_team",
		"away_team",
		"kickoff_at",
		"processed_at",
		"created_at",
		"updated_at",
	).From("matches")
}

func matchFromRow(row matchTableModel) artifact.Match {
	return artifact.Match{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		SeasonID:      row.SeasonID,
		HomeTeam:      row.HomeTeam,
		AwayTeam:      row.AwayTeam,
		KickoffAt:     row.KickoffAt,
		ProcessedAt:   row.ProcessedAt,
	}
}
