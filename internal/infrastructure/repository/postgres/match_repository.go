package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	qb "github.com/pitchsight/pitchsight/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Get(ctx context.Context, matchID int64) (artifact.Match, bool, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return artifact.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return artifact.Match{}, false, nil
		}
		return artifact.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListUnprocessed(ctx context.Context, limit int) ([]artifact.Match, error) {
	builder := matchBaseSelectBuilder().
		Where(qb.IsNull("processed_at")).
		OrderBy("kickoff_at", "match_id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list unprocessed matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list unprocessed matches: %w", err)
	}

	out := make([]artifact.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competitionID, seasonID int64) ([]artifact.Match, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Eq("season_id", seasonID),
		).
		OrderBy("kickoff_at", "match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by competition query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches by competition: %w", err)
	}

	out := make([]artifact.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) UpsertBatch(ctx context.Context, items []artifact.Match) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := matchInsertModel{
			ID:            item.ID,
			CompetitionID: item.CompetitionID,
			SeasonID:      item.SeasonID,
			HomeTeam:      item.HomeTeam,
			AwayTeam:      item.AwayTeam,
			KickoffAt:     item.KickoffAt,
		}

		query, args, err := qb.InsertModel("matches", insertModel, `ON CONFLICT (match_id)
DO UPDATE SET
    competition_id = EXCLUDED.competition_id,
    season_id = EXCLUDED.season_id,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    kickoff_at = EXCLUDED.kickoff_at,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert match match_id=%d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert matches tx: %w", err)
	}
	return nil
}

func (r *MatchRepository) MarkProcessed(ctx context.Context, matchID int64) error {
	query, args, err := qb.Update("matches").
		SetExpr("processed_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark match processed query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark match processed: %w", err)
	}
	return nil
}
