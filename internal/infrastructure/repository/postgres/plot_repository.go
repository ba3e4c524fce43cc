package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	qb "github.com/pitchsight/pitchsight/internal/platform/querybuilder"
)

type PlotRepository struct {
	db *sqlx.DB
}

func NewPlotRepository(db *sqlx.DB) *PlotRepository {
	return &PlotRepository{db: db}
}

func (r *PlotRepository) Get(ctx context.Context, matchID int64, kind artifact.Kind) (artifact.Artifact, bool, error) {
	query, args, err := plotBaseSelectBuilder().
		Where(
			qb.Eq("match_id", matchID),
			qb.Eq("artifact_kind", string(kind)),
		).
		ToSQL()
	if err != nil {
		return artifact.Artifact{}, false, fmt.Errorf("build get plot query: %w", err)
	}

	var row plotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return artifact.Artifact{}, false, nil
		}
		return artifact.Artifact{}, false, fmt.Errorf("get plot: %w", err)
	}

	return plotFromRow(row), true, nil
}

func (r *PlotRepository) ListByMatch(ctx context.Context, matchID int64) ([]artifact.Artifact, error) {
	query, args, err := plotBaseSelectBuilder().
		Where(qb.Eq("match_id", matchID)).
		OrderBy("artifact_kind").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list plots by match query: %w", err)
	}

	var rows []plotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list plots by match: %w", err)
	}

	out := make([]artifact.Artifact, 0, len(rows))
	for _, row := range rows {
		out = append(out, plotFromRow(row))
	}
	return out, nil
}

// UpsertBatch writes a bundle's artifacts in one transaction so a recompute
// replaces the match's plots atomically.
func (r *PlotRepository) UpsertBatch(ctx context.Context, items []artifact.Artifact) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert plots: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := plotInsertModel{
			MatchID:    item.MatchID,
			Kind:       string(item.Kind),
			Payload:    item.Payload,
			ComputedAt: item.ComputedAt,
		}

		query, args, err := qb.InsertModel("match_plots", insertModel, `ON CONFLICT (match_id, artifact_kind)
DO UPDATE SET
    payload = EXCLUDED.payload,
    computed_at = EXCLUDED.computed_at,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert plot query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert plot match_id=%d kind=%s: %w", item.MatchID, item.Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert plots tx: %w", err)
	}
	return nil
}

func (r *PlotRepository) DeleteByMatch(ctx context.Context, matchID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM match_plots WHERE match_id = $1`, matchID); err != nil {
		return fmt.Errorf("delete plots by match: %w", err)
	}
	return nil
}
