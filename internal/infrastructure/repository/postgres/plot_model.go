package postgres

import (
	"time"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	qb "github.com/pitchsight/pitchsight/internal/platform/querybuilder"
)

type plotTableModel struct {
	ID         int64     `db:"id"`
	MatchID    int64     `db:"match_id"`
	Kind       string    `db:"artifact_kind"`
	Payload    []byte    `db:"payload"`
	ComputedAt time.Time `db:"computed_at"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type plotInsertModel struct {
	MatchID    int64     `db:"match_id"`
	Kind       string    `db:"artifact_kind"`
	Payload    []byte    `db:"payload"`
	ComputedAt time.Time `db:"computed_at"`
}

func plotBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"id",
		"match_id",
		"artifact_kind",
		"payload",
		"computed_at",
		"created_at",
		"updated_at",
	).From("match_plots")
}

func plotFromRow(row plotTableModel) artifact.Artifact {
	return artifact.Artifact{
		MatchID:    row.MatchID,
		Kind:       artifact.Kind(row.Kind),
		Payload:    append([]byte(nil), row.Payload...),
		ComputedAt: row.ComputedAt,
	}
}
