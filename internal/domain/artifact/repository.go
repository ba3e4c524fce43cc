package artifact

import "context"

// Repository exposes artifact persistence operations. Upserts are keyed by
// (match_id, kind) so recomputes overwrite in place.
type Repository interface {
	Get(ctx context.Context, matchID int64, kind Kind) (Artifact, bool, error)
	ListByMatch(ctx context.Context, matchID int64) ([]Artifact, error)
	UpsertBatch(ctx context.Context, items []Artifact) error
	DeleteByMatch(ctx context.Context, matchID int64) error
}

// MatchRepository exposes the match worklist.
type MatchRepository interface {
	Get(ctx context.Context, matchID int64) (Match, bool, error)
	ListUnprocessed(ctx context.Context, limit int) ([]Match, error)
	ListByCompetition(ctx context.Context, competitionID, seasonID int64) ([]Match, error)
	UpsertBatch(ctx context.Context, items []Match) error
	MarkProcessed(ctx context.Context, matchID int64) error
}
