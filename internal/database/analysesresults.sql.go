package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const createOrUpdateAnalysesResults = `-- name: CreateOrUpdateAnalysesResults :exec
INSERT INTO analyses_results (run_id, results)
VALUES ($1, $2)
ON CONFLICT (run_id)
DO UPDATE SET
    results = EXCLUDED.results,
    updated_at = CURRENT_TIMESTAMP
`

type CreateOrUpdateAnalysesResultsParams struct {
	RunID   uuid.UUID
	Results json.RawMessage
}

func (q *Queries) CreateOrUpdateAnalysesResults(ctx context.Context, arg CreateOrUpdateAnalysesResultsParams) error {
	_, err := q.db.ExecContext(ctx, createOrUpdateAnalysesResults, arg.RunID, arg.Results)
	return err
}

const getAnalysesResultsByRun = `-- name: GetAnalysesResultsByRun :one
SELECT id, run_id, results, created_at, updated_at FROM analyses_results WHERE run_id = $1
`

func (q *Queries) GetAnalysesResultsByRun(ctx context.Context, runID uuid.UUID) (AnalysesResult, error) {
	row := q.db.QueryRowContext(ctx, getAnalysesResultsByRun, runID)
	var i AnalysesResult
	err := row.Scan(
		&i.ID,
		&i.RunID,
		&i.Results,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
