package database

import (
	"context"

	"github.com/google/uuid"
)

const createMatchRun = `-- name: CreateMatchRun :one
INSERT INTO match_runs (job_id, status)
VALUES ($1, 'queued')
RETURNING id, job_id, status, error, created_at, updated_at
`

func (q *Queries) CreateMatchRun(ctx context.Context, jobID uuid.UUID) (MatchRun, error) {
	row := q.db.QueryRowContext(ctx, createMatchRun, jobID)
	var i MatchRun
	err := row.Scan(
		&i.ID,
		&i.JobID,
		&i.Status,
		&i.Error,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getMatchRun = `-- name: GetMatchRun :one
SELECT id, job_id, status, error, created_at, updated_at FROM match_runs WHERE id = $1
`

func (q *Queries) GetMatchRun(ctx context.Context, id uuid.UUID) (MatchRun, error) {
	row := q.db.QueryRowContext(ctx, getMatchRun, id)
	var i MatchRun
	err := row.Scan(
		&i.ID,
		&i.JobID,
		&i.Status,
		&i.Error,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateMatchRunStatus = `-- name: UpdateMatchRunStatus :exec
UPDATE match_runs
SET status = $2,
    error = $3,
    updated_at = now()
WHERE id = $1
`

type UpdateMatchRunStatusParams struct {
	ID     uuid.UUID
	Status string
	Error  string
}

func (q *Queries) UpdateMatchRunStatus(ctx context.Context, arg UpdateMatchRunStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateMatchRunStatus, arg.ID, arg.Status, arg.Error)
	return err
}

const listMatchRunsByJob = `-- name: ListMatchRunsByJob :many
SELECT id, job_id, status, error, created_at, updated_at FROM match_runs WHERE job_id = $1 ORDER BY created_at DESC
`

func (q *Queries) ListMatchRunsByJob(ctx context.Context, jobID uuid.UUID) ([]MatchRun, error) {
	rows, err := q.db.QueryContext(ctx, listMatchRunsByJob, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MatchRun
	for rows.Next() {
		var i MatchRun
		if err := rows.Scan(
			&i.ID,
			&i.JobID,
			&i.Status,
			&i.Error,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
