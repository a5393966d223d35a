package database

import (
	"context"

	"github.com/google/uuid"
)

const upsertApproval = `-- name: UpsertApproval :one
INSERT INTO approvals (job_id, resume_id, status, decided_by, note)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (job_id, resume_id)
DO UPDATE SET
    status = EXCLUDED.status,
    decided_by = EXCLUDED.decided_by,
    note = EXCLUDED.note,
    decided_at = now()
RETURNING id, job_id, resume_id, status, decided_by, note, decided_at
`

type UpsertApprovalParams struct {
	JobID     uuid.UUID
	ResumeID  uuid.UUID
	Status    string
	DecidedBy string
	Note      string
}

func (q *Queries) UpsertApproval(ctx context.Context, arg UpsertApprovalParams) (Approval, error) {
	row := q.db.QueryRowContext(ctx, upsertApproval,
		arg.JobID,
		arg.ResumeID,
		arg.Status,
		arg.DecidedBy,
		arg.Note,
	)
	var i Approval
	err := row.Scan(
		&i.ID,
		&i.JobID,
		&i.ResumeID,
		&i.Status,
		&i.DecidedBy,
		&i.Note,
		&i.DecidedAt,
	)
	return i, err
}

const countApprovalsByStatus = `-- name: CountApprovalsByStatus :one
SELECT COUNT(*) FROM approvals WHERE status = $1
`

func (q *Queries) CountApprovalsByStatus(ctx context.Context, status string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countApprovalsByStatus, status)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countPendingReview = `-- name: CountPendingReview :one
SELECT COUNT(*)
FROM rankings r
LEFT JOIN approvals a ON a.job_id = r.job_id AND a.resume_id = r.resume_id
WHERE a.id IS NULL
`

func (q *Queries) CountPendingReview(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPendingReview)
	var count int64
	err := row.Scan(&count)
	return count, err
}
