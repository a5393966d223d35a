package database

import (
	"context"
	"encoding/json"
)

const createActivityLog = `-- name: CreateActivityLog :exec
INSERT INTO activity_logs (action_type, details)
VALUES ($1, $2)
`

type CreateActivityLogParams struct {
	ActionType string
	Details    json.RawMessage
}

func (q *Queries) CreateActivityLog(ctx context.Context, arg CreateActivityLogParams) error {
	_, err := q.db.ExecContext(ctx, createActivityLog, arg.ActionType, arg.Details)
	return err
}

const listRecentActivityLogs = `-- name: ListRecentActivityLogs :many
SELECT id, action_type, details, created_at FROM activity_logs ORDER BY created_at DESC LIMIT $1
`

func (q *Queries) ListRecentActivityLogs(ctx context.Context, limit int32) ([]ActivityLog, error) {
	rows, err := q.db.QueryContext(ctx, listRecentActivityLogs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ActivityLog
	for rows.Next() {
		var i ActivityLog
		if err := rows.Scan(
			&i.ID,
			&i.ActionType,
			&i.Details,
			&i.CreatedAt,
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
