package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const createResume = `-- name: CreateResume :one
INSERT INTO resumes (
    id, original_filename, mime, size_bytes, storage_provider, object_key, storage_url, upload_status
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8
)
RETURNING id, original_filename, mime, size_bytes, storage_provider, object_key, storage_url, upload_status, candidate_name, candidate_email, candidate_phone, total_experience_years, profile, parse_error, created_at
`

type CreateResumeParams struct {
	ID               uuid.UUID
	OriginalFilename string
	Mime             string
	SizeBytes        int64
	StorageProvider  string
	ObjectKey        string
	StorageUrl       string
	UploadStatus     string
}

func (q *Queries) CreateResume(ctx context.Context, arg CreateResumeParams) (Resume, error) {
	row := q.db.QueryRowContext(ctx, createResume,
		arg.ID,
		arg.OriginalFilename,
		arg.Mime,
		arg.SizeBytes,
		arg.StorageProvider,
		arg.ObjectKey,
		arg.StorageUrl,
		arg.UploadStatus,
	)
	var i Resume
	err := row.Scan(
		&i.ID,
		&i.OriginalFilename,
		&i.Mime,
		&i.SizeBytes,
		&i.StorageProvider,
		&i.ObjectKey,
		&i.StorageUrl,
		&i.UploadStatus,
		&i.CandidateName,
		&i.CandidateEmail,
		&i.CandidatePhone,
		&i.TotalExperienceYears,
		&i.Profile,
		&i.ParseError,
		&i.CreatedAt,
	)
	return i, err
}

const updateResumeParsed = `-- name: UpdateResumeParsed :one
UPDATE resumes
SET candidate_name = $2,
    candidate_email = $3,
    candidate_phone = $4,
    total_experience_years = $5,
    profile = $6,
    upload_status = 'parsed',
    parse_error = ''
WHERE id = $1
RETURNING id, original_filename, mime, size_bytes, storage_provider, object_key, storage_url, upload_status, candidate_name, candidate_email, candidate_phone, total_experience_years, profile, parse_error, created_at
`

type UpdateResumeParsedParams struct {
	ID                   uuid.UUID
	CandidateName        string
	CandidateEmail       string
	CandidatePhone       string
	TotalExperienceYears float64
	Profile              json.RawMessage
}

func (q *Queries) UpdateResumeParsed(ctx context.Context, arg UpdateResumeParsedParams) (Resume, error) {
	row := q.db.QueryRowContext(ctx, updateResumeParsed,
		arg.ID,
		arg.CandidateName,
		arg.CandidateEmail,
		arg.CandidatePhone,
		arg.TotalExperienceYears,
		arg.Profile,
	)
	var i Resume
	err := row.Scan(
		&i.ID,
		&i.OriginalFilename,
		&i.Mime,
		&i.SizeBytes,
		&i.StorageProvider,
		&i.ObjectKey,
		&i.StorageUrl,
		&i.UploadStatus,
		&i.CandidateName,
		&i.CandidateEmail,
		&i.CandidatePhone,
		&i.TotalExperienceYears,
		&i.Profile,
		&i.ParseError,
		&i.CreatedAt,
	)
	return i, err
}

const markResumeParseFailed = `-- name: MarkResumeParseFailed :one
UPDATE resumes
SET upload_status = 'parse_failed',
    parse_error = $2
WHERE id = $1
RETURNING id, original_filename, mime, size_bytes, storage_provider, object_key, storage_url, upload_status, candidate_name, candidate_email, candidate_phone, total_experience_years, profile, parse_error, created_at
`

type MarkResumeParseFailedParams struct {
	ID         uuid.UUID
	ParseError string
}

func (q *Queries) MarkResumeParseFailed(ctx context.Context, arg MarkResumeParseFailedParams) (Resume, error) {
	row := q.db.QueryRowContext(ctx, markResumeParseFailed, arg.ID, arg.ParseError)
	var i Resume
	err := row.Scan(
		&i.ID,
		&i.OriginalFilename,
		&i.Mime,
		&i.SizeBytes,
		&i.StorageProvider,
		&i.ObjectKey,
		&i.StorageUrl,
		&i.UploadStatus,
		&i.CandidateName,
		&i.CandidateEmail,
		&i.CandidatePhone,
		&i.TotalExperienceYears,
		&i.Profile,
		&i.ParseError,
		&i.CreatedAt,
	)
	return i, err
}

const getResume = `-- name: GetResume :one
SELECT id, original_filename, mime, size_bytes, storage_provider, object_key, storage_url, upload_status, candidate_name, candidate_email, candidate_phone, total_experience_years, profile, parse_error, created_at FROM resumes WHERE id = $1
`

func (q *Queries) GetResume(ctx context.Context, id uuid.UUID) (Resume, error) {
	row := q.db.QueryRowContext(ctx, getResume, id)
	var i Resume
	err := row.Scan(
		&i.ID,
		&i.OriginalFilename,
		&i.Mime,
		&i.SizeBytes,
		&i.StorageProvider,
		&i.ObjectKey,
		&i.StorageUrl,
		&i.UploadStatus,
		&i.CandidateName,
		&i.CandidateEmail,
		&i.CandidatePhone,
		&i.TotalExperienceYears,
		&i.Profile,
		&i.ParseError,
		&i.CreatedAt,
	)
	return i, err
}

const listResumes = `-- name: ListResumes :many
SELECT id, original_filename, mime, size_bytes, storage_provider, object_key, storage_url, upload_status, candidate_name, candidate_email, candidate_phone, total_experience_years, profile, parse_error, created_at FROM resumes ORDER BY created_at DESC
`

func (q *Queries) ListResumes(ctx context.Context) ([]Resume, error) {
	rows, err := q.db.QueryContext(ctx, listResumes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Resume
	for rows.Next() {
		var i Resume
		if err := rows.Scan(
			&i.ID,
			&i.OriginalFilename,
			&i.Mime,
			&i.SizeBytes,
			&i.StorageProvider,
			&i.ObjectKey,
			&i.StorageUrl,
			&i.UploadStatus,
			&i.CandidateName,
			&i.CandidateEmail,
			&i.CandidatePhone,
			&i.TotalExperienceYears,
			&i.Profile,
			&i.ParseError,
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

const listParsedResumes = `-- name: ListParsedResumes :many
SELECT id, original_filename, mime, size_bytes, storage_provider, object_key, storage_url, upload_status, candidate_name, candidate_email, candidate_phone, total_experience_years, profile, parse_error, created_at FROM resumes WHERE upload_status = 'parsed' ORDER BY created_at
`

func (q *Queries) ListParsedResumes(ctx context.Context) ([]Resume, error) {
	rows, err := q.db.QueryContext(ctx, listParsedResumes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Resume
	for rows.Next() {
		var i Resume
		if err := rows.Scan(
			&i.ID,
			&i.OriginalFilename,
			&i.Mime,
			&i.SizeBytes,
			&i.StorageProvider,
			&i.ObjectKey,
			&i.StorageUrl,
			&i.UploadStatus,
			&i.CandidateName,
			&i.CandidateEmail,
			&i.CandidatePhone,
			&i.TotalExperienceYears,
			&i.Profile,
			&i.ParseError,
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

const deleteResume = `-- name: DeleteResume :exec
DELETE FROM resumes WHERE id = $1
`

func (q *Queries) DeleteResume(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteResume, id)
	return err
}

const countResumes = `-- name: CountResumes :one
SELECT COUNT(*) FROM resumes
`

func (q *Queries) CountResumes(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countResumes)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countParsedResumes = `-- name: CountParsedResumes :one
SELECT COUNT(*) FROM resumes WHERE upload_status = 'parsed'
`

func (q *Queries) CountParsedResumes(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countParsedResumes)
	var count int64
	err := row.Scan(&count)
	return count, err
}
