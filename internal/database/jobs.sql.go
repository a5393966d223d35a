package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const createJobPosting = `-- name: CreateJobPosting :one
INSERT INTO job_postings (
    title, description, required_skills, preferred_skills, min_experience_years, max_experience_years, education_level, keywords, status
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, 'open'
)
RETURNING id, title, description, required_skills, preferred_skills, min_experience_years, max_experience_years, education_level, keywords, status, created_at
`

type CreateJobPostingParams struct {
	Title              string
	Description        string
	RequiredSkills     []string
	PreferredSkills    []string
	MinExperienceYears float64
	MaxExperienceYears float64
	EducationLevel     string
	Keywords           []string
}

func (q *Queries) CreateJobPosting(ctx context.Context, arg CreateJobPostingParams) (JobPosting, error) {
	row := q.db.QueryRowContext(ctx, createJobPosting,
		arg.Title,
		arg.Description,
		pq.Array(arg.RequiredSkills),
		pq.Array(arg.PreferredSkills),
		arg.MinExperienceYears,
		arg.MaxExperienceYears,
		arg.EducationLevel,
		pq.Array(arg.Keywords),
	)
	var i JobPosting
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		pq.Array(&i.RequiredSkills),
		pq.Array(&i.PreferredSkills),
		&i.MinExperienceYears,
		&i.MaxExperienceYears,
		&i.EducationLevel,
		pq.Array(&i.Keywords),
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const getJobPosting = `-- name: GetJobPosting :one
SELECT id, title, description, required_skills, preferred_skills, min_experience_years, max_experience_years, education_level, keywords, status, created_at FROM job_postings WHERE id = $1
`

func (q *Queries) GetJobPosting(ctx context.Context, id uuid.UUID) (JobPosting, error) {
	row := q.db.QueryRowContext(ctx, getJobPosting, id)
	var i JobPosting
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		pq.Array(&i.RequiredSkills),
		pq.Array(&i.PreferredSkills),
		&i.MinExperienceYears,
		&i.MaxExperienceYears,
		&i.EducationLevel,
		pq.Array(&i.Keywords),
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const listJobPostings = `-- name: ListJobPostings :many
SELECT id, title, description, required_skills, preferred_skills, min_experience_years, max_experience_years, education_level, keywords, status, created_at FROM job_postings ORDER BY created_at DESC
`

func (q *Queries) ListJobPostings(ctx context.Context) ([]JobPosting, error) {
	rows, err := q.db.QueryContext(ctx, listJobPostings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []JobPosting
	for rows.Next() {
		var i JobPosting
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Description,
			pq.Array(&i.RequiredSkills),
			pq.Array(&i.PreferredSkills),
			&i.MinExperienceYears,
			&i.MaxExperienceYears,
			&i.EducationLevel,
			pq.Array(&i.Keywords),
			&i.Status,
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

const listJobPostingsWithCounts = `-- name: ListJobPostingsWithCounts :many
SELECT j.id, j.title, j.description, j.required_skills, j.preferred_skills, j.min_experience_years, j.max_experience_years, j.education_level, j.keywords, j.status, j.created_at,
       COUNT(r.id) AS ranking_count
FROM job_postings j
LEFT JOIN rankings r ON r.job_id = j.id
GROUP BY j.id
ORDER BY j.created_at DESC
`

type ListJobPostingsWithCountsRow struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	RequiredSkills     []string  `json:"required_skills"`
	PreferredSkills    []string  `json:"preferred_skills"`
	MinExperienceYears float64   `json:"min_experience_years"`
	MaxExperienceYears float64   `json:"max_experience_years"`
	EducationLevel     string    `json:"education_level"`
	Keywords           []string  `json:"keywords"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	RankingCount       int64     `json:"ranking_count"`
}

func (q *Queries) ListJobPostingsWithCounts(ctx context.Context) ([]ListJobPostingsWithCountsRow, error) {
	rows, err := q.db.QueryContext(ctx, listJobPostingsWithCounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListJobPostingsWithCountsRow
	for rows.Next() {
		var i ListJobPostingsWithCountsRow
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Description,
			pq.Array(&i.RequiredSkills),
			pq.Array(&i.PreferredSkills),
			&i.MinExperienceYears,
			&i.MaxExperienceYears,
			&i.EducationLevel,
			pq.Array(&i.Keywords),
			&i.Status,
			&i.CreatedAt,
			&i.RankingCount,
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

const closeJobPosting = `-- name: CloseJobPosting :one
UPDATE job_postings
SET status = 'closed'
WHERE id = $1
RETURNING id, title, description, required_skills, preferred_skills, min_experience_years, max_experience_years, education_level, keywords, status, created_at
`

func (q *Queries) CloseJobPosting(ctx context.Context, id uuid.UUID) (JobPosting, error) {
	row := q.db.QueryRowContext(ctx, closeJobPosting, id)
	var i JobPosting
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		pq.Array(&i.RequiredSkills),
		pq.Array(&i.PreferredSkills),
		&i.MinExperienceYears,
		&i.MaxExperienceYears,
		&i.EducationLevel,
		pq.Array(&i.Keywords),
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const countJobPostings = `-- name: CountJobPostings :one
SELECT COUNT(*) FROM job_postings
`

func (q *Queries) CountJobPostings(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countJobPostings)
	var count int64
	err := row.Scan(&count)
	return count, err
}
