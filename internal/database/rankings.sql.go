package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const createRanking = `-- name: CreateRanking :exec
INSERT INTO rankings (
    job_id, resume_id, run_id, candidate_name, candidate_email, candidate_phone,
    overall_score, skills_score, experience_score, education_score, keyword_score, semantic_score, ai_score,
    ranking_position, matched_skills, missing_skills, total_experience_years, shortlisted, explanation
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
)
`

type CreateRankingParams struct {
	JobID                uuid.UUID
	ResumeID             uuid.UUID
	RunID                uuid.UUID
	CandidateName        string
	CandidateEmail       string
	CandidatePhone       string
	OverallScore         float64
	SkillsScore          float64
	ExperienceScore      float64
	EducationScore       float64
	KeywordScore         float64
	SemanticScore        float64
	AiScore              float64
	RankingPosition      int32
	MatchedSkills        []string
	MissingSkills        []string
	TotalExperienceYears float64
	Shortlisted          bool
	Explanation          json.RawMessage
}

func (q *Queries) CreateRanking(ctx context.Context, arg CreateRankingParams) error {
	_, err := q.db.ExecContext(ctx, createRanking,
		arg.JobID,
		arg.ResumeID,
		arg.RunID,
		arg.CandidateName,
		arg.CandidateEmail,
		arg.CandidatePhone,
		arg.OverallScore,
		arg.SkillsScore,
		arg.ExperienceScore,
		arg.EducationScore,
		arg.KeywordScore,
		arg.SemanticScore,
		arg.AiScore,
		arg.RankingPosition,
		pq.Array(arg.MatchedSkills),
		pq.Array(arg.MissingSkills),
		arg.TotalExperienceYears,
		arg.Shortlisted,
		arg.Explanation,
	)
	return err
}

const deleteRankingsByJob = `-- name: DeleteRankingsByJob :exec
DELETE FROM rankings WHERE job_id = $1
`

func (q *Queries) DeleteRankingsByJob(ctx context.Context, jobID uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteRankingsByJob, jobID)
	return err
}

const listRankingsWithApprovals = `-- name: ListRankingsWithApprovals :many
SELECT r.id, r.job_id, r.resume_id, r.run_id, r.candidate_name, r.candidate_email, r.candidate_phone,
       r.overall_score, r.skills_score, r.experience_score, r.education_score, r.keyword_score, r.semantic_score, r.ai_score,
       r.ranking_position, r.matched_skills, r.missing_skills, r.total_experience_years, r.shortlisted, r.explanation, r.created_at,
       COALESCE(a.status, 'pending') AS approval_status,
       COALESCE(a.decided_by, '') AS decided_by,
       COALESCE(a.note, '') AS note
FROM rankings r
LEFT JOIN approvals a ON a.job_id = r.job_id AND a.resume_id = r.resume_id
WHERE r.job_id = $1
ORDER BY r.ranking_position
`

type ListRankingsWithApprovalsRow struct {
	ID                   uuid.UUID       `json:"id"`
	JobID                uuid.UUID       `json:"job_id"`
	ResumeID             uuid.UUID       `json:"resume_id"`
	RunID                uuid.UUID       `json:"run_id"`
	CandidateName        string          `json:"candidate_name"`
	CandidateEmail       string          `json:"candidate_email"`
	CandidatePhone       string          `json:"candidate_phone"`
	OverallScore         float64         `json:"overall_score"`
	SkillsScore          float64         `json:"skills_score"`
	ExperienceScore      float64         `json:"experience_score"`
	EducationScore       float64         `json:"education_score"`
	KeywordScore         float64         `json:"keyword_score"`
	SemanticScore        float64         `json:"semantic_score"`
	AiScore              float64         `json:"ai_score"`
	RankingPosition      int32           `json:"ranking_position"`
	MatchedSkills        []string        `json:"matched_skills"`
	MissingSkills        []string        `json:"missing_skills"`
	TotalExperienceYears float64         `json:"total_experience_years"`
	Shortlisted          bool            `json:"shortlisted"`
	Explanation          json.RawMessage `json:"explanation"`
	CreatedAt            time.Time       `json:"created_at"`
	ApprovalStatus       string          `json:"approval_status"`
	DecidedBy            string          `json:"decided_by"`
	Note                 string          `json:"note"`
}

func (q *Queries) ListRankingsWithApprovals(ctx context.Context, jobID uuid.UUID) ([]ListRankingsWithApprovalsRow, error) {
	rows, err := q.db.QueryContext(ctx, listRankingsWithApprovals, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListRankingsWithApprovalsRow
	for rows.Next() {
		var i ListRankingsWithApprovalsRow
		if err := rows.Scan(
			&i.ID,
			&i.JobID,
			&i.ResumeID,
			&i.RunID,
			&i.CandidateName,
			&i.CandidateEmail,
			&i.CandidatePhone,
			&i.OverallScore,
			&i.SkillsScore,
			&i.ExperienceScore,
			&i.EducationScore,
			&i.KeywordScore,
			&i.SemanticScore,
			&i.AiScore,
			&i.RankingPosition,
			pq.Array(&i.MatchedSkills),
			pq.Array(&i.MissingSkills),
			&i.TotalExperienceYears,
			&i.Shortlisted,
			&i.Explanation,
			&i.CreatedAt,
			&i.ApprovalStatus,
			&i.DecidedBy,
			&i.Note,
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

const listShortlistByJob = `-- name: ListShortlistByJob :many
SELECT r.id, r.job_id, r.resume_id, r.run_id, r.candidate_name, r.candidate_email, r.candidate_phone,
       r.overall_score, r.skills_score, r.experience_score, r.education_score, r.keyword_score, r.semantic_score, r.ai_score,
       r.ranking_position, r.matched_skills, r.missing_skills, r.total_experience_years, r.shortlisted, r.explanation, r.created_at
FROM rankings r
JOIN approvals a ON a.job_id = r.job_id AND a.resume_id = r.resume_id AND a.status = 'approved'
WHERE r.job_id = $1
ORDER BY r.ranking_position
`

func (q *Queries) ListShortlistByJob(ctx context.Context, jobID uuid.UUID) ([]Ranking, error) {
	rows, err := q.db.QueryContext(ctx, listShortlistByJob, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Ranking
	for rows.Next() {
		var i Ranking
		if err := rows.Scan(
			&i.ID,
			&i.JobID,
			&i.ResumeID,
			&i.RunID,
			&i.CandidateName,
			&i.CandidateEmail,
			&i.CandidatePhone,
			&i.OverallScore,
			&i.SkillsScore,
			&i.ExperienceScore,
			&i.EducationScore,
			&i.KeywordScore,
			&i.SemanticScore,
			&i.AiScore,
			&i.RankingPosition,
			pq.Array(&i.MatchedSkills),
			pq.Array(&i.MissingSkills),
			&i.TotalExperienceYears,
			&i.Shortlisted,
			&i.Explanation,
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

const listPendingRankingsByJob = `-- name: ListPendingRankingsByJob :many
SELECT r.id, r.job_id, r.resume_id, r.run_id, r.candidate_name, r.candidate_email, r.candidate_phone,
       r.overall_score, r.skills_score, r.experience_score, r.education_score, r.keyword_score, r.semantic_score, r.ai_score,
       r.ranking_position, r.matched_skills, r.missing_skills, r.total_experience_years, r.shortlisted, r.explanation, r.created_at
FROM rankings r
LEFT JOIN approvals a ON a.job_id = r.job_id AND a.resume_id = r.resume_id
WHERE r.job_id = $1 AND a.id IS NULL
ORDER BY r.ranking_position
`

func (q *Queries) ListPendingRankingsByJob(ctx context.Context, jobID uuid.UUID) ([]Ranking, error) {
	rows, err := q.db.QueryContext(ctx, listPendingRankingsByJob, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Ranking
	for rows.Next() {
		var i Ranking
		if err := rows.Scan(
			&i.ID,
			&i.JobID,
			&i.ResumeID,
			&i.RunID,
			&i.CandidateName,
			&i.CandidateEmail,
			&i.CandidatePhone,
			&i.OverallScore,
			&i.SkillsScore,
			&i.ExperienceScore,
			&i.EducationScore,
			&i.KeywordScore,
			&i.SemanticScore,
			&i.AiScore,
			&i.RankingPosition,
			pq.Array(&i.MatchedSkills),
			pq.Array(&i.MissingSkills),
			&i.TotalExperienceYears,
			&i.Shortlisted,
			&i.Explanation,
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

const getRankingByJobAndResume = `-- name: GetRankingByJobAndResume :one
SELECT id, job_id, resume_id, run_id, candidate_name, candidate_email, candidate_phone,
       overall_score, skills_score, experience_score, education_score, keyword_score, semantic_score, ai_score,
       ranking_position, matched_skills, missing_skills, total_experience_years, shortlisted, explanation, created_at
FROM rankings
WHERE job_id = $1 AND resume_id = $2
`

type GetRankingByJobAndResumeParams struct {
	JobID    uuid.UUID
	ResumeID uuid.UUID
}

func (q *Queries) GetRankingByJobAndResume(ctx context.Context, arg GetRankingByJobAndResumeParams) (Ranking, error) {
	row := q.db.QueryRowContext(ctx, getRankingByJobAndResume, arg.JobID, arg.ResumeID)
	var i Ranking
	err := row.Scan(
		&i.ID,
		&i.JobID,
		&i.ResumeID,
		&i.RunID,
		&i.CandidateName,
		&i.CandidateEmail,
		&i.CandidatePhone,
		&i.OverallScore,
		&i.SkillsScore,
		&i.ExperienceScore,
		&i.EducationScore,
		&i.KeywordScore,
		&i.SemanticScore,
		&i.AiScore,
		&i.RankingPosition,
		pq.Array(&i.MatchedSkills),
		pq.Array(&i.MissingSkills),
		&i.TotalExperienceYears,
		&i.Shortlisted,
		&i.Explanation,
		&i.CreatedAt,
	)
	return i, err
}

const countRankings = `-- name: CountRankings :one
SELECT COUNT(*) FROM rankings
`

func (q *Queries) CountRankings(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countRankings)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const averageOverallScore = `-- name: AverageOverallScore :one
SELECT COALESCE(AVG(overall_score), 0)::float8 FROM rankings
`

func (q *Queries) AverageOverallScore(ctx context.Context) (float64, error) {
	row := q.db.QueryRowContext(ctx, averageOverallScore)
	var avg float64
	err := row.Scan(&avg)
	return avg, err
}
