package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID                   uuid.UUID       `json:"id"`
	OriginalFilename     string          `json:"original_filename"`
	Mime                 string          `json:"mime"`
	SizeBytes            int64           `json:"size_bytes"`
	StorageProvider      string          `json:"storage_provider"`
	ObjectKey            string          `json:"object_key"`
	StorageUrl           string          `json:"storage_url"`
	UploadStatus         string          `json:"upload_status"`
	CandidateName        string          `json:"candidate_name"`
	CandidateEmail       string          `json:"candidate_email"`
	CandidatePhone       string          `json:"candidate_phone"`
	TotalExperienceYears float64         `json:"total_experience_years"`
	Profile              json.RawMessage `json:"profile"`
	ParseError           string          `json:"parse_error"`
	CreatedAt            time.Time       `json:"created_at"`
}

type JobPosting struct {
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
}

type MatchRun struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Ranking struct {
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
}

type Approval struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	ResumeID  uuid.UUID `json:"resume_id"`
	Status    string    `json:"status"`
	DecidedBy string    `json:"decided_by"`
	Note      string    `json:"note"`
	DecidedAt time.Time `json:"decided_at"`
}

type AnalysesResult struct {
	ID        uuid.UUID       `json:"id"`
	RunID     uuid.UUID       `json:"run_id"`
	Results   json.RawMessage `json:"results"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ActivityLog struct {
	ID         uuid.UUID       `json:"id"`
	ActionType string          `json:"action_type"`
	Details    json.RawMessage `json:"details"`
	CreatedAt  time.Time       `json:"created_at"`
}
