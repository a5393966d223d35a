package ai

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Assessment is the agent's verdict on a single resume. Failed calls are
// recorded as error results so a run's audit trail stays complete.
type Assessment struct {
	ResumeID            uuid.UUID `json:"resume_id"`
	CandidateEmail      string    `json:"candidate_email"`
	MatchScore          int       `json:"match_score"`
	RelevantExperiences []string  `json:"relevant_experiences"`
	RelevantSkills      []string  `json:"relevant_skills"`
	MissingSkills       []string  `json:"missing_skills"`
	Summary             string    `json:"summary"`
	Recommendation      string    `json:"recommendation"`

	IsErrorResult bool   `json:"is_error_result"`
	Error         string `json:"error,omitempty"`
}

// ParseAssessment decodes the agent's raw output, stripping markdown
// fences first. Anything undecodable becomes an error result.
func ParseAssessment(raw string) Assessment {
	if raw == "" {
		return ErrorAssessment("empty response from agent")
	}
	cleaned := cleanJSON(raw)
	var a Assessment
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		return ErrorAssessment("json unmarshal error: " + err.Error())
	}
	return a
}

func ErrorAssessment(msg string) Assessment {
	return Assessment{
		IsErrorResult: true,
		Error:         msg,
	}
}

// cleanJSON strips the ```json fences models wrap their output in.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimLeft(s, "\r\n")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
