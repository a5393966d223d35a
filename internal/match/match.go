// Package match scores a parsed resume against structured job
// requirements. The engine is deterministic, the optional AI score is
// blended in afterwards.
package match

import (
	"math"
	"sort"
	"strings"

	"github.com/resumesift/resumesift/internal/jobspec"
	"github.com/resumesift/resumesift/internal/parser"
)

// Component weights of the overall engine score.
const (
	weightSkills     = 0.40
	weightExperience = 0.30
	weightEducation  = 0.15
	weightKeywords   = 0.10
	weightSemantic   = 0.05
)

// ShortlistCutoff is the overall score from which a candidate counts as
// shortlist-eligible. Exposure is still gated by admin approval.
const ShortlistCutoff = 60.0

// Scores carries the engine result for one candidate.
type Scores struct {
	Overall       float64
	Skills        float64
	Experience    float64
	Education     float64
	Keywords      float64
	Semantic      float64
	MatchedSkills []string
	MissingSkills []string
	ExperienceGap float64
	Explanation   Explanation
}

// Explanation is the human-readable breakdown stored with a ranking.
// The AI fields are filled by the worker when an assessment succeeded.
type Explanation struct {
	Summary          string   `json:"summary"`
	Strengths        []string `json:"strengths,omitempty"`
	Weaknesses       []string `json:"weaknesses,omitempty"`
	Recommendations  []string `json:"recommendations,omitempty"`
	AISummary        string   `json:"ai_summary,omitempty"`
	AIRecommendation string   `json:"ai_recommendation,omitempty"`
}

// Score evaluates one profile against the job requirements.
func Score(profile parser.Profile, req jobspec.Requirements) Scores {
	var s Scores

	s.Skills, s.MatchedSkills, s.MissingSkills = skillsScore(profile, req)
	s.Experience, s.ExperienceGap = experienceScore(profile.TotalExperienceYears, req)
	s.Education = educationScore(profile, req)
	s.Keywords = keywordsScore(profile, req)
	s.Semantic = semanticScore(profile, req)

	s.Overall = s.Skills*weightSkills +
		s.Experience*weightExperience +
		s.Education*weightEducation +
		s.Keywords*weightKeywords +
		s.Semantic*weightSemantic

	s.Explanation = explain(s, profile)
	return s
}

// skillsScore weighs required skill coverage 80/20 against preferred
// coverage. A job without any skills scores 100 for everyone.
func skillsScore(profile parser.Profile, req jobspec.Requirements) (float64, []string, []string) {
	resumeSkills := lowerSet(profile.SkillSet())
	required := lowerSet(req.RequiredSkills)
	preferred := lowerSet(req.PreferredSkills)

	if len(required) == 0 && len(preferred) == 0 {
		return 100, nil, nil
	}

	matchedRequired := countMatches(resumeSkills, required)
	matchedPreferred := countMatches(resumeSkills, preferred)

	requiredScore := 100.0
	if len(required) > 0 {
		requiredScore = float64(matchedRequired) / float64(len(required)) * 100
	}
	preferredScore := 0.0
	if len(preferred) > 0 {
		preferredScore = float64(matchedPreferred) / float64(len(preferred)) * 100
	}

	score := preferredScore
	if len(required) > 0 {
		score = requiredScore*0.8 + preferredScore*0.2
	}

	allJob := make(map[string]bool, len(required)+len(preferred))
	for skill := range required {
		allJob[skill] = true
	}
	for skill := range preferred {
		allJob[skill] = true
	}

	var matched, missing []string
	for skill := range allJob {
		if resumeSkills[skill] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	return score, matched, missing
}

// experienceScore is 100 when the candidate meets the requirement,
// penalized 5 points per year beyond the stated maximum (floor 70) and
// 20 points per missing year (floor 0).
func experienceScore(years float64, req jobspec.Requirements) (float64, float64) {
	requiredYears := float64(req.MinExperienceYears)
	if requiredYears == 0 {
		return 100, 0
	}

	if years >= requiredYears {
		if req.MaxExperienceYears > 0 && years > float64(req.MaxExperienceYears) {
			excess := years - float64(req.MaxExperienceYears)
			return math.Max(70, 100-excess*5), 0
		}
		return 100, 0
	}

	gap := requiredYears - years
	return math.Max(0, 100-gap*20), gap
}

// educationScore compares the highest degree on the resume with the
// required ladder level: meets 100, one below 80, further below 20 per
// level with a floor of 50.
func educationScore(profile parser.Profile, req jobspec.Requirements) float64 {
	requiredLevel := jobspec.EducationRank(req.EducationLevel)
	if requiredLevel == 0 {
		return 100
	}

	resumeLevel := 0
	for _, edu := range profile.Education {
		if rank := jobspec.DegreeRank(edu.Degree); rank > resumeLevel {
			resumeLevel = rank
		}
	}

	switch {
	case resumeLevel >= requiredLevel:
		return 100
	case resumeLevel == requiredLevel-1:
		return 80
	default:
		return math.Max(50, 100-float64(requiredLevel-resumeLevel)*20)
	}
}

// keywordsScore is the share of job keywords appearing in the resume's
// prose (summary, experience and project descriptions).
func keywordsScore(profile parser.Profile, req jobspec.Requirements) float64 {
	if len(req.Keywords) == 0 {
		return 100
	}

	text := keywordText(profile)
	matched := 0
	for _, keyword := range req.Keywords {
		if strings.Contains(text, keyword) {
			matched++
		}
	}
	return float64(matched) / float64(len(req.Keywords)) * 100
}

// semanticScore is a token-set cosine similarity between the resume
// prose and the raw job description. Empty on either side falls back to
// the neutral 50.
func semanticScore(profile parser.Profile, req jobspec.Requirements) float64 {
	resume := jobspec.TokenSet(semanticText(profile))
	job := jobspec.TokenSet(req.RawText)

	if len(resume) == 0 || len(job) == 0 {
		return 50
	}

	shared := 0
	for token := range resume {
		if job[token] {
			shared++
		}
	}
	return float64(shared) / math.Sqrt(float64(len(resume))*float64(len(job))) * 100
}

// keywordText joins summary, experience and project descriptions.
func keywordText(profile parser.Profile) string {
	parts := []string{profile.Summary}
	for _, exp := range profile.Experience {
		parts = append(parts, exp.Description)
	}
	for _, proj := range profile.Projects {
		parts = append(parts, proj.Description)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// semanticText joins summary and experience descriptions only.
func semanticText(profile parser.Profile) string {
	parts := []string{profile.Summary}
	for _, exp := range profile.Experience {
		parts = append(parts, exp.Description)
	}
	return strings.Join(parts, " ")
}

// Blend mixes the engine score with an AI score, weight clamped to
// [0,1]. With aiOK false (AI disabled or an error result) the engine
// score stands alone.
func Blend(engine float64, aiScore float64, aiOK bool, weight float64) float64 {
	if !aiOK {
		return engine
	}
	w := math.Min(1, math.Max(0, weight))
	return engine*(1-w) + aiScore*w
}

// Round2 rounds a score to two decimals for storage and display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

func countMatches(have, want map[string]bool) int {
	n := 0
	for skill := range want {
		if have[skill] {
			n++
		}
	}
	return n
}
