// Package jobspec parses free-form job descriptions into the structured
// requirements the match engine scores against.
package jobspec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/resumesift/resumesift/internal/parser"
)

// Requirements is the structured form of one job description.
type Requirements struct {
	Title              string
	RawText            string
	RequiredSkills     []string
	PreferredSkills    []string
	MinExperienceYears int
	// MaxExperienceYears is 0 when the description names no upper bound.
	MaxExperienceYears int
	// EducationLevel is the lowercase ladder term ("masters", "b.tech")
	// or empty when the description names none.
	EducationLevel string
	Keywords       []string
}

// jobSkills is the flat skills vocabulary scanned in job descriptions.
var jobSkills = []string{
	"Python", "Java", "JavaScript", "C++", "C#", "Ruby", "Go", "Rust", "PHP",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring",
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Cassandra",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "CI/CD",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "NLP",
	"Git", "Agile", "Scrum", "REST API", "GraphQL", "Microservices",
	"HTML", "CSS", "TypeScript", "Swift", "Kotlin", "Scala",
}

var (
	requiredTerms  = []string{"required", "must have", "mandatory", "essential"}
	preferredTerms = []string{"preferred", "nice to have", "plus", "bonus"}
	fresherTerms   = []string{"fresher", "entry level", "0 years", "no experience"}
	titleTerms     = []string{"position", "role", "job title", "hiring for"}

	expRangePattern = regexp.MustCompile(`(\d+)\s*(?:to|-)\s*(\d+)\s*(?:years?|yrs?)`)
	expPlusPattern  = regexp.MustCompile(`(\d+)\+\s*(?:years?|yrs?)`)
	expBarePattern  = regexp.MustCompile(`(\d+)\s*(?:years?|yrs?)`)
)

// educationLadder orders degree terms by rank. Scans walk it in order
// so the first term of a rank wins ties.
var educationLadder = []struct {
	term string
	rank int
}{
	{"phd", 5}, {"ph.d", 5}, {"doctorate", 5},
	{"masters", 4}, {"master", 4}, {"m.tech", 4}, {"m.sc", 4}, {"mba", 4},
	{"bachelors", 3}, {"bachelor", 3}, {"b.tech", 3}, {"b.sc", 3}, {"b.e", 3},
	{"diploma", 2},
	{"high school", 1},
}

// Parse extracts requirements from a job description. Like the resume
// parser it is pure and tolerant, missing pieces stay zero.
func Parse(text string) Requirements {
	textLower := strings.ToLower(text)

	req := Requirements{
		Title:   extractTitle(text),
		RawText: text,
	}
	req.MinExperienceYears, req.MaxExperienceYears = extractExperience(textLower)
	req.RequiredSkills, req.PreferredSkills = extractSkills(text, textLower)
	req.EducationLevel = extractEducation(textLower)
	req.Keywords = TopKeywords(text, 20)

	return req
}

// extractTitle takes the first short line that names a position, or the
// first substantial line at all.
func extractTitle(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || len(line) >= 100 {
			continue
		}
		lineLower := strings.ToLower(line)
		for _, term := range titleTerms {
			if strings.Contains(lineLower, term) {
				return line
			}
		}
		if len(strings.Fields(line)) <= 10 && len(line) > 10 {
			return line
		}
	}
	return "Position Not Specified"
}

func extractExperience(textLower string) (int, int) {
	if m := expRangePattern.FindStringSubmatch(textLower); m != nil {
		minExp, _ := strconv.Atoi(m[1])
		maxExp, _ := strconv.Atoi(m[2])
		return minExp, maxExp
	}
	if m := expPlusPattern.FindStringSubmatch(textLower); m != nil {
		minExp, _ := strconv.Atoi(m[1])
		return minExp, 0
	}
	if m := expBarePattern.FindStringSubmatch(textLower); m != nil {
		if minExp, _ := strconv.Atoi(m[1]); minExp > 0 {
			return minExp, 0
		}
	}
	for _, term := range fresherTerms {
		if strings.Contains(textLower, term) {
			return 0, 2
		}
	}
	return 0, 0
}

// extractSkills classifies each vocabulary hit as required or preferred
// by the wording within 100 characters of its first occurrence.
// Unlabeled skills default to required.
func extractSkills(text, textLower string) (required, preferred []string) {
	for _, skill := range jobSkills {
		if !parser.ContainsSkill(text, skill) {
			continue
		}

		idx := strings.Index(textLower, strings.ToLower(skill))
		start := max(0, idx-100)
		end := min(len(textLower), idx+100)
		context := textLower[start:end]

		switch {
		case containsAny(context, requiredTerms):
			required = append(required, skill)
		case containsAny(context, preferredTerms):
			preferred = append(preferred, skill)
		default:
			required = append(required, skill)
		}
	}
	return required, preferred
}

func extractEducation(textLower string) string {
	best := ""
	bestRank := 0
	for _, e := range educationLadder {
		if e.rank > bestRank && strings.Contains(textLower, e.term) {
			best = e.term
			bestRank = e.rank
		}
	}
	return best
}

// EducationRank resolves a stored requirement term to its ladder rank.
func EducationRank(term string) int {
	term = strings.ToLower(term)
	for _, e := range educationLadder {
		if e.term == term {
			return e.rank
		}
	}
	return 0
}

// DegreeRank is the highest ladder term contained in a free-form degree
// string ("Master of Science" matches "master").
func DegreeRank(degree string) int {
	degree = strings.ToLower(degree)
	rank := 0
	for _, e := range educationLadder {
		if e.rank > rank && strings.Contains(degree, e.term) {
			rank = e.rank
		}
	}
	return rank
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
