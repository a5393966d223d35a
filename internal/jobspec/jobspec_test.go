package jobspec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureJob = `Senior Backend Engineer
We are hiring for a senior backend position.

Requirements:
- 3 to 5 years building production services
- Python and Go are required, PostgreSQL essential

Our stack runs on managed infrastructure with modern tooling and
continuous delivery pipelines operated by a platform group.

Docker experience is a plus.

Education: Bachelors degree or equivalent.
`

func TestParseFixture(t *testing.T) {
	req := Parse(fixtureJob)

	assert.Equal(t, "Senior Backend Engineer", req.Title)
	assert.Equal(t, 3, req.MinExperienceYears)
	assert.Equal(t, 5, req.MaxExperienceYears)
	assert.Equal(t, "bachelors", req.EducationLevel)
	assert.Contains(t, req.RequiredSkills, "Python")
	assert.Contains(t, req.RequiredSkills, "Go")
	assert.Contains(t, req.RequiredSkills, "PostgreSQL")
	assert.Contains(t, req.PreferredSkills, "Docker")
	assert.Equal(t, fixtureJob, req.RawText)
	assert.NotEmpty(t, req.Keywords)
}

func TestExtractExperience(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		wantMin int
		wantMax int
	}{
		{"range with to", "3 to 5 years of experience", 3, 5},
		{"range with dash", "2-4 years required", 2, 4},
		{"plus", "5+ years of go", 5, 0},
		{"bare", "4 years in backend teams", 4, 0},
		{"yrs abbreviation", "6 yrs experience", 6, 0},
		{"fresher", "open for freshers", 0, 2},
		{"entry level", "this is an entry level opening", 0, 2},
		{"zero years", "0 years required, we train you", 0, 2},
		{"nothing", "we value curiosity", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotMin, gotMax := extractExperience(tc.text)
			assert.Equal(t, tc.wantMin, gotMin)
			assert.Equal(t, tc.wantMax, gotMax)
		})
	}
}

func TestExtractSkillsClassification(t *testing.T) {
	// The paragraph between the two mentions keeps the "nice to have"
	// and "mandatory" wording outside each other's context window.
	text := "We would love familiarity with Docker, it is nice to have.\n" +
		"Our team ships resilient services that process millions of nightly events for customers.\n" +
		"Python is mandatory for this position."

	required, preferred := extractSkills(text, strings.ToLower(text))

	assert.Equal(t, []string{"Python"}, required)
	assert.Equal(t, []string{"Docker"}, preferred)
}

func TestExtractSkillsDefaultRequired(t *testing.T) {
	text := "We use Kubernetes daily."
	required, preferred := extractSkills(text, strings.ToLower(text))

	assert.Equal(t, []string{"Kubernetes"}, required)
	assert.Empty(t, preferred)
}

func TestExtractEducation(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"bachelors", "bachelors degree required", "bachelors"},
		{"highest wins", "bachelors required, masters preferred", "masters"},
		{"phd", "phd in computer science", "phd"},
		{"none", "any background welcome", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractEducation(tc.text))
		})
	}
}

func TestEducationRank(t *testing.T) {
	assert.Equal(t, 5, EducationRank("phd"))
	assert.Equal(t, 4, EducationRank("Masters"))
	assert.Equal(t, 3, EducationRank("b.tech"))
	assert.Equal(t, 0, EducationRank(""))
	assert.Equal(t, 0, EducationRank("unknown"))
}

func TestDegreeRank(t *testing.T) {
	assert.Equal(t, 4, DegreeRank("Master of Science"))
	assert.Equal(t, 3, DegreeRank("B.Tech"))
	assert.Equal(t, 5, DegreeRank("PhD in Physics"))
	assert.Equal(t, 0, DegreeRank("Certificate of Attendance"))
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("We use C++, C# and Node.js for the backend!")

	assert.Contains(t, tokens, "c++")
	assert.Contains(t, tokens, "c#")
	assert.Contains(t, tokens, "node.js")
	assert.Contains(t, tokens, "backend")
	// Stop words and short tokens are dropped.
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "we")
}

func TestTopKeywords(t *testing.T) {
	text := "kafka kafka kafka postgres postgres redis"
	got := TopKeywords(text, 2)
	require.Equal(t, []string{"kafka", "postgres"}, got)

	// Ties resolve by first appearance.
	got = TopKeywords("alpha beta alpha beta gamma", 3)
	require.Equal(t, []string{"alpha", "beta", "gamma"}, got)
}

func TestExtractTitle(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"first substantial line", "Senior Backend Engineer\nrest of text", "Senior Backend Engineer"},
		{"position keyword", "x\nOpen position: Data Engineer\nmore", "Open position: Data Engineer"},
		{"nothing usable", "ok\ngo\n", "Position Not Specified"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractTitle(tc.text))
		})
	}
}
