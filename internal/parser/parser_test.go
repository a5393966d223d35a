package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureResume = `John Doe
Senior Software Engineer
john.doe@example.com | +1 (555) 123-4567
linkedin.com/in/john-doe | github.com/johndoe

Summary
Seasoned backend developer focused on distributed systems and cloud
infrastructure with a track record of shipping large services.

Experience
Senior Software Engineer | Acme Corp
2019 - Present
- Led a team of five backend engineers
- Built event pipelines on Kubernetes

Software Engineer at Globex
2015 - 2019
- Maintained the billing platform

Education
B.Tech in Computer Science, Crestwood Institute
2011 - 2015

Skills
Python, Go, PostgreSQL, Docker, Kubernetes, Machine Learning, Leadership

Certifications
AWS Certified Solutions Architect, 2020
`

func TestParseContact(t *testing.T) {
	p := parse(fixtureResume, 2024)

	assert.Equal(t, "John Doe", p.Contact.Name)
	assert.Equal(t, "john.doe@example.com", p.Contact.Email)
	assert.Equal(t, "+1 (555) 123-4567", p.Contact.Phone)
	assert.Equal(t, "linkedin.com/in/john-doe", p.Contact.LinkedIn)
	assert.Equal(t, "github.com/johndoe", p.Contact.GitHub)
}

func TestParseSummary(t *testing.T) {
	p := parse(fixtureResume, 2024)
	assert.Contains(t, p.Summary, "Seasoned backend developer")
}

func TestParseExperience(t *testing.T) {
	p := parse(fixtureResume, 2024)
	require.Len(t, p.Experience, 2)

	first := p.Experience[0]
	assert.Equal(t, "Senior Software Engineer", first.Position)
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, "2019", first.StartDate)
	assert.Equal(t, "Present", first.EndDate)
	assert.Equal(t, 5, first.DurationYears)
	assert.Contains(t, first.Description, "Led a team of five backend engineers")
	assert.NotContains(t, first.Description, "2019 - Present")

	second := p.Experience[1]
	assert.Equal(t, "Software Engineer", second.Position)
	assert.Equal(t, "Globex", second.Company)
	assert.Equal(t, 4, second.DurationYears)

	assert.Equal(t, 9.0, p.TotalExperienceYears)
}

func TestParseEducation(t *testing.T) {
	p := parse(fixtureResume, 2024)
	require.NotEmpty(t, p.Education)

	edu := p.Education[0]
	assert.Equal(t, "B.Tech", edu.Degree)
	assert.Equal(t, "Computer Science", edu.FieldOfStudy)
	assert.Equal(t, "2011", edu.StartDate)
	assert.Equal(t, "2015", edu.EndDate)
}

func TestParseSkills(t *testing.T) {
	p := parse(fixtureResume, 2024)

	assert.ElementsMatch(t, []string{"Python", "Go"}, p.Skills["programming"])
	assert.Equal(t, []string{"PostgreSQL"}, p.Skills["database"])
	assert.ElementsMatch(t, []string{"Docker", "Kubernetes"}, p.Skills["cloud"])
	assert.Equal(t, []string{"Machine Learning"}, p.Skills["ml_ai"])
	assert.Equal(t, []string{"Leadership"}, p.Skills["soft_skills"])
	// Empty categories are omitted entirely.
	assert.NotContains(t, p.Skills, "web")
}

func TestParseCertifications(t *testing.T) {
	p := parse(fixtureResume, 2024)
	require.Len(t, p.Certifications, 1)
	assert.Equal(t, "AWS Certified Solutions Architect, 2020", p.Certifications[0].Name)
	assert.Equal(t, "2020", p.Certifications[0].Date)
}

func TestParseEmptyText(t *testing.T) {
	p := parse("", 2024)
	assert.Empty(t, p.Contact.Name)
	assert.Empty(t, p.Experience)
	assert.Empty(t, p.Skills)
	assert.Zero(t, p.TotalExperienceYears)
}

func TestExtractNameFallback(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"two capitalized words", "Jane Smith\njane@example.com", "Jane Smith"},
		{"skips long headline", "An Extremely Long Headline That Cannot Possibly Be A Person Name At All\nJane Smith", "Jane Smith"},
		{"single word rejected", "RESUME\nof someone", ""},
		{"lowercase rejected", "jane smith\njane@example.com", ""},
		{"beyond first five lines ignored", "a\nb\nc\nd\ne\nJane Smith", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractName(tc.text))
		})
	}
}

func TestDurationYears(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"bare years", "2015", "2019", 4},
		{"month years", "Jan 2020", "Mar 2022", 2},
		{"ongoing", "2019", "Present", 5},
		{"ongoing lowercase", "2019", "current", 5},
		{"no start", "", "2020", 0},
		{"unparseable end", "2019", "someday", 0},
		{"reversed dates clamp to zero", "2020", "2015", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, durationYears(tc.start, tc.end, 2024))
		})
	}
}

func TestContainsSkill(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		skill string
		want  bool
	}{
		{"plain word", "we use Python daily", "Python", true},
		{"case insensitive", "EXPERT IN DOCKER", "docker", true},
		{"substring rejected", "PostgreSQL experience", "SQL", false},
		{"go not in going", "going forward", "Go", false},
		{"cpp with punctuation boundary", "knows c++, java", "C++", true},
		{"csharp at line end", "mostly c#", "C#", true},
		{"node.js", "built node.js services", "Node.js", true},
		{"missing", "java shop", "Python", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ContainsSkill(tc.text, tc.skill))
		})
	}
}

func TestSkillSetFlattens(t *testing.T) {
	p := Profile{Skills: map[string][]string{
		"programming": {"Python", "Go"},
		"cloud":       {"Docker"},
	}}
	assert.Equal(t, []string{"Python", "Go", "Docker"}, p.SkillSet())
}
