package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFullProfile(t *testing.T) {
	matched := []string{"Python", "Go", "SQL", "AWS", "Docker", "Terraform"}
	missing := []string{"Kubernetes", "React", "Kafka", "Rust"}

	qs := Generate("Senior Backend Engineer", matched, missing, 5)

	// Two per matched skill capped at five, one per missing capped at three.
	require.Len(t, qs.Technical, 13)
	assert.Equal(t, "Can you explain your experience with Python and describe a challenging project where you used it?", qs.Technical[0])
	assert.Equal(t, "What are the best practices you follow when working with Python?", qs.Technical[1])
	assert.Equal(t, "Although you don't have Kubernetes listed, are you familiar with it? How quickly could you learn it?", qs.Technical[10])
	assert.NotContains(t, qs.Technical, "Although you don't have Rust listed, are you familiar with it? How quickly could you learn it?")

	// Five standard plus two experience-based.
	require.Len(t, qs.Behavioral, 7)
	assert.Equal(t, "With 5 years of experience, what do you think sets you apart from other candidates?", qs.Behavioral[5])
	assert.Equal(t, "Looking back at your 5 years in the field, what would you do differently?", qs.Behavioral[6])

	// Five standard plus two job-specific.
	require.Len(t, qs.Situational, 7)
	assert.Equal(t, "Why are you interested in this Senior Backend Engineer position specifically?", qs.Situational[5])
	assert.Equal(t, "Where do you see yourself in the next 3-5 years in your career as a Senior Backend Engineer?", qs.Situational[6])

	// Proficiency per top-3 matched plus the preference question.
	require.Len(t, qs.SkillsBased, 4)
	assert.Equal(t, "Rate your proficiency in Python on a scale of 1-10 and explain why.", qs.SkillsBased[0])
	assert.Equal(t, "Which of these skills (Python, Go, SQL) do you enjoy working with the most and why?", qs.SkillsBased[3])
}

func TestGenerateNoSkills(t *testing.T) {
	qs := Generate("Data Analyst", nil, nil, 0)

	assert.Empty(t, qs.Technical)
	assert.Empty(t, qs.SkillsBased)
	assert.Len(t, qs.Behavioral, 5)
	assert.Len(t, qs.Situational, 7)
}

func TestGenerateZeroExperienceSkipsTenureQuestions(t *testing.T) {
	qs := Generate("Intern", []string{"Python"}, nil, 0)

	assert.Len(t, qs.Behavioral, 5)
	for _, q := range qs.Behavioral {
		assert.NotContains(t, q, "years of experience")
	}
}

func TestGenerateFractionalYears(t *testing.T) {
	qs := Generate("Engineer", nil, nil, 2.5)

	require.Len(t, qs.Behavioral, 7)
	assert.Contains(t, qs.Behavioral[5], "With 2.5 years of experience")
}
