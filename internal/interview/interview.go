// Package interview derives deterministic interview question sets from
// a candidate's ranking against a job.
package interview

import (
	"fmt"
	"strings"
)

// QuestionSet groups generated questions by interview style.
type QuestionSet struct {
	Technical   []string `json:"technical"`
	Behavioral  []string `json:"behavioral"`
	Situational []string `json:"situational"`
	SkillsBased []string `json:"skills_based"`
}

var behavioralQuestions = []string{
	"Tell me about a time when you had to learn a new technology quickly for a project.",
	"Describe a situation where you disagreed with a team member. How did you handle it?",
	"Can you share an example of a project that didn't go as planned? What did you learn?",
	"Tell me about the most challenging technical problem you've solved in your career.",
	"How do you stay updated with the latest trends and technologies in your field?",
}

var situationalQuestions = []string{
	"If you were assigned to a project with tight deadlines and limited resources, how would you approach it?",
	"Suppose you discover a critical bug in production right before a major release. What would you do?",
	"How would you handle a situation where stakeholders keep changing requirements mid-project?",
	"If you had to explain a complex technical concept to a non-technical stakeholder, how would you do it?",
	"What would you do if you disagreed with your manager's technical decision?",
}

// Generate builds the question set for one candidate. Technical and
// skills questions come from the ranking's matched and missing skills;
// the rest are fixed templates seasoned with the job title and the
// candidate's years of experience.
func Generate(jobTitle string, matched, missing []string, experienceYears float64) QuestionSet {
	qs := QuestionSet{
		Behavioral:  append([]string(nil), behavioralQuestions...),
		Situational: append([]string(nil), situationalQuestions...),
	}

	for _, skill := range firstN(matched, 5) {
		qs.Technical = append(qs.Technical,
			fmt.Sprintf("Can you explain your experience with %s and describe a challenging project where you used it?", skill),
			fmt.Sprintf("What are the best practices you follow when working with %s?", skill),
		)
	}
	for _, skill := range firstN(missing, 3) {
		qs.Technical = append(qs.Technical,
			fmt.Sprintf("Although you don't have %s listed, are you familiar with it? How quickly could you learn it?", skill),
		)
	}

	if experienceYears > 0 {
		qs.Behavioral = append(qs.Behavioral,
			fmt.Sprintf("With %v years of experience, what do you think sets you apart from other candidates?", experienceYears),
			fmt.Sprintf("Looking back at your %v years in the field, what would you do differently?", experienceYears),
		)
	}

	qs.Situational = append(qs.Situational,
		fmt.Sprintf("Why are you interested in this %s position specifically?", jobTitle),
		fmt.Sprintf("Where do you see yourself in the next 3-5 years in your career as a %s?", jobTitle),
	)

	if primary := firstN(matched, 3); len(primary) > 0 {
		for _, skill := range primary {
			qs.SkillsBased = append(qs.SkillsBased,
				fmt.Sprintf("Rate your proficiency in %s on a scale of 1-10 and explain why.", skill),
			)
		}
		qs.SkillsBased = append(qs.SkillsBased,
			fmt.Sprintf("Which of these skills (%s) do you enjoy working with the most and why?", strings.Join(primary, ", ")),
		)
	}

	return qs
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
