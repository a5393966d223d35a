package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/resumesift/resumesift/internal/parser"
)

// explain builds the stored breakdown from the computed sub-scores.
func explain(s Scores, profile parser.Profile) Explanation {
	var e Explanation

	switch {
	case s.Overall >= 80:
		e.Summary = "Excellent match! This candidate meets most requirements."
	case s.Overall >= 60:
		e.Summary = "Good match. Candidate has relevant skills but may have some gaps."
	case s.Overall >= 40:
		e.Summary = "Moderate match. Consider if willing to train or if skills are transferable."
	default:
		e.Summary = "Low match. Significant gaps in required qualifications."
	}

	if s.Skills >= 70 {
		e.Strengths = append(e.Strengths,
			fmt.Sprintf("Strong skills match (%d matching skills)", len(s.MatchedSkills)))
	}
	if s.Experience >= 80 {
		e.Strengths = append(e.Strengths,
			fmt.Sprintf("Meets experience requirement (%s years)", formatYears(profile.TotalExperienceYears)))
	}
	if s.Education >= 90 {
		e.Strengths = append(e.Strengths, "Meets education requirements")
	}

	if s.Skills < 60 {
		e.Weaknesses = append(e.Weaknesses,
			fmt.Sprintf("Missing %d required skills", len(s.MissingSkills)))
	}
	if s.ExperienceGap > 0 {
		e.Weaknesses = append(e.Weaknesses,
			fmt.Sprintf("Needs %s more years of experience", formatYears(s.ExperienceGap)))
	}
	if s.Education < 70 {
		e.Weaknesses = append(e.Weaknesses, "May not meet education requirements")
	}

	switch {
	case s.Overall >= 70:
		e.Recommendations = append(e.Recommendations, "Recommend for interview")
	case s.Overall >= 50:
		e.Recommendations = append(e.Recommendations, "Consider for phone screen")
		if len(s.MissingSkills) > 0 {
			top := s.MissingSkills
			if len(top) > 3 {
				top = top[:3]
			}
			e.Recommendations = append(e.Recommendations,
				"Assess proficiency in: "+strings.Join(top, ", "))
		}
	default:
		e.Recommendations = append(e.Recommendations, "Consider other candidates first")
	}

	return e
}

// formatYears renders 5 as "5" and 2.5 as "2.5".
func formatYears(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
