package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// skillCategories is the categorized skills dictionary. Category order
// is fixed so parsed profiles are deterministic.
var skillCategories = []struct {
	name   string
	skills []string
}{
	{"programming", []string{
		"Python", "Java", "JavaScript", "C++", "C#", "Ruby", "Go", "Rust",
		"PHP", "Swift", "Kotlin", "TypeScript", "Scala", "R", "MATLAB",
	}},
	{"web", []string{
		"HTML", "CSS", "React", "Angular", "Vue.js", "Node.js", "Express",
		"Django", "Flask", "FastAPI", "Spring Boot", "ASP.NET", "jQuery",
	}},
	{"database", []string{
		"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Cassandra",
		"Oracle", "SQL Server", "DynamoDB", "Neo4j", "Elasticsearch",
	}},
	{"ml_ai", []string{
		"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Keras",
		"scikit-learn", "NLP", "Computer Vision", "OpenCV", "NLTK", "spaCy",
	}},
	{"cloud", []string{
		"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Jenkins",
		"CI/CD", "Terraform", "Ansible", "Git", "GitHub", "GitLab",
	}},
	{"data_science", []string{
		"Data Analysis", "Pandas", "NumPy", "Matplotlib", "Seaborn",
		"Tableau", "Power BI", "Apache Spark", "Hadoop", "ETL",
	}},
	{"soft_skills", []string{
		"Leadership", "Communication", "Problem Solving", "Team Work",
		"Project Management", "Agile", "Scrum", "Critical Thinking",
	}},
}

// extractSkills matches the dictionary against the skills section and
// returns only the categories that had hits.
func extractSkills(text string) map[string][]string {
	textLower := strings.ToLower(text)
	skills := make(map[string][]string)

	for _, category := range skillCategories {
		for _, skill := range category.skills {
			if containsToken(textLower, strings.ToLower(skill)) {
				skills[category.name] = append(skills[category.name], skill)
			}
		}
	}
	return skills
}

// ContainsSkill reports whether skill occurs in text on its own, not as
// part of a longer word. Boundaries are non-alphanumeric runes so terms
// like c++, c# and node.js still match.
func ContainsSkill(text, skill string) bool {
	return containsToken(strings.ToLower(text), strings.ToLower(skill))
}

func containsToken(textLower, token string) bool {
	if token == "" {
		return false
	}
	for offset := 0; ; {
		i := strings.Index(textLower[offset:], token)
		if i < 0 {
			return false
		}
		i += offset

		before := true
		if i > 0 {
			r, _ := utf8.DecodeLastRuneInString(textLower[:i])
			before = !isWordRune(r)
		}
		after := true
		if end := i + len(token); end < len(textLower) {
			r, _ := utf8.DecodeRuneInString(textLower[end:])
			after = !isWordRune(r)
		}
		if before && after {
			return true
		}
		offset = i + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
