// Package parser converts extracted resume text into a structured
// Profile. Parsing is pure and never fails, an odd layout just yields
// a sparse profile.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var sectionPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"contact", regexp.MustCompile(`(?i)(contact|personal\s+information|contact\s+information)`)},
	{"summary", regexp.MustCompile(`(?i)(summary|objective|profile|about\s+me|professional\s+summary)`)},
	{"experience", regexp.MustCompile(`(?i)(experience|work\s+experience|employment|work\s+history|professional\s+experience)`)},
	{"education", regexp.MustCompile(`(?i)(education|academic|qualification|university|college)`)},
	{"skills", regexp.MustCompile(`(?i)(skills|technical\s+skills|core\s+competencies|expertise|proficiency)`)},
	{"projects", regexp.MustCompile(`(?i)(projects|personal\s+projects|academic\s+projects)`)},
	{"certifications", regexp.MustCompile(`(?i)(certification|certificates|licenses)`)},
	{"achievements", regexp.MustCompile(`(?i)(achievement|awards|honors|accomplishments)`)},
	{"languages", regexp.MustCompile(`(?i)(languages|language\s+proficiency)`)},
}

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`[+]?[(]?[0-9]{1,3}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,4}[-\s.]?[0-9]{1,9}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
	urlPattern      = regexp.MustCompile(`https?://\S+`)

	positionSplit = regexp.MustCompile(`\s*[|\-]\s*|\s+at\s+`)
	degreePattern = regexp.MustCompile(`(?i)(Bachelor|Master|PhD|Ph\.D|B\.Tech|M\.Tech|B\.Sc|M\.Sc|MBA|BBA|B\.E\.|M\.E\.|B\.S\.|M\.S\.)`)
	gpaPattern    = regexp.MustCompile(`(?i)GPA[:\s]*[0-9]\.[0-9]{1,2}|[0-9]\.[0-9]{1,2}\s*/\s*[0-9]`)
	yearPattern   = regexp.MustCompile(`\d{4}`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`),
		regexp.MustCompile(`(?i)(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*[\s,]*\d{4}`),
		regexp.MustCompile(`\d{4}`),
		regexp.MustCompile(`(?i)Present|Current|Now|Ongoing`),
	}

	fieldKeywords = []string{
		"Computer Science", "Engineering", "Business", "Mathematics",
		"Physics", "Chemistry", "Biology", "Economics",
	}
)

// Parse structures raw resume text into a Profile.
func Parse(text string) Profile {
	return parse(text, time.Now().Year())
}

func parse(text string, nowYear int) Profile {
	var p Profile

	sections := splitSections(text)

	p.Contact = extractContact(text)
	if s, ok := sections["summary"]; ok {
		p.Summary = extractSummary(s)
	}
	if s, ok := sections["experience"]; ok {
		p.Experience = extractExperience(s, nowYear)
	}
	if s, ok := sections["education"]; ok {
		p.Education = extractEducation(s)
	}
	if s, ok := sections["skills"]; ok {
		p.Skills = extractSkills(s)
	}
	if s, ok := sections["projects"]; ok {
		p.Projects = extractProjects(s)
	}
	if s, ok := sections["certifications"]; ok {
		p.Certifications = extractCertifications(s)
	}
	p.TotalExperienceYears = totalExperience(p.Experience)

	return p
}

// splitSections walks the text line by line. A line matching a section
// header starts that section, anything else accrues to the current one.
// Text before the first header lands in "unknown".
func splitSections(text string) map[string]string {
	sections := make(map[string]string)
	current := "unknown"
	var buf []string

	for _, line := range strings.Split(text, "\n") {
		lineLower := strings.ToLower(strings.TrimSpace(line))

		matched := false
		for _, sp := range sectionPatterns {
			if sp.pattern.MatchString(lineLower) {
				if len(buf) > 0 {
					sections[current] = strings.Join(buf, "\n")
				}
				current = sp.name
				buf = nil
				matched = true
				break
			}
		}
		if !matched && strings.TrimSpace(line) != "" {
			buf = append(buf, line)
		}
	}
	if len(buf) > 0 {
		sections[current] = strings.Join(buf, "\n")
	}
	return sections
}

func extractContact(text string) Contact {
	var c Contact

	c.Email = emailPattern.FindString(text)
	c.Phone = phonePattern.FindString(text)
	c.LinkedIn = linkedinPattern.FindString(text)
	c.GitHub = githubPattern.FindString(text)
	c.Name = extractName(text)

	return c
}

// extractName looks at the first five lines for a short line whose 2-4
// words all start uppercase. Resumes that lead with something else keep
// an empty name.
func extractName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) <= 3 || len(line) >= 50 {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		allUpper := true
		for _, w := range words {
			r := []rune(w)[0]
			if !unicode.IsUpper(r) {
				allUpper = false
				break
			}
		}
		if allUpper {
			return line
		}
	}
	return ""
}

func extractSummary(text string) string {
	summary := strings.TrimSpace(text)
	if len(summary) > 20 {
		return summary
	}
	return ""
}

func extractExperience(text string, nowYear int) []Experience {
	var experiences []Experience

	for _, entry := range splitEntries(text) {
		if len(strings.TrimSpace(entry)) < 20 {
			continue
		}

		var exp Experience
		lines := strings.Split(entry, "\n")

		first := lines[0]
		parts := positionSplit.Split(first, 2)
		if len(parts) >= 2 {
			exp.Position = strings.TrimSpace(parts[0])
			exp.Company = strings.TrimSpace(parts[1])
		} else {
			exp.Position = strings.TrimSpace(first)
		}

		dates := extractDates(entry)
		switch {
		case len(dates) >= 2:
			exp.StartDate = dates[0]
			exp.EndDate = dates[1]
		case len(dates) == 1:
			exp.StartDate = dates[0]
			exp.EndDate = "Present"
		}

		var desc []string
		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			if line != "" && !isDateLine(line) {
				desc = append(desc, line)
			}
		}
		exp.Description = strings.Join(desc, " ")
		exp.DurationYears = durationYears(exp.StartDate, exp.EndDate, nowYear)

		if exp.Position != "" || exp.Company != "" {
			experiences = append(experiences, exp)
		}
	}
	return experiences
}

func extractEducation(text string) []Education {
	var education []Education

	for _, entry := range splitEntries(text) {
		if len(strings.TrimSpace(entry)) < 10 {
			continue
		}

		var edu Education
		lines := strings.Split(entry, "\n")

		first := lines[0]
		edu.Degree = degreePattern.FindString(first)

		if len(lines) > 1 {
			edu.Institution = strings.TrimSpace(lines[1])
		} else if parts := strings.Split(first, ","); len(parts) > 1 {
			edu.Institution = strings.TrimSpace(parts[len(parts)-1])
		}

		for _, line := range lines {
			for _, field := range fieldKeywords {
				if strings.Contains(strings.ToLower(line), strings.ToLower(field)) {
					edu.FieldOfStudy = field
					break
				}
			}
		}

		dates := extractDates(entry)
		switch {
		case len(dates) >= 2:
			edu.StartDate = dates[0]
			edu.EndDate = dates[1]
		case len(dates) == 1:
			edu.EndDate = dates[0]
		}

		edu.GPA = strings.TrimSpace(gpaPattern.FindString(entry))

		if edu.Degree != "" || edu.Institution != "" {
			education = append(education, edu)
		}
	}
	return education
}

func extractProjects(text string) []Project {
	var projects []Project

	for _, entry := range splitEntries(text) {
		if len(strings.TrimSpace(entry)) < 15 {
			continue
		}

		var proj Project
		lines := strings.Split(entry, "\n")
		proj.Title = strings.TrimSpace(lines[0])

		var desc []string
		for _, line := range lines[1:] {
			if line = strings.TrimSpace(line); line != "" {
				desc = append(desc, line)
			}
		}
		proj.Description = strings.Join(desc, " ")
		proj.Link = urlPattern.FindString(entry)

		if proj.Title != "" {
			projects = append(projects, proj)
		}
	}
	return projects
}

func extractCertifications(text string) []Certification {
	var certs []Certification

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 5 {
			continue
		}
		cert := Certification{Name: line}
		if dates := extractDates(line); len(dates) > 0 {
			cert.Date = dates[0]
		}
		certs = append(certs, cert)
	}
	return certs
}

// splitEntries starts a new entry at every line whose first character
// is an uppercase ASCII letter. Continuation lines (bullets, lowercase
// wraps) stay with the entry above.
func splitEntries(text string) []string {
	var entries []string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		if len(current) > 0 && line != "" && line[0] >= 'A' && line[0] <= 'Z' {
			entries = append(entries, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		entries = append(entries, strings.Join(current, "\n"))
	}
	return entries
}

// extractDates collects matches per pattern, so results group by kind
// (month-year first, then bare years, then Present markers).
func extractDates(text string) []string {
	var dates []string
	for _, p := range datePatterns {
		dates = append(dates, p.FindAllString(text, -1)...)
	}
	return dates
}

func isDateLine(line string) bool {
	return len(extractDates(line)) > 0 && len(strings.TrimSpace(line)) < 50
}

func isOngoing(date string) bool {
	switch strings.ToLower(date) {
	case "present", "current", "now", "ongoing":
		return true
	}
	return false
}

// durationYears computes the whole years between the first 4-digit
// years of the two dates. Ongoing entries run to the current year.
func durationYears(start, end string, nowYear int) int {
	if start == "" {
		return 0
	}
	startStr := yearPattern.FindString(start)
	if startStr == "" {
		return 0
	}
	startYear, _ := strconv.Atoi(startStr)

	endYear := nowYear
	if !isOngoing(end) {
		endStr := yearPattern.FindString(end)
		if endStr == "" {
			return 0
		}
		endYear, _ = strconv.Atoi(endStr)
	}

	years := endYear - startYear
	if years < 0 {
		return 0
	}
	return years
}

func totalExperience(experiences []Experience) float64 {
	years := 0
	for _, exp := range experiences {
		years += exp.DurationYears
	}
	return float64(years)
}
