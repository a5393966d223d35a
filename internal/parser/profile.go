package parser

// Profile is the structured form of one resume. It is stored as the
// resume's profile JSONB column and re-read by the match worker.
type Profile struct {
	Contact              Contact             `json:"contact"`
	Summary              string              `json:"summary,omitempty"`
	Experience           []Experience        `json:"experience,omitempty"`
	Education            []Education         `json:"education,omitempty"`
	Skills               map[string][]string `json:"skills,omitempty"`
	Projects             []Project           `json:"projects,omitempty"`
	Certifications       []Certification     `json:"certifications,omitempty"`
	TotalExperienceYears float64             `json:"total_experience_years"`
}

type Contact struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

type Experience struct {
	Position      string `json:"position"`
	Company       string `json:"company,omitempty"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	DurationYears int    `json:"duration_years"`
	Description   string `json:"description,omitempty"`
}

type Education struct {
	Degree       string `json:"degree,omitempty"`
	Institution  string `json:"institution,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	GPA          string `json:"gpa,omitempty"`
}

type Project struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

type Certification struct {
	Name string `json:"name"`
	Date string `json:"date,omitempty"`
}

// SkillSet flattens the categorized skills into one list in dictionary
// order, the shape the match engine compares against job requirements.
func (p Profile) SkillSet() []string {
	var all []string
	for _, category := range skillCategories {
		all = append(all, p.Skills[category.name]...)
	}
	return all
}
