// Package types provides type definitions for structured data used throughout the career-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Profile fallbacks applied when the model omits a field
const (
	UnknownName      = "Unknown"
	NoSummary        = "No summary available"
	ParseFailSummary = "Resume parsing failed, but file was uploaded successfully."
)

// ParsedProfile represents the structured candidate profile extracted from resume text
type ParsedProfile struct {
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Projects       []ProjectEntry    `json:"projects"`
	Certifications []string          `json:"certifications"`
	Summary        string            `json:"summary"`
}

// ExperienceEntry represents one employment history item
type ExperienceEntry struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// EducationEntry represents one education history item
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Year        string `json:"year"`
}

// ProjectEntry represents a project listed on the resume
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Type         string   `json:"type"` // personal, academic, professional
}

// DefaultProfile returns a fully populated profile with every fallback applied.
func DefaultProfile(summary string) ParsedProfile {
	if summary == "" {
		summary = NoSummary
	}
	return ParsedProfile{
		Name:           UnknownName,
		Skills:         []string{},
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Projects:       []ProjectEntry{},
		Certifications: []string{},
		Summary:        summary,
	}
}
