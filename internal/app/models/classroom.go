package models

// Classroom represents a course room led by an instructor. Counters start at
// zero on creation; Progress is a 0-100 percentage that is not clamped.
type Classroom struct {
	Document
	Name        string   `json:"name"`
	Instructor  User     `json:"instructor"`
	Description string   `json:"description"`
	Students    int      `json:"students"`
	Progress    float64  `json:"progress"`
	NextClass   string   `json:"nextClass,omitempty"`
	Assignments int      `json:"assignments"`
	Topics      []string `json:"topics"`
}
