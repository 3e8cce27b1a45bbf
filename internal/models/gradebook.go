package models

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// CurrentUser is what the login step leaves in session storage.
type CurrentUser struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// GradeRow keeps the score as text, whatever the teacher typed.
type GradeRow struct {
	Subject string `json:"subject"`
	Score   string `json:"score"`
	Comment string `json:"comment"`
}

// GradeBook maps a username to that student's ordered rows.
type GradeBook map[string][]GradeRow
