package models

type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"desc"`
	Color       string `json:"color,omitempty"`
}

type Assignment struct {
	ID       string `json:"id"`
	CourseID Ref    `json:"courseId"`
	Title    string `json:"title"`
	Due      string `json:"due"`
	Done     bool   `json:"done"`
}

type Grade struct {
	ID           string  `json:"id"`
	CourseID     Ref     `json:"courseId"`
	AssignmentID Ref     `json:"assignmentId"`
	Score        float64 `json:"score"`
	Max          float64 `json:"max"`
}
