package eduspace

import "github.com/shrimpsizemoose/eduspace/internal/models"

func (w *Workspace) sampleData() *models.UserData {
	return &models.UserData{
		Courses: []models.Course{
			{ID: w.newID("course"), Title: "Algebra I", Description: "Basic algebra", Color: "#FFD8A8"},
			{ID: w.newID("course"), Title: "World History", Description: "Ancient to modern", Color: "#BFEFFF"},
		},
		Assignments: []models.Assignment{
			{ID: w.newID("asg"), Title: "Welcome Survey"},
		},
		Grades: []models.Grade{},
		Discussions: []models.Thread{
			{
				ID:    w.newID("thread"),
				Title: "Introduce yourself",
				Messages: []models.Message{
					{
						ID:        w.newID("msg"),
						Author:    "Teacher",
						Text:      "Welcome everyone!",
						Timestamp: w.now().UnixMilli(),
					},
				},
			},
		},
	}
}
