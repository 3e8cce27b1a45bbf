package forms

var (
	Login = Form{
		Name:   "login",
		Action: "/eduspace/login",
		Submit: "Log in",
		Fields: []Field{
			{Name: "username", Label: "Username", Placeholder: "Any name works in the demo", Rules: "required"},
		},
	}

	Course = Form{
		Name:   "course",
		Action: "/eduspace/courses",
		Submit: "Create course",
		Fields: []Field{
			{Name: "title", Label: "Course title", Placeholder: "e.g. Biology 1", Rules: "required"},
			{Name: "desc", Label: "Short description", Placeholder: "optional"},
		},
	}

	Assignment = Form{
		Name:   "assignment",
		Action: "/eduspace/assignments",
		Submit: "Create assignment",
		Fields: []Field{
			{Name: "title", Label: "Assignment title", Rules: "required"},
			{Name: "course", Label: "Course", Placeholder: "course id, or leave blank for none"},
			{Name: "due", Label: "Due date", Placeholder: "e.g. 2025-12-24, optional"},
		},
	}

	Grade = Form{
		Name:   "grade",
		Action: "/eduspace/grades",
		Submit: "Add grade",
		Fields: []Field{
			{Name: "course", Label: "Course", Rules: "required"},
			{Name: "assignment", Label: "Assignment", Placeholder: "optional"},
			{Name: "score", Label: "Score", Placeholder: "0"},
			{Name: "max", Label: "Max score", Placeholder: "100"},
		},
	}

	Thread = Form{
		Name:   "thread",
		Action: "/eduspace/threads",
		Submit: "Start thread",
		Fields: []Field{
			{Name: "title", Label: "Thread title", Rules: "required"},
			{Name: "course", Label: "Course", Placeholder: "optional"},
		},
	}

	Reply = Form{
		Name:   "reply",
		Submit: "Send",
		Fields: []Field{
			{Name: "text", Label: "Reply", Placeholder: "Write a reply...", Rules: "required"},
		},
	}

	GradebookLogin = Form{
		Name:   "gradebook-login",
		Action: "/gradebook/login",
		Submit: "Log in",
		Fields: []Field{
			{Name: "username", Label: "Username", Rules: "required"},
		},
	}

	Announcement = Form{
		Name:   "announcement",
		Action: "/gradebook/announcement",
		Submit: "Broadcast",
		Fields: []Field{
			{Name: "message", Label: "Announcement", Placeholder: "PA message for everyone", Rules: "required"},
		},
	}
)

// ByName lists the forms reachable from the eduspace "new" pages.
var ByName = map[string]Form{
	Course.Name:     Course,
	Assignment.Name: Assignment,
	Grade.Name:      Grade,
	Thread.Name:     Thread,
}
