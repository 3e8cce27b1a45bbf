package models

// UserData is the whole per-user blob. It is always written in one piece.
type UserData struct {
	Courses     []Course     `json:"courses"`
	Assignments []Assignment `json:"assignments"`
	Grades      []Grade      `json:"grades"`
	Discussions []Thread     `json:"discussions"`
}

// Normalize replaces nil collections so the blob always encodes arrays, never null.
func (d *UserData) Normalize() {
	if d.Courses == nil {
		d.Courses = []Course{}
	}
	if d.Assignments == nil {
		d.Assignments = []Assignment{}
	}
	if d.Grades == nil {
		d.Grades = []Grade{}
	}
	if d.Discussions == nil {
		d.Discussions = []Thread{}
	}
	for i := range d.Discussions {
		if d.Discussions[i].Messages == nil {
			d.Discussions[i].Messages = []Message{}
		}
	}
}

func (d *UserData) Course(ref Ref) (*Course, bool) {
	if !ref.IsSet() {
		return nil, false
	}
	for i := range d.Courses {
		if d.Courses[i].ID == ref.ID() {
			return &d.Courses[i], true
		}
	}
	return nil, false
}

func (d *UserData) Assignment(ref Ref) (*Assignment, bool) {
	if !ref.IsSet() {
		return nil, false
	}
	for i := range d.Assignments {
		if d.Assignments[i].ID == ref.ID() {
			return &d.Assignments[i], true
		}
	}
	return nil, false
}

func (d *UserData) Thread(id string) (*Thread, bool) {
	for i := range d.Discussions {
		if d.Discussions[i].ID == id {
			return &d.Discussions[i], true
		}
	}
	return nil, false
}
