package eduspace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shrimpsizemoose/eduspace/internal/forms"
	"github.com/shrimpsizemoose/eduspace/internal/models"
	"github.com/shrimpsizemoose/eduspace/internal/scoring"
)

const (
	noCourseText   = "No course"
	missingRefText = "—"
	noUpcomingText = "No upcoming items!"
	noGradesText   = "No grades yet. Add some to see averages."
	resourcesText  = "This demo supports simple resources; integrate a file server or cloud storage to expand."
	upcomingLimit  = 5
)

type DashboardView struct {
	CourseCount  int
	CourseTitles string
	Upcoming     string
	ThreadCount  int
}

func Dashboard(st *State) DashboardView {
	titles := make([]string, len(st.Data.Courses))
	for i, c := range st.Data.Courses {
		titles[i] = c.Title
	}

	var upcoming []string
	for _, a := range st.Data.Assignments {
		if !a.Done {
			upcoming = append(upcoming, a.Title)
		}
	}
	upcomingText := noUpcomingText
	if len(upcoming) > 0 {
		if len(upcoming) > upcomingLimit {
			upcoming = upcoming[:upcomingLimit]
		}
		upcomingText = strings.Join(upcoming, " • ")
	}

	return DashboardView{
		CourseCount:  len(st.Data.Courses),
		CourseTitles: strings.Join(titles, ", "),
		Upcoming:     upcomingText,
		ThreadCount:  len(st.Data.Discussions),
	}
}

type CoursesView struct {
	Courses []models.Course
}

func Courses(st *State) CoursesView {
	return CoursesView{Courses: st.Data.Courses}
}

type AssignmentRow struct {
	ID          string
	Title       string
	Course      string
	HasCourse   bool
	Due         string
	Status      string
	ToggleLabel string
}

type AssignmentsView struct {
	Rows []AssignmentRow
}

func Assignments(st *State) AssignmentsView {
	rows := make([]AssignmentRow, 0, len(st.Data.Assignments))
	for _, a := range st.Data.Assignments {
		row := AssignmentRow{
			ID:          a.ID,
			Title:       a.Title,
			Course:      noCourseText,
			Due:         a.Due,
			Status:      "Open",
			ToggleLabel: "Done",
		}
		if c, ok := st.Data.Course(a.CourseID); ok {
			row.Course, row.HasCourse = c.Title, true
		}
		if row.Due == "" {
			row.Due = missingRefText
		}
		if a.Done {
			row.Status, row.ToggleLabel = "Done", "Undo"
		}
		rows = append(rows, row)
	}
	return AssignmentsView{Rows: rows}
}

type GradeRow struct {
	ID         string
	Course     string
	Assignment string
	Score      string
	Percent    int
}

type CourseAverage struct {
	Title   string
	Percent int
}

type GradesView struct {
	Empty     bool
	EmptyText string
	Rows      []GradeRow
	Averages  []CourseAverage
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func Grades(st *State) GradesView {
	if len(st.Data.Grades) == 0 {
		return GradesView{Empty: true, EmptyText: noGradesText}
	}

	view := GradesView{Rows: make([]GradeRow, 0, len(st.Data.Grades))}
	for _, g := range st.Data.Grades {
		row := GradeRow{
			ID:         g.ID,
			Course:     missingRefText,
			Assignment: missingRefText,
			Score:      formatNumber(g.Score) + " / " + formatNumber(g.Max),
			Percent:    scoring.Percent(g.Score, g.Max),
		}
		if c, ok := st.Data.Course(g.CourseID); ok {
			row.Course = c.Title
		}
		if a, ok := st.Data.Assignment(g.AssignmentID); ok {
			row.Assignment = a.Title
		}
		view.Rows = append(view.Rows, row)
	}

	for _, c := range st.Data.Courses {
		var grades []models.Grade
		for _, g := range st.Data.Grades {
			if g.CourseID.ID() == c.ID {
				grades = append(grades, g)
			}
		}
		if avg, ok := scoring.CourseAverage(grades); ok {
			view.Averages = append(view.Averages, CourseAverage{Title: c.Title, Percent: avg})
		}
	}
	return view
}

type ThreadRow struct {
	ID       string
	Title    string
	Course   string
	Messages int
}

type DiscussionsView struct {
	Threads []ThreadRow
}

func Discussions(st *State) DiscussionsView {
	rows := make([]ThreadRow, 0, len(st.Data.Discussions))
	for _, t := range st.Data.Discussions {
		row := ThreadRow{ID: t.ID, Title: t.Title, Messages: len(t.Messages)}
		if c, ok := st.Data.Course(t.CourseID); ok {
			row.Course = c.Title
		}
		rows = append(rows, row)
	}
	return DiscussionsView{Threads: rows}
}

type ResourcesView struct {
	Text string
}

func Resources() ResourcesView {
	return ResourcesView{Text: resourcesText}
}

type CourseDetailView struct {
	Course      models.Course
	Assignments []models.Assignment
	Threads     []models.Thread
}

func CourseDetailOf(st *State, id string) (*CourseDetailView, error) {
	course, ok := st.Data.Course(models.RefTo(id))
	if !ok {
		return nil, fmt.Errorf("course %s: %w", id, ErrNotFound)
	}

	view := &CourseDetailView{Course: *course}
	for _, a := range st.Data.Assignments {
		if a.CourseID.ID() == id {
			view.Assignments = append(view.Assignments, a)
		}
	}
	for _, t := range st.Data.Discussions {
		if t.CourseID.ID() == id {
			view.Threads = append(view.Threads, t)
		}
	}
	return view, nil
}

type MessageView struct {
	Author string
	Time   string
	Text   string
}

type ThreadDetailView struct {
	Thread   models.Thread
	Messages []MessageView
}

func ThreadDetailOf(st *State, id, timestampFormat string) (*ThreadDetailView, error) {
	thread, ok := st.Data.Thread(id)
	if !ok {
		return nil, fmt.Errorf("thread %s: %w", id, ErrNotFound)
	}

	view := &ThreadDetailView{Thread: *thread}
	for _, m := range thread.Messages {
		view.Messages = append(view.Messages, MessageView{
			Author: m.Author,
			Time:   m.Time().Format(timestampFormat),
			Text:   m.Text,
		})
	}
	return view, nil
}

// CourseChoices feeds the course pickers. The optional entry comes first.
func CourseChoices(st *State, optional bool) []forms.Choice {
	var choices []forms.Choice
	if optional {
		choices = append(choices, forms.Choice{Value: "", Label: noCourseText})
	}
	for _, c := range st.Data.Courses {
		choices = append(choices, forms.Choice{Value: c.ID, Label: c.Title})
	}
	return choices
}

func AssignmentChoices(st *State) []forms.Choice {
	choices := []forms.Choice{{Value: "", Label: missingRefText}}
	for _, a := range st.Data.Assignments {
		choices = append(choices, forms.Choice{Value: a.ID, Label: a.Title})
	}
	return choices
}

// FormFor returns a named "new" form with pickers filled from the state.
func FormFor(st *State, name string) (forms.Form, error) {
	form, ok := forms.ByName[name]
	if !ok {
		return forms.Form{}, fmt.Errorf("form %s: %w", name, ErrNotFound)
	}
	switch name {
	case forms.Assignment.Name, forms.Thread.Name:
		form = form.WithChoices("course", CourseChoices(st, true))
	case forms.Grade.Name:
		if err := CheckCanGrade(st); err != nil {
			return forms.Form{}, err
		}
		form = form.WithChoices("course", CourseChoices(st, false))
		form = form.WithChoices("assignment", AssignmentChoices(st))
	}
	return form, nil
}
