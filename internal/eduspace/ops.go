package eduspace

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shrimpsizemoose/eduspace/internal/forms"
	"github.com/shrimpsizemoose/eduspace/internal/models"
)

const (
	defaultScore = 0
	defaultMax   = 100
)

// parseChoice accepts either a bare id or the "id::title" form offered in pickers.
func parseChoice(value string) models.Ref {
	value = strings.TrimSpace(value)
	if id, _, ok := strings.Cut(value, "::"); ok {
		return models.RefTo(strings.TrimSpace(id))
	}
	return models.RefTo(value)
}

func parseNumber(value string, fallback float64) float64 {
	if value == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return v
}

func (w *Workspace) AddCourse(ctx context.Context, st *State, in forms.Values) (*models.Course, error) {
	course := models.Course{
		ID:          w.newID("course"),
		Title:       in.Get("title"),
		Description: in.Get("desc"),
	}
	st.Data.Courses = append(st.Data.Courses, course)
	if err := w.commit(ctx, st, "add_course"); err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse removes only the course. Assignments, grades and threads keep
// their reference to it.
func (w *Workspace) DeleteCourse(ctx context.Context, st *State, id string) error {
	kept := st.Data.Courses[:0]
	for _, c := range st.Data.Courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	st.Data.Courses = kept
	return w.commit(ctx, st, "delete_course")
}

func (w *Workspace) AddAssignment(ctx context.Context, st *State, in forms.Values) (*models.Assignment, error) {
	asg := models.Assignment{
		ID:       w.newID("asg"),
		CourseID: parseChoice(in.Get("course")),
		Title:    in.Get("title"),
		Due:      in.Get("due"),
	}
	st.Data.Assignments = append(st.Data.Assignments, asg)
	if err := w.commit(ctx, st, "add_assignment"); err != nil {
		return nil, err
	}
	return &asg, nil
}

func (w *Workspace) ToggleAssignment(ctx context.Context, st *State, id string) (*models.Assignment, error) {
	asg, ok := st.Data.Assignment(models.RefTo(id))
	if !ok {
		return nil, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	asg.Done = !asg.Done
	if err := w.commit(ctx, st, "toggle_assignment"); err != nil {
		return nil, err
	}
	return asg, nil
}

func (w *Workspace) DeleteAssignment(ctx context.Context, st *State, id string) error {
	kept := st.Data.Assignments[:0]
	for _, a := range st.Data.Assignments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	st.Data.Assignments = kept
	return w.commit(ctx, st, "delete_assignment")
}

// CheckCanGrade fails when there is no course to attach a grade to.
func CheckCanGrade(st *State) error {
	if len(st.Data.Courses) == 0 {
		return ErrNoCourses
	}
	return nil
}

func (w *Workspace) AddGrade(ctx context.Context, st *State, in forms.Values) (*models.Grade, error) {
	if err := CheckCanGrade(st); err != nil {
		return nil, err
	}
	grade := models.Grade{
		ID:           w.newID("grade"),
		CourseID:     parseChoice(in.Get("course")),
		AssignmentID: parseChoice(in.Get("assignment")),
		Score:        parseNumber(in.Get("score"), defaultScore),
		Max:          parseNumber(in.Get("max"), defaultMax),
	}
	st.Data.Grades = append(st.Data.Grades, grade)
	if err := w.commit(ctx, st, "add_grade"); err != nil {
		return nil, err
	}
	return &grade, nil
}

func (w *Workspace) DeleteGrade(ctx context.Context, st *State, id string) error {
	kept := st.Data.Grades[:0]
	for _, g := range st.Data.Grades {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	st.Data.Grades = kept
	return w.commit(ctx, st, "delete_grade")
}

func (w *Workspace) AddThread(ctx context.Context, st *State, in forms.Values) (*models.Thread, error) {
	thread := models.Thread{
		ID:       w.newID("thread"),
		CourseID: parseChoice(in.Get("course")),
		Title:    in.Get("title"),
		Messages: []models.Message{
			{
				ID:        w.newID("msg"),
				Author:    st.User,
				Text:      "Thread created",
				Timestamp: w.now().UnixMilli(),
			},
		},
	}
	st.Data.Discussions = append(st.Data.Discussions, thread)
	if err := w.commit(ctx, st, "add_thread"); err != nil {
		return nil, err
	}
	return &thread, nil
}

func (w *Workspace) Reply(ctx context.Context, st *State, threadID string, in forms.Values) (*models.Message, error) {
	thread, ok := st.Data.Thread(threadID)
	if !ok {
		return nil, fmt.Errorf("thread %s: %w", threadID, ErrNotFound)
	}
	msg := models.Message{
		ID:        w.newID("msg"),
		Author:    st.User,
		Text:      in.Get("text"),
		Timestamp: w.now().UnixMilli(),
	}
	thread.Messages = append(thread.Messages, msg)
	if err := w.commit(ctx, st, "reply"); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (w *Workspace) DeleteThread(ctx context.Context, st *State, id string) error {
	kept := st.Data.Discussions[:0]
	for _, t := range st.Data.Discussions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	st.Data.Discussions = kept
	return w.commit(ctx, st, "delete_thread")
}
