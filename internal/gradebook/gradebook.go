// Package gradebook is the teacher/student grade book with a global lock flag
// and a global PA announcement, each kept under its own storage key.
package gradebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/metrics"
	"github.com/shrimpsizemoose/eduspace/internal/models"
	"github.com/shrimpsizemoose/eduspace/internal/scoring"
	"github.com/shrimpsizemoose/eduspace/internal/store"
)

const (
	KeyGrades       = "grades_v2"
	KeyLocked       = "gradesLocked"
	KeyAnnouncement = "paMessage"
	KeyCurrentUser  = "currentUser"
)

var (
	ErrUnknownStudent = errors.New("unknown student")
	ErrRowNotFound    = errors.New("grade row not found")
	ErrUnknownField   = errors.New("unknown grade field")
	ErrEmptyMessage   = errors.New("announcement is empty")
)

type Service struct {
	store store.KV
}

func NewService(kv store.KV) *Service {
	return &Service{store: kv}
}

// Book returns the whole grade-book. A missing or undecodable value is an empty book.
func (s *Service) Book(ctx context.Context) (models.GradeBook, error) {
	raw, found, err := s.store.Get(ctx, KeyGrades)
	if err != nil {
		return nil, fmt.Errorf("failed to load grade book: %w", err)
	}
	book := models.GradeBook{}
	if !found || strings.TrimSpace(raw) == "" {
		return book, nil
	}
	if err := json.Unmarshal([]byte(raw), &book); err != nil || book == nil {
		logger.Error.Printf("Malformed %s, treating grade book as empty: %v", KeyGrades, err)
		metrics.StorageFallbacksTotal.WithLabelValues(KeyGrades).Inc()
		return models.GradeBook{}, nil
	}
	return book, nil
}

func (s *Service) saveBook(ctx context.Context, book models.GradeBook, op string) error {
	raw, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to encode grade book: %w", err)
	}
	if err := s.store.Set(ctx, KeyGrades, string(raw)); err != nil {
		return fmt.Errorf("failed to save grade book: %w", err)
	}
	metrics.MutationsTotal.WithLabelValues("gradebook", op).Inc()
	return nil
}

func (s *Service) Rows(ctx context.Context, student string) ([]models.GradeRow, error) {
	book, err := s.Book(ctx)
	if err != nil {
		return nil, err
	}
	return book[student], nil
}

// AddRow appends an empty row for the student.
func (s *Service) AddRow(ctx context.Context, student string) error {
	if !IsStudent(student) {
		return fmt.Errorf("%s: %w", student, ErrUnknownStudent)
	}
	book, err := s.Book(ctx)
	if err != nil {
		return err
	}
	book[student] = append(book[student], models.GradeRow{})
	return s.saveBook(ctx, book, "add_row")
}

// UpdateRow sets one field (subject, score or comment) of the row at idx.
func (s *Service) UpdateRow(ctx context.Context, student string, idx int, field, value string) error {
	if !IsStudent(student) {
		return fmt.Errorf("%s: %w", student, ErrUnknownStudent)
	}
	book, err := s.Book(ctx)
	if err != nil {
		return err
	}
	rows := book[student]
	if idx < 0 || idx >= len(rows) {
		return fmt.Errorf("%s row %d: %w", student, idx, ErrRowNotFound)
	}

	switch field {
	case "subject":
		rows[idx].Subject = value
	case "score":
		rows[idx].Score = value
	case "comment":
		rows[idx].Comment = value
	default:
		return fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
	return s.saveBook(ctx, book, "update_row")
}

func (s *Service) DeleteRow(ctx context.Context, student string, idx int) error {
	if !IsStudent(student) {
		return fmt.Errorf("%s: %w", student, ErrUnknownStudent)
	}
	book, err := s.Book(ctx)
	if err != nil {
		return err
	}
	rows := book[student]
	if idx < 0 || idx >= len(rows) {
		return fmt.Errorf("%s row %d: %w", student, idx, ErrRowNotFound)
	}
	book[student] = append(rows[:idx], rows[idx+1:]...)
	return s.saveBook(ctx, book, "delete_row")
}

// Locked reports the global lock flag. Missing or malformed means unlocked.
func (s *Service) Locked(ctx context.Context) (bool, error) {
	raw, found, err := s.store.Get(ctx, KeyLocked)
	if err != nil {
		return false, fmt.Errorf("failed to load lock flag: %w", err)
	}
	if !found {
		return false, nil
	}
	locked, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		logger.Error.Printf("Malformed %s=%q, treating as unlocked", KeyLocked, raw)
		metrics.StorageFallbacksTotal.WithLabelValues(KeyLocked).Inc()
		return false, nil
	}
	return locked, nil
}

func (s *Service) SetLocked(ctx context.Context, locked bool) error {
	if err := s.store.Set(ctx, KeyLocked, strconv.FormatBool(locked)); err != nil {
		return fmt.Errorf("failed to save lock flag: %w", err)
	}
	op := "unlock"
	if locked {
		op = "lock"
	}
	metrics.MutationsTotal.WithLabelValues("gradebook", op).Inc()
	logger.Info.Printf("Grade book %sed", op)
	return nil
}

type StudentView struct {
	Username   string
	Locked     bool
	Rows       []models.GradeRow
	Average    int
	HasAverage bool
}

// StudentView is what a student may see of their own grades. While locked
// no rows are returned at all.
func (s *Service) StudentView(ctx context.Context, username string) (*StudentView, error) {
	locked, err := s.Locked(ctx)
	if err != nil {
		return nil, err
	}
	view := &StudentView{Username: username, Locked: locked}
	if locked {
		return view, nil
	}

	rows, err := s.Rows(ctx, username)
	if err != nil {
		return nil, err
	}
	view.Rows = rows
	view.Average, view.HasAverage = scoring.RowAverage(rows)
	return view, nil
}

type StudentRows struct {
	Username   string
	Rows       []models.GradeRow
	Average    int
	HasAverage bool
}

type TeacherView struct {
	Students     []StudentRows
	Locked       bool
	Announcement string
}

func (s *Service) TeacherView(ctx context.Context) (*TeacherView, error) {
	book, err := s.Book(ctx)
	if err != nil {
		return nil, err
	}
	locked, err := s.Locked(ctx)
	if err != nil {
		return nil, err
	}
	announcement, err := s.Announcement(ctx)
	if err != nil {
		return nil, err
	}

	view := &TeacherView{Locked: locked, Announcement: announcement}
	for _, name := range Students() {
		rows := book[name]
		avg, ok := scoring.RowAverage(rows)
		view.Students = append(view.Students, StudentRows{
			Username:   name,
			Rows:       rows,
			Average:    avg,
			HasAverage: ok,
		})
	}
	return view, nil
}
