// Package eduspace holds the per-user course workspace: one JSON blob per
// username, loaded on every request and written back whole after each change.
package eduspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/metrics"
	"github.com/shrimpsizemoose/eduspace/internal/models"
	"github.com/shrimpsizemoose/eduspace/internal/store"
)

const keyPrefix = "eduspace:"

var (
	ErrEmptyUsername = errors.New("enter a username")
	ErrNoCourses     = errors.New("add a course first")
	ErrNotFound      = errors.New("not found")
)

func StorageKey(username string) string {
	return keyPrefix + username
}

// State is what a request works on: who is logged in and their blob.
type State struct {
	User string
	Data *models.UserData
}

type Workspace struct {
	store store.KV
	now   func() time.Time
	newID func(prefix string) string
}

func NewWorkspace(kv store.KV) *Workspace {
	return &Workspace{
		store: kv,
		now:   time.Now,
		newID: randomID,
	}
}

func randomID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
}

// Load returns the stored blob for username, or fresh sample data when
// nothing usable is stored. Nothing is written.
func (w *Workspace) Load(ctx context.Context, username string) (*models.UserData, error) {
	data, _, err := w.load(ctx, username)
	return data, err
}

// load also reports whether the data is a fresh sample that is not in the store yet.
func (w *Workspace) load(ctx context.Context, username string) (*models.UserData, bool, error) {
	raw, found, err := w.store.Get(ctx, StorageKey(username))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load workspace for %s: %w", username, err)
	}
	if !found {
		return w.sampleData(), true, nil
	}

	var data *models.UserData
	if err := json.Unmarshal([]byte(raw), &data); err != nil || data == nil {
		if err == nil {
			err = errors.New("blob is null")
		}
		logger.Error.Printf("Corrupt workspace blob for %s, falling back to sample data: %v", username, err)
		metrics.StorageFallbacksTotal.WithLabelValues("eduspace").Inc()
		return w.sampleData(), true, nil
	}
	data.Normalize()
	return data, false, nil
}

// Save overwrites the whole stored blob for username.
func (w *Workspace) Save(ctx context.Context, username string, data *models.UserData) error {
	data.Normalize()
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode workspace: %w", err)
	}
	if err := w.store.Set(ctx, StorageKey(username), string(raw)); err != nil {
		return fmt.Errorf("failed to save workspace for %s: %w", username, err)
	}
	return nil
}

// Login loads the user's workspace and writes it straight back so the key exists.
func (w *Workspace) Login(ctx context.Context, username string) (*State, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	data, err := w.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := w.Save(ctx, username, data); err != nil {
		return nil, err
	}

	logger.Info.Printf("User %s logged in", username)
	return &State{User: username, Data: data}, nil
}

// Open loads the state for an already logged-in user. A sample that is not
// stored yet gets saved, so its ids stay valid on the next request.
func (w *Workspace) Open(ctx context.Context, username string) (*State, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	data, fresh, err := w.load(ctx, username)
	if err != nil {
		return nil, err
	}
	if fresh {
		if err := w.Save(ctx, username, data); err != nil {
			return nil, err
		}
	}
	return &State{User: username, Data: data}, nil
}

func (w *Workspace) commit(ctx context.Context, st *State, op string) error {
	if err := w.Save(ctx, st.User, st.Data); err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("eduspace", op).Inc()
	return nil
}
