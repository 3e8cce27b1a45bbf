package gradebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/models"
	"github.com/shrimpsizemoose/eduspace/internal/store"
)

var ErrNotOnRoster = errors.New("user is not on the roster")

// CurrentUser reads the logged-in user from session storage. The role always
// comes from the roster, not from what was stored.
func CurrentUser(ctx context.Context, session store.KV) (*models.CurrentUser, error) {
	raw, found, err := session.Get(ctx, KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	if !found || raw == "" {
		return nil, nil
	}

	var user models.CurrentUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Debug.Printf("Ignoring malformed %s: %v", KeyCurrentUser, err)
		return nil, nil
	}
	role, ok := RoleOf(user.Username)
	if !ok {
		return nil, nil
	}
	user.Role = role
	return &user, nil
}

func SetCurrentUser(ctx context.Context, session store.KV, username string) (*models.CurrentUser, error) {
	username = strings.TrimSpace(username)
	role, ok := RoleOf(username)
	if !ok {
		return nil, fmt.Errorf("%s: %w", username, ErrNotOnRoster)
	}

	user := &models.CurrentUser{Username: username, Role: role}
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode current user: %w", err)
	}
	if err := session.Set(ctx, KeyCurrentUser, string(raw)); err != nil {
		return nil, fmt.Errorf("failed to save current user: %w", err)
	}
	return user, nil
}

func ClearCurrentUser(ctx context.Context, session store.KV) error {
	return session.Set(ctx, KeyCurrentUser, "")
}
