package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Joseda-hg/lazytracker/internal/model"
)

// CurrentUserKey is the slot holding the serialized signed-in user.
const CurrentUserKey = "currentUser"

// SessionStore persists the current user in a single key/value row.
type SessionStore struct {
	DB *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{DB: db}
}

// Load returns nil when no user has been saved.
func (s *SessionStore) Load(ctx context.Context) (*model.User, error) {
	var payload string
	err := s.DB.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", CurrentUserKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var user model.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &user, nil
}

func (s *SessionStore) Save(ctx context.Context, user model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		CurrentUserKey, string(payload))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", CurrentUserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
