package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"taskdeck/internal/models"
)

// CreateSession issues a new opaque session token for the user.
func (s *Store) CreateSession(ctx context.Context, userID string, ttl time.Duration) (models.Session, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return models.Session{}, fmt.Errorf("session token: %w", err)
	}
	now := time.Now().UTC()
	sess := models.Session{
		Token:     hex.EncodeToString(buf),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		sess.Token, sess.UserID, sess.CreatedAt, sess.ExpiresAt,
	)
	if err != nil {
		return models.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// GetSession looks up a session by token. Expired sessions are deleted on
// read and reported as not found.
func (s *Store) GetSession(ctx context.Context, token string) (models.Session, error) {
	var sess models.Session
	err := s.db.GetContext(ctx, &sess, "SELECT * FROM sessions WHERE token = ?", token)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, fmt.Errorf("session: %w", ErrNotFound)
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("get session: %w", err)
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		_ = s.DeleteSession(ctx, token)
		return models.Session{}, fmt.Errorf("session expired: %w", ErrNotFound)
	}
	return sess, nil
}

// DeleteSession removes a session row. Deleting an unknown token is not an
// error; logout must be idempotent.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
