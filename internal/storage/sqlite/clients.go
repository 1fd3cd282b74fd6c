package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/models"
)

// ListClients retrieves the caller's clients with an optional type filter.
func (s *Store) ListClients(ctx context.Context, f ClientFilter) ([]models.Client, error) {
	query := "SELECT * FROM clients WHERE owner_id = ?"
	args := []any{f.OwnerID}
	if f.Type != nil {
		query += " AND type = ?"
		args = append(args, *f.Type)
	}
	query += orderClause(f.Sort)

	clients := []models.Client{}
	if err := s.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// CreateClient persists a new client owned by c.OwnerID.
func (s *Store) CreateClient(ctx context.Context, c models.Client) (models.Client, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, type, value, start_date, end_date, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Type, c.Value, c.StartDate, c.EndDate, c.OwnerID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return models.Client{}, fmt.Errorf("insert client: %w", err)
	}
	return c, nil
}

// GetClient fetches a single client scoped to its owner.
func (s *Store) GetClient(ctx context.Context, id, ownerID string) (models.Client, error) {
	var c models.Client
	err := s.db.GetContext(ctx, &c, "SELECT * FROM clients WHERE id = ? AND owner_id = ?", id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Client{}, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// UpdateClient writes back a modified client, scoped to its owner.
func (s *Store) UpdateClient(ctx context.Context, c models.Client) (models.Client, error) {
	c.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE clients SET name = ?, type = ?, value = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		c.Name, c.Type, c.Value, c.StartDate, c.EndDate, c.UpdatedAt, c.ID, c.OwnerID,
	)
	if err != nil {
		return models.Client{}, fmt.Errorf("update client: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Client{}, fmt.Errorf("client %s: %w", c.ID, ErrNotFound)
	}
	return c, nil
}

// DeleteClient removes a client scoped to its owner.
func (s *Store) DeleteClient(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	return nil
}
