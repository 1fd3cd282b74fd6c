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

// ListProjects retrieves the caller's projects with optional status and
// priority filters applied.
func (s *Store) ListProjects(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	query := "SELECT * FROM projects WHERE owner_id = ?"
	args := []any{f.OwnerID}
	if f.Status != nil {
		query += " AND status = ?"
		args = append(args, *f.Status)
	}
	if f.Priority != nil {
		query += " AND priority = ?"
		args = append(args, *f.Priority)
	}
	query += orderClause(f.Sort)

	projects := []models.Project{}
	if err := s.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateProject persists a new project owned by p.OwnerID.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, status, priority, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Status, p.Priority, p.OwnerID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

// GetProject fetches a single project scoped to its owner.
func (s *Store) GetProject(ctx context.Context, id, ownerID string) (models.Project, error) {
	var p models.Project
	err := s.db.GetContext(ctx, &p, "SELECT * FROM projects WHERE id = ? AND owner_id = ?", id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// UpdateProject writes back a modified project, scoped to its owner.
func (s *Store) UpdateProject(ctx context.Context, p models.Project) (models.Project, error) {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, description = ?, status = ?, priority = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		p.Name, p.Description, p.Status, p.Priority, p.UpdatedAt, p.ID, p.OwnerID,
	)
	if err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Project{}, fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
	}
	return p, nil
}

// DeleteProject removes a project scoped to its owner. Attached tasks and
// files keep their rows with project_id cleared.
func (s *Store) DeleteProject(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}
