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

// ListFiles retrieves the caller's file metadata rows with optional project
// and MIME type filters.
func (s *Store) ListFiles(ctx context.Context, f FileFilter) ([]models.StoredFile, error) {
	query := "SELECT * FROM files WHERE owner_id = ?"
	args := []any{f.OwnerID}
	if f.ProjectID != nil {
		query += " AND project_id = ?"
		args = append(args, *f.ProjectID)
	}
	if f.MimeType != nil {
		query += " AND mime_type = ?"
		args = append(args, *f.MimeType)
	}
	query += orderClause(f.Sort)

	files := []models.StoredFile{}
	if err := s.db.SelectContext(ctx, &files, query, args...); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// CreateFile inserts a file metadata row. The blob must already be in the
// object store; on insert failure the caller compensates by deleting it.
func (s *Store) CreateFile(ctx context.Context, f models.StoredFile) (models.StoredFile, error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	f.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (id, filename, stored_filename, mime_type, size, description, owner_id, project_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Filename, f.StoredFilename, f.MimeType, f.Size, f.Description, f.OwnerID, f.ProjectID, f.CreatedAt,
	)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("insert file: %w", err)
	}
	return f, nil
}

// GetFile fetches a single file row scoped to its owner.
func (s *Store) GetFile(ctx context.Context, id, ownerID string) (models.StoredFile, error) {
	var f models.StoredFile
	err := s.db.GetContext(ctx, &f, "SELECT * FROM files WHERE id = ? AND owner_id = ?", id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredFile{}, fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("get file: %w", err)
	}
	return f, nil
}

// DeleteFile removes a file metadata row scoped to its owner.
func (s *Store) DeleteFile(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	return nil
}
