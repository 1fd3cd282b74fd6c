package server

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskdeck/internal/models"
	"taskdeck/internal/storage/object"
	"taskdeck/internal/storage/sqlite"
)

// handleListFiles returns the caller's file metadata rows, optionally
// filtered by project and MIME type.
func (s *Server) handleListFiles(c *gin.Context) {
	user := currentUser(c)

	sortSpec, err := parseSort(c, sqlite.FileSortColumns)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	files, err := s.store.ListFiles(c.Request.Context(), sqlite.FileFilter{
		OwnerID:   user.ID,
		ProjectID: optionalQuery(c, "projectId"),
		MimeType:  optionalQuery(c, "mimeType"),
		Sort:      sortSpec,
	})
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// handleFileMeta serves the upload limits so the browser client can enforce
// the same allow-list and size cap as the server.
func (s *Server) handleFileMeta(c *gin.Context) {
	types := make([]string, 0, len(models.AllowedMimeTypes))
	for t := range models.AllowedMimeTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	c.JSON(http.StatusOK, models.UploadMeta{
		MaxSize:      models.MaxUploadSize,
		AllowedTypes: types,
	})
}

// handleUploadFile accepts a multipart upload. Validation and the project
// ownership check run before any bytes reach the object store so a late
// failure cannot orphan a blob; the metadata insert is compensated with a
// best-effort blob delete instead.
func (s *Server) handleUploadFile(c *gin.Context) {
	user := currentUser(c)

	header, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("file is required"))
		return
	}
	if header.Size == 0 {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("file is empty"))
		return
	}
	if header.Size > models.MaxUploadSize {
		s.respondError(c, http.StatusRequestEntityTooLarge,
			fmt.Errorf("file exceeds the %d byte limit", models.MaxUploadSize))
		return
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}
	if !models.MimeAllowed(mime) {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("file type %q is not allowed", mime))
		return
	}

	meta := models.StoredFile{
		Filename: header.Filename,
		MimeType: mime,
		Size:     header.Size,
		OwnerID:  user.ID,
	}

	if desc := c.PostForm("description"); desc != "" {
		if len(desc) > models.MaxFileDescription {
			s.respondError(c, http.StatusBadRequest,
				fmt.Errorf("description exceeds %d characters", models.MaxFileDescription))
			return
		}
		meta.Description = &desc
	}
	if projectID := c.PostForm("projectId"); projectID != "" {
		if !s.ownsProject(c, projectID, user.ID) {
			return
		}
		meta.ProjectID = &projectID
	}

	meta.StoredFilename = uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))

	src, err := header.Open()
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	defer src.Close()

	if err := s.objects.Put(c.Request.Context(), meta.StoredFilename, src, header.Size, mime); err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	file, err := s.store.CreateFile(c.Request.Context(), meta)
	if err != nil {
		// Compensating delete; not atomic, errors swallowed.
		_ = s.objects.Delete(c.Request.Context(), meta.StoredFilename)
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"file": file})
}

// handleGetFile fetches one file metadata row owned by the caller.
func (s *Server) handleGetFile(c *gin.Context) {
	user := currentUser(c)
	file, err := s.store.GetFile(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": file})
}

// handleDownloadFile streams the blob back with headers taken from the
// stored metadata. A missing row and a missing blob both surface as 404.
func (s *Server) handleDownloadFile(c *gin.Context) {
	user := currentUser(c)

	file, err := s.store.GetFile(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	body, _, err := s.objects.Get(c.Request.Context(), file.StoredFilename)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			s.respondError(c, http.StatusNotFound, fmt.Errorf("file %s: not found", file.ID))
			return
		}
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, file.Size, file.MimeType, body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", file.Filename),
	})
}

// handleDeleteFile removes the metadata row and its backing blob. A blob
// that is already gone counts as success.
func (s *Server) handleDeleteFile(c *gin.Context) {
	user := currentUser(c)

	file, err := s.store.GetFile(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	if err := s.objects.Delete(c.Request.Context(), file.StoredFilename); err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := s.store.DeleteFile(c.Request.Context(), file.ID, user.ID); err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
