package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/models"
	"taskdeck/internal/storage/sqlite"
)

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
}

// handleListProjects returns the caller's projects, filtered and sorted per
// the query string.
func (s *Server) handleListProjects(c *gin.Context) {
	user := currentUser(c)

	status, err := enumQuery(c, "status", models.ValidStatuses)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	priority, err := enumQuery(c, "priority", models.ValidPriorities)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	sort, err := parseSort(c, sqlite.ProjectSortColumns)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	projects, err := s.store.ListProjects(c.Request.Context(), sqlite.ProjectFilter{
		OwnerID:  user.ID,
		Status:   status,
		Priority: priority,
		Sort:     sort,
	})
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// handleCreateProject creates a new project owned by the caller.
func (s *Server) handleCreateProject(c *gin.Context) {
	user := currentUser(c)

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("name is required"))
		return
	}
	if req.Status == "" {
		req.Status = models.StatusTodo
	}
	if _, ok := models.ValidStatuses[req.Status]; !ok {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", req.Status))
		return
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if _, ok := models.ValidPriorities[req.Priority]; !ok {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid priority %q", req.Priority))
		return
	}

	project, err := s.store.CreateProject(c.Request.Context(), models.Project{
		Name:        name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		OwnerID:     user.ID,
	})
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project})
}

// handleGetProject fetches one project owned by the caller.
func (s *Server) handleGetProject(c *gin.Context) {
	user := currentUser(c)
	project, err := s.store.GetProject(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// handleUpdateProject applies the fields present in the payload to a project
// owned by the caller, re-validating each with the create rules.
func (s *Server) handleUpdateProject(c *gin.Context) {
	user := currentUser(c)

	project, err := s.store.GetProject(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	p, err := decodePatch(c.Request.Body)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	if p.has("name") {
		name, err := p.string("name")
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		name = strings.TrimSpace(name)
		if name == "" {
			s.respondError(c, http.StatusBadRequest, fmt.Errorf("name is required"))
			return
		}
		project.Name = name
	}
	if p.has("description") {
		if p.isNull("description") {
			project.Description = nil
		} else {
			desc, err := p.string("description")
			if err != nil {
				s.respondError(c, http.StatusBadRequest, err)
				return
			}
			project.Description = &desc
		}
	}
	if p.has("status") {
		status, err := p.string("status")
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		if _, ok := models.ValidStatuses[status]; !ok {
			s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", status))
			return
		}
		project.Status = status
	}
	if p.has("priority") {
		priority, err := p.string("priority")
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		if _, ok := models.ValidPriorities[priority]; !ok {
			s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid priority %q", priority))
			return
		}
		project.Priority = priority
	}

	project, err = s.store.UpdateProject(c.Request.Context(), project)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// handleDeleteProject removes a project owned by the caller.
func (s *Server) handleDeleteProject(c *gin.Context) {
	user := currentUser(c)
	if err := s.store.DeleteProject(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
