package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/models"
	"taskdeck/internal/storage/sqlite"
)

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	ProjectID   *string `json:"projectId"`
}

// handleListTasks returns the caller's tasks, filtered and sorted per the
// query string.
func (s *Server) handleListTasks(c *gin.Context) {
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
	sort, err := parseSort(c, sqlite.TaskSortColumns)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	tasks, err := s.store.ListTasks(c.Request.Context(), sqlite.TaskFilter{
		OwnerID:   user.ID,
		Status:    status,
		Priority:  priority,
		ProjectID: optionalQuery(c, "projectId"),
		Sort:      sort,
	})
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// handleCreateTask creates a new task owned by the caller.
func (s *Server) handleCreateTask(c *gin.Context) {
	user := currentUser(c)

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task := models.Task{OwnerID: user.ID}

	task.Title = strings.TrimSpace(req.Title)
	if task.Title == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("title is required"))
		return
	}
	task.Description = req.Description

	if req.Status == "" {
		req.Status = models.StatusTodo
	}
	if _, ok := models.ValidStatuses[req.Status]; !ok {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", req.Status))
		return
	}
	task.Status = req.Status

	if req.Priority != nil {
		if _, ok := models.ValidPriorities[*req.Priority]; !ok {
			s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid priority %q", *req.Priority))
			return
		}
		task.Priority = req.Priority
	}
	if req.DueDate != nil {
		due, err := models.ParseDate(*req.DueDate)
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		task.DueDate = &due
	}
	if req.ProjectID != nil {
		if !s.ownsProject(c, *req.ProjectID, user.ID) {
			return
		}
		task.ProjectID = req.ProjectID
	}

	task, err := s.store.CreateTask(c.Request.Context(), task)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// handleGetTask fetches one task owned by the caller.
func (s *Server) handleGetTask(c *gin.Context) {
	user := currentUser(c)
	task, err := s.store.GetTask(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// handleUpdateTask applies the fields present in the payload to a task owned
// by the caller, re-validating each with the create rules.
func (s *Server) handleUpdateTask(c *gin.Context) {
	user := currentUser(c)

	task, err := s.store.GetTask(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	p, err := decodePatch(c.Request.Body)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	if p.has("title") {
		title, err := p.string("title")
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		title = strings.TrimSpace(title)
		if title == "" {
			s.respondError(c, http.StatusBadRequest, fmt.Errorf("title is required"))
			return
		}
		task.Title = title
	}
	if p.has("description") {
		if p.isNull("description") {
			task.Description = nil
		} else {
			desc, err := p.string("description")
			if err != nil {
				s.respondError(c, http.StatusBadRequest, err)
				return
			}
			task.Description = &desc
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
		task.Status = status
	}
	if p.has("priority") {
		if p.isNull("priority") {
			task.Priority = nil
		} else {
			priority, err := p.string("priority")
			if err != nil {
				s.respondError(c, http.StatusBadRequest, err)
				return
			}
			if _, ok := models.ValidPriorities[priority]; !ok {
				s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid priority %q", priority))
				return
			}
			task.Priority = &priority
		}
	}
	if p.has("dueDate") {
		if p.isNull("dueDate") {
			task.DueDate = nil
		} else {
			raw, err := p.string("dueDate")
			if err != nil {
				s.respondError(c, http.StatusBadRequest, err)
				return
			}
			due, err := models.ParseDate(raw)
			if err != nil {
				s.respondError(c, http.StatusBadRequest, err)
				return
			}
			task.DueDate = &due
		}
	}
	if p.has("projectId") {
		if p.isNull("projectId") {
			task.ProjectID = nil
		} else {
			projectID, err := p.string("projectId")
			if err != nil {
				s.respondError(c, http.StatusBadRequest, err)
				return
			}
			if !s.ownsProject(c, projectID, user.ID) {
				return
			}
			task.ProjectID = &projectID
		}
	}

	task, err = s.store.UpdateTask(c.Request.Context(), task)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task owned by the caller.
func (s *Server) handleDeleteTask(c *gin.Context) {
	user := currentUser(c)
	if err := s.store.DeleteTask(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ownsProject verifies that projectID belongs to the caller, responding 400
// when it does not. Referencing a foreign project is a validation failure,
// not a lookup, so it does not use the 404 convention.
func (s *Server) ownsProject(c *gin.Context, projectID, ownerID string) bool {
	if _, err := s.store.GetProject(c.Request.Context(), projectID, ownerID); err != nil {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid projectId"))
		return false
	}
	return true
}
