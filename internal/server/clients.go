package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/models"
	"taskdeck/internal/storage/sqlite"
)

type createClientRequest struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Value     *int64  `json:"value"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

// handleListClients returns the caller's clients, optionally filtered by type.
func (s *Server) handleListClients(c *gin.Context) {
	user := currentUser(c)

	clientType, err := enumQuery(c, "type", models.ValidClientTypes)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	sort, err := parseSort(c, sqlite.ClientSortColumns)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	clients, err := s.store.ListClients(c.Request.Context(), sqlite.ClientFilter{
		OwnerID: user.ID,
		Type:    clientType,
		Sort:    sort,
	})
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// handleCreateClient creates a new client owned by the caller.
func (s *Server) handleCreateClient(c *gin.Context) {
	user := currentUser(c)

	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	client := models.Client{OwnerID: user.ID}

	client.Name = strings.TrimSpace(req.Name)
	if client.Name == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("name is required"))
		return
	}
	if _, ok := models.ValidClientTypes[req.Type]; !ok {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid type %q", req.Type))
		return
	}
	client.Type = req.Type
	if req.Value != nil {
		client.Value = *req.Value
	}

	if req.StartDate == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("startDate is required"))
		return
	}
	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	client.StartDate = start

	if req.EndDate != nil {
		end, err := models.ParseDate(*req.EndDate)
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		if err := validateClientDates(start, &end); err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		client.EndDate = &end
	}

	client, err = s.store.CreateClient(c.Request.Context(), client)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"client": client})
}

// handleGetClient fetches one client owned by the caller.
func (s *Server) handleGetClient(c *gin.Context) {
	user := currentUser(c)
	client, err := s.store.GetClient(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// handleUpdateClient applies the fields present in the payload to a client
// owned by the caller. The start/end ordering rule is re-checked against the
// merged result so either side of the pair can move it out of order.
func (s *Server) handleUpdateClient(c *gin.Context) {
	user := currentUser(c)

	client, err := s.store.GetClient(c.Request.Context(), c.Param("id"), user.ID)
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
		client.Name = name
	}
	if p.has("type") {
		clientType, err := p.string("type")
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		if _, ok := models.ValidClientTypes[clientType]; !ok {
			s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid type %q", clientType))
			return
		}
		client.Type = clientType
	}
	if p.has("value") {
		value, err := p.int64("value")
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		client.Value = value
	}
	if p.has("startDate") {
		raw, err := p.string("startDate")
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		start, err := models.ParseDate(raw)
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		client.StartDate = start
	}
	if p.has("endDate") {
		if p.isNull("endDate") {
			client.EndDate = nil
		} else {
			raw, err := p.string("endDate")
			if err != nil {
				s.respondError(c, http.StatusBadRequest, err)
				return
			}
			end, err := models.ParseDate(raw)
			if err != nil {
				s.respondError(c, http.StatusBadRequest, err)
				return
			}
			client.EndDate = &end
		}
	}

	if err := validateClientDates(client.StartDate, client.EndDate); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	client, err = s.store.UpdateClient(c.Request.Context(), client)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// handleDeleteClient removes a client owned by the caller.
func (s *Server) handleDeleteClient(c *gin.Context) {
	user := currentUser(c)
	if err := s.store.DeleteClient(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// validateClientDates enforces that endDate, when set, is strictly after
// startDate. Equal dates are rejected.
func validateClientDates(start time.Time, end *time.Time) error {
	if end != nil && !end.After(start) {
		return fmt.Errorf("endDate must be after startDate")
	}
	return nil
}
