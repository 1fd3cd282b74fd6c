package server

import (
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"taskdeck/internal/models"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates a user account and logs it in.
func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(req.Email); err != nil {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid email address"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("name is required"))
		return
	}
	if len(req.Password) < 8 {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("password must be at least 8 characters"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	user, err := s.store.CreateUser(c.Request.Context(), models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
	})
	if err != nil {
		// Unique constraint on email is the only expected insert failure.
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("email already registered"))
		return
	}

	s.startSession(c, user)
}

// handleLogin checks credentials and issues a new session.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := s.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		s.respondError(c, http.StatusUnauthorized, fmt.Errorf("invalid email or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.respondError(c, http.StatusUnauthorized, fmt.Errorf("invalid email or password"))
		return
	}

	s.startSession(c, user)
}

func (s *Server) startSession(c *gin.Context, user models.User) {
	sess, err := s.store.CreateSession(c.Request.Context(), user.ID, s.cfg.SessionTTL)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	s.setSessionCookie(c, sess.Token, int(s.cfg.SessionTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// handleLogout deletes the current session, if any, and clears the cookie.
func (s *Server) handleLogout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		_ = s.store.DeleteSession(c.Request.Context(), token)
	}
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// handleSession returns the current user or 401 for anonymous requests.
func (s *Server) handleSession(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		s.respondError(c, http.StatusUnauthorized, fmt.Errorf("authentication required"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
