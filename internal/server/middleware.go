package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskdeck/internal/models"
)

// SessionCookie is the name of the opaque session cookie.
const SessionCookie = "taskdeck_session"

const userKey = "user"

// currentUser returns the authenticated user attached to the request, or nil
// for anonymous requests.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// sessionMiddleware resolves the session cookie to a user. Any validation
// failure clears the session and lets the request continue anonymously;
// protected routes reject it later with 401.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := s.store.GetSession(c.Request.Context(), token)
		if err != nil {
			s.clearSessionCookie(c)
			c.Next()
			return
		}

		if _, err := uuid.Parse(sess.UserID); err != nil {
			_ = s.store.DeleteSession(c.Request.Context(), token)
			s.clearSessionCookie(c)
			c.Next()
			return
		}

		user, err := s.store.GetUserByID(c.Request.Context(), sess.UserID)
		if err != nil {
			// Session points at a deleted user; drop it.
			_ = s.store.DeleteSession(c.Request.Context(), token)
			s.clearSessionCookie(c)
			c.Next()
			return
		}

		c.Set(userKey, &user)
		c.Next()
	}
}

// requireAuth rejects anonymous requests with 401.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			s.respondError(c, http.StatusUnauthorized, fmt.Errorf("authentication required"))
			return
		}
		c.Next()
	}
}

func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", s.cfg.Production(), true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
}
