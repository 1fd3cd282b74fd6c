package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/config"
	"taskdeck/internal/storage/object"
	"taskdeck/internal/storage/sqlite"
)

// Server provides the HTTP handlers for the taskdeck backend.
type Server struct {
	engine  *gin.Engine
	store   *sqlite.Store
	objects object.Store
	logger  *slog.Logger
	cfg     *config.Config
}

// New constructs the HTTP server with routes and middleware configured.
func New(cfg *config.Config, store *sqlite.Store, objects object.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api"))
	router.Use(metricsMiddleware())

	srv := &Server{
		engine:  router,
		store:   store,
		objects: objects,
		logger:  logger,
		cfg:     cfg,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	s.engine.Use(s.sessionMiddleware())

	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		auth := api.Group("/auth")
		{
			auth.POST("/register", s.handleRegister)
			auth.POST("/login", s.handleLogin)
			auth.POST("/logout", s.handleLogout)
			auth.GET("/session", s.handleSession)
		}

		protected := api.Group("", s.requireAuth())
		{
			protected.GET("/projects", s.handleListProjects)
			protected.POST("/projects", s.handleCreateProject)
			protected.GET("/projects/:id", s.handleGetProject)
			protected.PATCH("/projects/:id", s.handleUpdateProject)
			protected.DELETE("/projects/:id", s.handleDeleteProject)

			protected.GET("/tasks", s.handleListTasks)
			protected.POST("/tasks", s.handleCreateTask)
			protected.GET("/tasks/:id", s.handleGetTask)
			protected.PATCH("/tasks/:id", s.handleUpdateTask)
			protected.DELETE("/tasks/:id", s.handleDeleteTask)

			protected.GET("/clients", s.handleListClients)
			protected.POST("/clients", s.handleCreateClient)
			protected.GET("/clients/:id", s.handleGetClient)
			protected.PATCH("/clients/:id", s.handleUpdateClient)
			protected.DELETE("/clients/:id", s.handleDeleteClient)

			protected.GET("/files", s.handleListFiles)
			protected.POST("/files", s.handleUploadFile)
			protected.GET("/files/meta", s.handleFileMeta)
			protected.GET("/files/:id", s.handleGetFile)
			protected.GET("/files/:id/download", s.handleDownloadFile)
			protected.DELETE("/files/:id", s.handleDeleteFile)
		}
	}

	s.engine.GET("/metrics", metricsHandler())
	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError logs server-side failures and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// respondStoreError maps store failures to 404 for missing or foreign-owned
// rows and 500 for everything else.
func (s *Server) respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, sqlite.ErrNotFound) {
		s.respondError(c, http.StatusNotFound, err)
		return
	}
	s.respondError(c, http.StatusInternalServerError, err)
}
