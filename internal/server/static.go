package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves the compiled frontend from the configured directory.
// Non-API GET/HEAD navigations fall back to index.html so client-side routes
// survive a reload; API misses stay JSON 404s.
func (s *Server) mountStatic() {
	dir := s.cfg.StaticDir
	if dir == "" {
		s.logger.Warn("static directory not configured; API only mode")
		return
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		if s.cfg.Production() {
			s.logger.Error("static directory missing in production", "path", dir)
		} else {
			s.logger.Warn("static directory missing; API only mode", "path", dir)
		}
		return
	}

	indexPath := filepath.Join(dir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		s.logger.Warn("index.html not found", "path", indexPath, "error", err)
	} else {
		s.engine.GET("/", func(c *gin.Context) {
			c.File(indexPath)
		})
		s.engine.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
				return
			}
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.File(indexPath)
		})
	}

	assetsDir := filepath.Join(dir, "assets")
	if _, err := os.Stat(assetsDir); err == nil {
		s.engine.StaticFS("/assets", gin.Dir(assetsDir, true))
	}

	// go-app artifacts live next to index.html when the WASM client is built.
	for _, name := range []string{"app.js", "app.wasm", "wasm_exec.js", "manifest.webmanifest", "app-worker.js", "favicon.ico"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			s.engine.StaticFile("/"+name, p)
		}
	}
}
