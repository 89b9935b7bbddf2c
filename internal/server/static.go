package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// mountStatic serves stylesheets and images from the configured directory and
// installs the not-found page.
func (s *Server) mountStatic() {
	s.engine.NoRoute(func(c *gin.Context) {
		s.renderStatus(c, http.StatusNotFound, "Page not found.")
	})

	if s.staticDir == "" {
		s.logger.Warn("static directory not configured; pages render unstyled")
		return
	}

	info, err := os.Stat(s.staticDir)
	if err != nil || !info.IsDir() {
		s.logger.Warn("static directory missing", "path", s.staticDir, "error", err)
		return
	}

	s.engine.StaticFS("/static", gin.Dir(s.staticDir, false))

	favicon := filepath.Join(s.staticDir, "favicon.ico")
	if _, err := os.Stat(favicon); err == nil {
		s.engine.StaticFile("/favicon.ico", favicon)
	}
}
