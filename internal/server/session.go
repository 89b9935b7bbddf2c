package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"edumate/internal/models"
)

const (
	sessionCookie = "edumate_session"
	identityKey   = "identity"
)

// loadIdentity resolves the session cookie into an identity for every request.
func (s *Server) loadIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookie)
		if token == "" {
			c.Next()
			return
		}

		identity, err := s.accounts.CurrentIdentity(c.Request.Context(), token)
		if err != nil {
			s.logger.Error("resolve session", slog.String("error", err.Error()))
		}
		if identity == nil {
			s.clearSessionCookie(c)
		} else {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// requireLogin sends anonymous visitors to the login page.
func (s *Server) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentIdentity(c) == nil {
			s.flash(c, flashInfo, "Please log in to access this page.")
			s.redirect(c, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// guestOnly keeps signed-in users away from the login and signup forms.
func (s *Server) guestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentIdentity(c) != nil {
			s.redirect(c, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentIdentity returns the identity loaded for this request, or nil.
func currentIdentity(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*models.Identity)
	return identity
}

func (s *Server) setSessionCookie(c *gin.Context, sess models.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.Token, int(s.sessionTTL.Seconds()), "/", "", s.cookieSecure, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", s.cookieSecure, true)
}
