package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie  = "edumate_flash"
	flashPending = "flash.pending"

	flashSuccess = "success"
	flashDanger  = "danger"
	flashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// flash queues a message for the next page this client sees.
func (s *Server) flash(c *gin.Context, category, message string) {
	c.Set(flashPending, append(pendingFlashes(c), Flash{Category: category, Message: message}))
}

// redirect stores queued flashes in a cookie and redirects with 303.
func (s *Server) redirect(c *gin.Context, location string) {
	if pending := pendingFlashes(c); len(pending) > 0 {
		raw, err := json.Marshal(pending)
		if err == nil {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), 60, "/", "", s.cookieSecure, true)
		}
	}
	c.Redirect(http.StatusSeeOther, location)
}

// takeFlashes returns flashes carried by cookie plus those queued in this request,
// and clears the cookie.
func (s *Server) takeFlashes(c *gin.Context) []Flash {
	var flashes []Flash
	if raw, err := c.Cookie(flashCookie); err == nil && raw != "" {
		if decoded, err := base64.RawURLEncoding.DecodeString(raw); err == nil {
			_ = json.Unmarshal(decoded, &flashes)
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flashCookie, "", -1, "/", "", s.cookieSecure, true)
	}
	return append(flashes, pendingFlashes(c)...)
}

func pendingFlashes(c *gin.Context) []Flash {
	v, ok := c.Get(flashPending)
	if !ok {
		return nil
	}
	flashes, _ := v.([]Flash)
	return flashes
}
