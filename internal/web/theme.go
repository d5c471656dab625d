package web

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const themeCookie = "portfolio_theme"

// theme is the light/dark slice of the page state. It lives in a cookie so a reload
// keeps it, and only handleThemeToggle writes it.
type theme string

const (
	themeLight theme = "light"
	themeDark  theme = "dark"
)

func themeFor(c *gin.Context) theme {
	if v, err := c.Cookie(themeCookie); err == nil && theme(v) == themeDark {
		return themeDark
	}
	return themeLight
}

func (t theme) toggled() theme {
	if t == themeDark {
		return themeLight
	}
	return themeDark
}

// Flips the theme; the page applies it from the HX-Trigger event.
func (s *Server) handleThemeToggle(c *gin.Context) {
	next := themeFor(c).toggled()
	c.SetCookie(themeCookie, string(next), 365*24*3600, "/", "", false, true)

	trigger, err := json.Marshal(gin.H{"theme": next})
	if err == nil {
		c.Header("HX-Trigger", string(trigger))
	}
	c.Status(http.StatusNoContent)
}
