// Package handler holds the pieces shared by every page handler.
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ayursync/web/internal/middleware"
	"github.com/ayursync/web/internal/session"
)

// Recorder notes a navigation into a tool page for the activity history.
type Recorder interface {
	RecordVisit(ctx context.Context, email, moduleName string) error
}

// Page is the common template payload. Data carries the page-specific view.
type Page struct {
	Title   string
	Active  string
	User    string
	Role    string
	Error   string
	Message string
	Data    any
}

// NewPage seeds a Page from the guard-resolved session, when there is one.
func NewPage(c *gin.Context, title, active string) Page {
	p := Page{Title: title, Active: active}
	if s := middleware.CurrentSession(c); s != nil {
		p.User = s.User.Name
		p.Role = s.User.Role.String()
	}
	return p
}

// Session returns the guard-resolved session for a protected route.
func Session(c *gin.Context) *session.Session {
	return middleware.CurrentSession(c)
}
