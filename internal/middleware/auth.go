package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayursync/web/internal/session"
)

const ContextSession = "session"

// RouteGuard redirects anonymous visitors off protected pages. Presence of a
// resolvable session with a display name is the only check performed; the
// backend is not consulted again after login.
type RouteGuard struct {
	sessions *session.Manager
}

func NewRouteGuard(sessions *session.Manager) *RouteGuard {
	return &RouteGuard{sessions: sessions}
}

func (g *RouteGuard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := g.sessions.Current(c)
		if err != nil || s.User.Name == "" {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Set(ContextSession, s)
		c.Next()
	}
}

// CurrentSession pulls the guard-resolved session out of the request context.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ContextSession); ok {
		return v.(*session.Session)
	}
	return nil
}
