package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ayursync/web/internal/config"
	"github.com/ayursync/web/internal/model"
)

// Manager owns the session lifecycle: issue at login, resolve per request,
// clear at logout. The cookie carries a signed token whose only claim of
// interest is the session id; everything else lives in the store.
type Manager struct {
	store      Store
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewManager(store Store, cfg config.SessionConfig) *Manager {
	return &Manager{
		store:      store,
		secret:     []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
	}
}

// Issue creates a fresh session for a logged-in user and sets the cookie.
func (m *Manager) Issue(c *gin.Context, user model.User, welcomeType string) (*Session, error) {
	s := &Session{
		ID:          uuid.NewString(),
		User:        user,
		WelcomeType: welcomeType,
		CreatedAt:   time.Now(),
	}
	if err := m.store.Save(c.Request.Context(), s); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        s.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	c.SetCookie(m.cookieName, signed, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return s, nil
}

// Current resolves the request's session, or ErrNotFound when the cookie is
// absent, expired, tampered with, or references a cleared session.
func (m *Manager) Current(c *gin.Context) (*Session, error) {
	raw, err := c.Cookie(m.cookieName)
	if err == http.ErrNoCookie || raw == "" {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, ErrNotFound
	}

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNotFound
	}

	claims := token.Claims.(*jwt.RegisteredClaims)
	return m.store.Get(c.Request.Context(), claims.ID)
}

// Save writes back a mutated session.
func (m *Manager) Save(c *gin.Context, s *Session) error {
	return m.store.Save(c.Request.Context(), s)
}

// Clear tears the session down and expires the cookie.
func (m *Manager) Clear(c *gin.Context, s *Session) error {
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
	if s == nil {
		return nil
	}
	return m.store.Delete(c.Request.Context(), s.ID)
}
