// Package session holds the server-side login session: the identity written
// at login, the first-visit welcome flag, and the per-form submission state.
// It replaces what a browser-local store would hold in a client-only build,
// with an explicit load/clear lifecycle owned by the application root.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/ayursync/web/internal/model"
)

var ErrNotFound = errors.New("session not found")

// Session is the unit of persistence. Possession of a cookie referencing a
// live session is the portal's only proof of authentication; there is no
// server-side re-validation against the backend after login.
type Session struct {
	ID          string                     `json:"id"`
	User        model.User                 `json:"user"`
	WelcomeType string                     `json:"welcome_type"`
	Forms       map[string]model.FormState `json:"forms,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// FormState returns the recorded state for a form, idle when unset.
func (s *Session) FormState(form string) model.FormState {
	if s.Forms == nil {
		return model.FormState{}
	}
	return s.Forms[form]
}

// SetFormState records a form's submission phase. Concurrent tabs race on
// this with last-write-wins, same as the rest of the session.
func (s *Session) SetFormState(form string, st model.FormState) {
	if s.Forms == nil {
		s.Forms = make(map[string]model.FormState)
	}
	s.Forms[form] = st
}

// Store persists sessions by id.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
