package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ayursync/web/internal/model"
)

// MemoryStore keeps sessions in process memory. Suitable for a single
// instance; sessions do not survive a restart.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttl, 10*time.Minute)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	s := clone(v.(Session))
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.cache.SetDefault(s.ID, clone(*s))
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

// clone copies the struct and rebuilds the Forms map, so callers never share
// map storage with the cached entry.
func clone(s Session) Session {
	if s.Forms != nil {
		forms := make(map[string]model.FormState, len(s.Forms))
		for k, v := range s.Forms {
			forms[k] = v
		}
		s.Forms = forms
	}
	return s
}
