// Package memory is an in-process StateRepository for DB-less runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/repository"
)

type userState struct {
	history    []model.ActivityEntry
	deletedIDs []int64
	profile    *model.DoctorProfile
	visited    bool
}

type stateRepository struct {
	mu    sync.RWMutex
	users map[string]*userState
}

func NewStateRepository() repository.StateRepository {
	return &stateRepository{users: make(map[string]*userState)}
}

func (r *stateRepository) state(email string) *userState {
	s, ok := r.users[email]
	if !ok {
		s = &userState{}
		r.users[email] = s
	}
	return s
}

func (r *stateRepository) History(_ context.Context, email string) ([]model.ActivityEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.users[email]; ok {
		out := make([]model.ActivityEntry, len(s.history))
		copy(out, s.history)
		return out, nil
	}
	return nil, nil
}

func (r *stateRepository) SaveHistory(_ context.Context, email string, entries []model.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state(email)
	s.history = make([]model.ActivityEntry, len(entries))
	copy(s.history, entries)
	return nil
}

func (r *stateRepository) DeletedDoctorIDs(_ context.Context, email string) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.users[email]; ok {
		out := make([]int64, len(s.deletedIDs))
		copy(out, s.deletedIDs)
		return out, nil
	}
	return nil, nil
}

func (r *stateRepository) SaveDeletedDoctorIDs(_ context.Context, email string, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state(email)
	s.deletedIDs = make([]int64, len(ids))
	copy(s.deletedIDs, ids)
	return nil
}

func (r *stateRepository) DoctorProfile(_ context.Context, email string) (*model.DoctorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.users[email]; ok && s.profile != nil {
		p := *s.profile
		return &p, nil
	}
	return nil, nil
}

func (r *stateRepository) SaveDoctorProfile(_ context.Context, email string, p model.DoctorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state(email).profile = &p
	return nil
}

func (r *stateRepository) Visited(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.users[email]; ok {
		return s.visited, nil
	}
	return false, nil
}

func (r *stateRepository) MarkVisited(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state(email).visited = true
	return nil
}

func (r *stateRepository) Clear(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, email)
	return nil
}
