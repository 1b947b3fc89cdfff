// Package directory presents the doctor registry: backend list minus locally
// soft-deleted entries, with the signed-in doctor pinned first.
package directory

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/repository"
	"github.com/ayursync/web/internal/session"
	apperrors "github.com/ayursync/web/pkg/errors"
)

type Backend interface {
	Doctors(ctx context.Context) ([]model.Doctor, error)
}

type Service struct {
	backend Backend
	state   repository.StateRepository
	log     zerolog.Logger
}

func NewService(backend Backend, state repository.StateRepository, log zerolog.Logger) *Service {
	return &Service{
		backend: backend,
		state:   state,
		log:     log.With().Str("component", "directory").Logger(),
	}
}

// List fetches and shapes the directory for the signed-in user: soft-deleted
// ids removed, self pinned first for doctors, display defaults filled, and
// the optional name-or-specialty filter applied.
func (s *Service) List(ctx context.Context, sess *session.Session, filter string) ([]model.Doctor, error) {
	docs, err := s.backend.Doctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctors: %w", err)
	}

	deleted, err := s.state.DeletedDoctorIDs(ctx, sess.User.Email)
	if err != nil {
		return nil, err
	}
	docs = dropDeleted(docs, deleted)

	if sess.User.Role == model.RoleDoctor {
		overrides, err := s.state.DoctorProfile(ctx, sess.User.Email)
		if err != nil {
			return nil, err
		}
		docs = PinSelf(docs, sess.User, overrides)
	}

	for i := range docs {
		s.fillDisplayDefaults(&docs[i])
	}

	return Filter(docs, filter), nil
}

func dropDeleted(docs []model.Doctor, deletedIDs []int64) []model.Doctor {
	if len(deletedIDs) == 0 {
		return docs
	}
	deleted := make(map[int64]bool, len(deletedIDs))
	for _, id := range deletedIDs {
		deleted[id] = true
	}
	kept := docs[:0]
	for _, d := range docs {
		if !deleted[d.ID] {
			kept = append(kept, d)
		}
	}
	return kept
}

// PinSelf guarantees the signed-in doctor appears exactly once, first, and
// reflecting local edits even when the backend copy is stale or absent. When
// the list has no matching record (fresh registration), a placeholder card is
// synthesized from the overrides. This is the only place the portal
// fabricates a domain record instead of trusting the server.
func PinSelf(docs []model.Doctor, user model.User, overrides *model.DoctorProfile) []model.Doctor {
	var self model.Doctor
	found := false
	rest := make([]model.Doctor, 0, len(docs))
	for _, d := range docs {
		if !found && (d.Email == user.Email || d.Name == user.Name) {
			self = d
			found = true
			continue
		}
		rest = append(rest, d)
	}

	if !found {
		self = model.Doctor{
			ID:             model.PlaceholderDoctorID,
			Name:           user.Name,
			Specialization: "General Physician",
			HospitalName:   "Your Clinic (Update Profile)",
			Timings:        "09:00 AM - 05:00 PM",
			Rating:         "5.0",
			Reviews:        0,
			Email:          user.Email,
		}
	}
	self = overrides.Merge(self)
	if self.Email == "" {
		self.Email = user.Email
	}

	return append([]model.Doctor{self}, rest...)
}

// fillDisplayDefaults pads records the backend left without rating data so
// the cards render uniformly. The package-level rand functions are locked
// internally, so this is safe from concurrent request goroutines.
func (s *Service) fillDisplayDefaults(d *model.Doctor) {
	if d.Rating == "" {
		d.Rating = fmt.Sprintf("%.1f", 4.0+rand.Float64())
	}
	if d.Reviews == 0 && d.ID != model.PlaceholderDoctorID {
		d.Reviews = 20 + rand.Intn(100)
	}
}

// Filter keeps doctors whose specialization or name contains the query,
// case-insensitively. An empty query keeps everything.
func Filter(docs []model.Doctor, query string) []model.Doctor {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return docs
	}
	matched := make([]model.Doctor, 0, len(docs))
	for _, d := range docs {
		if strings.Contains(strings.ToLower(d.Specialization), query) ||
			strings.Contains(strings.ToLower(d.Name), query) {
			matched = append(matched, d)
		}
	}
	return matched
}

// SoftDelete hides a doctor from this user's listings. The registry itself is
// untouched; whether a true delete endpoint should exist is an open backend
// contract question. Deleting your own profile is refused.
func (s *Service) SoftDelete(ctx context.Context, sess *session.Session, doctorID int64, doctorEmail string) error {
	if doctorEmail != "" && doctorEmail == sess.User.Email {
		return apperrors.BadRequest("You cannot remove your own profile", nil)
	}

	ids, err := s.state.DeletedDoctorIDs(ctx, sess.User.Email)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == doctorID {
			return nil
		}
	}
	return s.state.SaveDeletedDoctorIDs(ctx, sess.User.Email, append(ids, doctorID))
}

// Find returns the listed doctor with the given name, if present.
func Find(docs []model.Doctor, name string) (model.Doctor, bool) {
	for _, d := range docs {
		if d.Name == name {
			return d, true
		}
	}
	return model.Doctor{}, false
}
