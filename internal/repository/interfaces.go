// Package repository defines persistence for per-user display state: the
// pieces a browser-only build would keep in local storage. Records are small
// JSON values keyed by account email and a state key.
package repository

import (
	"context"

	"github.com/ayursync/web/internal/model"
)

// StateRepository persists a user's portal-local state. All methods treat a
// missing record as the zero value rather than an error.
type StateRepository interface {
	// History is the capped recent-activity ring, newest first.
	History(ctx context.Context, email string) ([]model.ActivityEntry, error)
	SaveHistory(ctx context.Context, email string, entries []model.ActivityEntry) error

	// DeletedDoctorIDs is the admin's soft-delete exclusion set.
	DeletedDoctorIDs(ctx context.Context, email string) ([]int64, error)
	SaveDeletedDoctorIDs(ctx context.Context, email string, ids []int64) error

	// DoctorProfile returns local profile overrides, nil when never edited.
	DoctorProfile(ctx context.Context, email string) (*model.DoctorProfile, error)
	SaveDoctorProfile(ctx context.Context, email string, p model.DoctorProfile) error

	// Visited tracks whether this account has logged in here before.
	Visited(ctx context.Context, email string) (bool, error)
	MarkVisited(ctx context.Context, email string) error

	// Clear removes every state record for the account (logout teardown).
	Clear(ctx context.Context, email string) error
}
