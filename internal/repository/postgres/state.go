package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/repository"
)

// State keys. One row per (email, key), value is a JSON document.
const (
	keyHistory        = "history"
	keyDeletedDoctors = "deleted_doctor_ids"
	keyDoctorProfile  = "doctor_profile"
	keyVisited        = "visited"
)

type stateRepository struct {
	db *sqlx.DB
}

func NewStateRepository(db *sqlx.DB) repository.StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) get(ctx context.Context, email, key string, out any) (bool, error) {
	var raw []byte
	query := `SELECT value FROM user_state WHERE email = $1 AND key = $2`
	if err := r.db.GetContext(ctx, &raw, query, email, key); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to read state %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode state %s: %w", key, err)
	}
	return true, nil
}

func (r *stateRepository) set(ctx context.Context, email, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode state %s: %w", key, err)
	}

	query := `
		INSERT INTO user_state (email, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email, key) DO UPDATE SET value = $3, updated_at = $4
	`
	if _, err := r.db.ExecContext(ctx, query, email, key, raw, time.Now()); err != nil {
		return fmt.Errorf("failed to write state %s: %w", key, err)
	}
	return nil
}

func (r *stateRepository) History(ctx context.Context, email string) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	if _, err := r.get(ctx, email, keyHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *stateRepository) SaveHistory(ctx context.Context, email string, entries []model.ActivityEntry) error {
	return r.set(ctx, email, keyHistory, entries)
}

func (r *stateRepository) DeletedDoctorIDs(ctx context.Context, email string) ([]int64, error) {
	var ids []int64
	if _, err := r.get(ctx, email, keyDeletedDoctors, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *stateRepository) SaveDeletedDoctorIDs(ctx context.Context, email string, ids []int64) error {
	return r.set(ctx, email, keyDeletedDoctors, ids)
}

func (r *stateRepository) DoctorProfile(ctx context.Context, email string) (*model.DoctorProfile, error) {
	var p model.DoctorProfile
	found, err := r.get(ctx, email, keyDoctorProfile, &p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

func (r *stateRepository) SaveDoctorProfile(ctx context.Context, email string, p model.DoctorProfile) error {
	return r.set(ctx, email, keyDoctorProfile, p)
}

func (r *stateRepository) Visited(ctx context.Context, email string) (bool, error) {
	var visited bool
	if _, err := r.get(ctx, email, keyVisited, &visited); err != nil {
		return false, err
	}
	return visited, nil
}

func (r *stateRepository) MarkVisited(ctx context.Context, email string) error {
	return r.set(ctx, email, keyVisited, true)
}

func (r *stateRepository) Clear(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_state WHERE email = $1`, email); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}
