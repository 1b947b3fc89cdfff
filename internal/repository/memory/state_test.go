package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayursync/web/internal/model"
)

func TestStateRepositoryRoundTrip(t *testing.T) {
	repo := NewStateRepository()
	ctx := context.Background()
	email := "ravi@example.com"

	// Everything starts as the zero value, never an error.
	history, err := repo.History(ctx, email)
	require.NoError(t, err)
	assert.Empty(t, history)

	ids, err := repo.DeletedDoctorIDs(ctx, email)
	require.NoError(t, err)
	assert.Empty(t, ids)

	profile, err := repo.DoctorProfile(ctx, email)
	require.NoError(t, err)
	assert.Nil(t, profile)

	visited, err := repo.Visited(ctx, email)
	require.NoError(t, err)
	assert.False(t, visited)

	require.NoError(t, repo.SaveHistory(ctx, email, []model.ActivityEntry{{Module: "Find Doctor"}}))
	require.NoError(t, repo.SaveDeletedDoctorIDs(ctx, email, []int64{3, 7}))
	require.NoError(t, repo.SaveDoctorProfile(ctx, email, model.DoctorProfile{Name: "Asha"}))
	require.NoError(t, repo.MarkVisited(ctx, email))

	history, err = repo.History(ctx, email)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Find Doctor", history[0].Module)

	ids, err = repo.DeletedDoctorIDs(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, ids)

	profile, err = repo.DoctorProfile(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Asha", profile.Name)

	visited, err = repo.Visited(ctx, email)
	require.NoError(t, err)
	assert.True(t, visited)
}

func TestStateRepositoryReturnsCopies(t *testing.T) {
	repo := NewStateRepository()
	ctx := context.Background()
	email := "ravi@example.com"

	require.NoError(t, repo.SaveDeletedDoctorIDs(ctx, email, []int64{1}))

	ids, err := repo.DeletedDoctorIDs(ctx, email)
	require.NoError(t, err)
	ids[0] = 99

	again, err := repo.DeletedDoctorIDs(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, again)
}

func TestStateRepositoryClear(t *testing.T) {
	repo := NewStateRepository()
	ctx := context.Background()
	email := "ravi@example.com"

	require.NoError(t, repo.MarkVisited(ctx, email))
	require.NoError(t, repo.SaveDeletedDoctorIDs(ctx, email, []int64{1}))

	require.NoError(t, repo.Clear(ctx, email))

	visited, err := repo.Visited(ctx, email)
	require.NoError(t, err)
	assert.False(t, visited)

	ids, err := repo.DeletedDoctorIDs(ctx, email)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// Clearing an unknown account is a no-op.
	assert.NoError(t, repo.Clear(ctx, "nobody@example.com"))
}
