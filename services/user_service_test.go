package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitClashAPI/internal/apperrors"
)

func TestGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIncrementPointsAccumulates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	u := registerTestUser(t, db)

	require.NoError(t, svc.IncrementPoints(ctx, u.ID, 1))
	require.NoError(t, svc.IncrementPoints(ctx, u.ID, 1))

	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Points+2, got.Points)

	err = svc.IncrementPoints(ctx, uuid.New(), 1)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindActiveExcludesDeactivatedUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	u := registerTestUser(t, db)
	require.NoError(t, svc.Deactivate(ctx, u.ID))

	users, err := svc.FindActive(ctx, 100, 0)
	require.NoError(t, err)
	for _, active := range users {
		assert.NotEqual(t, u.ID, active.ID)
	}
}
