package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitClashAPI/internal/apperrors"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret")
	ctx := context.Background()

	u := registerTestUser(t, db)
	assert.True(t, u.IsActive)
	assert.Equal(t, 0, u.Points)

	// Duplicate email is a conflict
	_, err := auth.Register(ctx, u.Email, "another password")
	require.ErrorIs(t, err, apperrors.ErrConflict)

	resp, err := auth.Login(ctx, u.Email, "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, u.ID, resp.User.ID)
	assert.Empty(t, resp.User.Password, "password hash must not leak")

	_, err = auth.Login(ctx, u.Email, "wrong password")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = auth.Login(ctx, "nobody@example.com", "whatever")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRefreshTokens(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret")
	ctx := context.Background()

	u := registerTestUser(t, db)

	resp, err := auth.Login(ctx, u.Email, "correct horse battery")
	require.NoError(t, err)

	tokens, err := auth.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, err = auth.Refresh(ctx, "garbage.token.value")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// A token signed with a different secret is rejected
	other := NewAuthService(db, "other-secret")
	_, err = other.Refresh(ctx, resp.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLoginRejectsDeactivatedUser(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret")
	userSvc := NewUserService(db)
	ctx := context.Background()

	u := registerTestUser(t, db)
	require.NoError(t, userSvc.Deactivate(ctx, u.ID))

	_, err := auth.Login(ctx, u.Email, "correct horse battery")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
