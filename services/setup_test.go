package services

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"habitClashAPI/internal/types/user"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL (or
// DATABASE_URL). Tests that need a live database are skipped when
// neither is set; schema.sql must have been applied.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if err := godotenv.Load("../.env"); err != nil {
		_ = godotenv.Load()
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL not set; skipping database test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	t.Cleanup(pool.Close)
	return pool
}

// registerTestUser creates a throwaway user and schedules its rows for
// removal.
func registerTestUser(t *testing.T, db *pgxpool.Pool) *user.User {
	t.Helper()

	auth := NewAuthService(db, "test-secret")
	email := fmt.Sprintf("test+%s@example.com", uuid.NewString()[:8])

	u, err := auth.Register(context.Background(), email, "correct horse battery")
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx := context.Background()
		if _, err := db.Exec(ctx, "DELETE FROM tasks WHERE user_id = $1", u.ID); err != nil {
			t.Logf("Warning: failed to cleanup tasks: %v", err)
		}
		if _, err := db.Exec(ctx, "DELETE FROM users WHERE id = $1", u.ID); err != nil {
			t.Logf("Warning: failed to cleanup user: %v", err)
		}
	})

	return u
}

func cleanupChallenge(t *testing.T, db *pgxpool.Pool, challengeID uuid.UUID) {
	t.Helper()
	t.Cleanup(func() {
		ctx := context.Background()
		if _, err := db.Exec(ctx, "DELETE FROM tasks WHERE challenge_id = $1", challengeID); err != nil {
			t.Logf("Warning: failed to cleanup tasks: %v", err)
		}
		if _, err := db.Exec(ctx, "DELETE FROM challenges WHERE id = $1", challengeID); err != nil {
			t.Logf("Warning: failed to cleanup challenge: %v", err)
		}
	})
}
