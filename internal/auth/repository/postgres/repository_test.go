package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dewoosin/paperly-sub000/internal/auth/domain"
	repo "github.com/dewoosin/paperly-sub000/internal/auth/repository/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{
	"id", "email", "password_hash", "email_verified",
	"failed_login_count", "locked_until", "created_at", "updated_at",
}

// TestGetByEmail covers the GetByEmail repository method.
func TestGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	userEmail := "reader@example.com"

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email").
			WithArgs(userEmail).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", userEmail, "hash", false, 0, nil, time.Now(), time.Now()))

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err)
		assert.Equal(t, "user-123", user.ID)
		assert.Nil(t, user.LockedUntil)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email").
			WithArgs(userEmail).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err) // Should return nil user, nil error
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email").
			WithArgs(userEmail).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByEmail(ctx, userEmail)
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

// TestRegisterFailedLogin covers the atomic increment-and-check statement.
func TestRegisterFailedLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	columns := []string{"failed_login_count", "locked_until"}

	t.Run("below threshold leaves no lock", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs("user-123", 5, 1800).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(2, nil))

		state, err := r.RegisterFailedLogin(ctx, "user-123", 5, 30*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 2, state.FailedLoginCount)
		assert.Nil(t, state.LockedUntil)
	})

	t.Run("threshold trips the lock", func(t *testing.T) {
		lockedUntil := time.Now().Add(30 * time.Minute)
		mock.ExpectQuery("UPDATE users").
			WithArgs("user-123", 5, 1800).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(5, &lockedUntil))

		state, err := r.RegisterFailedLogin(ctx, "user-123", 5, 30*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 5, state.FailedLoginCount)
		require.NotNil(t, state.LockedUntil)
		assert.WithinDuration(t, lockedUntil, *state.LockedUntil, time.Second)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs("user-123", 5, 1800).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.RegisterFailedLogin(ctx, "user-123", 5, 30*time.Minute)
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetLockout(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	mock.ExpectExec("UPDATE users SET failed_login_count = 0").
		WithArgs("user-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, r.ResetLockout(context.Background(), "user-123"))
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestRecordLoginAttempt covers the RecordLoginAttempt method.
func TestRecordLoginAttempt(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("success attempt", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO login_attempts").
			WithArgs("reader@example.com", "1.2.3.4", "reader-app/1.0", true).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.RecordLoginAttempt(ctx, &domain.LoginAttempt{
			Email: "reader@example.com", IPAddress: "1.2.3.4",
			UserAgent: "reader-app/1.0", Successful: true,
		})
		require.NoError(t, err)
	})

	t.Run("failed attempt", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO login_attempts").
			WithArgs("reader@example.com", "1.2.3.4", "reader-app/1.0", false).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.RecordLoginAttempt(ctx, &domain.LoginAttempt{
			Email: "reader@example.com", IPAddress: "1.2.3.4",
			UserAgent: "reader-app/1.0", Successful: false,
		})
		require.NoError(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

var refreshColumns = []string{
	"id", "user_id", "token_hash", "device_fingerprint", "ip_address",
	"user_agent", "issued_at", "last_used_at", "expires_at",
}

// TestConsumeRefreshToken covers the delete-returning consumption boundary.
func TestConsumeRefreshToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	hash := "abcdef0123456789"

	t.Run("returns the deleted row", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("DELETE FROM refresh_tokens").
			WithArgs(hash).
			WillReturnRows(pgxmock.NewRows(refreshColumns).
				AddRow("rt-1", "user-123", hash, "fp-1", "1.2.3.4", "reader-app/1.0",
					now, now, now.Add(time.Hour)))

		rt, err := r.ConsumeRefreshToken(ctx, hash)
		require.NoError(t, err)
		assert.Equal(t, "rt-1", rt.ID)
		assert.Equal(t, "user-123", rt.UserID)
	})

	t.Run("already consumed yields nil", func(t *testing.T) {
		mock.ExpectQuery("DELETE FROM refresh_tokens").
			WithArgs(hash).
			WillReturnError(pgx.ErrNoRows)

		rt, err := r.ConsumeRefreshToken(ctx, hash)
		require.NoError(t, err)
		assert.Nil(t, rt)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRefreshToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	now := time.Now()
	rt := &domain.RefreshToken{
		ID: "rt-1", UserID: "user-123", TokenHash: "hash-1",
		DeviceFingerprint: "fp-1", IPAddress: "1.2.3.4", UserAgent: "reader-app/1.0",
		IssuedAt: now, LastUsedAt: now, ExpiresAt: now.Add(time.Hour),
	}

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(rt.ID, rt.UserID, rt.TokenHash, rt.DeviceFingerprint, rt.IPAddress,
			rt.UserAgent, rt.IssuedAt, rt.LastUsedAt, rt.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, r.StoreRefreshToken(context.Background(), rt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRefreshTokensByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	// Idempotent: zero rows affected is still success.
	mock.ExpectExec("DELETE FROM refresh_tokens WHERE user_id").
		WithArgs("user-123").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, r.DeleteRefreshTokensByUserID(context.Background(), "user-123"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountActiveRefreshTokens(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("user-123").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := r.CountActiveRefreshTokens(context.Background(), "user-123")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

var verificationColumns = []string{
	"id", "user_id", "token_hash", "expires_at", "consumed_at", "created_at",
}

// TestConsumeVerificationToken covers the conditional single-use update.
func TestConsumeVerificationToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	hash := "fedcba9876543210"

	t.Run("marks and returns the row", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("UPDATE verification_tokens").
			WithArgs(hash).
			WillReturnRows(pgxmock.NewRows(verificationColumns).
				AddRow("vt-1", "user-123", hash, now.Add(time.Hour), &now, now.Add(-time.Hour)))

		vt, err := r.ConsumeVerificationToken(ctx, hash)
		require.NoError(t, err)
		assert.Equal(t, "user-123", vt.UserID)
		require.NotNil(t, vt.ConsumedAt)
	})

	t.Run("consumed or expired matches nothing", func(t *testing.T) {
		mock.ExpectQuery("UPDATE verification_tokens").
			WithArgs(hash).
			WillReturnError(pgx.ErrNoRows)

		vt, err := r.ConsumeVerificationToken(ctx, hash)
		require.NoError(t, err)
		assert.Nil(t, vt)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVerificationToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	hash := "fedcba9876543210"

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id").
			WithArgs(hash).
			WillReturnError(pgx.ErrNoRows)

		vt, err := r.GetVerificationToken(context.Background(), hash)
		require.NoError(t, err)
		assert.Nil(t, vt)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkEmailVerified(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	mock.ExpectExec("UPDATE users SET email_verified").
		WithArgs("user-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, r.MarkEmailVerified(context.Background(), "user-123"))
	require.NoError(t, mock.ExpectationsWereMet())
}
