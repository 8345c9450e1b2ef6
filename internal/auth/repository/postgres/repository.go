package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dewoosin/paperly-sub000/internal/auth/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements the user, refresh-token and verification
// repositories on one connection pool. The database row is the
// serialization point for every per-identity and per-token transition, so
// no in-process locking is held across these calls.
type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, email_verified, failed_login_count, locked_until, created_at, updated_at
		FROM users
		WHERE email = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, email)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.EmailVerified,
		&user.FailedLoginCount, &user.LockedUntil, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, email_verified, failed_login_count, locked_until, created_at, updated_at
		FROM users
		WHERE id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.EmailVerified,
		&user.FailedLoginCount, &user.LockedUntil, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, email, password_hash, email_verified, failed_login_count, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, user.ID, user.Email, user.PasswordHash, user.EmailVerified, user.FailedLoginCount,
		user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) MarkEmailVerified(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET email_verified = TRUE, updated_at = now()
		WHERE id = $1
	`, userID)
	return err
}

func (r *PostgresRepository) RecordLoginAttempt(ctx context.Context, attempt *domain.LoginAttempt) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO login_attempts (id, email, ip_address, user_agent, attempt_time, successful)
		VALUES (gen_random_uuid(), $1, $2, $3, now(), $4)
	`, attempt.Email, attempt.IPAddress, attempt.UserAgent, attempt.Successful)
	return err
}

// RegisterFailedLogin increments the failure counter and trips the lock in
// one statement. Two concurrent wrong-password submissions each observe
// their own post-increment value, so the threshold cannot be skipped over.
func (r *PostgresRepository) RegisterFailedLogin(ctx context.Context, userID string,
	threshold int, lockFor time.Duration) (*domain.LockoutState, error) {
	query := `
		UPDATE users
		SET failed_login_count = failed_login_count + 1,
		    locked_until = CASE WHEN failed_login_count + 1 >= $2
		                        THEN now() + ($3 * interval '1 second')
		                        ELSE locked_until END,
		    updated_at = now()
		WHERE id = $1
		RETURNING failed_login_count, locked_until;
	`
	row := r.db.QueryRow(ctx, query, userID, threshold, int(lockFor.Seconds()))

	var state domain.LockoutState
	if err := row.Scan(&state.FailedLoginCount, &state.LockedUntil); err != nil {
		return nil, fmt.Errorf("failed to register login failure: %w", err)
	}

	return &state, nil
}

func (r *PostgresRepository) ResetLockout(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET failed_login_count = 0, locked_until = NULL, updated_at = now()
		WHERE id = $1
	`, userID)
	return err
}

func (r *PostgresRepository) StoreRefreshToken(ctx context.Context, rt *domain.RefreshToken) error {
	query := `INSERT INTO refresh_tokens
	          (id, user_id, token_hash, device_fingerprint, ip_address, user_agent, issued_at, last_used_at, expires_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		rt.ID, rt.UserID, rt.TokenHash, rt.DeviceFingerprint, rt.IPAddress,
		rt.UserAgent, rt.IssuedAt, rt.LastUsedAt, rt.ExpiresAt)
	return err
}

// ConsumeRefreshToken deletes the credential matching the hash and returns
// it. The DELETE .. RETURNING is the exactly-once boundary: of any number of
// concurrent callers presenting the same value, precisely one receives the
// row; the rest get (nil, nil).
func (r *PostgresRepository) ConsumeRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE token_hash = $1
		RETURNING id, user_id, token_hash, device_fingerprint, ip_address, user_agent, issued_at, last_used_at, expires_at;
	`
	row := r.db.QueryRow(ctx, query, tokenHash)

	var rt domain.RefreshToken
	err := row.Scan(&rt.ID, &rt.UserID, &rt.TokenHash, &rt.DeviceFingerprint,
		&rt.IPAddress, &rt.UserAgent, &rt.IssuedAt, &rt.LastUsedAt, &rt.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}

	return &rt, nil
}

func (r *PostgresRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
	return err
}

func (r *PostgresRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	return err
}

func (r *PostgresRepository) CountActiveRefreshTokens(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM refresh_tokens
		WHERE user_id = $1 AND expires_at > now()
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count refresh tokens: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) DeleteOldestRefreshToken(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE id = (
			SELECT id FROM refresh_tokens
			WHERE user_id = $1
			ORDER BY issued_at ASC
			LIMIT 1
		)
	`, userID)
	return err
}

func (r *PostgresRepository) StoreVerificationToken(ctx context.Context, vt *domain.VerificationToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO verification_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vt.ID, vt.UserID, vt.TokenHash, vt.ExpiresAt, vt.CreatedAt)
	return err
}

// ConsumeVerificationToken marks an unconsumed, unexpired token consumed.
// The conditional UPDATE matches at most once per token lifetime; an
// expired token is never retroactively consumable.
func (r *PostgresRepository) ConsumeVerificationToken(ctx context.Context, tokenHash string) (*domain.VerificationToken, error) {
	query := `
		UPDATE verification_tokens
		SET consumed_at = now()
		WHERE token_hash = $1 AND consumed_at IS NULL AND expires_at > now()
		RETURNING id, user_id, token_hash, expires_at, consumed_at, created_at;
	`
	row := r.db.QueryRow(ctx, query, tokenHash)

	var vt domain.VerificationToken
	err := row.Scan(&vt.ID, &vt.UserID, &vt.TokenHash, &vt.ExpiresAt, &vt.ConsumedAt, &vt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to consume verification token: %w", err)
	}

	return &vt, nil
}

func (r *PostgresRepository) GetVerificationToken(ctx context.Context, tokenHash string) (*domain.VerificationToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, consumed_at, created_at
		FROM verification_tokens
		WHERE token_hash = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, tokenHash)

	var vt domain.VerificationToken
	err := row.Scan(&vt.ID, &vt.UserID, &vt.TokenHash, &vt.ExpiresAt, &vt.ConsumedAt, &vt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get verification token: %w", err)
	}

	return &vt, nil
}

func (r *PostgresRepository) DeleteVerificationTokensByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM verification_tokens WHERE user_id = $1`, userID)
	return err
}
