package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/dewoosin/paperly-sub000/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_refresh_token_repository.go -package=mocks github.com/dewoosin/paperly-sub000/internal/auth/domain RefreshTokenRepository
//go:generate mockgen -destination=../../mocks/mock_verification_token_repository.go -package=mocks github.com/dewoosin/paperly-sub000/internal/auth/domain VerificationTokenRepository
//go:generate mockgen -destination=../../mocks/mock_lockout_cache.go -package=mocks github.com/dewoosin/paperly-sub000/internal/auth/domain LockoutCache
//go:generate mockgen -destination=../../mocks/mock_verification_mailer.go -package=mocks github.com/dewoosin/paperly-sub000/internal/auth/domain VerificationMailer

import (
	"context"
	"time"
)

// UserRepository owns the identities table, including the durable lockout
// counter. RegisterFailedLogin must be an atomic increment-and-check: the
// returned state reflects this caller's increment, never a stale read.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	MarkEmailVerified(ctx context.Context, userID string) error
	RecordLoginAttempt(ctx context.Context, attempt *LoginAttempt) error
	RegisterFailedLogin(ctx context.Context, userID string, threshold int, lockFor time.Duration) (*LockoutState, error)
	ResetLockout(ctx context.Context, userID string) error
}

// RefreshTokenRepository owns refresh credentials. Consume deletes the row
// matching the hash and returns it; it returns (nil, nil) when no row
// matched, which is how a second concurrent caller observes the loss.
type RefreshTokenRepository interface {
	StoreRefreshToken(ctx context.Context, rt *RefreshToken) error
	ConsumeRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error
	DeleteRefreshTokensByUserID(ctx context.Context, userID string) error
	CountActiveRefreshTokens(ctx context.Context, userID string) (int, error)
	DeleteOldestRefreshToken(ctx context.Context, userID string) error
}

// VerificationTokenRepository owns email verification tokens. Consume marks
// an unconsumed, unexpired token consumed and returns it; (nil, nil) when the
// conditional update matched nothing.
type VerificationTokenRepository interface {
	StoreVerificationToken(ctx context.Context, vt *VerificationToken) error
	ConsumeVerificationToken(ctx context.Context, tokenHash string) (*VerificationToken, error)
	GetVerificationToken(ctx context.Context, tokenHash string) (*VerificationToken, error)
	DeleteVerificationTokensByUserID(ctx context.Context, userID string) error
}

// LockoutCache is a best-effort read accelerator for active lockouts, keyed
// by normalized email so it can answer before the identity row is fetched.
// The durable counter is authoritative; implementations must treat every
// error as a miss so a cache outage never blocks or permits a login by
// itself.
type LockoutCache interface {
	GetLock(ctx context.Context, email string) (time.Time, bool)
	SetLock(ctx context.Context, email string, until time.Time)
	ClearLock(ctx context.Context, email string)
}

// VerificationMailer delivers a verification token to the address that must
// prove control of it. Delivery is an external collaborator.
type VerificationMailer interface {
	SendVerification(ctx context.Context, email, token string) error
}
