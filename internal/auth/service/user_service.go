package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dewoosin/paperly-sub000/config"
	"github.com/dewoosin/paperly-sub000/internal/auth/domain"
	"github.com/dewoosin/paperly-sub000/internal/auth/dto"
	autherror "github.com/dewoosin/paperly-sub000/internal/errors"
	"github.com/google/uuid"
)

// UserService drives the credential lifecycle: registration, login with
// lockout enforcement, refresh rotation and revocation. All durable state
// transitions are delegated to the store's atomic primitives; the service
// holds no lock of its own across store calls.
type UserService struct {
	users     domain.UserRepository
	tokens    domain.RefreshTokenRepository
	tokenSvc  TokenGenerator
	hasher    *PasswordHasher
	lockCache domain.LockoutCache
	cfg       *config.Config
	log       *slog.Logger
}

func NewUserService(
	users domain.UserRepository,
	tokens domain.RefreshTokenRepository,
	tokenSvc TokenGenerator,
	hasher *PasswordHasher,
	lockCache domain.LockoutCache,
	cfg *config.Config,
) *UserService {
	return &UserService{
		users:     users,
		tokens:    tokens,
		tokenSvc:  tokenSvc,
		hasher:    hasher,
		lockCache: lockCache,
		cfg:       cfg,
		log:       slog.Default(),
	}
}

// NormalizeEmail trims and lowercases an address before any lookup so the
// unique index sees one spelling per mailbox.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	email := NormalizeEmail(input.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates the supplied credentials and issues a token pair.
// Unknown email and wrong password are indistinguishable to the caller in
// both message and timing. Every attempt, success or failure, lands in the
// audit log before the counter moves, so the trail is never lossy.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, error) {
	email := NormalizeEmail(input.Email)
	now := time.Now()

	// Cache first: a cached lock rejects before the database row is ever
	// fetched. The store remains authoritative; the cache can only shortcut
	// to a rejection the durable row would also have produced.
	if s.lockCache != nil {
		if until, ok := s.lockCache.GetLock(ctx, email); ok && now.Before(until) {
			s.recordAttempt(ctx, email, input, false)
			return nil, &autherror.AccountLockedError{RetryAfter: until.Sub(now)}
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user != nil {
		if user.Locked(now) {
			// Fail fast: no hashing cost is paid while locked.
			s.recordAttempt(ctx, email, input, false)
			return nil, &autherror.AccountLockedError{RetryAfter: user.LockedUntil.Sub(now)}
		}

		if user.LockedUntil != nil && !now.Before(*user.LockedUntil) {
			// Lock window elapsed: counter resets and the attempt is
			// evaluated normally.
			if err := s.users.ResetLockout(ctx, user.ID); err != nil {
				return nil, fmt.Errorf("failed to reset lockout: %w", err)
			}
			user.FailedLoginCount = 0
			user.LockedUntil = nil
			s.clearCachedLock(ctx, email)
		}
	}

	if user == nil {
		// Comparable elapsed time to the real verification path.
		s.hasher.DummyCompare(input.Password)
		s.recordAttempt(ctx, email, input, false)
		return nil, autherror.ErrInvalidCredentials
	}

	if !s.hasher.Compare(user.PasswordHash, input.Password) {
		// The counter may only advance together with its trail entry, so
		// here the trail write is strict: if it fails, the attempt aborts
		// before the counter moves.
		if err := s.appendAttempt(ctx, email, input, false); err != nil {
			return nil, fmt.Errorf("failed to record login attempt: %w", err)
		}
		if err := s.registerFailure(ctx, user.ID, email); err != nil {
			return nil, err
		}
		return nil, autherror.ErrInvalidCredentials
	}

	if err := s.users.RecordLoginAttempt(ctx, &domain.LoginAttempt{
		Email:      email,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		Successful: true,
	}); err != nil {
		return nil, fmt.Errorf("failed to record login attempt: %w", err)
	}

	if user.FailedLoginCount > 0 || user.LockedUntil != nil {
		if err := s.users.ResetLockout(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to reset failure counter: %w", err)
		}
	}
	s.clearCachedLock(ctx, email)

	accessToken, refreshValue, err := s.issuePair(ctx, user, deviceContext{
		Fingerprint: input.Fingerprint,
		IPAddress:   input.IPAddress,
		UserAgent:   input.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	return &dto.LoginOutput{
		User: dto.UserOutput{
			ID:            user.ID,
			Email:         user.Email,
			EmailVerified: user.EmailVerified,
			CreatedAt:     user.CreatedAt,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
		ExpiresIn:    int64(s.tokenSvc.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// Refresh consumes a refresh credential exactly once and replaces it with a
// fresh pair. The delete is the replay boundary: of two concurrent calls
// presenting the same value, one gets the row and one gets ErrTokenInvalid.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	hash := HashTokenValue(input.RefreshToken)

	consumed, err := s.tokens.ConsumeRefreshToken(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	if consumed == nil {
		return nil, autherror.ErrTokenInvalid
	}

	if consumed.Expired(time.Now()) {
		// Already deleted above; expiry is garbage-collected on access.
		return nil, autherror.ErrTokenExpired
	}

	user, err := s.users.GetByID(ctx, consumed.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	// Inherit the previous device context unless new context is supplied.
	device := deviceContext{
		Fingerprint: consumed.DeviceFingerprint,
		IPAddress:   consumed.IPAddress,
		UserAgent:   consumed.UserAgent,
	}
	if input.Fingerprint != "" {
		device.Fingerprint = input.Fingerprint
	}
	if input.IPAddress != "" {
		device.IPAddress = input.IPAddress
	}
	if input.UserAgent != "" {
		device.UserAgent = input.UserAgent
	}

	accessToken, refreshValue, err := s.issuePair(ctx, user, device)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
		ExpiresIn:    int64(s.tokenSvc.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// RevokeOne deletes a single refresh credential by value. Revoking an
// already-absent credential is not an error.
func (s *UserService) RevokeOne(ctx context.Context, refreshValue string) error {
	return s.tokens.DeleteRefreshTokenByHash(ctx, HashTokenValue(refreshValue))
}

// RevokeAll deletes every refresh credential owned by the identity
// (logout-all-devices). Idempotent.
func (s *UserService) RevokeAll(ctx context.Context, userID string) error {
	return s.tokens.DeleteRefreshTokensByUserID(ctx, userID)
}

type deviceContext struct {
	Fingerprint string
	IPAddress   string
	UserAgent   string
}

func (s *UserService) issuePair(ctx context.Context, user *domain.User, device deviceContext) (string, string, error) {
	accessToken, _, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshValue, refreshHash, err := s.tokenSvc.GenerateRefreshToken()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	rt := &domain.RefreshToken{
		ID:                uuid.New().String(),
		UserID:            user.ID,
		TokenHash:         refreshHash,
		DeviceFingerprint: device.Fingerprint,
		IPAddress:         device.IPAddress,
		UserAgent:         device.UserAgent,
		IssuedAt:          now,
		LastUsedAt:        now,
		ExpiresAt:         now.Add(s.tokenSvc.GetRefreshTokenExpiry()),
	}

	if err := s.tokens.StoreRefreshToken(ctx, rt); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	s.trimActiveTokens(ctx, user.ID)

	return accessToken, refreshValue, nil
}

// trimActiveTokens keeps the per-identity token count bounded. Best effort:
// a failure here must not void an otherwise successful issuance.
func (s *UserService) trimActiveTokens(ctx context.Context, userID string) {
	count, err := s.tokens.CountActiveRefreshTokens(ctx, userID)
	if err != nil {
		s.log.Warn("failed to count active refresh tokens", "user_id", userID, "error", err)
		return
	}
	if count > s.cfg.MaxActiveRefreshTokens {
		if err := s.tokens.DeleteOldestRefreshToken(ctx, userID); err != nil {
			s.log.Warn("failed to delete oldest refresh token", "user_id", userID, "error", err)
		}
	}
}

func (s *UserService) registerFailure(ctx context.Context, userID, email string) error {
	state, err := s.users.RegisterFailedLogin(ctx, userID,
		s.cfg.LoginMaxAttempts, time.Duration(s.cfg.LockoutMinutes)*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to register login failure: %w", err)
	}
	if state.LockedUntil != nil && s.lockCache != nil {
		s.lockCache.SetLock(ctx, email, *state.LockedUntil)
	}
	return nil
}

func (s *UserService) clearCachedLock(ctx context.Context, email string) {
	if s.lockCache != nil {
		s.lockCache.ClearLock(ctx, email)
	}
}

func (s *UserService) appendAttempt(ctx context.Context, email string, input dto.LoginInput, success bool) error {
	return s.users.RecordLoginAttempt(ctx, &domain.LoginAttempt{
		Email:      email,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		Successful: success,
	})
}

// recordAttempt appends to the audit trail on branches that move no durable
// counter. On those a trail error is logged rather than masking the security
// failure the caller gets; the counter-moving branch in Login uses the strict
// appendAttempt instead.
func (s *UserService) recordAttempt(ctx context.Context, email string, input dto.LoginInput, success bool) {
	if err := s.appendAttempt(ctx, email, input, success); err != nil {
		s.log.Error("failed to record login attempt", "email", email, "error", err)
	}
}
