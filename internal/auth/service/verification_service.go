package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dewoosin/paperly-sub000/internal/auth/domain"
	autherror "github.com/dewoosin/paperly-sub000/internal/errors"
	"github.com/google/uuid"
)

// VerificationService manages single-use email confirmation tokens.
// Consumption happens before the identity is marked verified, so the token
// row is the idempotency guard against duplicate verification side effects.
type VerificationService struct {
	users  domain.UserRepository
	tokens domain.VerificationTokenRepository
	mailer domain.VerificationMailer
	expiry time.Duration
	log    *slog.Logger
}

func NewVerificationService(
	users domain.UserRepository,
	tokens domain.VerificationTokenRepository,
	mailer domain.VerificationMailer,
	expiryHours int,
) *VerificationService {
	return &VerificationService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		expiry: time.Duration(expiryHours) * time.Hour,
		log:    slog.Default(),
	}
}

// Issue creates a fresh verification token for the user, superseding any
// earlier ones, and hands the raw value to the mailer. The raw value is also
// returned for callers that deliver it through another channel.
func (s *VerificationService) Issue(ctx context.Context, user *domain.User) (string, error) {
	value, err := GenerateOpaqueValue()
	if err != nil {
		return "", err
	}

	if err := s.tokens.DeleteVerificationTokensByUserID(ctx, user.ID); err != nil {
		return "", fmt.Errorf("failed to supersede verification tokens: %w", err)
	}

	now := time.Now()
	vt := &domain.VerificationToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: HashTokenValue(value),
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}

	if err := s.tokens.StoreVerificationToken(ctx, vt); err != nil {
		return "", fmt.Errorf("failed to store verification token: %w", err)
	}

	if err := s.mailer.SendVerification(ctx, user.Email, value); err != nil {
		// Delivery is an external concern; the token stays valid for resend.
		s.log.Warn("failed to send verification email", "user_id", user.ID, "error", err)
	}

	return value, nil
}

// Confirm consumes a verification token and marks the owning identity
// verified. A second Confirm on the same value fails ErrTokenAlreadyConsumed.
// If the identity update fails after consumption, the token stays consumed
// and the error is surfaced for reconciliation, never masked.
func (s *VerificationService) Confirm(ctx context.Context, tokenValue string) error {
	hash := HashTokenValue(tokenValue)

	consumed, err := s.tokens.ConsumeVerificationToken(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to consume verification token: %w", err)
	}
	if consumed == nil {
		return s.classifyConsumeMiss(ctx, hash)
	}

	if err := s.users.MarkEmailVerified(ctx, consumed.UserID); err != nil {
		s.log.Error("verification token consumed but identity not marked verified",
			"user_id", consumed.UserID, "token_id", consumed.ID, "error", err)
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	return nil
}

// Resend issues a new token for an unverified identity. It reports success
// whether or not the email exists so the endpoint cannot be used to probe
// for accounts.
func (s *VerificationService) Resend(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil || user.EmailVerified {
		return nil
	}

	_, err = s.Issue(ctx, user)
	return err
}

// classifyConsumeMiss distinguishes why the conditional consume matched no
// row. The transport layer collapses these for unauthenticated callers; the
// distinction exists for owning-context operations and for the audit log.
func (s *VerificationService) classifyConsumeMiss(ctx context.Context, hash string) error {
	existing, err := s.tokens.GetVerificationToken(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to look up verification token: %w", err)
	}
	switch {
	case existing == nil:
		return autherror.ErrTokenInvalid
	case existing.ConsumedAt != nil:
		return autherror.ErrTokenAlreadyConsumed
	case existing.Expired(time.Now()):
		return autherror.ErrTokenExpired
	default:
		// Lost a race with a concurrent consume between the two queries.
		return autherror.ErrTokenAlreadyConsumed
	}
}
