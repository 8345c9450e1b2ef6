package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dewoosin/paperly-sub000/internal/auth/domain"
	"github.com/dewoosin/paperly-sub000/internal/auth/service"
	autherror "github.com/dewoosin/paperly-sub000/internal/errors"
	"github.com/dewoosin/paperly-sub000/internal/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationService_Issue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockVerificationTokenRepository(ctrl)
	mockMailer := mocks.NewMockVerificationMailer(ctrl)
	s := service.NewVerificationService(mockUsers, mockTokens, mockMailer, 24)

	user := &domain.User{ID: "user-123", Email: "reader@example.com"}

	mockTokens.EXPECT().DeleteVerificationTokensByUserID(gomock.Any(), "user-123").Return(nil)
	mockTokens.EXPECT().StoreVerificationToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, vt *domain.VerificationToken) error {
			assert.Equal(t, "user-123", vt.UserID)
			assert.Nil(t, vt.ConsumedAt)
			assert.WithinDuration(t, time.Now().Add(24*time.Hour), vt.ExpiresAt, 5*time.Second)
			return nil
		})
	mockMailer.EXPECT().SendVerification(gomock.Any(), "reader@example.com", gomock.Any()).Return(nil)

	value, err := s.Issue(context.Background(), user)

	require.NoError(t, err)
	assert.NotEmpty(t, value)
}

func TestVerificationService_Issue_MailerFailureDoesNotVoidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockVerificationTokenRepository(ctrl)
	mockMailer := mocks.NewMockVerificationMailer(ctrl)
	s := service.NewVerificationService(mockUsers, mockTokens, mockMailer, 24)

	user := &domain.User{ID: "user-123", Email: "reader@example.com"}

	mockTokens.EXPECT().DeleteVerificationTokensByUserID(gomock.Any(), "user-123").Return(nil)
	mockTokens.EXPECT().StoreVerificationToken(gomock.Any(), gomock.Any()).Return(nil)
	mockMailer.EXPECT().SendVerification(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("smtp unavailable"))

	value, err := s.Issue(context.Background(), user)

	require.NoError(t, err)
	assert.NotEmpty(t, value)
}

func TestVerificationService_Confirm_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockVerificationTokenRepository(ctrl)
	s := service.NewVerificationService(mockUsers, mockTokens, nil, 24)

	value := "fresh-token-value"
	now := time.Now()
	consumed := &domain.VerificationToken{
		ID:         "vt-1",
		UserID:     "user-123",
		TokenHash:  service.HashTokenValue(value),
		ExpiresAt:  now.Add(time.Hour),
		ConsumedAt: &now,
	}

	mockTokens.EXPECT().ConsumeVerificationToken(gomock.Any(), service.HashTokenValue(value)).Return(consumed, nil)
	mockUsers.EXPECT().MarkEmailVerified(gomock.Any(), "user-123").Return(nil)

	require.NoError(t, s.Confirm(context.Background(), value))
}

func TestVerificationService_Confirm_SecondConsumeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockVerificationTokenRepository(ctrl)
	s := service.NewVerificationService(mockUsers, mockTokens, nil, 24)

	value := "used-token-value"
	hash := service.HashTokenValue(value)
	consumedAt := time.Now().Add(-time.Minute)

	mockTokens.EXPECT().ConsumeVerificationToken(gomock.Any(), hash).Return(nil, nil)
	mockTokens.EXPECT().GetVerificationToken(gomock.Any(), hash).
		Return(&domain.VerificationToken{ID: "vt-1", UserID: "user-123", ConsumedAt: &consumedAt,
			ExpiresAt: time.Now().Add(time.Hour)}, nil)

	err := s.Confirm(context.Background(), value)
	assert.Equal(t, autherror.ErrTokenAlreadyConsumed, err)
}

func TestVerificationService_Confirm_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockVerificationTokenRepository(ctrl)
	s := service.NewVerificationService(mockUsers, mockTokens, nil, 24)

	value := "stale-token-value"
	hash := service.HashTokenValue(value)

	mockTokens.EXPECT().ConsumeVerificationToken(gomock.Any(), hash).Return(nil, nil)
	mockTokens.EXPECT().GetVerificationToken(gomock.Any(), hash).
		Return(&domain.VerificationToken{ID: "vt-1", UserID: "user-123",
			ExpiresAt: time.Now().Add(-time.Hour)}, nil)

	err := s.Confirm(context.Background(), value)
	assert.Equal(t, autherror.ErrTokenExpired, err)
}

func TestVerificationService_Confirm_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockVerificationTokenRepository(ctrl)
	s := service.NewVerificationService(mockUsers, mockTokens, nil, 24)

	hash := service.HashTokenValue("never-issued")
	mockTokens.EXPECT().ConsumeVerificationToken(gomock.Any(), hash).Return(nil, nil)
	mockTokens.EXPECT().GetVerificationToken(gomock.Any(), hash).Return(nil, nil)

	err := s.Confirm(context.Background(), "never-issued")
	assert.Equal(t, autherror.ErrTokenInvalid, err)
}

func TestVerificationService_Confirm_MarkVerifiedFailureSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockVerificationTokenRepository(ctrl)
	s := service.NewVerificationService(mockUsers, mockTokens, nil, 24)

	value := "fresh-token-value"
	now := time.Now()
	consumed := &domain.VerificationToken{ID: "vt-1", UserID: "user-123",
		ExpiresAt: now.Add(time.Hour), ConsumedAt: &now}

	storeErr := errors.New("connection reset")
	mockTokens.EXPECT().ConsumeVerificationToken(gomock.Any(), gomock.Any()).Return(consumed, nil)
	mockUsers.EXPECT().MarkEmailVerified(gomock.Any(), "user-123").Return(storeErr)

	// The token stays consumed; the failure is surfaced, not masked.
	err := s.Confirm(context.Background(), value)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}

func TestVerificationService_Resend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockVerificationTokenRepository(ctrl)
	mockMailer := mocks.NewMockVerificationMailer(ctrl)
	s := service.NewVerificationService(mockUsers, mockTokens, mockMailer, 24)

	t.Run("unknown email reports success", func(t *testing.T) {
		mockUsers.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)
		require.NoError(t, s.Resend(context.Background(), "nobody@example.com"))
	})

	t.Run("already verified reports success without issuing", func(t *testing.T) {
		mockUsers.EXPECT().GetByEmail(gomock.Any(), "done@example.com").
			Return(&domain.User{ID: "user-9", Email: "done@example.com", EmailVerified: true}, nil)
		require.NoError(t, s.Resend(context.Background(), "done@example.com"))
	})

	t.Run("unverified identity gets a fresh token", func(t *testing.T) {
		user := &domain.User{ID: "user-123", Email: "reader@example.com"}
		mockUsers.EXPECT().GetByEmail(gomock.Any(), "reader@example.com").Return(user, nil)
		mockTokens.EXPECT().DeleteVerificationTokensByUserID(gomock.Any(), "user-123").Return(nil)
		mockTokens.EXPECT().StoreVerificationToken(gomock.Any(), gomock.Any()).Return(nil)
		mockMailer.EXPECT().SendVerification(gomock.Any(), "reader@example.com", gomock.Any()).Return(nil)

		require.NoError(t, s.Resend(context.Background(), "Reader@Example.com"))
	})
}
