package handler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/dewoosin/paperly-sub000/internal/auth/dto"
	"github.com/dewoosin/paperly-sub000/internal/auth/service"
	autherror "github.com/dewoosin/paperly-sub000/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// genericVerifyFailure is the single message unauthenticated callers see for
// any verification-token failure. NotFound, Expired and AlreadyConsumed must
// not be distinguishable from outside.
const genericVerifyFailure = "invalid or expired verification token"

type AuthHandler struct {
	userService         *service.UserService
	verificationService *service.VerificationService
	tokenService        service.TokenGenerator
}

func NewAuthHandler(userService *service.UserService, verificationService *service.VerificationService,
	tokenService service.TokenGenerator) *AuthHandler {
	return &AuthHandler{
		userService:         userService,
		verificationService: verificationService,
		tokenService:        tokenService,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	user, err := h.userService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return h.internalError(c, "register", err)
	}

	if _, err := h.verificationService.Issue(c.Context(), user); err != nil {
		return h.internalError(c, "issue verification token", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	// Capture metadata
	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())
	input.Fingerprint = c.Get("X-Device-Fingerprint")

	out, err := h.userService.Login(c.Context(), input)
	if err != nil {
		if locked, ok := autherror.IsAccountLocked(err); ok {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":               "too many failed login attempts",
				"retry_after_minutes": locked.RetryAfterMinutes(),
			})
		}
		if errors.Is(err, autherror.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": autherror.ErrInvalidCredentials.Error(),
			})
		}
		return h.internalError(c, "login", err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.Fingerprint = c.Get("X-Device-Fingerprint")
	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	tokens, err := h.userService.Refresh(c.Context(), input)
	if err != nil {
		// One generic rejection: whether the value was unknown, expired or
		// orphaned must not be visible to the caller.
		if errors.Is(err, autherror.ErrTokenInvalid) ||
			errors.Is(err, autherror.ErrTokenExpired) ||
			errors.Is(err, autherror.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid refresh token"})
		}
		return h.internalError(c, "refresh", err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

// Logout revokes the presented refresh credential. Idempotent: revoking an
// already-absent credential still acknowledges.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input dto.LogoutInput
	if err := c.BodyParser(&input); err != nil || input.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.userService.RevokeOne(c.Context(), input.RefreshToken); err != nil {
		return h.internalError(c, "logout", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "logged out"})
}

// LogoutAll revokes every refresh credential of the authenticated identity.
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	claims, err := h.bearerClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := h.userService.RevokeAll(c.Context(), claims.UserID); err != nil {
		return h.internalError(c, "logout all", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "all sessions revoked"})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var input dto.VerifyEmailInput
	if err := c.BodyParser(&input); err != nil || input.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.verificationService.Confirm(c.Context(), input.Token); err != nil {
		if errors.Is(err, autherror.ErrTokenInvalid) ||
			errors.Is(err, autherror.ErrTokenExpired) ||
			errors.Is(err, autherror.ErrTokenAlreadyConsumed) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": genericVerifyFailure})
		}
		return h.internalError(c, "verify email", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "email verified"})
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var input dto.ResendVerificationInput
	if err := c.BodyParser(&input); err != nil || input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.verificationService.Resend(c.Context(), input.Email); err != nil {
		return h.internalError(c, "resend verification", err)
	}

	// Same acknowledgement whether or not the email exists.
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "verification email sent if the account exists"})
}

func (h *AuthHandler) bearerClaims(c *fiber.Ctx) (*service.JWTCustomClaims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, autherror.ErrTokenInvalid
	}
	return h.tokenService.VerifyAccessToken(token)
}

func (h *AuthHandler) internalError(c *fiber.Ctx, op string, err error) error {
	slog.Error("auth operation failed", "op", op, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
