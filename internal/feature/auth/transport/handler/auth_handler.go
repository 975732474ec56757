// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/transport/http/dto"
	"task_backend/internal/feature/auth/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// AuthUsecase defines the auth operations consumed by the handler.
// Following Go convention the interface is defined by the consumer (handler),
// not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, username, email, password string) (*usecase.PublicUser, error)
	ResendVerification(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, pin string) (string, *usecase.PublicUser, error)
	Login(ctx context.Context, email, password string) (string, *usecase.PublicUser, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, pin, newPassword string) error
	InitAdmin(ctx context.Context) (*usecase.PublicUser, error)
}

// AuthHandler handles the HTTP requests of the auth feature.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// respondError maps a domain error onto the HTTP taxonomy. Anything outside
// the taxonomy is logged and reported as a generic 500 so internals never
// leak to the client.
func respondError(c *gin.Context, err error) {
	type mapping struct {
		status int
		code   string
	}
	known := []struct {
		err error
		m   mapping
	}{
		{domain.ErrEmailAlreadyExists, mapping{http.StatusConflict, "DUPLICATE_IDENTITY"}},
		{domain.ErrUsernameAlreadyExists, mapping{http.StatusConflict, "DUPLICATE_IDENTITY"}},
		{domain.ErrUserNotFound, mapping{http.StatusNotFound, "USER_NOT_FOUND"}},
		{domain.ErrAlreadyVerified, mapping{http.StatusBadRequest, "ALREADY_VERIFIED"}},
		{domain.ErrNoCode, mapping{http.StatusBadRequest, "NO_CODE"}},
		{domain.ErrCodeExpired, mapping{http.StatusBadRequest, "CODE_EXPIRED"}},
		{domain.ErrInvalidCode, mapping{http.StatusBadRequest, "INVALID_CODE"}},
		{domain.ErrInvalidPin, mapping{http.StatusBadRequest, "INVALID_PIN"}},
		{domain.ErrInvalidCredentials, mapping{http.StatusUnauthorized, "INVALID_CREDENTIALS"}},
		{domain.ErrEmailNotVerified, mapping{http.StatusUnauthorized, "EMAIL_NOT_VERIFIED"}},
		{domain.ErrAdminExists, mapping{http.StatusBadRequest, "ADMIN_ALREADY_EXISTS"}},
	}

	for _, k := range known {
		if errors.Is(err, k.err) {
			msg := k.err.Error()
			if errors.Is(err, domain.ErrEmailNotVerified) {
				msg = "Please verify your email before logging in. A new verification code has been sent to your email."
			}
			c.JSON(k.m.status, api.Fail(k.m.code, msg))
			return
		}
	}

	slog.Error("unexpected auth error", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, api.Fail("SERVER_ERROR", "Something went wrong"))
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ValidationFail(api.FieldErrors(err)))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		respondError(c, err)
		return
	}

	slog.Info("user registered", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.OK(
		"Registration successful. Please check your email for verification code.",
		gin.H{"userId": user.ID, "username": user.Username, "email": user.Email},
	))
}

// ResendVerification handles POST /api/auth/resend-verification.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationFail(api.FieldErrors(err)))
		return
	}

	if err := h.auth.ResendVerification(c.Request.Context(), req.Email); err != nil {
		slog.Warn("resend verification failed", "error", err, "email", req.Email)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.OK("New verification code sent successfully", nil))
}

// VerifyEmail handles POST /api/auth/verify-email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationFail(api.FieldErrors(err)))
		return
	}

	token, user, err := h.auth.VerifyEmail(c.Request.Context(), req.Email, req.Pin)
	if err != nil {
		slog.Warn("email verification failed", "error", err, "email", req.Email)
		respondError(c, err)
		return
	}

	slog.Info("email verified", "email", user.Email)
	c.JSON(http.StatusOK, api.OK("Email verified successfully", gin.H{"token": token, "user": user}))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationFail(api.FieldErrors(err)))
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		respondError(c, err)
		return
	}

	slog.Info("user login successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.OK("Login successful", gin.H{"token": token, "user": user}))
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationFail(api.FieldErrors(err)))
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		slog.Warn("forgot password failed", "error", err, "email", req.Email)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.OK("Password reset instructions have been sent to your email", nil))
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationFail(api.FieldErrors(err)))
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Email, req.Pin, req.NewPassword); err != nil {
		slog.Warn("password reset failed", "error", err, "email", req.Email)
		respondError(c, err)
		return
	}

	slog.Info("password reset", "email", req.Email)
	c.JSON(http.StatusOK, api.OK("Password has been reset successfully. Please login with your new password.", nil))
}

// InitAdmin handles POST /api/auth/init-admin.
func (h *AuthHandler) InitAdmin(c *gin.Context) {
	admin, err := h.auth.InitAdmin(c.Request.Context())
	if err != nil {
		slog.Warn("admin init failed", "error", err)
		respondError(c, err)
		return
	}

	slog.Info("admin user created", "email", admin.Email)
	c.JSON(http.StatusCreated, api.OK("Admin user created successfully", gin.H{"email": admin.Email}))
}

// Profile handles GET /api/auth/profile (protected).
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("NO_TOKEN", "Authorization required"))
		return
	}

	c.JSON(http.StatusOK, api.OK("", gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"isVerified": user.EmailVerified,
		"role":       user.Role,
	}))
}
