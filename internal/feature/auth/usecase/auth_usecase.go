// Package usecase implements the business logic of the auth feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"task_backend/internal/config"
	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength defines the minimum password length.
	minPasswordLength = 6

	// adminUsername is the fixed username of the bootstrapped admin account.
	adminUsername = "task_admin"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention the interface is defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns domain.ErrEmailAlreadyExists or
	// domain.ErrUsernameAlreadyExists when a unique field collides.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by lowercased email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a user by username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Save persists mutations to an existing user record.
	Save(ctx context.Context, user *entity.User) error

	// FindByEmailAndResetPin retrieves the user matching email AND a
	// non-expired reset PIN in a single lookup.
	FindByEmailAndResetPin(ctx context.Context, email, pin string, now time.Time) (*entity.User, error)

	// FindAdmin retrieves any user holding the admin role.
	FindAdmin(ctx context.Context) (*entity.User, error)
}

// TokenIssuer signs a session token for an authenticated user.
type TokenIssuer interface {
	Issue(user *entity.User) (string, error)
}

// Notifier delivers PIN and welcome messages to a user's email address.
type Notifier interface {
	SendVerificationPin(ctx context.Context, email, username, pin string) error
	SendResetPin(ctx context.Context, email, username, pin string) error
	SendWelcome(ctx context.Context, email, username string) error
}

// PublicUser is the externally visible identity of a user. It never carries
// credential or challenge state.
type PublicUser struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Verified bool        `json:"isVerified"`
	Role     entity.Role `json:"role"`
}

func publicUser(u *entity.User) *PublicUser {
	return &PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Verified: u.EmailVerified,
		Role:     u.Role,
	}
}

// authUsecase orchestrates registration, verification, login and password
// reset over the credential store, verification engine, session issuer and
// outbound notifier.
type authUsecase struct {
	users    UserRepository
	tokens   TokenIssuer
	notifier Notifier
	pins     *VerificationEngine
	cfg      config.AuthConfig
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, notifier Notifier, cfg config.AuthConfig) *authUsecase {
	return &authUsecase{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		pins:     NewVerificationEngine(),
		cfg:      cfg,
	}
}

// normalizeEmail lowercases and trims an email address. Uniqueness is
// case-insensitive, so every lookup and write goes through this.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

func (u *authUsecase) hashPassword(password string) (string, error) {
	cost := u.cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Register creates an unverified user, issues a verification PIN and
// dispatches it. The PIN is generated and persisted in the same operation;
// a notification failure aborts the response so the caller retries.
func (u *authUsecase) Register(ctx context.Context, username, email, password string) (*PublicUser, error) {
	email = normalizeEmail(email)
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := u.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     strings.TrimSpace(username),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}
	pin, err := u.pins.IssueVerificationPin(user)
	if err != nil {
		return nil, err
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := u.notifier.SendVerificationPin(ctx, user.Email, user.Username, pin); err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	return publicUser(user), nil
}

// ResendVerification issues a fresh verification PIN, overwriting the prior
// one, and re-dispatches it.
func (u *authUsecase) ResendVerification(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return domain.ErrAlreadyVerified
	}

	pin, err := u.pins.IssueVerificationPin(user)
	if err != nil {
		return err
	}
	if err := u.users.Save(ctx, user); err != nil {
		return err
	}

	if err := u.notifier.SendVerificationPin(ctx, user.Email, user.Username, pin); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// VerifyEmail checks the presented PIN and, on success, marks the user
// verified and issues a session token.
func (u *authUsecase) VerifyEmail(ctx context.Context, email, pin string) (string, *PublicUser, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}

	if err := u.pins.CheckVerificationPin(user, pin); err != nil {
		return "", nil, err
	}
	if err := u.users.Save(ctx, user); err != nil {
		return "", nil, err
	}

	// The welcome mail is a courtesy; its failure must not undo a completed
	// verification.
	if err := u.notifier.SendWelcome(ctx, user.Email, user.Username); err != nil {
		slog.Warn("welcome email failed", "error", err, "email", user.Email)
	}

	token, err := u.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, publicUser(user), nil
}

// Login authenticates a user. Unknown email and wrong password collapse into
// one generic error. Correct credentials on an unverified account do not
// yield a token: a fresh verification PIN is stored and dispatched instead.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *PublicUser, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	// Dummy hash so bcrypt comparison always runs, mitigating timing probes
	// when the user does not exist.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.EmailVerified {
		pin, pinErr := u.pins.IssueVerificationPin(user)
		if pinErr != nil {
			return "", nil, pinErr
		}
		if saveErr := u.users.Save(ctx, user); saveErr != nil {
			return "", nil, saveErr
		}
		if sendErr := u.notifier.SendVerificationPin(ctx, user.Email, user.Username, pin); sendErr != nil {
			return "", nil, fmt.Errorf("failed to send verification email: %w", sendErr)
		}
		return "", nil, domain.ErrEmailNotVerified
	}

	token, err := u.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, publicUser(user), nil
}

// ForgotPassword issues a password reset PIN and dispatches it.
func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	pin, err := u.pins.IssueResetPin(user)
	if err != nil {
		return err
	}
	if err := u.users.Save(ctx, user); err != nil {
		return err
	}

	if err := u.notifier.SendResetPin(ctx, user.Email, user.Username, pin); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword sets a new password for the user matching email and a
// non-expired reset PIN. The lookup is a single atomic predicate; the new
// hash and the cleared PIN fields are written in the same update so a
// consumed PIN cannot be replayed.
func (u *authUsecase) ResetPassword(ctx context.Context, email, pin, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByEmailAndResetPin(ctx, normalizeEmail(email), pin, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidPin
		}
		return err
	}

	hash, err := u.hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ClearResetPin()
	return u.users.Save(ctx, user)
}

// InitAdmin is the idempotent one-time admin bootstrap. It creates a single
// admin account from the configured credentials and fails once any admin
// exists.
func (u *authUsecase) InitAdmin(ctx context.Context) (*PublicUser, error) {
	_, err := u.users.FindAdmin(ctx)
	switch {
	case err == nil:
		return nil, domain.ErrAdminExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	if u.cfg.AdminEmail == "" || u.cfg.AdminPassword == "" {
		return nil, fmt.Errorf("admin credentials are not configured")
	}

	hash, err := u.hashPassword(u.cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	admin := &entity.User{
		Username:      adminUsername,
		Email:         normalizeEmail(u.cfg.AdminEmail),
		PasswordHash:  hash,
		EmailVerified: true,
		Role:          entity.RoleAdmin,
	}
	if err := u.users.Create(ctx, admin); err != nil {
		return nil, err
	}
	return publicUser(admin), nil
}
