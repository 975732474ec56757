package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
)

// Fixed challenge policy. The windows are not configurable per call.
const (
	verificationPinTTL = 30 * time.Minute
	resetPinTTL        = 15 * time.Minute

	pinMin  = 100000
	pinSpan = 900000 // PINs are uniform over [100000, 999999]
)

// VerificationEngine manages the two PIN challenges (email verification and
// password reset) as pure state transitions over a User record. Persistence
// of the mutated record is the caller's responsibility; issuing a PIN and
// saving it must happen within the same operation.
type VerificationEngine struct {
	now func() time.Time
}

// NewVerificationEngine creates a VerificationEngine using the wall clock.
func NewVerificationEngine() *VerificationEngine {
	return &VerificationEngine{now: time.Now}
}

// generatePin returns a uniformly random six digit PIN from a cryptographic
// source. The range excludes leading zeros.
func generatePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(pinSpan))
	if err != nil {
		return "", fmt.Errorf("failed to generate pin: %w", err)
	}
	return fmt.Sprintf("%d", pinMin+n.Int64()), nil
}

// IssueVerificationPin stores a fresh email verification PIN on the user,
// overwriting any prior pending PIN, and returns the plaintext for delivery.
func (e *VerificationEngine) IssueVerificationPin(u *entity.User) (string, error) {
	pin, err := generatePin()
	if err != nil {
		return "", err
	}
	expiry := e.now().Add(verificationPinTTL)
	u.VerificationPin = &pin
	u.VerificationPinExpiry = &expiry
	return pin, nil
}

// CheckVerificationPin validates a candidate against the stored challenge.
// The checks run in a fixed order: already verified, then existence, then
// expiry, then equality. On success the PIN fields are cleared and the user
// is marked verified in the same state update.
func (e *VerificationEngine) CheckVerificationPin(u *entity.User, candidate string) error {
	if u.EmailVerified {
		return domain.ErrAlreadyVerified
	}
	if !u.HasPendingVerification() {
		return domain.ErrNoCode
	}
	if u.VerificationPinExpiry.Before(e.now()) {
		return domain.ErrCodeExpired
	}
	if *u.VerificationPin != candidate {
		return domain.ErrInvalidCode
	}

	u.EmailVerified = true
	u.ClearVerificationPin()
	return nil
}

// IssueResetPin stores a fresh password reset PIN on the user, overwriting
// any prior pending PIN, and returns the plaintext for delivery.
func (e *VerificationEngine) IssueResetPin(u *entity.User) (string, error) {
	pin, err := generatePin()
	if err != nil {
		return "", err
	}
	expiry := e.now().Add(resetPinTTL)
	u.ResetPin = &pin
	u.ResetPinExpiry = &expiry
	return pin, nil
}

// CheckResetPin validates a candidate reset PIN. It does not touch the
// verified flag; a matching PIN only authorises a subsequent password change.
// All failure modes collapse into ErrInvalidPin so callers cannot probe
// which check failed.
func (e *VerificationEngine) CheckResetPin(u *entity.User, candidate string) error {
	if !u.HasPendingReset() {
		return domain.ErrInvalidPin
	}
	if u.ResetPinExpiry.Before(e.now()) {
		return domain.ErrInvalidPin
	}
	if *u.ResetPin != candidate {
		return domain.ErrInvalidPin
	}
	return nil
}
