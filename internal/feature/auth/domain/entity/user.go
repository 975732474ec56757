// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account.
// It carries the credential hash plus the state of the two PIN challenges
// (email verification and password reset). PIN fields are pointers so that
// "no challenge pending" is representable as NULL.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username must be unique across all users.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	// Email is stored lowercased and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the password.
	// Plaintext passwords are never persisted.
	PasswordHash string `gorm:"size:255;not null"`

	// EmailVerified flips to true exactly once, on successful PIN verification.
	EmailVerified bool `gorm:"not null;default:false"`

	// VerificationPin and VerificationPinExpiry are set while an email
	// verification challenge is outstanding and cleared on success.
	VerificationPin       *string `gorm:"size:6"`
	VerificationPinExpiry *time.Time

	// ResetPin and ResetPinExpiry are set while a password reset challenge is
	// outstanding and cleared as soon as the reset completes.
	ResetPin       *string `gorm:"size:6"`
	ResetPinExpiry *time.Time

	// Role is either "user" or "admin".
	Role Role `gorm:"size:16;not null;default:user"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPendingVerification reports whether an email verification challenge is
// outstanding. An expired PIN still counts as pending; expiry is checked
// lazily when the PIN is used.
func (u *User) HasPendingVerification() bool {
	return u.VerificationPin != nil && u.VerificationPinExpiry != nil
}

// HasPendingReset reports whether a password reset challenge is outstanding.
func (u *User) HasPendingReset() bool {
	return u.ResetPin != nil && u.ResetPinExpiry != nil
}

// ClearVerificationPin removes the pending email verification challenge.
func (u *User) ClearVerificationPin() {
	u.VerificationPin = nil
	u.VerificationPinExpiry = nil
}

// ClearResetPin removes the pending password reset challenge.
func (u *User) ClearResetPin() {
	u.ResetPin = nil
	u.ResetPinExpiry = nil
}
