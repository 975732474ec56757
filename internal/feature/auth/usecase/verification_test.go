package usecase

import (
	"regexp"
	"testing"
	"time"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engineAt returns an engine with a frozen clock.
func engineAt(now time.Time) *VerificationEngine {
	return &VerificationEngine{now: func() time.Time { return now }}
}

func TestGeneratePin(t *testing.T) {
	pinFormat := regexp.MustCompile(`^[1-9][0-9]{5}$`)

	for i := 0; i < 100; i++ {
		pin, err := generatePin()
		require.NoError(t, err)
		assert.Regexp(t, pinFormat, pin, "pin must be six digits without a leading zero")
	}
}

func TestVerificationEngine_IssueVerificationPin(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := engineAt(now)
	u := &entity.User{Email: "a@example.com"}

	pin, err := e.IssueVerificationPin(u)
	require.NoError(t, err)

	require.NotNil(t, u.VerificationPin)
	assert.Equal(t, pin, *u.VerificationPin)
	require.NotNil(t, u.VerificationPinExpiry)
	assert.Equal(t, now.Add(30*time.Minute), *u.VerificationPinExpiry)

	t.Run("re-issue overwrites the prior pin", func(t *testing.T) {
		first := *u.VerificationPin
		later := engineAt(now.Add(5 * time.Minute))

		second, err := later.IssueVerificationPin(u)
		require.NoError(t, err)

		assert.Equal(t, second, *u.VerificationPin)
		assert.Equal(t, now.Add(35*time.Minute), *u.VerificationPinExpiry)
		// Overwhelmingly likely distinct; equality would mean the old PIN
		// survived the overwrite.
		if first == second {
			t.Logf("pin collision (possible but rare): %s", first)
		}
	})
}

func TestVerificationEngine_CheckVerificationPin(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pin := "654321"
	expiry := now.Add(30 * time.Minute)

	pendingUser := func() *entity.User {
		p, exp := pin, expiry
		return &entity.User{Email: "a@example.com", VerificationPin: &p, VerificationPinExpiry: &exp}
	}

	t.Run("already verified short-circuits first", func(t *testing.T) {
		u := pendingUser()
		u.EmailVerified = true

		err := engineAt(now).CheckVerificationPin(u, pin)
		assert.ErrorIs(t, err, domain.ErrAlreadyVerified)
	})

	t.Run("no pending code", func(t *testing.T) {
		u := &entity.User{Email: "a@example.com"}

		err := engineAt(now).CheckVerificationPin(u, pin)
		assert.ErrorIs(t, err, domain.ErrNoCode)
	})

	t.Run("expired code fails even when the pin matches", func(t *testing.T) {
		u := pendingUser()

		err := engineAt(expiry.Add(time.Second)).CheckVerificationPin(u, pin)
		assert.ErrorIs(t, err, domain.ErrCodeExpired)
		assert.False(t, u.EmailVerified)
	})

	t.Run("wrong code", func(t *testing.T) {
		u := pendingUser()

		err := engineAt(now).CheckVerificationPin(u, "000000")
		assert.ErrorIs(t, err, domain.ErrInvalidCode)
		assert.False(t, u.EmailVerified)
		assert.True(t, u.HasPendingVerification(), "a failed attempt must not consume the pin")
	})

	t.Run("success marks verified and clears the pin atomically", func(t *testing.T) {
		u := pendingUser()

		err := engineAt(now).CheckVerificationPin(u, pin)
		require.NoError(t, err)

		assert.True(t, u.EmailVerified)
		assert.Nil(t, u.VerificationPin)
		assert.Nil(t, u.VerificationPinExpiry)

		// The same pin cannot be consumed twice.
		u.EmailVerified = false
		err = engineAt(now).CheckVerificationPin(u, pin)
		assert.ErrorIs(t, err, domain.ErrNoCode)
	})
}

func TestVerificationEngine_IssueResetPin(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u := &entity.User{Email: "a@example.com"}

	pin, err := engineAt(now).IssueResetPin(u)
	require.NoError(t, err)

	require.NotNil(t, u.ResetPin)
	assert.Equal(t, pin, *u.ResetPin)
	require.NotNil(t, u.ResetPinExpiry)
	assert.Equal(t, now.Add(15*time.Minute), *u.ResetPinExpiry, "reset window is 15 minutes")
}

func TestVerificationEngine_CheckResetPin(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pin := "222333"
	expiry := now.Add(15 * time.Minute)

	tests := []struct {
		name      string
		user      func() *entity.User
		candidate string
		at        time.Time
		wantErr   error
	}{
		{
			name:      "no pending reset",
			user:      func() *entity.User { return &entity.User{} },
			candidate: pin,
			at:        now,
			wantErr:   domain.ErrInvalidPin,
		},
		{
			name: "expired pin",
			user: func() *entity.User {
				p, exp := pin, expiry
				return &entity.User{ResetPin: &p, ResetPinExpiry: &exp}
			},
			candidate: pin,
			at:        expiry.Add(time.Minute),
			wantErr:   domain.ErrInvalidPin,
		},
		{
			name: "wrong pin",
			user: func() *entity.User {
				p, exp := pin, expiry
				return &entity.User{ResetPin: &p, ResetPinExpiry: &exp}
			},
			candidate: "999999",
			at:        now,
			wantErr:   domain.ErrInvalidPin,
		},
		{
			name: "valid pin",
			user: func() *entity.User {
				p, exp := pin, expiry
				return &entity.User{ResetPin: &p, ResetPinExpiry: &exp}
			},
			candidate: pin,
			at:        now,
			wantErr:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user()
			err := engineAt(tt.at).CheckResetPin(u, tt.candidate)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			// CheckResetPin only authorises the change; it must not mark the
			// email verified or clear the pin itself.
			assert.False(t, u.EmailVerified)
			assert.True(t, u.HasPendingReset())
		})
	}
}
