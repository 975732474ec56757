package dto

// VerifyEmailRequest is the body of POST /api/auth/verify-email.
// The challenge field is canonically named "pin".
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Pin   string `json:"pin" binding:"required,len=6"`
}

// ResendVerificationRequest is the body of POST /api/auth/resend-verification.
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}
