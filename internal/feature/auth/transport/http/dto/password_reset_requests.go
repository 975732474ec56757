package dto

// ForgotPasswordRequest is the body of POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the body of POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Pin         string `json:"pin" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}
