package auth

// Constants for error messages
const (
	ErrInvalidCredentials   = "Invalid email or password"
	ErrAccountDeactivated   = "Account is deactivated"
	ErrUsernameExists       = "Username already exists"
	ErrEmailRegistered      = "Email already registered"
	ErrHashPasswordFailed   = "Failed to process password"
	ErrUserCreateFailed     = "Registration failed"
	ErrTokenGenerateFailed  = "Failed to generate token"
	ErrUserNotFound         = "User not found"
	ErrInvalidResetToken    = "Invalid or expired reset token"
	ErrPasswordsDoNotMatch  = "Passwords do not match"
	ErrPasswordTooShort     = "Password must be at least 6 characters long"
	ErrUsernameTooShort     = "Username must be at least 3 characters long"
)

// MsgResetRequested is always returned by forgot-password to prevent
// email enumeration
const MsgResetRequested = "If an account with that email exists, a password reset link has been sent."

// RegisterRequest model for registration
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest model for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest model for profile updates; nil fields are untouched
type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// ChangePasswordRequest model for authenticated password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ForgotPasswordRequest model for reset initiation
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest model for completing a reset
type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}
