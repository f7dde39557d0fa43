package admin

// Constants for error messages
const (
	ErrAdminExists       = "Admin account already exists"
	ErrEmailRegistered   = "Email already registered"
	ErrUsernameTaken     = "Username already taken"
	ErrUserNotFound      = "User not found"
	ErrChallengeNotFound = "Challenge not found"
	ErrCategoryExists    = "Category already exists"
	ErrInvalidCategory   = "Invalid category"
)

// SetupAdminRequest model for the one-time admin bootstrap
type SetupAdminRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Bio       string `json:"bio"`
	CSRFToken string `json:"csrf_token"`
}

// CreateCategoryRequest model for category creation
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// UpdateCategoryRequest model for category updates; nil fields are untouched
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
}

// CreateUserRequest model for admin user creation
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	IsAdmin   bool   `json:"is_admin"`
}
