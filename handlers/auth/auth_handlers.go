package auth

import (
	"api/database"
	"api/middleware"
	"api/models"
	"api/services"
	"api/utils"
	"api/utils/response"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register creates a new user account
// @Summary Register
// @Description Register a new user and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration Request"
// @Success 201 {object} map[string]interface{}
// @Failure 400,409 {object} map[string]string
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if len(username) < 3 {
		response.Error(c, http.StatusBadRequest, ErrUsernameTooShort)
		return
	}
	if len(req.Password) < 6 {
		response.Error(c, http.StatusBadRequest, ErrPasswordTooShort)
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		response.Error(c, http.StatusConflict, ErrUsernameExists)
		return
	}
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		response.Error(c, http.StatusConflict, ErrEmailRegistered)
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrHashPasswordFailed)
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}

	token, err := middleware.GenerateToken(user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	// A failed welcome email never fails the registration
	go func(email, username string) {
		if err := services.NewEmailService().SendWelcomeEmail(email, username); err != nil {
			log.Printf("failed to send welcome email to %s: %v", email, err)
		}
	}(user.Email, user.Username)

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User registered successfully",
		"access_token": token,
		"user":         user.ToDict(true),
	})
}

// Login authenticates a user and returns an access token
// @Summary Login
// @Description Authenticate with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login Request"
// @Success 200 {object} map[string]interface{}
// @Failure 401,403 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	if !user.IsActive {
		response.Error(c, http.StatusForbidden, ErrAccountDeactivated)
		return
	}

	now := time.Now().UTC()
	database.DB.Model(&user).Update("last_login", now)
	user.LastLogin = &now

	token, err := middleware.GenerateToken(user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": token,
		"user":         user.ToDict(true),
	})
}

// GetProfile returns the authenticated user's profile
// @Summary Get Profile
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Security Bearer
// @Router /auth/profile [get]
func GetProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToDict(true)})
}

// UpdateProfile updates the authenticated user's profile fields
// @Summary Update Profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile Update"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,409 {object} map[string]string
// @Security Bearer
// @Router /auth/profile [put]
func UpdateProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if len(username) < 3 {
			response.Error(c, http.StatusBadRequest, ErrUsernameTooShort)
			return
		}
		var existing models.User
		err := database.DB.Where("username = ?", username).First(&existing).Error
		if err == nil && existing.ID != user.ID {
			response.Error(c, http.StatusConflict, ErrUsernameExists)
			return
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		user.Username = username
	}

	if err := database.DB.Save(user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user.ToDict(true),
	})
}

// ChangePassword changes the authenticated user's password
// @Summary Change Password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Password Change"
// @Success 200 {object} map[string]string
// @Failure 400,401 {object} map[string]string
// @Security Bearer
// @Router /auth/change-password [post]
func ChangePassword(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		response.Error(c, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	if len(req.NewPassword) < 6 {
		response.Error(c, http.StatusBadRequest, ErrPasswordTooShort)
		return
	}

	passwordHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrHashPasswordFailed)
		return
	}

	if err := database.DB.Model(user).Update("password_hash", passwordHash).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ValidateToken confirms the bearer token is valid and returns the user
// @Summary Validate Token
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Security Bearer
// @Router /auth/validate-token [get]
func ValidateToken(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  user.ToDict(true),
	})
}
