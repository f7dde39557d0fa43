package admin

import (
	"api/config"
	"api/database"
	"api/middleware"
	"api/models"
	"api/security"
	"api/utils"
	"api/utils/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CheckSetup reports whether the one-time admin bootstrap is still open
// @Summary Check Admin Setup
// @Description Check whether an admin account exists
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/setup/check [get]
func CheckSetup(c *gin.Context) {
	var count int64
	if err := database.DB.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to check admin setup")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin_exists":   count > 0,
		"setup_required": count == 0,
	})
}

// GetCSRFToken issues the CSRF token required by the setup endpoint,
// bound to the caller's IP
// @Summary Setup CSRF Token
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]string
// @Router /admin/setup/csrf-token [get]
func GetCSRFToken(guard *security.SetupGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := guard.IssueCSRFToken(security.ClientIP(c.Request))
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to issue CSRF token")
			return
		}
		c.JSON(http.StatusOK, gin.H{"csrf_token": token})
	}
}

// SetupAdmin creates the first admin account. The route is wrapped in the
// setup security chain; this handler only runs for requests that passed
// every stage.
// @Summary Setup Admin
// @Description Create the first admin account
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body SetupAdminRequest true "Admin Setup Request"
// @Success 201 {object} map[string]interface{}
// @Failure 400,403,429 {object} map[string]string
// @Router /admin/setup [post]
func SetupAdmin(c *gin.Context) {
	var adminCount int64
	if err := database.DB.Model(&models.User{}).Where("is_admin = ?", true).Count(&adminCount).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create admin account")
		return
	}
	if adminCount > 0 {
		response.Error(c, http.StatusBadRequest, ErrAdminExists)
		return
	}

	var req SetupAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if ok, message := security.ValidatePasswordStrength(config.DefaultSetupSecurityConfig.PasswordMinLength, req.Password); !ok {
		response.Error(c, http.StatusBadRequest, message)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		response.Error(c, http.StatusBadRequest, ErrEmailRegistered)
		return
	}
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		response.Error(c, http.StatusBadRequest, ErrUsernameTaken)
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to process password")
		return
	}

	admin := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Bio:          req.Bio,
		IsAdmin:      true,
		IsActive:     true,
		IsVerified:   true,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create admin account")
		return
	}

	token, err := middleware.GenerateToken(admin.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Admin account created successfully",
		"user":         admin.ToDict(true),
		"access_token": token,
	})
}
