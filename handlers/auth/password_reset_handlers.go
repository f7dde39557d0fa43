package auth

import (
	"api/database"
	"api/models"
	"api/services"
	"api/utils"
	"api/utils/response"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const resetTokenLifetime = 24 * time.Hour

// ForgotPassword initiates the password reset flow. The response is the
// same whether or not the email exists.
// @Summary Forgot Password
// @Description Send a password reset link to the user's email
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Email Request"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/forgot-password [post]
func ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": MsgResetRequested})
		return
	}

	reset, err := models.CreateResetToken(database.DB, user.ID, resetTokenLifetime)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "An error occurred while processing your request")
		return
	}

	// A failed email never fails the request
	if err := services.NewEmailService().SendPasswordResetEmail(user.Email, user.Username, reset.Token); err != nil {
		log.Printf("failed to send password reset email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": MsgResetRequested})
}

// ResetPassword completes the reset flow with a valid token
// @Summary Reset Password
// @Description Reset user password using the reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset Request"
// @Success 200 {object} map[string]string
// @Failure 400,404 {object} map[string]string
// @Router /auth/reset-password [post]
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		response.Error(c, http.StatusBadRequest, ErrPasswordsDoNotMatch)
		return
	}
	if len(req.NewPassword) < 6 {
		response.Error(c, http.StatusBadRequest, ErrPasswordTooShort)
		return
	}

	reset, err := models.FindValidResetToken(database.DB, req.Token)
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidResetToken)
		return
	}

	var user models.User
	if err := database.DB.First(&user, reset.UserID).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	passwordHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrHashPasswordFailed)
		return
	}

	if err := database.DB.Model(&user).Update("password_hash", passwordHash).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "An error occurred while resetting your password")
		return
	}

	if err := database.DB.Model(reset).Update("used", true).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "An error occurred while resetting your password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password has been reset successfully. You can now log in with your new password.",
	})
}

// ValidateResetToken checks a reset token without consuming it
// @Summary Validate Reset Token
// @Tags Auth
// @Produce json
// @Param token path string true "Reset token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/validate-reset-token/{token} [get]
func ValidateResetToken(c *gin.Context) {
	token := c.Param("token")

	reset, err := models.FindValidResetToken(database.DB, token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid":   false,
			"message": ErrInvalidResetToken,
		})
		return
	}

	var user gin.H
	if reset.User != nil {
		user = gin.H{
			"id":       reset.User.ID,
			"username": reset.User.Username,
			"email":    reset.User.Email,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"message": "Reset token is valid",
		"user":    user,
	})
}
