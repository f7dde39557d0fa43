package admin

import (
	"api/database"
	"api/middleware"
	"api/models"
	"api/utils"
	"api/utils/response"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetAllUsers lists every user account
// @Summary List Users
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Security Bearer
// @Router /admin/users [get]
func GetAllUsers(c *gin.Context) {
	pagination := utils.GetPagination(c, 20, 100)

	var total int64
	if err := database.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	var users []models.User
	if err := database.DB.
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PerPage).
		Find(&users).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	out := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToDict(true))
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      out,
		"pagination": pagination.Meta(total),
	})
}

// CreateUser creates a user account on behalf of an administrator
// @Summary Create User
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security Bearer
// @Router /admin/users [post]
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Password) < 6 {
		response.Error(c, http.StatusBadRequest, "Password must be at least 6 characters long")
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

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Bio:          req.Bio,
		IsAdmin:      req.IsAdmin,
		IsActive:     true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user.ToDict(true),
	})
}

// ToggleUserActive flips a user's active flag. Other admins cannot be
// deactivated.
// @Summary Toggle User Active
// @Tags Admin
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]string
// @Security Bearer
// @Router /admin/users/{user_id}/toggle-active [post]
func ToggleUserActive(c *gin.Context) {
	current, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	if user.IsAdmin && user.ID != current.ID {
		response.Error(c, http.StatusForbidden, "Cannot deactivate other admin users")
		return
	}

	user.IsActive = !user.IsActive
	if err := database.DB.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to toggle user status")
		return
	}

	status := "activated"
	if !user.IsActive {
		status = "deactivated"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User " + status + " successfully",
		"user":    user.ToDict(true),
	})
}

// ToggleUserAdmin flips a user's admin flag. Self-demotion is rejected.
// @Summary Toggle User Admin
// @Tags Admin
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]string
// @Security Bearer
// @Router /admin/users/{user_id}/toggle-admin [post]
func ToggleUserAdmin(c *gin.Context) {
	current, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	if user.ID == current.ID && user.IsAdmin {
		response.Error(c, http.StatusForbidden, "Cannot remove admin privileges from yourself")
		return
	}

	user.IsAdmin = !user.IsAdmin
	if err := database.DB.Model(&user).Update("is_admin", user.IsAdmin).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to toggle admin status")
		return
	}

	action := "promoted to admin"
	if !user.IsAdmin {
		action = "removed from admin"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User " + action + " successfully",
		"user":    user.ToDict(true),
	})
}
