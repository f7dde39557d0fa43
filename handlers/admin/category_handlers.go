package admin

import (
	"api/database"
	"api/models"
	"api/utils/response"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CreateCategory creates a new challenge category
// @Summary Create Category
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} map[string]interface{}
// @Failure 400,409 {object} map[string]string
// @Security Bearer
// @Router /admin/categories [post]
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.ChallengeCategory
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		response.Error(c, http.StatusConflict, ErrCategoryExists)
		return
	}

	icon := req.Icon
	if icon == "" {
		icon = "folder"
	}
	color := req.Color
	if color == "" {
		color = "#3B82F6"
	}

	category := models.ChallengeCategory{
		Name:        req.Name,
		Description: req.Description,
		Icon:        icon,
		Color:       color,
	}

	if err := database.DB.Create(&category).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category.ToDict(),
	})
}

// UpdateCategory updates an existing category
// @Summary Update Category
// @Tags Admin
// @Accept json
// @Produce json
// @Param category_id path int true "Category ID"
// @Param request body UpdateCategoryRequest true "Category Update"
// @Success 200 {object} map[string]interface{}
// @Failure 404,409 {object} map[string]string
// @Security Bearer
// @Router /admin/categories/{category_id} [put]
func UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("category_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Category not found")
		return
	}

	var category models.ChallengeCategory
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Category not found")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name != nil {
		var existing models.ChallengeCategory
		if err := database.DB.Where("name = ?", *req.Name).First(&existing).Error; err == nil && existing.ID != category.ID {
			response.Error(c, http.StatusConflict, ErrCategoryExists)
			return
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := database.DB.Save(&category).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": category.ToDict(),
	})
}

// DeleteCategory removes a category with no challenges
// @Summary Delete Category
// @Tags Admin
// @Produce json
// @Param category_id path int true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 400,404 {object} map[string]string
// @Security Bearer
// @Router /admin/categories/{category_id} [delete]
func DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("category_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Category not found")
		return
	}

	var category models.ChallengeCategory
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Category not found")
		return
	}

	var challengeCount int64
	database.DB.Model(&models.Challenge{}).Where("category_id = ?", category.ID).Count(&challengeCount)
	if challengeCount > 0 {
		response.Error(c, http.StatusBadRequest, "Cannot delete a category that still has challenges")
		return
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
