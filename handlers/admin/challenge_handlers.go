package admin

import (
	"api/database"
	"api/middleware"
	"api/models"
	"api/utils"
	"api/utils/response"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// CreateChallengeRequest model for challenge creation
type CreateChallengeRequest struct {
	Title           string                `json:"title" binding:"required"`
	Description     string                `json:"description" binding:"required"`
	Scenario        string                `json:"scenario"`
	Instructions    string                `json:"instructions" binding:"required"`
	Questions       models.QuestionList   `json:"questions"`
	Hints           models.StringList     `json:"hints"`
	ChallengeType   string                `json:"challenge_type" binding:"required"`
	Difficulty      string                `json:"difficulty" binding:"required"`
	Points          int                   `json:"points"`
	TimeLimit       *int                  `json:"time_limit"`
	FileAttachments models.AttachmentList `json:"file_attachments"`
	DockerImage     string                `json:"docker_image"`
	EnvironmentURL  string                `json:"environment_url"`
	Author          string                `json:"author"`
	Series          string                `json:"series"`
	OperatingSystem string                `json:"operating_system"`
	SuggestedTools  models.StringList     `json:"suggested_tools"`
	IsPublished     bool                  `json:"is_published"`
	IsFeatured      bool                  `json:"is_featured"`
	CategoryID      uint                  `json:"category_id" binding:"required"`
}

// UpdateChallengeRequest model for challenge updates; nil fields are untouched
type UpdateChallengeRequest struct {
	Title           *string                `json:"title"`
	Description     *string                `json:"description"`
	Scenario        *string                `json:"scenario"`
	Instructions    *string                `json:"instructions"`
	Questions       *models.QuestionList   `json:"questions"`
	Hints           *models.StringList     `json:"hints"`
	ChallengeType   *string                `json:"challenge_type"`
	Difficulty      *string                `json:"difficulty"`
	Points          *int                   `json:"points"`
	TimeLimit       *int                   `json:"time_limit"`
	FileAttachments *models.AttachmentList `json:"file_attachments"`
	DockerImage     *string                `json:"docker_image"`
	EnvironmentURL  *string                `json:"environment_url"`
	AnswerType      *string                `json:"answer_type"`
	CorrectAnswer   *string                `json:"correct_answer"`
	AnswerFormat    *string                `json:"answer_format"`
	ValidationRegex *string                `json:"validation_regex"`
	IsPublished     *bool                  `json:"is_published"`
	IsFeatured      *bool                  `json:"is_featured"`
	CategoryID      *uint                  `json:"category_id"`
}

// uniqueSlug derives a slug from the title, suffixing a counter on collision
func uniqueSlug(title string, excludeID uint) string {
	base := utils.Slugify(title)
	slug := base
	for i := 2; ; i++ {
		var count int64
		database.DB.Model(&models.Challenge{}).
			Where("slug = ? AND id <> ?", slug, excludeID).
			Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateChallenge creates a new challenge
// @Summary Create Challenge
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body CreateChallengeRequest true "Challenge"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security Bearer
// @Router /admin/challenges [post]
func CreateChallenge(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	for i, question := range req.Questions {
		if question.Question == "" {
			response.Error(c, http.StatusBadRequest, fmt.Sprintf("Question %d text is required", i+1))
			return
		}
		if question.CorrectAnswer == "" {
			response.Error(c, http.StatusBadRequest, fmt.Sprintf("Question %d correct answer is required", i+1))
			return
		}
	}

	var category models.ChallengeCategory
	if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidCategory)
		return
	}

	points := req.Points
	if points == 0 {
		points = 100
	}
	author := req.Author
	if author == "" {
		author = "System"
	}

	challenge := models.Challenge{
		Title:           req.Title,
		Slug:            uniqueSlug(req.Title, 0),
		Description:     req.Description,
		Scenario:        req.Scenario,
		Instructions:    req.Instructions,
		Questions:       req.Questions,
		Hints:           req.Hints,
		ChallengeType:   req.ChallengeType,
		Difficulty:      req.Difficulty,
		Points:          points,
		TimeLimit:       req.TimeLimit,
		FileAttachments: req.FileAttachments,
		DockerImage:     req.DockerImage,
		EnvironmentURL:  req.EnvironmentURL,
		Author:          author,
		Series:          req.Series,
		OperatingSystem: req.OperatingSystem,
		SuggestedTools:  req.SuggestedTools,
		AnswerType:      "structured",
		IsPublished:     req.IsPublished,
		IsFeatured:      req.IsFeatured,
		CategoryID:      req.CategoryID,
		CreatedBy:       user.ID,
	}

	if challenge.IsPublished {
		now := time.Now().UTC()
		challenge.PublishDate = &now
	}

	if err := database.DB.Create(&challenge).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create challenge")
		return
	}

	challenge.Category = &category

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Challenge created successfully",
		"challenge": challenge.ToDict(true),
	})
}

// UpdateChallenge updates an existing challenge
// @Summary Update Challenge
// @Tags Admin
// @Accept json
// @Produce json
// @Param challenge_id path int true "Challenge ID"
// @Param request body UpdateChallengeRequest true "Challenge Update"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]string
// @Security Bearer
// @Router /admin/challenges/{challenge_id} [put]
func UpdateChallenge(c *gin.Context) {
	challengeID, err := strconv.Atoi(c.Param("challenge_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	var challenge models.Challenge
	if err := database.DB.Preload("Category").First(&challenge, challengeID).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	var req UpdateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Title != nil {
		challenge.Title = *req.Title
		challenge.Slug = uniqueSlug(*req.Title, challenge.ID)
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.Scenario != nil {
		challenge.Scenario = *req.Scenario
	}
	if req.Instructions != nil {
		challenge.Instructions = *req.Instructions
	}
	if req.Questions != nil {
		challenge.Questions = *req.Questions
	}
	if req.Hints != nil {
		challenge.Hints = *req.Hints
	}
	if req.ChallengeType != nil {
		challenge.ChallengeType = *req.ChallengeType
	}
	if req.Difficulty != nil {
		challenge.Difficulty = *req.Difficulty
	}
	if req.Points != nil {
		challenge.Points = *req.Points
	}
	if req.TimeLimit != nil {
		challenge.TimeLimit = req.TimeLimit
	}
	if req.FileAttachments != nil {
		challenge.FileAttachments = *req.FileAttachments
	}
	if req.DockerImage != nil {
		challenge.DockerImage = *req.DockerImage
	}
	if req.EnvironmentURL != nil {
		challenge.EnvironmentURL = *req.EnvironmentURL
	}
	if req.AnswerType != nil {
		challenge.AnswerType = *req.AnswerType
	}
	if req.CorrectAnswer != nil {
		challenge.CorrectAnswer = *req.CorrectAnswer
	}
	if req.AnswerFormat != nil {
		challenge.AnswerFormat = *req.AnswerFormat
	}
	if req.ValidationRegex != nil {
		challenge.ValidationRegex = *req.ValidationRegex
	}
	if req.IsFeatured != nil {
		challenge.IsFeatured = *req.IsFeatured
	}
	if req.CategoryID != nil {
		var category models.ChallengeCategory
		if err := database.DB.First(&category, *req.CategoryID).Error; err != nil {
			response.Error(c, http.StatusBadRequest, ErrInvalidCategory)
			return
		}
		challenge.CategoryID = *req.CategoryID
		challenge.Category = &category
	}
	if req.IsPublished != nil {
		challenge.IsPublished = *req.IsPublished
		if *req.IsPublished && challenge.PublishDate == nil {
			now := time.Now().UTC()
			challenge.PublishDate = &now
		}
	}

	if err := database.DB.Save(&challenge).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to update challenge")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Challenge updated successfully",
		"challenge": challenge.ToDict(true),
	})
}

// DeleteChallenge removes a challenge that has no submissions
// @Summary Delete Challenge
// @Tags Admin
// @Produce json
// @Param challenge_id path int true "Challenge ID"
// @Success 200 {object} map[string]string
// @Failure 400,404 {object} map[string]string
// @Security Bearer
// @Router /admin/challenges/{challenge_id} [delete]
func DeleteChallenge(c *gin.Context) {
	challengeID, err := strconv.Atoi(c.Param("challenge_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	var submissionCount int64
	database.DB.Model(&models.Submission{}).Where("challenge_id = ?", challenge.ID).Count(&submissionCount)
	if submissionCount > 0 {
		response.Error(c, http.StatusBadRequest,
			fmt.Sprintf("Cannot delete challenge with %d submissions. Consider unpublishing instead.", submissionCount))
		return
	}

	if err := database.DB.Delete(&challenge).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete challenge")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted successfully"})
}

// GetAllChallenges lists every challenge, including unpublished ones
// @Summary List All Challenges
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Security Bearer
// @Router /admin/challenges [get]
func GetAllChallenges(c *gin.Context) {
	pagination := utils.GetPagination(c, 20, 100)

	var total int64
	if err := database.DB.Model(&models.Challenge{}).Count(&total).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch challenges")
		return
	}

	var challenges []models.Challenge
	if err := database.DB.Preload("Category").
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PerPage).
		Find(&challenges).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch challenges")
		return
	}

	out := make([]map[string]interface{}, 0, len(challenges))
	for i := range challenges {
		out = append(out, challenges[i].ToDict(true))
	}

	c.JSON(http.StatusOK, gin.H{
		"challenges": out,
		"pagination": pagination.Meta(total),
	})
}
