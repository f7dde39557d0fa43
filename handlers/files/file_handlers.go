package files

import (
	"api/config"
	"api/database"
	"api/models"
	"api/utils/response"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Allowed file extensions for challenge attachments
var allowedExtensions = map[string]bool{
	"txt": true, "pdf": true, "doc": true, "docx": true, "xls": true,
	"xlsx": true, "ppt": true, "pptx": true,
	"zip": true, "rar": true, "7z": true, "tar": true, "gz": true, "bz2": true,
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true, "svg": true,
	"mp3": true, "mp4": true, "avi": true, "mov": true, "wav": true,
	"exe": true, "dll": true, "bin": true, "iso": true, "img": true,
	"log": true, "csv": true, "json": true, "xml": true, "html": true,
	"css": true, "js": true,
	"pcap": true, "cap": true, "pcapng": true, "wireshark": true,
	"sql": true, "db": true, "sqlite": true, "sqlite3": true,
}

func allowedFile(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return ext != "" && allowedExtensions[ext]
}

// safeFilename rejects anything but stored attachment names: alphanumerics
// plus dot, dash and underscore
func safeFilename(filename string) bool {
	if filename == "" {
		return false
	}
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// UploadFile stores a challenge attachment under a random filename
// @Summary Upload File
// @Description Upload a challenge attachment (admin only)
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param password formData string false "Archive password"
// @Success 201 {object} map[string]interface{}
// @Failure 400,403 {object} map[string]string
// @Security Bearer
// @Router /files/upload [post]
func UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No file provided")
		return
	}

	if file.Filename == "" {
		response.Error(c, http.StatusBadRequest, "No file selected")
		return
	}

	if !allowedFile(file.Filename) {
		response.Error(c, http.StatusBadRequest, "File type not allowed")
		return
	}

	password := c.PostForm("password")

	originalName := filepath.Base(file.Filename)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	storedName := strings.ReplaceAll(uuid.NewString(), "-", "") + "." + ext

	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	if err := c.SaveUploadedFile(file, filepath.Join(config.UploadDir, storedName)); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	sizeMB := float64(file.Size) / (1024 * 1024)

	c.JSON(http.StatusCreated, gin.H{
		"message": "File uploaded successfully",
		"file": models.Attachment{
			ID:         uuid.NewString(),
			Name:       originalName,
			Filename:   storedName,
			Size:       fmt.Sprintf("%.2f MB", sizeMB),
			Password:   password,
			UploadedAt: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// DownloadFile streams a stored attachment, restoring its original name
// @Summary Download File
// @Tags Files
// @Produce octet-stream
// @Param filename path string true "Stored filename"
// @Success 200 {file} binary
// @Failure 400,404 {object} map[string]string
// @Security Bearer
// @Router /files/download/{filename} [get]
func DownloadFile(c *gin.Context) {
	filename := c.Param("filename")
	if !safeFilename(filename) {
		response.Error(c, http.StatusBadRequest, "Invalid filename")
		return
	}

	path := filepath.Join(config.UploadDir, filename)
	if _, err := os.Stat(path); err != nil {
		response.Error(c, http.StatusNotFound, "File not found")
		return
	}

	downloadName := filename
	if attachment, _ := findAttachment(filename); attachment != nil && attachment.Name != "" {
		downloadName = attachment.Name
	}

	c.FileAttachment(path, downloadName)
}

// ListFiles returns every attachment referenced by a challenge
// @Summary List Files
// @Tags Files
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Security Bearer
// @Router /files/list [get]
func ListFiles(c *gin.Context) {
	var challenges []models.Challenge
	if err := database.DB.Find(&challenges).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list files")
		return
	}

	files := make([]map[string]interface{}, 0)
	for i := range challenges {
		for _, attachment := range challenges[i].FileAttachments {
			files = append(files, map[string]interface{}{
				"id":              attachment.ID,
				"name":            attachment.Name,
				"filename":        attachment.Filename,
				"size":            attachment.Size,
				"challenge_id":    challenges[i].ID,
				"challenge_title": challenges[i].Title,
				"uploaded_at":     attachment.UploadedAt,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

// DeleteFile removes an attachment from disk and from every challenge
// that references it
// @Summary Delete File
// @Tags Files
// @Produce json
// @Param filename path string true "Stored filename"
// @Success 200 {object} map[string]string
// @Failure 400,403,404 {object} map[string]string
// @Security Bearer
// @Router /files/delete/{filename} [delete]
func DeleteFile(c *gin.Context) {
	filename := c.Param("filename")
	if !safeFilename(filename) {
		response.Error(c, http.StatusBadRequest, "Invalid filename")
		return
	}

	path := filepath.Join(config.UploadDir, filename)
	if _, err := os.Stat(path); err != nil {
		response.Error(c, http.StatusNotFound, "File not found")
		return
	}

	if err := os.Remove(path); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	var challenges []models.Challenge
	if err := database.DB.Find(&challenges).Error; err == nil {
		for i := range challenges {
			attachments := challenges[i].FileAttachments
			kept := make(models.AttachmentList, 0, len(attachments))
			for _, attachment := range attachments {
				if attachment.Filename != filename {
					kept = append(kept, attachment)
				}
			}
			if len(kept) != len(attachments) {
				database.DB.Model(&challenges[i]).Update("file_attachments", kept)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

// findAttachment looks up an attachment record by its stored filename
func findAttachment(filename string) (*models.Attachment, *models.Challenge) {
	var challenges []models.Challenge
	if err := database.DB.Find(&challenges).Error; err != nil {
		return nil, nil
	}
	for i := range challenges {
		for j := range challenges[i].FileAttachments {
			if challenges[i].FileAttachments[j].Filename == filename {
				return &challenges[i].FileAttachments[j], &challenges[i]
			}
		}
	}
	return nil, nil
}
