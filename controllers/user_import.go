package controllers

import (
	"net/http"

	"time-tracker-api/config"
	"time-tracker-api/services"

	"github.com/gin-gonic/gin"
)

// ImportUsers ingests a tab-separated roster file (admin only). The form
// field must be named "file".
func ImportUsers(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read uploaded file"})
		return
	}
	defer file.Close()

	svc := services.NewUserService(config.DB)
	summary, err := svc.ImportFromReader(file, fileHeader.Filename)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users imported successfully",
		"import":  summary,
	})
}
