package controllers

import (
	"net/http"
	"strconv"

	"time-tracker-api/config"
	"time-tracker-api/services"
	"time-tracker-api/utils"

	"github.com/gin-gonic/gin"
)

type PeerReviewQuestionRequest struct {
	QuestionText string `json:"question_text" binding:"required"`
}

// GetPeerReviewQuestions lists the question catalog
func GetPeerReviewQuestions(c *gin.Context) {
	svc := services.NewPeerReviewService(config.DB)
	questions, err := svc.Questions()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetPeerReviewQuestion returns one catalog question
func GetPeerReviewQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	svc := services.NewPeerReviewService(config.DB)
	question, err := svc.QuestionByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// CreatePeerReviewQuestion adds a catalog question (admin only)
func CreatePeerReviewQuestion(c *gin.Context) {
	var req PeerReviewQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewPeerReviewService(config.DB)
	question, err := svc.CreateQuestion(utils.SanitizeInput(req.QuestionText))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// DeletePeerReviewQuestion removes an unused catalog question (admin only).
// Questions already answered in submitted reviews cannot be deleted.
func DeletePeerReviewQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	svc := services.NewPeerReviewService(config.DB)
	if err := svc.DeleteQuestion(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}
