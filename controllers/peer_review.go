package controllers

import (
	"net/http"
	"strconv"
	"time"

	"time-tracker-api/config"
	"time-tracker-api/middleware"
	"time-tracker-api/models"
	"time-tracker-api/services"

	"github.com/gin-gonic/gin"
)

type PeerReviewRequest struct {
	RevieweeID string                 `json:"reviewee_id" binding:"required"`
	StartDate  time.Time              `json:"start_date" binding:"required"`
	EndDate    time.Time              `json:"end_date" binding:"required"`
	Answers    []services.AnswerInput `json:"answers" binding:"required"`
}

type peerReviewAnswerResponse struct {
	QuestionID        int    `json:"peer_review_question_id"`
	QuestionText      string `json:"question_text"`
	NumericalFeedback int    `json:"numerical_feedback"`
	WrittenFeedback   string `json:"written_feedback"`
}

type peerReviewResponse struct {
	ID           int                        `json:"id"`
	ReviewerID   string                     `json:"reviewer_id"`
	ReviewerName string                     `json:"reviewer_name"`
	RevieweeID   string                     `json:"reviewee_id"`
	RevieweeName string                     `json:"reviewee_name"`
	StartDate    time.Time                  `json:"start_date"`
	EndDate      time.Time                  `json:"end_date"`
	SubmittedAt  time.Time                  `json:"submitted_at"`
	Answers      []peerReviewAnswerResponse `json:"answers"`
}

func toPeerReviewResponse(review *models.PeerReview) peerReviewResponse {
	answers := make([]peerReviewAnswerResponse, 0, len(review.Answers))
	for _, answer := range review.Answers {
		answers = append(answers, peerReviewAnswerResponse{
			QuestionID:        answer.PeerReviewQuestionID,
			QuestionText:      answer.Question.QuestionText,
			NumericalFeedback: answer.NumericalFeedback,
			WrittenFeedback:   answer.WrittenFeedback,
		})
	}
	return peerReviewResponse{
		ID:           review.ID,
		ReviewerID:   review.ReviewerID,
		ReviewerName: review.Reviewer.FullName(),
		RevieweeID:   review.RevieweeID,
		RevieweeName: review.Reviewee.FullName(),
		StartDate:    review.StartDate,
		EndDate:      review.EndDate,
		SubmittedAt:  review.SubmittedAt,
		Answers:      answers,
	}
}

// GetPeerReview returns one review with its answers joined to question text
func GetPeerReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid peer review id"})
		return
	}

	svc := services.NewPeerReviewService(config.DB)
	review, err := svc.ByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPeerReviewResponse(review))
}

// CreatePeerReview submits a review of a groupmate. The authenticated caller
// is always the reviewer; the whole submission is rejected if the reviewee is
// in a different group or any answer references an unknown question.
func CreatePeerReview(c *gin.Context) {
	var req PeerReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
		return
	}

	svc := services.NewPeerReviewService(config.DB)
	review, err := svc.Create(user, req.RevieweeID, req.StartDate, req.EndDate, req.Answers)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Peer review submitted",
		"id":      review.ID,
	})
}

// DeletePeerReview removes a review; only its reviewer may do so
func DeletePeerReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid peer review id"})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
		return
	}

	svc := services.NewPeerReviewService(config.DB)
	if err := svc.Delete(user.NetID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Peer review deleted"})
}

// GetPeerReviewsBetween lists every review a reviewer submitted about a
// reviewee, newest first. Both users must exist; no reviews is an empty list.
func GetPeerReviewsBetween(c *gin.Context) {
	reviewerID := c.Param("reviewerId")
	revieweeID := c.Param("revieweeId")

	userSvc := services.NewUserService(config.DB)
	if _, err := userSvc.ByNetID(reviewerID); err != nil {
		respondServiceError(c, err)
		return
	}
	if _, err := userSvc.ByNetID(revieweeID); err != nil {
		respondServiceError(c, err)
		return
	}

	svc := services.NewPeerReviewService(config.DB)
	reviews, err := svc.ListBetween(reviewerID, revieweeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]peerReviewResponse, 0, len(reviews))
	for i := range reviews {
		response = append(response, toPeerReviewResponse(&reviews[i]))
	}
	c.JSON(http.StatusOK, response)
}
