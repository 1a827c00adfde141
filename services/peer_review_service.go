package services

import (
	"errors"
	"time"

	"time-tracker-api/models"

	"gorm.io/gorm"
)

// PeerReviewService creates and serves peer reviews. Creation is gated on
// reviewer/reviewee group co-membership and persists the review together
// with all of its answers in a single transaction.
type PeerReviewService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPeerReviewService(db *gorm.DB) *PeerReviewService {
	return &PeerReviewService{db: db, now: time.Now}
}

// AnswerInput is one submitted answer referencing a catalog question.
type AnswerInput struct {
	QuestionID        int    `json:"peer_review_question_id"`
	NumericalFeedback int    `json:"numerical_feedback"`
	WrittenFeedback   string `json:"written_feedback"`
}

// SameGroup reports whether two users share a group. Both being ungrouped
// (group 0) counts as the same group; that mirrors the original system and
// is flagged as questionable in DESIGN.md.
func SameGroup(a, b *models.User) bool {
	return a.Group == b.Group
}

// Create validates the reviewee and group co-membership, then persists the
// review plus all answers atomically. Any unknown question reference aborts
// the whole submission; nothing is left behind.
func (s *PeerReviewService) Create(reviewer *models.User, revieweeNetID string, startDate, endDate time.Time, answers []AnswerInput) (*models.PeerReview, error) {
	if len(answers) == 0 {
		return nil, validationErrorf("no answers provided")
	}

	var reviewee models.User
	if err := s.db.Where("net_id = ?", revieweeNetID).First(&reviewee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !SameGroup(reviewer, &reviewee) {
		return nil, ErrDifferentGroups
	}

	review := models.PeerReview{
		ReviewerID:  reviewer.NetID,
		RevieweeID:  reviewee.NetID,
		StartDate:   startDate,
		EndDate:     endDate,
		SubmittedAt: s.now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		rows := make([]models.PeerReviewAnswer, 0, len(answers))
		for _, answer := range answers {
			var question models.PeerReviewQuestion
			if err := tx.First(&question, answer.QuestionID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return validationErrorf("peer review question %d not found", answer.QuestionID)
				}
				return err
			}
			rows = append(rows, models.PeerReviewAnswer{
				PeerReviewQuestionID: question.ID,
				NumericalFeedback:    answer.NumericalFeedback,
				WrittenFeedback:      answer.WrittenFeedback,
			})
		}

		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].PeerReviewID = review.ID
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		review.Answers = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ByID returns a review with its answers, their question text and both user
// records preloaded.
func (s *PeerReviewService) ByID(id int) (*models.PeerReview, error) {
	var review models.PeerReview
	err := s.db.
		Preload("Answers").
		Preload("Answers.Question").
		Preload("Reviewer").
		Preload("Reviewee").
		First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// Delete removes a review and its answers. Only the reviewer who submitted
// it may delete it.
func (s *PeerReviewService) Delete(callerNetID string, id int) error {
	var review models.PeerReview
	if err := s.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if review.ReviewerID != callerNetID {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("peer_review_id = ?", id).
			Delete(&models.PeerReviewAnswer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PeerReview{}, id).Error
	})
}

// ListBetween returns every review a reviewer has submitted about a
// reviewee, newest first. An empty slice is a valid result, not an error.
func (s *PeerReviewService) ListBetween(reviewerNetID, revieweeNetID string) ([]models.PeerReview, error) {
	var reviews []models.PeerReview
	err := s.db.
		Preload("Answers").
		Preload("Answers.Question").
		Preload("Reviewer").
		Preload("Reviewee").
		Where("reviewer_id = ? AND reviewee_id = ?", reviewerNetID, revieweeNetID).
		Order("submitted_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// Questions returns the full question catalog.
func (s *PeerReviewService) Questions() ([]models.PeerReviewQuestion, error) {
	var questions []models.PeerReviewQuestion
	err := s.db.Order("id ASC").Find(&questions).Error
	return questions, err
}

// QuestionByID fetches one catalog question, ErrNotFound when absent.
func (s *PeerReviewService) QuestionByID(id int) (*models.PeerReviewQuestion, error) {
	var question models.PeerReviewQuestion
	if err := s.db.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// CreateQuestion adds a catalog question.
func (s *PeerReviewService) CreateQuestion(questionText string) (*models.PeerReviewQuestion, error) {
	if questionText == "" {
		return nil, validationErrorf("question text is required")
	}
	question := models.PeerReviewQuestion{QuestionText: questionText}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// DeleteQuestion removes a catalog question. Questions referenced by
// submitted answers are kept (the FK is RESTRICT) and reported as a
// forbidden deletion.
func (s *PeerReviewService) DeleteQuestion(id int) error {
	var count int64
	if err := s.db.Model(&models.PeerReviewAnswer{}).
		Where("peer_review_question_id = ?", id).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrForbidden
	}

	result := s.db.Delete(&models.PeerReviewQuestion{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
