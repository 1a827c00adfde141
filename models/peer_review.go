package models

import (
	"time"
)

// PeerReview is a structured evaluation one group member submits about
// another. Reviewer and reviewee are referenced by NetID, not surrogate id.
type PeerReview struct {
	ID          int       `gorm:"primaryKey;column:id" json:"id"`
	ReviewerID  string    `gorm:"column:reviewer_id;size:64;index" json:"reviewer_id"`
	RevieweeID  string    `gorm:"column:reviewee_id;size:64;index" json:"reviewee_id"`
	StartDate   time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate     time.Time `gorm:"column:end_date" json:"end_date"`
	SubmittedAt time.Time `gorm:"column:submitted_at" json:"submitted_at"`

	Reviewer User               `gorm:"foreignKey:ReviewerID;references:NetID" json:"-"`
	Reviewee User               `gorm:"foreignKey:RevieweeID;references:NetID" json:"-"`
	Answers  []PeerReviewAnswer `gorm:"foreignKey:PeerReviewID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (PeerReview) TableName() string {
	return "peer_reviews"
}

// PeerReviewQuestion is an admin-managed catalog entry answered in reviews.
type PeerReviewQuestion struct {
	ID           int    `gorm:"primaryKey;column:id" json:"id"`
	QuestionText string `gorm:"column:question_text" json:"question_text"`
}

func (PeerReviewQuestion) TableName() string {
	return "peer_review_questions"
}

// PeerReviewAnswer belongs to exactly one review and references one catalog
// question. The question FK is RESTRICT so deleting a question cannot
// silently orphan submitted answers.
type PeerReviewAnswer struct {
	ID                   int    `gorm:"primaryKey;column:id" json:"id"`
	PeerReviewID         int    `gorm:"column:peer_review_id;index" json:"peer_review_id"`
	PeerReviewQuestionID int    `gorm:"column:peer_review_question_id" json:"peer_review_question_id"`
	NumericalFeedback    int    `gorm:"column:numerical_feedback" json:"numerical_feedback"`
	WrittenFeedback      string `gorm:"column:written_feedback" json:"written_feedback"`

	PeerReview PeerReview         `gorm:"foreignKey:PeerReviewID" json:"-"`
	Question   PeerReviewQuestion `gorm:"foreignKey:PeerReviewQuestionID;constraint:OnDelete:RESTRICT" json:"question,omitempty"`
}

func (PeerReviewAnswer) TableName() string {
	return "peer_review_answers"
}
