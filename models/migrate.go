package models

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the API uses, including the
// unique (user_id, week_start) index on time logs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&TimeLog{},
		&TimeLogEntry{},
		&PeerReviewQuestion{},
		&PeerReview{},
		&PeerReviewAnswer{},
		&UserImportRun{},
	)
}
