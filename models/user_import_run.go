package models

import (
	"time"
)

// UserImportRun records one bulk roster upload for auditing: how many rows
// were created, how many were skipped (duplicates or malformed lines), and
// the batch id returned to the admin who triggered it.
type UserImportRun struct {
	ID        int       `gorm:"primaryKey;column:id" json:"id"`
	BatchID   string    `gorm:"column:batch_id;size:36;uniqueIndex" json:"batch_id"`
	FileName  string    `gorm:"column:file_name" json:"file_name"`
	Imported  int       `gorm:"column:imported" json:"imported"`
	Skipped   int       `gorm:"column:skipped" json:"skipped"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (UserImportRun) TableName() string {
	return "user_import_runs"
}
