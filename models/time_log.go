package models

import (
	"time"
)

// TimeLog is the per-user weekly container for logged work. WeekStart is the
// canonical Sunday-midnight boundary computed by the time log service; the
// composite unique index is what guarantees at most one log per user per week
// even when two requests race on the create path.
type TimeLog struct {
	ID        int       `gorm:"primaryKey;column:id" json:"id"`
	UserID    int       `gorm:"column:user_id;uniqueIndex:idx_time_logs_user_week" json:"user_id"`
	Title     string    `gorm:"column:title" json:"title"`
	WeekStart time.Time `gorm:"column:week_start;uniqueIndex:idx_time_logs_user_week" json:"week_start"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	User    User           `gorm:"foreignKey:UserID" json:"-"`
	Entries []TimeLogEntry `gorm:"foreignKey:TimeLogID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}

// TimeLogEntry is a single block of work inside a weekly log. Duration is
// always derived from StartTime/EndTime on the server; client-supplied
// durations are ignored.
type TimeLogEntry struct {
	ID          int       `gorm:"primaryKey;column:id" json:"id"`
	TimeLogID   int       `gorm:"column:time_log_id;index" json:"time_log_id"`
	StartTime   time.Time `gorm:"column:start_time" json:"start_time"`
	EndTime     time.Time `gorm:"column:end_time" json:"end_time"`
	Duration    int       `gorm:"column:duration" json:"duration"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	TimeLog TimeLog `gorm:"foreignKey:TimeLogID" json:"-"`
}

func (TimeLogEntry) TableName() string {
	return "time_log_entries"
}
