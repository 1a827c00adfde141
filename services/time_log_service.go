package services

import (
	"errors"
	"time"

	"time-tracker-api/models"

	"gorm.io/gorm"
)

// TimeLogService buckets logged work into per-user weekly logs and manages
// the entries inside them.
type TimeLogService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTimeLogService(db *gorm.DB) *TimeLogService {
	return &TimeLogService{db: db, now: time.Now}
}

// StartOfWeek returns the most recent Sunday at or before t, truncated to
// midnight in t's location. All week bucketing derives from this value.
func StartOfWeek(t time.Time) time.Time {
	t = t.AddDate(0, 0, -int(t.Weekday()))
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekTitle formats the human-readable title stored on a weekly log.
func WeekTitle(weekStart time.Time) string {
	return "Weekly Log for " + weekStart.Format("January 02, 2006")
}

// GetOrCreateCurrentWeekLog returns the user's log for the current week,
// creating it on first use. The (user_id, week_start) unique index backs the
// at-most-one-per-week invariant: if a concurrent request wins the insert,
// the duplicate-key failure is resolved by re-reading the winner's row.
func (s *TimeLogService) GetOrCreateCurrentWeekLog(userID int) (*models.TimeLog, error) {
	weekStart := StartOfWeek(s.now())

	var log models.TimeLog
	err := s.db.Where("user_id = ? AND week_start = ?", userID, weekStart).First(&log).Error
	if err == nil {
		return &log, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	log = models.TimeLog{
		UserID:    userID,
		Title:     WeekTitle(weekStart),
		WeekStart: weekStart,
		CreatedAt: s.now(),
	}
	if createErr := s.db.Create(&log).Error; createErr != nil {
		// Lost the race: another request created this week's log between
		// the lookup and the insert. Return that row instead.
		var existing models.TimeLog
		if retryErr := s.db.Where("user_id = ? AND week_start = ?", userID, weekStart).
			First(&existing).Error; retryErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &log, nil
}

// AddEntryForCurrentWeek validates the time range, derives the duration in
// whole minutes and appends an entry to the caller's current weekly log.
func (s *TimeLogService) AddEntryForCurrentWeek(userID int, startTime, endTime time.Time, description string) (*models.TimeLogEntry, error) {
	duration, err := entryDuration(startTime, endTime)
	if err != nil {
		return nil, err
	}

	log, err := s.GetOrCreateCurrentWeekLog(userID)
	if err != nil {
		return nil, err
	}

	entry := models.TimeLogEntry{
		TimeLogID:   log.ID,
		StartTime:   startTime,
		EndTime:     endTime,
		Duration:    duration,
		Description: description,
		CreatedAt:   s.now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// LogsForUser returns every weekly log the user owns, newest week first.
func (s *TimeLogService) LogsForUser(userID int) ([]models.TimeLog, error) {
	var logs []models.TimeLog
	err := s.db.Where("user_id = ?", userID).
		Order("week_start DESC").
		Find(&logs).Error
	return logs, err
}

// LogByID fetches a single weekly log, ErrNotFound when absent.
func (s *TimeLogService) LogByID(id int) (*models.TimeLog, error) {
	var log models.TimeLog
	if err := s.db.First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// EntriesForLog lists a log's entries in insertion order.
func (s *TimeLogService) EntriesForLog(timeLogID int) ([]models.TimeLogEntry, error) {
	var entries []models.TimeLogEntry
	err := s.db.Where("time_log_id = ?", timeLogID).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

// EntryByID fetches an entry with its parent log preloaded so callers can
// check ownership before mutating it.
func (s *TimeLogService) EntryByID(id int) (*models.TimeLogEntry, error) {
	var entry models.TimeLogEntry
	if err := s.db.Preload("TimeLog").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// UpdateEntry rewrites an entry's time range and description, re-deriving
// the duration. Ownership must already have been checked via EntryByID.
func (s *TimeLogService) UpdateEntry(id int, startTime, endTime time.Time, description string) error {
	duration, err := entryDuration(startTime, endTime)
	if err != nil {
		return err
	}

	result := s.db.Model(&models.TimeLogEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"start_time":  startTime,
			"end_time":    endTime,
			"duration":    duration,
			"description": description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEntry removes an entry by id.
func (s *TimeLogService) DeleteEntry(id int) error {
	result := s.db.Delete(&models.TimeLogEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func entryDuration(startTime, endTime time.Time) (int, error) {
	if endTime.Before(startTime) {
		return 0, validationErrorf("end time must not be before start time")
	}
	return int(endTime.Sub(startTime).Minutes()), nil
}
