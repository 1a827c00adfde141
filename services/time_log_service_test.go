package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestStartOfWeekIsIdempotent(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, time.September, 16, 22, 2, 21, 0, time.UTC),  // Monday
		time.Date(2024, time.October, 26, 3, 30, 0, 0, time.UTC),     // Saturday
		time.Date(2024, time.October, 27, 0, 0, 0, 0, time.UTC),      // Sunday midnight
		time.Date(2024, time.December, 31, 23, 59, 59, 0, time.Local), // Tuesday, year end
	}

	for _, d := range dates {
		once := StartOfWeek(d)
		twice := StartOfWeek(once)
		if !once.Equal(twice) {
			t.Errorf("StartOfWeek not idempotent for %v: %v != %v", d, once, twice)
		}
	}
}

func TestStartOfWeekSameForWholeWeek(t *testing.T) {
	// Sunday 2024-10-20 through Saturday 2024-10-26 share one bucket.
	sunday := time.Date(2024, time.October, 20, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 7; day++ {
		d := sunday.AddDate(0, 0, day).Add(13*time.Hour + 45*time.Minute)
		got := StartOfWeek(d)
		if !got.Equal(sunday) {
			t.Errorf("day %d: StartOfWeek(%v) = %v, want %v", day, d, got, sunday)
		}
	}

	nextSunday := sunday.AddDate(0, 0, 7)
	if got := StartOfWeek(nextSunday.Add(time.Hour)); !got.Equal(nextSunday) {
		t.Errorf("next week leaked into previous bucket: %v", got)
	}
}

func TestStartOfWeekTruncatesToMidnight(t *testing.T) {
	d := time.Date(2024, time.October, 23, 17, 12, 9, 123, time.UTC) // Wednesday
	got := StartOfWeek(d)

	if got.Weekday() != time.Sunday {
		t.Fatalf("expected a Sunday, got %v", got.Weekday())
	}
	h, m, s := got.Clock()
	if h != 0 || m != 0 || s != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestWeekTitleFormat(t *testing.T) {
	weekStart := time.Date(2024, time.October, 20, 0, 0, 0, 0, time.UTC)
	if got, want := WeekTitle(weekStart), "Weekly Log for October 20, 2024"; got != want {
		t.Fatalf("WeekTitle = %q, want %q", got, want)
	}
}

func TestGetOrCreateCurrentWeekLogReturnsSameLogTwice(t *testing.T) {
	now := time.Date(2024, time.October, 23, 10, 0, 0, 0, time.UTC)
	weekStart := StartOfWeek(now)

	selectPattern := regexp.MustCompile("SELECT .* FROM .time_logs. WHERE user_id = \\? AND week_start = \\?")
	logColumns := []string{"id", "user_id", "title", "week_start", "created_at"}
	logRow := []driver.Value{int64(7), int64(42), WeekTitle(weekStart), weekStart, now}

	steps := []*queryStep{
		{kind: kindQuery, pattern: selectPattern, columns: logColumns, rows: [][]driver.Value{}},
		{kind: kindExec, pattern: regexp.MustCompile("INSERT INTO .time_logs."), result: scriptedResult{lastInsertID: 7, rowsAffected: 1}},
		{kind: kindQuery, pattern: selectPattern, columns: logColumns, rows: [][]driver.Value{logRow}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewTimeLogService(db)
	svc.now = func() time.Time { return now }

	first, err := svc.GetOrCreateCurrentWeekLog(42)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := svc.GetOrCreateCurrentWeekLog(42)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if first.ID != 7 || second.ID != 7 {
		t.Fatalf("expected both calls to yield log 7, got %d and %d", first.ID, second.ID)
	}
	if !first.WeekStart.Equal(weekStart) {
		t.Fatalf("created log has week start %v, want %v", first.WeekStart, weekStart)
	}
	if first.Title != "Weekly Log for October 20, 2024" {
		t.Fatalf("unexpected title %q", first.Title)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestGetOrCreateCurrentWeekLogRecoversFromLostInsertRace(t *testing.T) {
	now := time.Date(2024, time.October, 23, 10, 0, 0, 0, time.UTC)
	weekStart := StartOfWeek(now)

	selectPattern := regexp.MustCompile("SELECT .* FROM .time_logs. WHERE user_id = \\? AND week_start = \\?")
	logColumns := []string{"id", "user_id", "title", "week_start", "created_at"}

	steps := []*queryStep{
		{kind: kindQuery, pattern: selectPattern, columns: logColumns, rows: [][]driver.Value{}},
		{kind: kindExec, pattern: regexp.MustCompile("INSERT INTO .time_logs."),
			err: errors.New("Error 1062 (23000): Duplicate entry '42-2024-10-20' for key 'idx_time_logs_user_week'")},
		{kind: kindQuery, pattern: selectPattern, columns: logColumns,
			rows: [][]driver.Value{{int64(3), int64(42), WeekTitle(weekStart), weekStart, now}}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewTimeLogService(db)
	svc.now = func() time.Time { return now }

	log, err := svc.GetOrCreateCurrentWeekLog(42)
	if err != nil {
		t.Fatalf("expected race to be recovered, got %v", err)
	}
	if log.ID != 3 {
		t.Fatalf("expected the concurrent winner's log 3, got %d", log.ID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAddEntryRejectsInvalidTimeRange(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewTimeLogService(db)

	start := time.Date(2024, time.October, 23, 10, 0, 0, 0, time.UTC)
	end := start.Add(-time.Minute)

	_, err := svc.AddEntryForCurrentWeek(42, start, end, "worked backwards")
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Nothing may touch the database on a rejected range.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAddEntryDerivesDurationInMinutes(t *testing.T) {
	now := time.Date(2024, time.October, 23, 11, 0, 0, 0, time.UTC)
	weekStart := StartOfWeek(now)

	logColumns := []string{"id", "user_id", "title", "week_start", "created_at"}
	steps := []*queryStep{
		{kind: kindQuery, pattern: regexp.MustCompile("SELECT .* FROM .time_logs."),
			columns: logColumns,
			rows:    [][]driver.Value{{int64(5), int64(42), WeekTitle(weekStart), weekStart, now}}},
		{kind: kindExec, pattern: regexp.MustCompile("INSERT INTO .time_log_entries."),
			result: scriptedResult{lastInsertID: 9, rowsAffected: 1}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewTimeLogService(db)
	svc.now = func() time.Time { return now }

	start := time.Date(2024, time.October, 23, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.October, 23, 10, 30, 0, 0, time.UTC)

	entry, err := svc.AddEntryForCurrentWeek(42, start, end, "lab work")
	if err != nil {
		t.Fatalf("AddEntryForCurrentWeek failed: %v", err)
	}

	if entry.Duration != 90 {
		t.Fatalf("expected 90 minute duration, got %d", entry.Duration)
	}
	if entry.TimeLogID != 5 {
		t.Fatalf("entry attached to log %d, want 5", entry.TimeLogID)
	}
	if entry.ID != 9 {
		t.Fatalf("expected inserted id 9, got %d", entry.ID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestUpdateEntryRejectsInvalidTimeRange(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewTimeLogService(db)

	start := time.Date(2024, time.October, 23, 10, 0, 0, 0, time.UTC)
	err := svc.UpdateEntry(9, start, start.Add(-time.Hour), "negative")
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestDeleteEntryNotFound(t *testing.T) {
	steps := []*queryStep{
		{kind: kindExec, pattern: regexp.MustCompile("DELETE FROM .time_log_entries."),
			result: scriptedResult{rowsAffected: 0}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewTimeLogService(db)
	if err := svc.DeleteEntry(404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
