package controllers

import (
	"net/http"
	"strconv"
	"time"

	"time-tracker-api/config"
	"time-tracker-api/middleware"
	"time-tracker-api/services"

	"github.com/gin-gonic/gin"
)

// TimeLogEntryRequest is the payload for creating or updating an entry.
// Duration is never accepted from the client; it is derived from the range.
type TimeLogEntryRequest struct {
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Description string    `json:"description" binding:"required"`
}

// GetMyTimeLogs lists every weekly log the caller owns
func GetMyTimeLogs(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
		return
	}

	svc := services.NewTimeLogService(config.DB)
	logs, err := svc.LogsForUser(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GetCurrentTimeLog returns the caller's log for the current week, creating
// it on first use
func GetCurrentTimeLog(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
		return
	}

	svc := services.NewTimeLogService(config.DB)
	log, err := svc.GetOrCreateCurrentWeekLog(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// GetTimeLog returns one weekly log, provided the caller owns it
func GetTimeLog(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time log id"})
		return
	}

	svc := services.NewTimeLogService(config.DB)
	log, err := svc.LogByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if log.UserID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Time log not found"})
		return
	}
	c.JSON(http.StatusOK, log)
}

// AddTimeLogEntry appends an entry to the caller's current weekly log
func AddTimeLogEntry(c *gin.Context) {
	var req TimeLogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
		return
	}

	svc := services.NewTimeLogService(config.DB)
	entry, err := svc.AddEntryForCurrentWeek(user.ID, req.StartTime, req.EndTime, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Time log entry added for the current week",
		"entry":   entry,
	})
}

// GetTimeLogEntries lists a log's entries in insertion order, provided the
// caller owns the log
func GetTimeLogEntries(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time log id"})
		return
	}

	svc := services.NewTimeLogService(config.DB)
	log, err := svc.LogByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if log.UserID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Time log not found"})
		return
	}

	entries, err := svc.EntriesForLog(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// UpdateTimeLogEntry rewrites one of the caller's entries
func UpdateTimeLogEntry(c *gin.Context) {
	var req TimeLogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return
	}

	svc := services.NewTimeLogService(config.DB)
	entry, err := svc.EntryByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if entry.TimeLog.UserID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Time log entry not found"})
		return
	}

	if err := svc.UpdateEntry(id, req.StartTime, req.EndTime, req.Description); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time log entry updated"})
}

// DeleteTimeLogEntry removes one of the caller's entries
func DeleteTimeLogEntry(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return
	}

	svc := services.NewTimeLogService(config.DB)
	entry, err := svc.EntryByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if entry.TimeLog.UserID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Time log entry not found"})
		return
	}

	if err := svc.DeleteEntry(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time log entry deleted"})
}
