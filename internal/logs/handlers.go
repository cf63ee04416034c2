// Package logs implements the log entry endpoints: the between-session
// moments a user captures, partitioned into an active view and an archive.
package logs

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/api"
	"github.com/sessionly/sessionly/internal/auth"
	"github.com/sessionly/sessionly/internal/models"
)

func validEntryType(t api.EntryType) bool {
	switch t {
	case api.EntryTrigger, api.EntryEvent, api.EntryThought, api.EntryWin:
		return true
	}
	return false
}

func validIntensity(n int) bool {
	return n >= 1 && n <= 5
}

// ListLogsHandler lists the caller's entries for a view partition,
// newest first. view=active is the default.
func ListLogsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("user_id = ?", auth.UserID(c)).Order("created_at DESC")
		switch api.LogView(c.DefaultQuery("view", string(api.ViewActive))) {
		case api.ViewActive:
			query = query.Where("is_archived = ?", false)
		case api.ViewArchive:
			query = query.Where("is_archived = ?", true)
		case api.ViewAll:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view"})
			return
		}

		var entries []models.LogEntry
		if err := query.Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load logs"})
			return
		}

		out := make([]api.LogEntry, 0, len(entries))
		for i := range entries {
			out = append(out, entries[i].API())
		}
		c.JSON(http.StatusOK, gin.H{"logs": out})
	}
}

// CreateLogHandler creates an entry owned by the caller.
func CreateLogHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in api.CreateLogInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if in.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
			return
		}
		if !validEntryType(in.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry type"})
			return
		}
		if !validIntensity(in.Intensity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Intensity must be between 1 and 5"})
			return
		}

		entry := models.LogEntry{
			UserID:      auth.UserID(c),
			Text:        in.Text,
			Type:        string(in.Type),
			Intensity:   in.Intensity,
			AddedToPrep: in.AddedToPrep,
			PrepNote:    in.PrepNote,
			CheckedOff:  in.CheckedOff,
		}
		if err := db.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create log"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"log": entry.API()})
	}
}

// UpdateLogHandler applies a partial update. Archiving an entry stamps
// ArchivedAt; unarchiving clears it.
func UpdateLogHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch api.LogPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if patch.Type != nil && !validEntryType(*patch.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry type"})
			return
		}
		if patch.Intensity != nil && !validIntensity(*patch.Intensity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Intensity must be between 1 and 5"})
			return
		}

		var entry models.LogEntry
		err := db.Where("user_id = ?", auth.UserID(c)).First(&entry, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Log not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load log"})
			return
		}

		if patch.Text != nil {
			entry.Text = *patch.Text
		}
		if patch.Type != nil {
			entry.Type = string(*patch.Type)
		}
		if patch.Intensity != nil {
			entry.Intensity = *patch.Intensity
		}
		if patch.AddedToPrep != nil {
			entry.AddedToPrep = *patch.AddedToPrep
			if !entry.AddedToPrep {
				entry.PrepNote = ""
				entry.CheckedOff = false
			}
		}
		if patch.PrepNote != nil {
			entry.PrepNote = *patch.PrepNote
		}
		if patch.CheckedOff != nil {
			entry.CheckedOff = *patch.CheckedOff
		}
		if patch.IsArchived != nil && *patch.IsArchived != entry.IsArchived {
			entry.IsArchived = *patch.IsArchived
			if entry.IsArchived {
				now := time.Now()
				entry.ArchivedAt = &now
			} else {
				entry.ArchivedAt = nil
			}
		}

		if err := db.Save(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update log"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"log": entry.API()})
	}
}

// DeleteLogHandler deletes an entry owned by the caller.
func DeleteLogHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("user_id = ?", auth.UserID(c)).Delete(&models.LogEntry{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete log"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Log not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
