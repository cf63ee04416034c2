// Package homework implements the homework item endpoints. The server owns
// the Completed/CompletedDate pairing: completing an item stamps the date,
// un-completing clears it.
package homework

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

// ListHomeworkHandler lists the caller's homework items, newest first.
func ListHomeworkHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []models.HomeworkItem
		err := db.Where("user_id = ?", auth.UserID(c)).Order("created_at DESC").Find(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load homework"})
			return
		}

		out := make([]api.HomeworkItem, 0, len(rows))
		for i := range rows {
			out = append(out, rows[i].API())
		}
		c.JSON(http.StatusOK, gin.H{"homework": out})
	}
}

// CreateHomeworkHandler creates a standalone homework item, optionally
// linked to an existing session.
func CreateHomeworkHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in api.CreateHomeworkInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if in.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
			return
		}

		item := models.HomeworkItem{
			UserID:      auth.UserID(c),
			Text:        in.Text,
			SessionDate: in.SessionDate,
			DueDate:     in.DueDate,
		}
		if in.SessionID != "" {
			var session models.Session
			err := db.Where("user_id = ?", item.UserID).First(&session, "id = ?", in.SessionID).Error
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Session not found"})
				return
			}
			item.SessionID = &session.ID
		}

		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create homework"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"homework": item.API()})
	}
}

// UpdateHomeworkHandler applies a partial update to a homework item.
func UpdateHomeworkHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch api.HomeworkPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		var item models.HomeworkItem
		err := db.Where("user_id = ?", auth.UserID(c)).First(&item, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Homework not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load homework"})
			return
		}

		if patch.Text != nil {
			item.Text = *patch.Text
		}
		if patch.DueDate != nil {
			item.DueDate = patch.DueDate
		}
		if patch.Completed != nil && *patch.Completed != item.Completed {
			item.Completed = *patch.Completed
			if item.Completed {
				now := time.Now()
				item.CompletedDate = &now
			} else {
				item.CompletedDate = nil
			}
		}

		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update homework"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"homework": item.API()})
	}
}

// DeleteHomeworkHandler deletes a homework item owned by the caller.
func DeleteHomeworkHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("user_id = ?", auth.UserID(c)).Delete(&models.HomeworkItem{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete homework"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Homework not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
