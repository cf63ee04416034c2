// Package sessions implements the therapy session endpoints. Creating a
// session assigns a per-user monotonic number and creates any attached
// homework items in the same transaction.
package sessions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/api"
	"github.com/sessionly/sessionly/internal/auth"
	"github.com/sessionly/sessionly/internal/models"
)

func validMood(n int) bool {
	return n >= 1 && n <= 10
}

// ListSessionsHandler lists the caller's sessions, newest first.
func ListSessionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []models.Session
		err := db.Where("user_id = ?", auth.UserID(c)).Order("date DESC").Find(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sessions"})
			return
		}

		out := make([]api.Session, 0, len(rows))
		for i := range rows {
			out = append(out, rows[i].API())
		}
		c.JSON(http.StatusOK, gin.H{"sessions": out})
	}
}

// CreateSessionHandler creates a session and its homework items atomically.
// The session number is max+1 for the user, read inside the transaction so
// concurrent creates cannot collide.
func CreateSessionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in api.CreateSessionInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if in.Date.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
			return
		}
		if !validMood(in.PostMood) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mood must be between 1 and 10"})
			return
		}

		userID := auth.UserID(c)
		session := models.Session{
			UserID:       userID,
			Date:         in.Date,
			WhatStoodOut: in.WhatStoodOut,
			PostMood:     in.PostMood,
			MoodWord:     in.MoodWord,
			Completed:    in.Completed,
		}
		if err := session.SetTopics(in.Topics); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topics"})
			return
		}
		if err := session.SetPrepItems(in.PrepItems); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prep items"})
			return
		}

		items := make([]models.HomeworkItem, 0, len(in.HomeworkItems))
		err := db.Transaction(func(tx *gorm.DB) error {
			var maxNumber int
			row := tx.Model(&models.Session{}).
				Where("user_id = ?", userID).
				Select("COALESCE(MAX(number), 0)").
				Row()
			if err := row.Scan(&maxNumber); err != nil {
				return err
			}
			session.Number = maxNumber + 1

			if err := tx.Create(&session).Error; err != nil {
				return err
			}

			for _, draft := range in.HomeworkItems {
				item := models.HomeworkItem{
					UserID:      userID,
					SessionID:   &session.ID,
					Text:        draft.Text,
					SessionDate: session.Date,
					DueDate:     draft.DueDate,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				items = append(items, item)
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		outItems := make([]api.HomeworkItem, 0, len(items))
		for i := range items {
			outItems = append(outItems, items[i].API())
		}
		c.JSON(http.StatusCreated, gin.H{"session": session.API(), "homeworkItems": outItems})
	}
}

// UpdateSessionHandler applies a partial update to a session.
func UpdateSessionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch api.SessionPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if patch.PostMood != nil && !validMood(*patch.PostMood) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mood must be between 1 and 10"})
			return
		}

		var session models.Session
		err := db.Where("user_id = ?", auth.UserID(c)).First(&session, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}

		if patch.Date != nil {
			session.Date = *patch.Date
		}
		if patch.Topics != nil {
			if err := session.SetTopics(patch.Topics); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topics"})
				return
			}
		}
		if patch.WhatStoodOut != nil {
			session.WhatStoodOut = *patch.WhatStoodOut
		}
		if patch.PrepItems != nil {
			if err := session.SetPrepItems(patch.PrepItems); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prep items"})
				return
			}
		}
		if patch.PostMood != nil {
			session.PostMood = *patch.PostMood
		}
		if patch.MoodWord != nil {
			session.MoodWord = *patch.MoodWord
		}
		if patch.Completed != nil {
			session.Completed = *patch.Completed
		}

		if err := db.Save(&session).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"session": session.API()})
	}
}
