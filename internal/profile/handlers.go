// Package profile implements the settings endpoints. One profile row exists
// per account; PUT replaces the whole record.
package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/api"
	"github.com/sessionly/sessionly/internal/auth"
	"github.com/sessionly/sessionly/internal/models"
)

// GetProfileHandler returns the caller's settings, creating the row with
// defaults if signup predates a schema addition.
func GetProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.UserID(c)
		var row models.Profile
		err := db.Where("user_id = ?", userID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.Profile{UserID: userID}
			err = db.Create(&row).Error
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"profile": row.API()})
	}
}

// UpdateProfileHandler replaces the settings record with the request body.
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in api.Profile
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		userID := auth.UserID(c)
		var row models.Profile
		err := db.Where("user_id = ?", userID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.Profile{UserID: userID}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
			return
		}

		row.ApplyAPI(in)
		if err := db.Save(&row).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"profile": row.API()})
	}
}
