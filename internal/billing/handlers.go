// Package billing implements the mocked payment endpoint. No real payment
// provider is involved; selecting a plan just updates the account record.
package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/api"
	"github.com/sessionly/sessionly/internal/auth"
	"github.com/sessionly/sessionly/internal/models"
)

type fakePaymentRequest struct {
	Plan api.Plan `json:"plan" binding:"required"`
}

// FakePaymentHandler switches the caller's plan and returns the updated
// account record.
func FakePaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req fakePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Plan is required"})
			return
		}
		if req.Plan != api.PlanFree && req.Plan != api.PlanPro {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", auth.UserID(c)).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		user.Plan = string(req.Plan)
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Payment accepted", "user": user.API()})
	}
}
