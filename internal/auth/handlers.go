package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/api"
	"github.com/sessionly/sessionly/internal/models"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandleSignup creates an account with its settings row and returns a token.
func HandleSignup(db *gorm.DB, tokens *TokenManager, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if !strings.Contains(req.Email, "@") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			return
		}
		if len(req.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		user := models.User{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: string(hash),
			Plan:         string(api.PlanFree),
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			profile := models.Profile{UserID: user.ID, DisplayName: req.Name}
			return tx.Create(&profile).Error
		})
		if err != nil {
			var exists models.User
			if db.Where("email = ?", req.Email).First(&exists).Error == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
				return
			}
			log.Error("signup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		token, err := tokens.Generate(user.ID)
		if err != nil {
			log.Error("token generation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		log.Info("account created", "user_id", user.ID)
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user.API()})
	}
}

// HandleLogin verifies credentials and returns a fresh token.
func HandleLogin(db *gorm.DB, tokens *TokenManager, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		var user models.User
		err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err != nil {
			log.Error("login lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := tokens.Generate(user.ID)
		if err != nil {
			log.Error("token generation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user.API()})
	}
}

// HandleMe returns the account record of the token holder. Clients call this
// on startup to validate a persisted token.
func HandleMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", UserID(c)).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.API()})
	}
}

// HandleDeleteAccount removes the account and all of its data.
func HandleDeleteAccount(db *gorm.DB, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, model := range []any{
				&models.LogEntry{}, &models.HomeworkItem{}, &models.Session{}, &models.Profile{},
			} {
				if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&models.User{}, "id = ?", userID).Error
		})
		if err != nil {
			log.Error("account deletion failed", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}

		log.Info("account deleted", "user_id", userID)
		c.Status(http.StatusNoContent)
	}
}
