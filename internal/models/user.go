package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/api"
)

// User represents an account. Plan gates the monthly entry quota and the
// premium insight surfaces.
type User struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Name         string `gorm:"not null;default:''"`
	PasswordHash string `gorm:"not null" json:"-"`
	Plan         string `gorm:"not null;default:'FREE'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Associations
	LogEntries    []LogEntry     `gorm:"constraint:OnDelete:CASCADE;"`
	Sessions      []Session      `gorm:"constraint:OnDelete:CASCADE;"`
	HomeworkItems []HomeworkItem `gorm:"constraint:OnDelete:CASCADE;"`
	Profile       *Profile       `gorm:"constraint:OnDelete:CASCADE;"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// API converts to the wire representation. The password hash never leaves
// this package.
func (u *User) API() api.AuthUser {
	return api.AuthUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Plan:  api.Plan(u.Plan),
	}
}
