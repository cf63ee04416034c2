package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/api"
)

// HomeworkItem is a therapist-assigned task. CompletedDate is set and cleared
// together with Completed. Text is stored encrypted.
type HomeworkItem struct {
	ID            string  `gorm:"primaryKey;type:uuid"`
	UserID        string  `gorm:"type:uuid;not null;index"`
	SessionID     *string `gorm:"type:uuid;index"`
	Text          string  `gorm:"type:text;not null"`
	SessionDate   time.Time
	DueDate       *time.Time
	Completed     bool `gorm:"not null;default:false"`
	CompletedDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (h *HomeworkItem) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

func (h *HomeworkItem) BeforeSave(tx *gorm.DB) error {
	return encryptField(&h.Text)
}

func (h *HomeworkItem) AfterFind(tx *gorm.DB) error {
	return decryptField(&h.Text)
}

func (h *HomeworkItem) AfterSave(tx *gorm.DB) error {
	return decryptField(&h.Text)
}

func (h *HomeworkItem) API() api.HomeworkItem {
	return api.HomeworkItem{
		ID:            h.ID,
		SessionID:     h.SessionID,
		Text:          h.Text,
		SessionDate:   h.SessionDate,
		DueDate:       h.DueDate,
		Completed:     h.Completed,
		CompletedDate: h.CompletedDate,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}
