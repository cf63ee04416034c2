package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/api"
)

// LogEntry is a captured moment between sessions. Text and PrepNote are
// stored encrypted.
type LogEntry struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	UserID      string `gorm:"type:uuid;not null;index"`
	Text        string `gorm:"type:text;not null"`
	Type        string `gorm:"not null"` // trigger | event | thought | win
	Intensity   int    `gorm:"not null;default:0"`
	AddedToPrep bool   `gorm:"not null;default:false"`
	PrepNote    string `gorm:"type:text;not null;default:''"`
	CheckedOff  bool   `gorm:"not null;default:false"`
	IsArchived  bool   `gorm:"not null;default:false;index"`
	ArchivedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (e *LogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave encrypts therapy text before it reaches the database.
// GCM produces different ciphertext each save due to the random nonce.
func (e *LogEntry) BeforeSave(tx *gorm.DB) error {
	if err := encryptField(&e.Text); err != nil {
		return err
	}
	return encryptField(&e.PrepNote)
}

// AfterFind decrypts therapy text after loading from the database.
func (e *LogEntry) AfterFind(tx *gorm.DB) error {
	if err := decryptField(&e.Text); err != nil {
		return err
	}
	return decryptField(&e.PrepNote)
}

// AfterSave restores plaintext on the in-memory record so the handler can
// serialize what it just wrote.
func (e *LogEntry) AfterSave(tx *gorm.DB) error {
	if err := decryptField(&e.Text); err != nil {
		return err
	}
	return decryptField(&e.PrepNote)
}

func (e *LogEntry) API() api.LogEntry {
	var prepNote *string
	if e.PrepNote != "" {
		n := e.PrepNote
		prepNote = &n
	}
	return api.LogEntry{
		ID:          e.ID,
		Text:        e.Text,
		Type:        api.EntryType(e.Type),
		Intensity:   e.Intensity,
		AddedToPrep: e.AddedToPrep,
		PrepNote:    prepNote,
		CheckedOff:  e.CheckedOff,
		IsArchived:  e.IsArchived,
		ArchivedAt:  e.ArchivedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
