package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/api"
)

// Session is one therapy meeting record. Number is monotonic per user and
// assigned inside the create transaction. WhatStoodOut is stored encrypted;
// Topics and PrepItems are JSON arrays.
type Session struct {
	ID           string         `gorm:"primaryKey;type:uuid"`
	UserID       string         `gorm:"type:uuid;not null;index"`
	Date         time.Time      `gorm:"not null;index"`
	Number       int            `gorm:"not null"`
	Topics       datatypes.JSON `gorm:"type:jsonb"`
	WhatStoodOut string         `gorm:"type:text;not null;default:''"`
	PrepItems    datatypes.JSON `gorm:"type:jsonb"`
	PostMood     int            `gorm:"not null;default:0"`
	MoodWord     string         `gorm:"not null;default:''"`
	Completed    bool           `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *Session) BeforeSave(tx *gorm.DB) error {
	return encryptField(&s.WhatStoodOut)
}

func (s *Session) AfterFind(tx *gorm.DB) error {
	return decryptField(&s.WhatStoodOut)
}

func (s *Session) AfterSave(tx *gorm.DB) error {
	return decryptField(&s.WhatStoodOut)
}

// SetTopics stores the topic list as JSON.
func (s *Session) SetTopics(topics []string) error {
	raw, err := json.Marshal(topics)
	if err != nil {
		return err
	}
	s.Topics = datatypes.JSON(raw)
	return nil
}

// SetPrepItems stores the prep item list as JSON.
func (s *Session) SetPrepItems(items []string) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.PrepItems = datatypes.JSON(raw)
	return nil
}

func decodeStrings(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

func (s *Session) API() api.Session {
	return api.Session{
		ID:           s.ID,
		Date:         s.Date,
		Number:       s.Number,
		Topics:       decodeStrings(s.Topics),
		WhatStoodOut: s.WhatStoodOut,
		PrepItems:    decodeStrings(s.PrepItems),
		PostMood:     s.PostMood,
		MoodWord:     s.MoodWord,
		Completed:    s.Completed,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
