package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/api"
)

// Profile holds account-scoped settings. Exactly one row exists per user,
// created on signup.
type Profile struct {
	ID                     string `gorm:"primaryKey;type:uuid"`
	UserID                 string `gorm:"type:uuid;not null;uniqueIndex"`
	DisplayName            string `gorm:"not null;default:''"`
	TherapistName          string `gorm:"not null;default:''"`
	SessionFrequency       string `gorm:"not null;default:'weekly'"` // weekly | biweekly | monthly
	SessionDay             string `gorm:"not null;default:'Thursday'"`
	SessionTime            string `gorm:"not null;default:'10:00'"`
	NextSessionDate        *time.Time
	PreSessionReminder     int    `gorm:"not null;default:2"`
	PostSessionReminder    int    `gorm:"not null;default:1"`
	EnablePreReminder      bool   `gorm:"not null;default:true"`
	EnablePostReminder     bool   `gorm:"not null;default:true"`
	EnableHomeworkReminder bool   `gorm:"not null;default:true"`
	EnableWeeklyNudge      bool   `gorm:"not null;default:false"`
	Theme                  string `gorm:"not null;default:'dark'"` // dark | light | system
	FontSize               string `gorm:"not null;default:'standard'"`
	AISuggestions          bool   `gorm:"not null;default:false"`
	Onboarded              bool   `gorm:"not null;default:false"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Profile) API() api.Profile {
	return api.Profile{
		DisplayName:            p.DisplayName,
		TherapistName:          p.TherapistName,
		SessionFrequency:       p.SessionFrequency,
		SessionDay:             p.SessionDay,
		SessionTime:            p.SessionTime,
		NextSessionDate:        p.NextSessionDate,
		PreSessionReminder:     p.PreSessionReminder,
		PostSessionReminder:    p.PostSessionReminder,
		EnablePreReminder:      p.EnablePreReminder,
		EnablePostReminder:     p.EnablePostReminder,
		EnableHomeworkReminder: p.EnableHomeworkReminder,
		EnableWeeklyNudge:      p.EnableWeeklyNudge,
		Theme:                  p.Theme,
		FontSize:               p.FontSize,
		AISuggestions:          p.AISuggestions,
		Onboarded:              p.Onboarded,
	}
}

// ApplyAPI copies the wire representation onto the row.
func (p *Profile) ApplyAPI(in api.Profile) {
	p.DisplayName = in.DisplayName
	p.TherapistName = in.TherapistName
	p.SessionFrequency = in.SessionFrequency
	p.SessionDay = in.SessionDay
	p.SessionTime = in.SessionTime
	p.NextSessionDate = in.NextSessionDate
	p.PreSessionReminder = in.PreSessionReminder
	p.PostSessionReminder = in.PostSessionReminder
	p.EnablePreReminder = in.EnablePreReminder
	p.EnablePostReminder = in.EnablePostReminder
	p.EnableHomeworkReminder = in.EnableHomeworkReminder
	p.EnableWeeklyNudge = in.EnableWeeklyNudge
	p.Theme = in.Theme
	p.FontSize = in.FontSize
	p.AISuggestions = in.AISuggestions
	p.Onboarded = in.Onboarded
}
