package store

import (
	"context"
	"time"

	"github.com/sessionly/sessionly/api"
)

// ProfilePatch carries changed settings fields. Nil fields are untouched.
type ProfilePatch struct {
	DisplayName            *string
	TherapistName          *string
	SessionFrequency       *string
	SessionDay             *string
	SessionTime            *string
	NextSessionDate        *time.Time
	PreSessionReminder     *int
	PostSessionReminder    *int
	EnablePreReminder      *bool
	EnablePostReminder     *bool
	EnableHomeworkReminder *bool
	EnableWeeklyNudge      *bool
	Theme                  *string
	FontSize               *string
	AISuggestions          *bool
	Onboarded              *bool
}

// LoadProfile merges the server settings into the local record. Failure
// keeps the local defaults.
func (a *App) LoadProfile(ctx context.Context) {
	if a.currentToken() == "" {
		return
	}
	profile, err := a.gw.GetProfile(ctx)
	if err != nil {
		return
	}
	a.mu.Lock()
	a.settings = *profile
	a.mu.Unlock()
}

// UpdateSettings merges the patch into the local record immediately and
// schedules a debounced save: edits within the quiet period coalesce into a
// single PUT containing the final merged state. Each edit cancels and
// reschedules the single-slot timer.
func (a *App) UpdateSettings(patch ProfilePatch) {
	a.mu.Lock()
	mergeProfile(&a.settings, patch)
	hasToken := a.token != ""
	if hasToken {
		if a.saveTimer != nil {
			a.saveTimer.Stop()
		}
		a.saveTimer = time.AfterFunc(a.settingsDelay, a.flushProfileSave)
	}
	a.mu.Unlock()
}

// FlushSettings sends any pending settings save immediately. Useful on
// shutdown.
func (a *App) FlushSettings() {
	a.mu.Lock()
	pending := a.saveTimer != nil && a.saveTimer.Stop()
	a.saveTimer = nil
	a.mu.Unlock()
	if pending {
		a.flushProfileSave()
	}
}

func (a *App) flushProfileSave() {
	a.mu.Lock()
	settings := a.settings
	hasToken := a.token != ""
	a.mu.Unlock()
	if !hasToken {
		return
	}
	// Local state is kept even when the save fails.
	if _, err := a.gw.UpdateProfile(context.Background(), settings); err != nil {
		a.log.Warn("profile save failed", "error", err)
	}
}

func mergeProfile(p *api.Profile, patch ProfilePatch) {
	if patch.DisplayName != nil {
		p.DisplayName = *patch.DisplayName
	}
	if patch.TherapistName != nil {
		p.TherapistName = *patch.TherapistName
	}
	if patch.SessionFrequency != nil {
		p.SessionFrequency = *patch.SessionFrequency
	}
	if patch.SessionDay != nil {
		p.SessionDay = *patch.SessionDay
	}
	if patch.SessionTime != nil {
		p.SessionTime = *patch.SessionTime
	}
	if patch.NextSessionDate != nil {
		next := *patch.NextSessionDate
		p.NextSessionDate = &next
	}
	if patch.PreSessionReminder != nil {
		p.PreSessionReminder = *patch.PreSessionReminder
	}
	if patch.PostSessionReminder != nil {
		p.PostSessionReminder = *patch.PostSessionReminder
	}
	if patch.EnablePreReminder != nil {
		p.EnablePreReminder = *patch.EnablePreReminder
	}
	if patch.EnablePostReminder != nil {
		p.EnablePostReminder = *patch.EnablePostReminder
	}
	if patch.EnableHomeworkReminder != nil {
		p.EnableHomeworkReminder = *patch.EnableHomeworkReminder
	}
	if patch.EnableWeeklyNudge != nil {
		p.EnableWeeklyNudge = *patch.EnableWeeklyNudge
	}
	if patch.Theme != nil {
		p.Theme = *patch.Theme
	}
	if patch.FontSize != nil {
		p.FontSize = *patch.FontSize
	}
	if patch.AISuggestions != nil {
		p.AISuggestions = *patch.AISuggestions
	}
	if patch.Onboarded != nil {
		p.Onboarded = *patch.Onboarded
	}
}
