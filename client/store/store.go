// Package store holds the client-side application state: four entity
// collections loaded from the backend, mutated optimistically and
// resynchronized by reload when a write fails.
//
// An App is built by the composition root at session start and disposed on
// logout; it is passed by handle to the UI layer rather than living as
// ambient global state. All snapshot access is mutex-guarded, but overlapping
// mutations to the same entity are resolved last-settled-wins, not serialized.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sessionly/sessionly/api"
	"github.com/sessionly/sessionly/client/stats"
)

// AuthState is the lifecycle state of the authenticated session.
type AuthState string

const (
	StateUnauthenticated AuthState = "unauthenticated"
	StateAuthenticating  AuthState = "authenticating"
	StateAuthenticated   AuthState = "authenticated"
)

// DefaultSettingsDebounce is the quiet period after the last settings edit
// before the merged profile is saved.
const DefaultSettingsDebounce = 400 * time.Millisecond

// App is the application state container.
type App struct {
	gw    Gateway
	creds CredentialStore
	log   *slog.Logger
	now   func() time.Time

	mu        sync.Mutex
	token     string
	user      *api.AuthUser
	authState AuthState

	entries  []api.LogEntry
	archived []api.LogEntry
	sessions []api.Session
	homework []api.HomeworkItem
	settings api.Profile

	settingsDelay time.Duration
	saveTimer     *time.Timer
}

// Option configures an App.
type Option func(*App)

// WithCredentials sets the durable credential store. Default is in-memory.
func WithCredentials(cs CredentialStore) Option {
	return func(a *App) { a.creds = cs }
}

// WithLogger sets the logger for swallowed mutation failures.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithSettingsDebounce overrides the settings auto-save quiet period.
func WithSettingsDebounce(d time.Duration) Option {
	return func(a *App) { a.settingsDelay = d }
}

// New creates an App over the given gateway.
func New(gw Gateway, opts ...Option) *App {
	a := &App{
		gw:            gw,
		creds:         &memCredentials{},
		log:           slog.Default(),
		now:           time.Now,
		authState:     StateUnauthenticated,
		settingsDelay: DefaultSettingsDebounce,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.settings = defaultProfile(a.now())
	return a
}

func defaultProfile(now time.Time) api.Profile {
	next := now.Add(7 * 24 * time.Hour)
	return api.Profile{
		DisplayName:            "Alex",
		SessionFrequency:       "weekly",
		SessionDay:             "Thursday",
		SessionTime:            "10:00",
		NextSessionDate:        &next,
		PreSessionReminder:     2,
		PostSessionReminder:    1,
		EnablePreReminder:      true,
		EnablePostReminder:     true,
		EnableHomeworkReminder: true,
		Theme:                  "dark",
		FontSize:               "standard",
		Onboarded:              true,
	}
}

// State returns the auth lifecycle state.
func (a *App) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authState
}

// User returns the cached account record, or nil when logged out.
func (a *App) User() *api.AuthUser {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// Plan returns the account plan, defaulting to FREE when logged out.
func (a *App) Plan() api.Plan {
	if u := a.User(); u != nil {
		return u.Plan
	}
	return api.PlanFree
}

// Benefits resolves the current plan's limits.
func (a *App) Benefits() stats.Benefits {
	return stats.PlanBenefits(a.Plan())
}

// Entries returns the active log entry snapshot.
func (a *App) Entries() []api.LogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]api.LogEntry(nil), a.entries...)
}

// ArchivedEntries returns the archived log entry snapshot.
func (a *App) ArchivedEntries() []api.LogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]api.LogEntry(nil), a.archived...)
}

// Sessions returns the session snapshot.
func (a *App) Sessions() []api.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]api.Session(nil), a.sessions...)
}

// Homework returns the homework snapshot.
func (a *App) Homework() []api.HomeworkItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]api.HomeworkItem(nil), a.homework...)
}

// Settings returns the current settings record.
func (a *App) Settings() api.Profile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// MonthlyEntryCount counts active entries created in the current calendar
// month, local time.
func (a *App) MonthlyEntryCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return stats.MonthlyEntryCount(a.entries, a.now())
}

func (a *App) currentToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// errSessionExpired mirrors the backend's 401 shape so callers branch on it
// the same way as a real rejection.
func errSessionExpired() error {
	return &api.APIError{Message: "Session expired. Please log in again.", Status: 401}
}
