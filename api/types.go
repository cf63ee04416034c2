// Package api defines the JSON wire contract of the Sessionly backend and
// provides a typed HTTP client for it.
package api

import "time"

// Plan is the billing plan of an account.
type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// EntryType categorizes a log entry.
type EntryType string

const (
	EntryTrigger EntryType = "trigger"
	EntryEvent   EntryType = "event"
	EntryThought EntryType = "thought"
	EntryWin     EntryType = "win"
)

// TopicTags is the closed set of session topic tags. Order matters: it is the
// tie-break order for topic frequency ranking.
var TopicTags = []string{
	"Anxiety", "Family", "Relationships", "Work", "Self-esteem",
	"Grief", "Identity", "Patterns", "Communication", "Trauma", "Boundaries",
}

// AuthUser is the account record returned by auth and billing endpoints.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Plan  Plan   `json:"plan"`
}

// LogEntry is a captured moment between sessions.
type LogEntry struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Type        EntryType  `json:"type"`
	Intensity   int        `json:"intensity"`
	AddedToPrep bool       `json:"addedToPrep"`
	PrepNote    *string    `json:"prepNote"`
	CheckedOff  bool       `json:"checkedOff"`
	IsArchived  bool       `json:"isArchived"`
	ArchivedAt  *time.Time `json:"archivedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Session is a record of one completed therapy meeting. Number is assigned
// server-side and increases monotonically per account.
type Session struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Number       int       `json:"number"`
	Topics       []string  `json:"topics"`
	WhatStoodOut string    `json:"whatStoodOut"`
	PrepItems    []string  `json:"prepItems"`
	PostMood     int       `json:"postMood"`
	MoodWord     string    `json:"moodWord"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HomeworkItem is a therapist-assigned task. CompletedDate is non-nil exactly
// when Completed is true.
type HomeworkItem struct {
	ID            string     `json:"id"`
	SessionID     *string    `json:"sessionId"`
	Text          string     `json:"text"`
	SessionDate   time.Time  `json:"sessionDate"`
	DueDate       *time.Time `json:"dueDate"`
	Completed     bool       `json:"completed"`
	CompletedDate *time.Time `json:"completedDate"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Profile holds account-scoped settings. Exactly one exists per account.
type Profile struct {
	DisplayName            string     `json:"displayName"`
	TherapistName          string     `json:"therapistName"`
	SessionFrequency       string     `json:"sessionFrequency"` // weekly | biweekly | monthly
	SessionDay             string     `json:"sessionDay"`
	SessionTime            string     `json:"sessionTime"`
	NextSessionDate        *time.Time `json:"nextSessionDate"`
	PreSessionReminder     int        `json:"preSessionReminder"`  // days before
	PostSessionReminder    int        `json:"postSessionReminder"` // days after
	EnablePreReminder      bool       `json:"enablePreReminder"`
	EnablePostReminder     bool       `json:"enablePostReminder"`
	EnableHomeworkReminder bool       `json:"enableHomeworkReminder"`
	EnableWeeklyNudge      bool       `json:"enableWeeklyNudge"`
	Theme                  string     `json:"theme"`    // dark | light | system
	FontSize               string     `json:"fontSize"` // standard | large
	AISuggestions          bool       `json:"aiSuggestions"`
	Onboarded              bool       `json:"onboarded"`
}

// LogView selects the server-side archive partition when listing entries.
type LogView string

const (
	ViewActive  LogView = "active"
	ViewArchive LogView = "archive"
	ViewAll     LogView = "all"
)

// SignupInput is the payload for POST /auth/signup.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginInput is the payload for POST /auth/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the combined token + account record returned by signup/login.
type AuthResult struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// CreateLogInput is the payload for POST /logs.
type CreateLogInput struct {
	Text        string    `json:"text"`
	Type        EntryType `json:"type"`
	Intensity   int       `json:"intensity"`
	AddedToPrep bool      `json:"addedToPrep"`
	PrepNote    string    `json:"prepNote,omitempty"`
	CheckedOff  bool      `json:"checkedOff"`
}

// LogPatch carries the changed fields for PATCH /logs/:id. Nil fields are
// omitted from the request body.
type LogPatch struct {
	Text        *string    `json:"text,omitempty"`
	Type        *EntryType `json:"type,omitempty"`
	Intensity   *int       `json:"intensity,omitempty"`
	AddedToPrep *bool      `json:"addedToPrep,omitempty"`
	PrepNote    *string    `json:"prepNote,omitempty"`
	CheckedOff  *bool      `json:"checkedOff,omitempty"`
	IsArchived  *bool      `json:"isArchived,omitempty"`
}

// HomeworkDraft is one homework item attached to a session create call.
type HomeworkDraft struct {
	Text    string     `json:"text"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// CreateSessionInput is the payload for POST /sessions. One call creates the
// session and any attached homework items.
type CreateSessionInput struct {
	Date          time.Time       `json:"date"`
	Topics        []string        `json:"topics"`
	WhatStoodOut  string          `json:"whatStoodOut"`
	PrepItems     []string        `json:"prepItems"`
	PostMood      int             `json:"postMood"`
	MoodWord      string          `json:"moodWord,omitempty"`
	Completed     bool            `json:"completed"`
	HomeworkItems []HomeworkDraft `json:"homeworkItems,omitempty"`
}

// SessionPatch carries the changed fields for PATCH /sessions/:id.
type SessionPatch struct {
	Date         *time.Time `json:"date,omitempty"`
	Topics       []string   `json:"topics,omitempty"`
	WhatStoodOut *string    `json:"whatStoodOut,omitempty"`
	PrepItems    []string   `json:"prepItems,omitempty"`
	PostMood     *int       `json:"postMood,omitempty"`
	MoodWord     *string    `json:"moodWord,omitempty"`
	Completed    *bool      `json:"completed,omitempty"`
}

// CreateHomeworkInput is the payload for POST /homework.
type CreateHomeworkInput struct {
	Text        string     `json:"text"`
	SessionID   string     `json:"sessionId,omitempty"`
	SessionDate time.Time  `json:"sessionDate"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// HomeworkPatch carries the changed fields for PATCH /homework/:id.
type HomeworkPatch struct {
	Text      *string    `json:"text,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}
