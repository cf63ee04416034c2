package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sessionly/sessionly/api"
)

// fakeGateway is an in-memory backend double. It keeps authoritative copies
// of each collection and counts calls per method.
type fakeGateway struct {
	mu    sync.Mutex
	token string

	user     api.AuthUser
	logs     []api.LogEntry
	sessions []api.Session
	homework []api.HomeworkItem
	profile  api.Profile

	nextID int

	failMe             bool
	failCreateLog      bool
	failUpdateHomework bool

	calls map[string]int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		user:  api.AuthUser{ID: "u1", Email: "alex@example.com", Name: "Alex", Plan: api.PlanFree},
		calls: map[string]int{},
	}
}

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeGateway) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeGateway) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeGateway) SetToken(token string) { f.token = token }

func (f *fakeGateway) Signup(ctx context.Context, in api.SignupInput) (*api.AuthResult, error) {
	f.record("Signup")
	return &api.AuthResult{Token: "tok", User: f.user}, nil
}

func (f *fakeGateway) Login(ctx context.Context, in api.LoginInput) (*api.AuthResult, error) {
	f.record("Login")
	return &api.AuthResult{Token: "tok", User: f.user}, nil
}

func (f *fakeGateway) Me(ctx context.Context) (*api.AuthUser, error) {
	f.record("Me")
	if f.failMe {
		return nil, &api.APIError{Message: "Invalid token", Status: 401}
	}
	u := f.user
	return &u, nil
}

func (f *fakeGateway) FakePayment(ctx context.Context, plan api.Plan) (*api.AuthUser, error) {
	f.record("FakePayment")
	f.user.Plan = plan
	u := f.user
	return &u, nil
}

func (f *fakeGateway) DeleteAccount(ctx context.Context) error {
	f.record("DeleteAccount")
	return nil
}

func (f *fakeGateway) ListLogs(ctx context.Context, view api.LogView) ([]api.LogEntry, error) {
	f.record("ListLogs")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.LogEntry(nil), f.logs...), nil
}

func (f *fakeGateway) CreateLog(ctx context.Context, in api.CreateLogInput) (*api.LogEntry, error) {
	f.record("CreateLog")
	if f.failCreateLog {
		return nil, &api.APIError{Message: "boom", Status: 500}
	}
	entry := api.LogEntry{
		ID:        f.id("log"),
		Text:      in.Text,
		Type:      in.Type,
		Intensity: in.Intensity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.mu.Lock()
	f.logs = append([]api.LogEntry{entry}, f.logs...)
	f.mu.Unlock()
	return &entry, nil
}

func (f *fakeGateway) UpdateLog(ctx context.Context, id string, patch api.LogPatch) (*api.LogEntry, error) {
	f.record("UpdateLog")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.logs {
		if f.logs[i].ID == id {
			if patch.Text != nil {
				f.logs[i].Text = *patch.Text
			}
			if patch.AddedToPrep != nil {
				f.logs[i].AddedToPrep = *patch.AddedToPrep
			}
			e := f.logs[i]
			return &e, nil
		}
	}
	return nil, &api.APIError{Message: "Not found", Status: 404}
}

func (f *fakeGateway) DeleteLog(ctx context.Context, id string) error {
	f.record("DeleteLog")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.logs[:0]
	for _, e := range f.logs {
		if e.ID != id {
			out = append(out, e)
		}
	}
	f.logs = out
	return nil
}

func (f *fakeGateway) ListSessions(ctx context.Context) ([]api.Session, error) {
	f.record("ListSessions")
	return append([]api.Session(nil), f.sessions...), nil
}

func (f *fakeGateway) CreateSession(ctx context.Context, in api.CreateSessionInput) (*api.Session, []api.HomeworkItem, error) {
	f.record("CreateSession")
	session := api.Session{
		ID:           f.id("s"),
		Date:         in.Date,
		Number:       len(f.sessions) + 1,
		Topics:       in.Topics,
		WhatStoodOut: in.WhatStoodOut,
		PrepItems:    in.PrepItems,
		PostMood:     in.PostMood,
		MoodWord:     in.MoodWord,
		Completed:    in.Completed,
	}
	f.sessions = append([]api.Session{session}, f.sessions...)
	items := make([]api.HomeworkItem, 0, len(in.HomeworkItems))
	for _, d := range in.HomeworkItems {
		sid := session.ID
		item := api.HomeworkItem{
			ID:          f.id("hw"),
			SessionID:   &sid,
			Text:        d.Text,
			SessionDate: in.Date,
			DueDate:     d.DueDate,
		}
		items = append(items, item)
		f.homework = append(f.homework, item)
	}
	return &session, items, nil
}

func (f *fakeGateway) UpdateSession(ctx context.Context, id string, patch api.SessionPatch) (*api.Session, error) {
	f.record("UpdateSession")
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			if patch.Completed != nil {
				f.sessions[i].Completed = *patch.Completed
			}
			s := f.sessions[i]
			return &s, nil
		}
	}
	return nil, &api.APIError{Message: "Not found", Status: 404}
}

func (f *fakeGateway) ListHomework(ctx context.Context) ([]api.HomeworkItem, error) {
	f.record("ListHomework")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.HomeworkItem(nil), f.homework...), nil
}

func (f *fakeGateway) CreateHomework(ctx context.Context, in api.CreateHomeworkInput) (*api.HomeworkItem, error) {
	f.record("CreateHomework")
	item := api.HomeworkItem{
		ID:          f.id("hw"),
		Text:        in.Text,
		SessionDate: in.SessionDate,
		DueDate:     in.DueDate,
	}
	f.mu.Lock()
	f.homework = append([]api.HomeworkItem{item}, f.homework...)
	f.mu.Unlock()
	return &item, nil
}

func (f *fakeGateway) UpdateHomework(ctx context.Context, id string, patch api.HomeworkPatch) (*api.HomeworkItem, error) {
	f.record("UpdateHomework")
	if f.failUpdateHomework {
		return nil, &api.APIError{Message: "boom", Status: 500}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.homework {
		if f.homework[i].ID == id {
			if patch.Completed != nil {
				f.homework[i].Completed = *patch.Completed
				if *patch.Completed {
					now := time.Now()
					f.homework[i].CompletedDate = &now
				} else {
					f.homework[i].CompletedDate = nil
				}
			}
			h := f.homework[i]
			return &h, nil
		}
	}
	return nil, &api.APIError{Message: "Not found", Status: 404}
}

func (f *fakeGateway) GetProfile(ctx context.Context) (*api.Profile, error) {
	f.record("GetProfile")
	p := f.profile
	return &p, nil
}

func (f *fakeGateway) UpdateProfile(ctx context.Context, p api.Profile) (*api.Profile, error) {
	f.record("UpdateProfile")
	f.mu.Lock()
	f.profile = p
	f.mu.Unlock()
	return &p, nil
}

func loggedInApp(t *testing.T, gw *fakeGateway, opts ...Option) *App {
	t.Helper()
	app := New(gw, opts...)
	if err := app.Login(context.Background(), api.LoginInput{Email: "alex@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	return app
}

func TestMonthlyQuotaBlocksThirtyFirstEntry(t *testing.T) {
	gw := newFakeGateway()
	app := loggedInApp(t, gw)

	for i := 0; i < 30; i++ {
		blocked, err := app.AddEntry(context.Background(), api.CreateLogInput{
			Text: fmt.Sprintf("entry %d", i), Type: api.EntryEvent, Intensity: 2,
		})
		if err != nil {
			t.Fatalf("entry %d: %v", i, err)
		}
		if blocked {
			t.Fatalf("entry %d unexpectedly blocked", i)
		}
	}

	createCalls := gw.count("CreateLog")
	blocked, err := app.AddEntry(context.Background(), api.CreateLogInput{
		Text: "one too many", Type: api.EntryEvent, Intensity: 1,
	})
	if err != nil {
		t.Fatalf("31st create: %v", err)
	}
	if !blocked {
		t.Error("expected 31st entry to be quota-blocked")
	}
	if gw.count("CreateLog") != createCalls {
		t.Error("blocked create still issued an HTTP request")
	}
}

func TestProPlanHasNoQuota(t *testing.T) {
	gw := newFakeGateway()
	gw.user.Plan = api.PlanPro
	app := loggedInApp(t, gw)

	for i := 0; i < 35; i++ {
		blocked, err := app.AddEntry(context.Background(), api.CreateLogInput{
			Text: "x", Type: api.EntryThought, Intensity: 1,
		})
		if err != nil || blocked {
			t.Fatalf("entry %d: blocked=%v err=%v", i, blocked, err)
		}
	}
}

func TestHomeworkToggleMaintainsCompletedDate(t *testing.T) {
	gw := newFakeGateway()
	app := loggedInApp(t, gw)

	if err := app.AddHomework(context.Background(), api.CreateHomeworkInput{
		Text: "breathing exercise", SessionDate: time.Now(),
	}); err != nil {
		t.Fatalf("add homework: %v", err)
	}
	id := app.Homework()[0].ID

	if err := app.ToggleHomework(context.Background(), id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	item := app.Homework()[0]
	if !item.Completed || item.CompletedDate == nil {
		t.Errorf("after completing: completed=%v completedDate=%v", item.Completed, item.CompletedDate)
	}

	if err := app.ToggleHomework(context.Background(), id); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	item = app.Homework()[0]
	if item.Completed || item.CompletedDate != nil {
		t.Errorf("after un-completing: completed=%v completedDate=%v", item.Completed, item.CompletedDate)
	}
}

func TestHomeworkToggleFailureReloadsOnce(t *testing.T) {
	gw := newFakeGateway()
	app := loggedInApp(t, gw)

	if err := app.AddHomework(context.Background(), api.CreateHomeworkInput{
		Text: "journal daily", SessionDate: time.Now(),
	}); err != nil {
		t.Fatalf("add homework: %v", err)
	}
	id := app.Homework()[0].ID

	gw.failUpdateHomework = true
	listCalls := gw.count("ListHomework")
	if err := app.ToggleHomework(context.Background(), id); err == nil {
		t.Fatal("expected toggle to fail")
	}

	if got := gw.count("ListHomework") - listCalls; got != 1 {
		t.Errorf("expected exactly one resync load, got %d", got)
	}
	serverItems, _ := gw.ListHomework(context.Background())
	if !reflect.DeepEqual(app.Homework(), serverItems) {
		t.Errorf("local state diverged from server truth:\nlocal:  %+v\nserver: %+v", app.Homework(), serverItems)
	}
	if item := app.Homework()[0]; item.Completed || item.CompletedDate != nil {
		t.Errorf("failed toggle left inconsistent state: %+v", item)
	}
}

func TestOptimisticHomeworkCreate(t *testing.T) {
	gw := newFakeGateway()
	app := loggedInApp(t, gw)

	if err := app.AddHomework(context.Background(), api.CreateHomeworkInput{
		Text: "call a friend", SessionDate: time.Now(),
	}); err != nil {
		t.Fatalf("add homework: %v", err)
	}
	items := app.Homework()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if strings.HasPrefix(items[0].ID, "tmp-") {
		t.Errorf("placeholder id %q not replaced by canonical id", items[0].ID)
	}
}

func TestLoadEntriesIdempotent(t *testing.T) {
	gw := newFakeGateway()
	app := loggedInApp(t, gw)
	for i := 0; i < 3; i++ {
		app.AddEntry(context.Background(), api.CreateLogInput{Text: "x", Type: api.EntryWin, Intensity: 1})
	}

	if err := app.LoadEntries(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	first := app.Entries()
	if err := app.LoadEntries(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	second := app.Entries()
	if !reflect.DeepEqual(first, second) {
		t.Error("two loads against an unchanged backend produced different snapshots")
	}
}

func TestSettingsDebounceCoalescesEdits(t *testing.T) {
	gw := newFakeGateway()
	app := loggedInApp(t, gw, WithSettingsDebounce(40*time.Millisecond))

	name := "Sam"
	therapist := "Dr. Reyes"
	theme := "light"
	app.UpdateSettings(ProfilePatch{DisplayName: &name})
	time.Sleep(10 * time.Millisecond)
	app.UpdateSettings(ProfilePatch{TherapistName: &therapist})
	time.Sleep(10 * time.Millisecond)
	app.UpdateSettings(ProfilePatch{Theme: &theme})

	time.Sleep(120 * time.Millisecond)

	if got := gw.count("UpdateProfile"); got != 1 {
		t.Fatalf("expected exactly one PUT, got %d", got)
	}
	saved := gw.profile
	if saved.DisplayName != "Sam" || saved.TherapistName != "Dr. Reyes" || saved.Theme != "light" {
		t.Errorf("saved profile missing merged edits: %+v", saved)
	}
}

func TestRefreshSessionRejectionClearsState(t *testing.T) {
	gw := newFakeGateway()
	creds := &memCredentials{}
	creds.Save("stale-token", &api.AuthUser{ID: "u1", Plan: api.PlanFree})
	gw.failMe = true

	app := New(gw, WithCredentials(creds))
	if err := app.RefreshSession(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if app.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", app.State())
	}
	if token, user, _ := creds.Load(); token != "" || user != nil {
		t.Error("persisted credentials not cleared after token rejection")
	}
}

func TestRefreshSessionLoadsAllStores(t *testing.T) {
	gw := newFakeGateway()
	gw.logs = []api.LogEntry{{ID: "log-1", Text: "t", Type: api.EntryTrigger, Intensity: 3, CreatedAt: time.Now()}}
	gw.homework = []api.HomeworkItem{{ID: "hw-1", Text: "walk", SessionDate: time.Now()}}
	creds := &memCredentials{}
	creds.Save("tok", &gw.user)

	app := New(gw, WithCredentials(creds))
	if err := app.RefreshSession(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if app.State() != StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", app.State())
	}
	if len(app.Entries()) != 1 || len(app.Homework()) != 1 {
		t.Errorf("stores not loaded: entries=%d homework=%d", len(app.Entries()), len(app.Homework()))
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	gw := newFakeGateway()
	app := loggedInApp(t, gw)
	app.AddEntry(context.Background(), api.CreateLogInput{Text: "x", Type: api.EntryEvent, Intensity: 1})

	app.Logout()

	if app.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", app.State())
	}
	if len(app.Entries()) != 0 || app.User() != nil {
		t.Error("logout left data behind")
	}
}

func TestSelectPlanOverwritesCachedAccount(t *testing.T) {
	gw := newFakeGateway()
	app := loggedInApp(t, gw)

	if err := app.SelectPlan(context.Background(), api.PlanPro); err != nil {
		t.Fatalf("select plan: %v", err)
	}
	if app.Plan() != api.PlanPro {
		t.Errorf("expected PRO, got %s", app.Plan())
	}
	if !app.Benefits().HasPatternInsights {
		t.Error("expected pattern insights after upgrade")
	}
}

func TestSaveSessionPrependsSessionAndHomework(t *testing.T) {
	gw := newFakeGateway()
	app := loggedInApp(t, gw)

	due := time.Now().Add(72 * time.Hour)
	err := app.SaveSession(context.Background(), api.CreateSessionInput{
		Date:         time.Now(),
		Topics:       []string{"Anxiety", "Work"},
		WhatStoodOut: "breakthrough about boundaries",
		PrepItems:    []string{"sleep trouble"},
		PostMood:     7,
		Completed:    true,
		HomeworkItems: []api.HomeworkDraft{
			{Text: "practice saying no", DueDate: &due},
		},
	})
	if err != nil {
		t.Fatalf("save session: %v", err)
	}

	sessions := app.Sessions()
	if len(sessions) != 1 || sessions[0].Number != 1 {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
	hw := app.Homework()
	if len(hw) != 1 || hw[0].SessionID == nil || *hw[0].SessionID != sessions[0].ID {
		t.Errorf("homework not linked to session: %+v", hw)
	}
}
