package store

import (
	"context"

	"github.com/sessionly/sessionly/api"
)

// LoadSessions replaces the session snapshot. On failure it is cleared.
func (a *App) LoadSessions(ctx context.Context) {
	if a.currentToken() == "" {
		return
	}
	sessions, err := a.gw.ListSessions(ctx)
	a.mu.Lock()
	if err != nil {
		a.sessions = nil
	} else {
		a.sessions = sessions
	}
	a.mu.Unlock()
}

// SaveSession creates a session together with its homework items in one
// call. The server assigns the session number; the canonical records are
// prepended to the local snapshots.
func (a *App) SaveSession(ctx context.Context, in api.CreateSessionInput) error {
	if a.currentToken() == "" {
		return errSessionExpired()
	}
	session, items, err := a.gw.CreateSession(ctx, in)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.sessions = append([]api.Session{*session}, a.sessions...)
	if len(items) > 0 {
		a.homework = append(append([]api.HomeworkItem(nil), items...), a.homework...)
	}
	a.mu.Unlock()
	return nil
}

// UpdateSession patches a session and replaces the local record with the
// server's canonical version. Errors propagate to the caller.
func (a *App) UpdateSession(ctx context.Context, id string, patch api.SessionPatch) error {
	if a.currentToken() == "" {
		return errSessionExpired()
	}
	updated, err := a.gw.UpdateSession(ctx, id, patch)
	if err != nil {
		return err
	}
	a.mu.Lock()
	for i := range a.sessions {
		if a.sessions[i].ID == id {
			a.sessions[i] = *updated
			break
		}
	}
	a.mu.Unlock()
	return nil
}
