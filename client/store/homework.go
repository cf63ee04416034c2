package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/sessionly/sessionly/api"
)

// LoadHomework replaces the homework snapshot. On failure it is cleared.
func (a *App) LoadHomework(ctx context.Context) {
	if a.currentToken() == "" {
		return
	}
	items, err := a.gw.ListHomework(ctx)
	a.mu.Lock()
	if err != nil {
		a.homework = nil
	} else {
		a.homework = items
	}
	a.mu.Unlock()
}

// AddHomework inserts a placeholder item with a temporary identifier
// immediately, then replaces it with the server's canonical record, or
// removes it when the create fails.
func (a *App) AddHomework(ctx context.Context, in api.CreateHomeworkInput) error {
	tmpID := fmt.Sprintf("tmp-%d", a.now().UnixNano())
	placeholder := api.HomeworkItem{
		ID:          tmpID,
		Text:        in.Text,
		SessionDate: in.SessionDate,
		DueDate:     in.DueDate,
	}
	if in.SessionID != "" {
		sid := in.SessionID
		placeholder.SessionID = &sid
	}

	a.mu.Lock()
	a.homework = append([]api.HomeworkItem{placeholder}, a.homework...)
	a.mu.Unlock()

	if a.currentToken() == "" {
		return nil
	}

	created, err := a.gw.CreateHomework(ctx, in)
	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		out := a.homework[:0]
		for _, h := range a.homework {
			if h.ID != tmpID {
				out = append(out, h)
			}
		}
		a.homework = out
		return err
	}
	for i := range a.homework {
		if a.homework[i].ID == tmpID {
			a.homework[i] = *created
			break
		}
	}
	return nil
}

// ToggleHomework flips completion. The completed flag and completedDate are
// patched together locally so the pair never disagrees, then the toggle is
// sent; a gateway failure triggers a full homework reload.
func (a *App) ToggleHomework(ctx context.Context, id string) error {
	a.mu.Lock()
	var next *bool
	for i := range a.homework {
		if a.homework[i].ID != id {
			continue
		}
		completed := !a.homework[i].Completed
		next = &completed
		a.homework[i].Completed = completed
		if completed {
			now := a.now()
			a.homework[i].CompletedDate = &now
		} else {
			a.homework[i].CompletedDate = nil
		}
		break
	}
	a.mu.Unlock()
	if next == nil {
		return nil
	}
	if a.currentToken() == "" {
		return nil
	}

	if _, err := a.gw.UpdateHomework(ctx, id, api.HomeworkPatch{Completed: next}); err != nil {
		// Skip resync for optimistic placeholders that never reached the
		// server.
		if !strings.HasPrefix(id, "tmp-") {
			a.log.Warn("toggle homework failed, reloading", "id", id, "error", err)
			a.LoadHomework(ctx)
		}
		return err
	}
	return nil
}
