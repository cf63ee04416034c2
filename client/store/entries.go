package store

import (
	"context"

	"github.com/sessionly/sessionly/api"
	"github.com/sessionly/sessionly/client/stats"
)

// LoadEntries replaces the active entry snapshot from the server. On failure
// the previous snapshot is kept.
func (a *App) LoadEntries(ctx context.Context) error {
	if a.currentToken() == "" {
		return nil
	}
	logs, err := a.gw.ListLogs(ctx, api.ViewActive)
	if err != nil {
		a.log.Warn("load entries failed", "error", err)
		return err
	}
	a.mu.Lock()
	a.entries = logs
	a.mu.Unlock()
	return nil
}

// LoadArchivedEntries replaces the archived partition snapshot. On failure
// the partition is cleared.
func (a *App) LoadArchivedEntries(ctx context.Context) {
	if a.currentToken() == "" {
		return
	}
	logs, err := a.gw.ListLogs(ctx, api.ViewArchive)
	a.mu.Lock()
	if err != nil {
		a.archived = nil
	} else {
		a.archived = logs
	}
	a.mu.Unlock()
}

// AddEntry creates a log entry. On a FREE plan the local monthly count is
// checked first; at or over the limit it returns blocked=true without any
// network call. The server-returned canonical entity is prepended on success.
func (a *App) AddEntry(ctx context.Context, in api.CreateLogInput) (blocked bool, err error) {
	if a.currentToken() == "" {
		return false, errSessionExpired()
	}

	benefits := a.Benefits()
	if benefits.MaxMonthlyEntries > 0 {
		a.mu.Lock()
		count := stats.MonthlyEntryCount(a.entries, a.now())
		a.mu.Unlock()
		if count >= benefits.MaxMonthlyEntries {
			return true, nil
		}
	}

	created, err := a.gw.CreateLog(ctx, in)
	if err != nil {
		return false, err
	}
	a.mu.Lock()
	a.entries = append([]api.LogEntry{*created}, a.entries...)
	a.mu.Unlock()
	return false, nil
}

// UpdateEntry applies the patch to the local snapshot immediately, then
// sends only the changed fields. A gateway failure triggers a full reload of
// the active collection rather than a fine-grained rollback; the error is
// returned for optional notification only.
func (a *App) UpdateEntry(ctx context.Context, id string, patch api.LogPatch) error {
	a.mu.Lock()
	applyLogPatch(a.entries, id, patch)
	applyLogPatch(a.archived, id, patch)
	a.mu.Unlock()

	if a.currentToken() == "" {
		return nil
	}
	if _, err := a.gw.UpdateLog(ctx, id, patch); err != nil {
		a.log.Warn("update entry failed, reloading", "id", id, "error", err)
		_ = a.LoadEntries(ctx)
		return err
	}
	return nil
}

// DeleteEntry removes the entry locally, then deletes it server-side. A
// gateway failure triggers a reload to resynchronize.
func (a *App) DeleteEntry(ctx context.Context, id string) error {
	a.mu.Lock()
	a.entries = removeLog(a.entries, id)
	a.archived = removeLog(a.archived, id)
	a.mu.Unlock()

	if a.currentToken() == "" {
		return nil
	}
	if err := a.gw.DeleteLog(ctx, id); err != nil {
		a.log.Warn("delete entry failed, reloading", "id", id, "error", err)
		_ = a.LoadEntries(ctx)
		return err
	}
	return nil
}

// ToggleEntryPrep flips the "queued for next session" flag.
func (a *App) ToggleEntryPrep(ctx context.Context, id string) error {
	a.mu.Lock()
	var next *bool
	for i := range a.entries {
		if a.entries[i].ID == id {
			v := !a.entries[i].AddedToPrep
			next = &v
			break
		}
	}
	a.mu.Unlock()
	if next == nil {
		return nil
	}
	return a.UpdateEntry(ctx, id, api.LogPatch{AddedToPrep: next})
}

func applyLogPatch(entries []api.LogEntry, id string, patch api.LogPatch) {
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		e := &entries[i]
		if patch.Text != nil {
			e.Text = *patch.Text
		}
		if patch.Type != nil {
			e.Type = *patch.Type
		}
		if patch.Intensity != nil {
			e.Intensity = *patch.Intensity
		}
		if patch.AddedToPrep != nil {
			e.AddedToPrep = *patch.AddedToPrep
		}
		if patch.PrepNote != nil {
			e.PrepNote = patch.PrepNote
		}
		if patch.CheckedOff != nil {
			e.CheckedOff = *patch.CheckedOff
		}
		if patch.IsArchived != nil {
			e.IsArchived = *patch.IsArchived
		}
		return
	}
}

func removeLog(entries []api.LogEntry, id string) []api.LogEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
