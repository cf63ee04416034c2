package stats_test

import (
	"testing"
	"time"

	"github.com/sessionly/sessionly/api"
	"github.com/sessionly/sessionly/client/stats"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func entry(t api.EntryType, intensity int, created time.Time) api.LogEntry {
	return api.LogEntry{ID: "e", Type: t, Intensity: intensity, CreatedAt: created}
}

func TestPlanBenefits(t *testing.T) {
	free := stats.PlanBenefits(api.PlanFree)
	if free.MaxMonthlyEntries != 30 || free.HasPatternInsights || free.HasPDFExport {
		t.Errorf("unexpected FREE benefits: %+v", free)
	}
	pro := stats.PlanBenefits(api.PlanPro)
	if pro.MaxMonthlyEntries != 0 || !pro.HasPatternInsights || !pro.HasPDFExport {
		t.Errorf("unexpected PRO benefits: %+v", pro)
	}
}

func TestMonthlyEntryCount(t *testing.T) {
	now := day(2026, 3, 15)
	entries := []api.LogEntry{
		entry(api.EntryTrigger, 3, day(2026, 3, 1)),
		entry(api.EntryWin, 1, day(2026, 3, 31)),
		entry(api.EntryEvent, 2, day(2026, 2, 28)),
		entry(api.EntryThought, 2, day(2025, 3, 15)),
	}
	if got := stats.MonthlyEntryCount(entries, now); got != 2 {
		t.Errorf("expected 2 entries this month, got %d", got)
	}
}

func TestTopicFrequencyRankingAndTieBreak(t *testing.T) {
	sessions := []api.Session{
		{Completed: true, Topics: []string{"Anxiety", "Work"}},
		{Completed: true, Topics: []string{"Anxiety"}},
		{Completed: true, Topics: []string{"Work", "Family"}},
		{Completed: false, Topics: []string{"Grief"}}, // not completed, ignored
	}
	got := stats.TopicFrequency(sessions)
	want := []stats.TopicCount{
		{Topic: "Anxiety", Count: 2},
		{Topic: "Work", Count: 2},
		{Topic: "Family", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d topics, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rank %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestDailyTriggerIntensity(t *testing.T) {
	now := day(2026, 3, 10)
	entries := []api.LogEntry{
		entry(api.EntryTrigger, 2, day(2026, 3, 10)),
		entry(api.EntryTrigger, 5, day(2026, 3, 10)),
		entry(api.EntryTrigger, 4, day(2026, 3, 8)),
		entry(api.EntryWin, 5, day(2026, 3, 9)), // not a trigger
	}
	got := stats.DailyTriggerIntensity(entries, 3, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 days, got %d", len(got))
	}
	if got[0].Intensity != 4 {
		t.Errorf("day -2: expected 4, got %d", got[0].Intensity)
	}
	if got[1].Intensity != 0 {
		t.Errorf("day -1: expected 0, got %d", got[1].Intensity)
	}
	if got[2].Intensity != 5 {
		t.Errorf("today: expected max 5, got %d", got[2].Intensity)
	}
}

func TestHomeworkCompletionByMonth(t *testing.T) {
	now := day(2026, 3, 20)
	items := []api.HomeworkItem{
		{SessionDate: day(2026, 3, 2), Completed: true},
		{SessionDate: day(2026, 3, 9), Completed: true},
		{SessionDate: day(2026, 3, 16), Completed: false},
		{SessionDate: day(2026, 2, 5), Completed: false},
	}
	got := stats.HomeworkCompletionByMonth(items, 3, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 months, got %d", len(got))
	}
	if got[0].Rate != 0 { // January: no items
		t.Errorf("empty month: expected 0, got %d", got[0].Rate)
	}
	if got[1].Rate != 0 { // February: 0/1
		t.Errorf("february: expected 0, got %d", got[1].Rate)
	}
	if got[2].Rate != 67 { // March: 2/3
		t.Errorf("march: expected 67, got %d", got[2].Rate)
	}
}

func TestMoodTimeline(t *testing.T) {
	sessions := []api.Session{
		{Number: 3, PostMood: 7, Date: day(2026, 3, 1), Completed: true},
		{Number: 1, PostMood: 4, Date: day(2026, 1, 1), Completed: true},
		{Number: 2, PostMood: 6, Date: day(2026, 2, 1), Completed: true},
		{Number: 4, PostMood: 9, Date: day(2026, 3, 8), Completed: false},
	}
	got := stats.MoodTimeline(sessions, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got))
	}
	if got[0].Number != 2 || got[1].Number != 3 {
		t.Errorf("expected sessions 2 then 3, got %d then %d", got[0].Number, got[1].Number)
	}
}

func TestLoggingStreak(t *testing.T) {
	now := day(2026, 3, 10)
	entries := []api.LogEntry{
		entry(api.EntryEvent, 1, day(2026, 3, 9)),
		entry(api.EntryEvent, 1, day(2026, 3, 8)),
		entry(api.EntryEvent, 1, day(2026, 3, 6)), // gap on the 7th
	}
	if got := stats.LoggingStreak(entries, now); got != 2 {
		t.Errorf("expected streak 2, got %d", got)
	}
	if got := stats.LoggingStreak(nil, now); got != 0 {
		t.Errorf("expected streak 0 for no entries, got %d", got)
	}
}
