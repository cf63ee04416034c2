// Package stats computes the derived aggregates shown on the Patterns
// dashboard. Every function is pure: it reads a snapshot and returns a
// result, recomputed on every call.
package stats

import (
	"sort"
	"time"

	"github.com/sessionly/sessionly/api"
)

// Benefits resolves the feature limits of a plan. MaxMonthlyEntries of 0
// means unbounded.
type Benefits struct {
	MaxMonthlyEntries  int
	HasPatternInsights bool
	HasPDFExport       bool
}

// FreeMonthlyEntryLimit is the log-entry quota per calendar month on FREE.
const FreeMonthlyEntryLimit = 30

// PlanBenefits maps a plan to its limits and feature flags.
func PlanBenefits(plan api.Plan) Benefits {
	if plan == api.PlanPro {
		return Benefits{MaxMonthlyEntries: 0, HasPatternInsights: true, HasPDFExport: true}
	}
	return Benefits{MaxMonthlyEntries: FreeMonthlyEntryLimit}
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// MonthlyEntryCount counts entries created in the calendar month of now,
// in local time.
func MonthlyEntryCount(entries []api.LogEntry, now time.Time) int {
	count := 0
	for _, e := range entries {
		if sameMonth(e.CreatedAt, now) {
			count++
		}
	}
	return count
}

// DayIntensity is one cell of the trigger heatmap.
type DayIntensity struct {
	Date      time.Time
	Intensity int // max trigger intensity that day, 0 when none
}

// DailyTriggerIntensity returns, for each of the last days days ending at
// now, the maximum intensity among that day's trigger entries.
func DailyTriggerIntensity(entries []api.LogEntry, days int, now time.Time) []DayIntensity {
	out := make([]DayIntensity, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -(days - 1 - i))
		max := 0
		for _, e := range entries {
			if e.Type == api.EntryTrigger && sameDay(e.CreatedAt, date) && e.Intensity > max {
				max = e.Intensity
			}
		}
		out = append(out, DayIntensity{Date: date, Intensity: max})
	}
	return out
}

// TopicCount is one ranked entry of the recurring-themes list.
type TopicCount struct {
	Topic string
	Count int
}

// TopicFrequency counts, per topic tag, the completed sessions containing it,
// ranked descending. Ties keep the tag enumeration order, so the result is
// deterministic.
func TopicFrequency(sessions []api.Session) []TopicCount {
	counts := make(map[string]int)
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		for _, topic := range s.Topics {
			counts[topic]++
		}
	}

	out := make([]TopicCount, 0, len(counts))
	for _, topic := range api.TopicTags {
		if n := counts[topic]; n > 0 {
			out = append(out, TopicCount{Topic: topic, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// MonthRate is the homework completion percentage for one calendar month.
type MonthRate struct {
	Month time.Time // first of month
	Rate  int       // round(100*done/total), 0 when total is 0
}

// HomeworkCompletionByMonth computes completion rates for the last months
// months ending at now, grouped by each item's session date.
func HomeworkCompletionByMonth(items []api.HomeworkItem, months int, now time.Time) []MonthRate {
	out := make([]MonthRate, 0, months)
	for i := 0; i < months; i++ {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1 - i), 0)
		total, done := 0, 0
		for _, h := range items {
			if sameMonth(h.SessionDate, month) {
				total++
				if h.Completed {
					done++
				}
			}
		}
		rate := 0
		if total > 0 {
			rate = int(float64(done)/float64(total)*100 + 0.5)
		}
		out = append(out, MonthRate{Month: month, Rate: rate})
	}
	return out
}

// MoodPoint is one point of the session mood timeline.
type MoodPoint struct {
	Number int
	Mood   int
	Date   time.Time
}

// MoodTimeline returns the post-session mood of the last n completed
// sessions, in date order.
func MoodTimeline(sessions []api.Session, n int) []MoodPoint {
	completed := make([]api.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Completed {
			completed = append(completed, s)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool { return completed[i].Date.Before(completed[j].Date) })
	if len(completed) > n {
		completed = completed[len(completed)-n:]
	}
	out := make([]MoodPoint, 0, len(completed))
	for _, s := range completed {
		out = append(out, MoodPoint{Number: s.Number, Mood: s.PostMood, Date: s.Date})
	}
	return out
}

// RecentWins returns the newest n win-type entries, newest first.
func RecentWins(entries []api.LogEntry, n int) []api.LogEntry {
	wins := make([]api.LogEntry, 0)
	for _, e := range entries {
		if e.Type == api.EntryWin {
			wins = append(wins, e)
		}
	}
	sort.SliceStable(wins, func(i, j int) bool { return wins[i].CreatedAt.After(wins[j].CreatedAt) })
	if len(wins) > n {
		wins = wins[:n]
	}
	return wins
}

// LoggingStreak counts consecutive days with at least one entry, walking
// back from now. A day without entries today does not break a streak that
// ended yesterday.
func LoggingStreak(entries []api.LogEntry, now time.Time) int {
	day := now
	streak := 0
	if !anyOnDay(entries, day) {
		day = day.AddDate(0, 0, -1)
	}
	for anyOnDay(entries, day) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func anyOnDay(entries []api.LogEntry, day time.Time) bool {
	for _, e := range entries {
		if sameDay(e.CreatedAt, day) {
			return true
		}
	}
	return false
}
