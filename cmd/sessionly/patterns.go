package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sessionly/sessionly/client/stats"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show recurring themes and progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := authedApp(ctx)
		if err != nil {
			return err
		}

		app.LoadArchivedEntries(ctx)
		entries := append(app.Entries(), app.ArchivedEntries()...)
		sessions := app.Sessions()
		homework := app.Homework()
		now := time.Now()

		fmt.Printf("Logging streak: %d day(s)\n", stats.LoggingStreak(entries, now))
		fmt.Printf("Entries this month: %d\n\n", stats.MonthlyEntryCount(app.Entries(), now))

		if topics := stats.TopicFrequency(sessions); len(topics) > 0 {
			fmt.Println("Recurring themes:")
			for _, tc := range topics {
				fmt.Printf("  %-14s %s (%d)\n", tc.Topic, strings.Repeat("#", tc.Count), tc.Count)
			}
			fmt.Println()
		}

		if moods := stats.MoodTimeline(sessions, 10); len(moods) > 0 {
			fmt.Println("Mood after recent sessions:")
			for _, p := range moods {
				fmt.Printf("  #%-3d %s  %2d/10\n", p.Number, p.Date.Format("Jan 02"), p.Mood)
			}
			fmt.Println()
		}

		rates := stats.HomeworkCompletionByMonth(homework, 3, now)
		fmt.Println("Homework completion:")
		for _, r := range rates {
			fmt.Printf("  %s  %d%%\n", r.Month.Format("Jan 2006"), r.Rate)
		}

		if wins := stats.RecentWins(entries, 3); len(wins) > 0 {
			fmt.Println("\nRecent wins:")
			for _, w := range wins {
				fmt.Printf("  %s  %s\n", w.CreatedAt.Format("Jan 02"), w.Text)
			}
		}

		if !app.Benefits().HasPatternInsights {
			fmt.Println("\nUpgrade to PRO for the full trigger heatmap and PDF export.")
		} else {
			fmt.Println("\nTrigger intensity, last 14 days:")
			for _, d := range stats.DailyTriggerIntensity(entries, 14, now) {
				bar := strings.Repeat("#", d.Intensity)
				fmt.Printf("  %s  %s\n", d.Date.Format("Jan 02"), bar)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
