package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sessionly/sessionly/api"
)

var (
	sessionDate     string
	sessionTopics   []string
	sessionNotes    string
	sessionMood     int
	sessionMoodWord string
	sessionHomework []string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Record and review therapy sessions",
}

var sessionSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Record a completed session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := authedApp(ctx)
		if err != nil {
			return err
		}

		date := time.Now()
		if sessionDate != "" {
			if date, err = time.Parse("2006-01-02", sessionDate); err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}
		}
		if sessionMood < 1 || sessionMood > 10 {
			return fmt.Errorf("mood must be from 1 to 10")
		}
		for _, topic := range sessionTopics {
			known := false
			for _, t := range api.TopicTags {
				if strings.EqualFold(t, topic) {
					known = true
					break
				}
			}
			if !known {
				return fmt.Errorf("unknown topic %q (known: %s)", topic, strings.Join(api.TopicTags, ", "))
			}
		}

		drafts := make([]api.HomeworkDraft, 0, len(sessionHomework))
		for _, text := range sessionHomework {
			drafts = append(drafts, api.HomeworkDraft{Text: text})
		}

		in := api.CreateSessionInput{
			Date:          date,
			Topics:        sessionTopics,
			WhatStoodOut:  sessionNotes,
			PostMood:      sessionMood,
			MoodWord:      sessionMoodWord,
			Completed:     true,
			HomeworkItems: drafts,
		}
		if err := submit(func() error { return app.SaveSession(ctx, in) }); err != nil {
			return err
		}

		saved := app.Sessions()[0]
		fmt.Printf("Saved session #%d", saved.Number)
		if len(drafts) > 0 {
			fmt.Printf(" with %d homework item(s)", len(drafts))
		}
		fmt.Println(".")
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := authedApp(ctx)
		if err != nil {
			return err
		}

		sessions := app.Sessions()
		if len(sessions) == 0 {
			fmt.Println("No sessions.")
			return nil
		}
		for _, s := range sessions {
			topics := strings.Join(s.Topics, ", ")
			if topics == "" {
				topics = "-"
			}
			fmt.Printf("#%-3d %s  mood %d/10  %s\n", s.Number, s.Date.Format("2006-01-02"), s.PostMood, topics)
		}
		return nil
	},
}

func init() {
	sessionSaveCmd.Flags().StringVar(&sessionDate, "date", "", "Session date (YYYY-MM-DD, default today)")
	sessionSaveCmd.Flags().StringSliceVar(&sessionTopics, "topic", nil, "Topic tag (repeatable)")
	sessionSaveCmd.Flags().StringVar(&sessionNotes, "notes", "", "What stood out")
	sessionSaveCmd.Flags().IntVar(&sessionMood, "mood", 5, "Post-session mood from 1 to 10")
	sessionSaveCmd.Flags().StringVar(&sessionMoodWord, "mood-word", "", "One word for the mood")
	sessionSaveCmd.Flags().StringSliceVar(&sessionHomework, "homework", nil, "Homework item (repeatable)")

	sessionCmd.AddCommand(sessionSaveCmd, sessionListCmd)
	rootCmd.AddCommand(sessionCmd)
}
