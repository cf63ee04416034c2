package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sessionly/sessionly/api"
)

var (
	logText      string
	logType      string
	logIntensity int
	logArchived  bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Capture and review moments between sessions",
}

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Capture a moment",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := authedApp(ctx)
		if err != nil {
			return err
		}

		entryType := api.EntryType(strings.ToLower(logType))
		switch entryType {
		case api.EntryTrigger, api.EntryEvent, api.EntryThought, api.EntryWin:
		default:
			return fmt.Errorf("type must be one of trigger, event, thought, win")
		}
		if logIntensity < 1 || logIntensity > 5 {
			return fmt.Errorf("intensity must be from 1 to 5")
		}

		var blocked bool
		err = submit(func() error {
			var err error
			blocked, err = app.AddEntry(ctx, api.CreateLogInput{
				Text: logText, Type: entryType, Intensity: logIntensity,
			})
			return err
		})
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("monthly limit of %d entries reached on the FREE plan; run: sessionly plan PRO",
				app.Benefits().MaxMonthlyEntries)
		}

		fmt.Printf("Logged %s (intensity %d). %d entries this month.\n",
			entryType, logIntensity, app.MonthlyEntryCount())
		return nil
	},
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured moments, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := authedApp(ctx)
		if err != nil {
			return err
		}

		entries := app.Entries()
		if logArchived {
			app.LoadArchivedEntries(ctx)
			entries = app.ArchivedEntries()
		}
		if len(entries) == 0 {
			fmt.Println("No entries.")
			return nil
		}
		for _, e := range entries {
			marker := " "
			if e.AddedToPrep {
				marker = "*"
			}
			fmt.Printf("%s %-8s [%d] %s  %s\n",
				marker, e.Type, e.Intensity, e.CreatedAt.Format("Jan 02"), e.Text)
		}
		return nil
	},
}

var logPrepCmd = &cobra.Command{
	Use:   "prep <id>",
	Short: "Toggle an entry on the next-session prep list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := authedApp(ctx)
		if err != nil {
			return err
		}
		if err := app.ToggleEntryPrep(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Updated prep list.")
		return nil
	},
}

func init() {
	logAddCmd.Flags().StringVar(&logText, "text", "", "What happened")
	logAddCmd.Flags().StringVar(&logType, "type", "event", "trigger, event, thought, or win")
	logAddCmd.Flags().IntVar(&logIntensity, "intensity", 3, "Intensity from 1 to 5")
	logAddCmd.MarkFlagRequired("text")
	logListCmd.Flags().BoolVar(&logArchived, "archived", false, "Show archived entries")

	logCmd.AddCommand(logAddCmd, logListCmd, logPrepCmd)
	rootCmd.AddCommand(logCmd)
}
