package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sessionly/sessionly/client/store"
)

var (
	settingsName      string
	settingsTherapist string
	settingsTheme     string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change account settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := authedApp(ctx)
		if err != nil {
			return err
		}

		patch := store.ProfilePatch{}
		changed := false
		if cmd.Flags().Changed("name") {
			patch.DisplayName = &settingsName
			changed = true
		}
		if cmd.Flags().Changed("therapist") {
			patch.TherapistName = &settingsTherapist
			changed = true
		}
		if cmd.Flags().Changed("theme") {
			patch.Theme = &settingsTheme
			changed = true
		}

		if changed {
			app.UpdateSettings(patch)
			app.FlushSettings()
		}

		s := app.Settings()
		fmt.Printf("Name:      %s\n", s.DisplayName)
		fmt.Printf("Therapist: %s\n", s.TherapistName)
		fmt.Printf("Cadence:   %s on %s at %s\n", s.SessionFrequency, s.SessionDay, s.SessionTime)
		fmt.Printf("Theme:     %s\n", s.Theme)
		return nil
	},
}

func init() {
	settingsCmd.Flags().StringVar(&settingsName, "name", "", "Display name")
	settingsCmd.Flags().StringVar(&settingsTherapist, "therapist", "", "Therapist name")
	settingsCmd.Flags().StringVar(&settingsTheme, "theme", "", "dark, light, or system")
	rootCmd.AddCommand(settingsCmd)
}
