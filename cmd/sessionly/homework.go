package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sessionly/sessionly/api"
)

var (
	homeworkText string
	homeworkDue  string
)

var homeworkCmd = &cobra.Command{
	Use:   "homework",
	Short: "Track therapist-assigned homework",
}

var homeworkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List homework items",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := authedApp(ctx)
		if err != nil {
			return err
		}

		items := app.Homework()
		if len(items) == 0 {
			fmt.Println("No homework.")
			return nil
		}
		for _, h := range items {
			box := "[ ]"
			if h.Completed {
				box = "[x]"
			}
			line := fmt.Sprintf("%s %s  %s", box, h.ID, h.Text)
			if h.DueDate != nil && !h.Completed {
				line += fmt.Sprintf(" (due %s)", h.DueDate.Format("Jan 02"))
			}
			fmt.Println(line)
		}
		return nil
	},
}

var homeworkAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a homework item",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := authedApp(ctx)
		if err != nil {
			return err
		}

		in := api.CreateHomeworkInput{Text: homeworkText, SessionDate: time.Now()}
		if homeworkDue != "" {
			due, err := time.Parse("2006-01-02", homeworkDue)
			if err != nil {
				return fmt.Errorf("due date must be YYYY-MM-DD: %w", err)
			}
			in.DueDate = &due
		}

		if err := submit(func() error { return app.AddHomework(ctx, in) }); err != nil {
			return err
		}
		fmt.Println("Added.")
		return nil
	},
}

var homeworkToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a homework item done or not done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := authedApp(ctx)
		if err != nil {
			return err
		}
		if err := app.ToggleHomework(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Updated.")
		return nil
	},
}

func init() {
	homeworkAddCmd.Flags().StringVar(&homeworkText, "text", "", "The task")
	homeworkAddCmd.Flags().StringVar(&homeworkDue, "due", "", "Due date (YYYY-MM-DD)")
	homeworkAddCmd.MarkFlagRequired("text")

	homeworkCmd.AddCommand(homeworkListCmd, homeworkAddCmd, homeworkToggleCmd)
	rootCmd.AddCommand(homeworkCmd)
}
