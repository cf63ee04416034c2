package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sessionly/sessionly/api"
)

var (
	authEmail    string
	authPassword string
	authName     string
)

func readPassword(prompt string) (string, error) {
	if authPassword != "" {
		return authPassword, nil
	}
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		err = app.SignUp(context.Background(), api.SignupInput{
			Email: authEmail, Password: password, Name: authName,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Welcome, %s! You are on the %s plan.\n", app.User().Name, app.Plan())
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		err = app.Login(context.Background(), api.LoginInput{Email: authEmail, Password: password})
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (%s plan)\n", app.User().Email, app.Plan())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear persisted credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		app.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := authedApp(context.Background())
		if err != nil {
			return err
		}
		u := app.User()
		fmt.Printf("%s <%s>, %s plan\n", u.Name, u.Email, u.Plan)
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan [FREE|PRO]",
	Short: "Show or switch the billing plan",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := authedApp(ctx)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			b := app.Benefits()
			fmt.Printf("Plan: %s\n", app.Plan())
			if b.MaxMonthlyEntries > 0 {
				fmt.Printf("Entries this month: %d of %d\n", app.MonthlyEntryCount(), b.MaxMonthlyEntries)
			} else {
				fmt.Println("Entries this month: unlimited")
			}
			return nil
		}

		plan := api.Plan(strings.ToUpper(args[0]))
		if plan != api.PlanFree && plan != api.PlanPro {
			return fmt.Errorf("unknown plan %q", args[0])
		}
		if err := app.SelectPlan(ctx, plan); err != nil {
			return err
		}
		fmt.Printf("Switched to the %s plan.\n", plan)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{signupCmd, loginCmd} {
		cmd.Flags().StringVar(&authEmail, "email", "", "Account email")
		cmd.Flags().StringVar(&authPassword, "password", "", "Password (prompted if omitted)")
		cmd.MarkFlagRequired("email")
	}
	signupCmd.Flags().StringVar(&authName, "name", "", "Display name")

	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, whoamiCmd, planCmd)
}
