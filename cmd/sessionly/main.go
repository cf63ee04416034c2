// Command sessionly is a terminal client for the Sessionly API: log entries,
// sessions, homework, and pattern summaries from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sessionly/sessionly/api"
	"github.com/sessionly/sessionly/client/ratelimit"
	"github.com/sessionly/sessionly/client/store"
)

const defaultBaseURL = "http://localhost:8080/api"

var baseURL string

// submitLimiter guards submission commands. A blocked attempt returns
// without touching the network.
var submitLimiter = ratelimit.New(800 * time.Millisecond)

var rootCmd = &cobra.Command{
	Use:   "sessionly",
	Short: "Sessionly tracks therapy sessions, homework, and moments from your terminal",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "api", "", "API base URL (default "+defaultBaseURL+", or SESSIONLY_API)")
}

// newApp builds the application state container over the HTTP gateway with
// file-persisted credentials.
func newApp() (*store.App, error) {
	url := baseURL
	if url == "" {
		url = os.Getenv("SESSIONLY_API")
	}
	if url == "" {
		url = defaultBaseURL
	}

	credsPath, err := store.DefaultCredentialsPath()
	if err != nil {
		return nil, err
	}
	return store.New(api.NewClient(url),
		store.WithCredentials(store.NewFileCredentials(credsPath)),
	), nil
}

// authedApp restores the persisted session and fails when it is missing or
// rejected.
func authedApp(ctx context.Context) (*store.App, error) {
	app, err := newApp()
	if err != nil {
		return nil, err
	}
	if err := app.RefreshSession(ctx); err != nil {
		return nil, err
	}
	if app.State() != store.StateAuthenticated {
		return nil, fmt.Errorf("not logged in, run: sessionly login")
	}
	return app, nil
}

// submit runs action through the shared limiter.
func submit(action func() error) error {
	blocked, err := submitLimiter.Attempt(action)
	if blocked {
		return fmt.Errorf("please wait a moment before submitting again")
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
