// Package cmd contains the Timely command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrtimely/timely-cli/internal/adapters/git"
	"github.com/mrtimely/timely-cli/internal/adapters/notification"
	"github.com/mrtimely/timely-cli/internal/adapters/storage"
	"github.com/mrtimely/timely-cli/internal/adapters/tui"
	"github.com/mrtimely/timely-cli/internal/config"
	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/mrtimely/timely-cli/internal/ports"
	"github.com/mrtimely/timely-cli/internal/services"
	"github.com/spf13/cobra"
)

var (
	appConfig       *config.Config
	storageAdapter  ports.Storage
	activityService *services.ActivityService
	sessionService  *services.SessionService
	gitDetector     ports.GitDetector
	notifier        *notification.Notifier

	dbPath     string
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands.
// Bare `timely` opens the interactive activity board.
var rootCmd = &cobra.Command{
	Use:   "timely",
	Short: "A personal activity and time tracker",
	Long: `Timely tracks where a work session actually goes. Set a planned
duration, add activities, and switch between them as you work; the timeline
records every interval and the board shows elapsed, idle, and per-activity
totals in real time.

Run without arguments to open the interactive board.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.timely/timely.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(breakCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// initializeServices sets up the storage, services, and adapters used by
// every command.
func initializeServices() error {
	var err error
	appConfig, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path := dbPath
	if path == "" {
		path = config.GetDBPath(appConfig)
	}

	storageAdapter, err = storage.New(path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	gitDetector = git.NewDetector()
	notifier = notification.New(&appConfig.Notifications)

	activityService = services.NewActivityService(storageAdapter)
	sessionService = services.NewSessionService(storageAdapter, gitDetector, services.SessionOptions{
		DefaultDuration: time.Duration(appConfig.Session.DefaultDuration),
		MaxRecoveryAge:  time.Duration(appConfig.Session.MaxRecoveryAge),
		DarkTheme:       appConfig.Theme.Dark,
	})

	return nil
}

// cleanupServices closes resources opened by initializeServices.
func cleanupServices() error {
	if storageAdapter != nil {
		if err := storageAdapter.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	return nil
}

// setupSignalHandler returns a context that is cancelled on SIGINT or SIGTERM.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// runBoard restores any persisted session, walks a first-run wizard when the
// session has no planned duration yet, and launches the interactive board.
func runBoard() error {
	ctx := setupSignalHandler()

	if err := sessionService.Load(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	state, err := sessionService.GetCurrentState(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current state: %w", err)
	}

	if appConfig.FirstRun || !state.IsConfigured() {
		if err := runSetupWizard(ctx); err != nil {
			return err
		}
		state, err = sessionService.GetCurrentState(ctx)
		if err != nil {
			return fmt.Errorf("failed to get current state: %w", err)
		}
	}

	return launchBoard(ctx, state)
}

// launchBoard wires the services into a board and runs it until quit.
func launchBoard(ctx context.Context, state *domain.CurrentState) error {
	board := tui.NewBoard(appConfig.Completion, &appConfig.Theme)

	sessionOverSent := false
	board.SetFetchState(func() *domain.CurrentState {
		fresh, err := sessionService.GetCurrentState(ctx)
		if err != nil {
			return nil
		}
		if fresh.IsRunning() && fresh.Session.Remaining(time.Now()) == 0 && !sessionOverSent {
			sessionOverSent = true
			_ = notifier.NotifySessionOver(domain.FormatSeconds(fresh.Session.Duration))
		}
		return fresh
	})

	board.SetCommandCallback(func(cmd ports.BoardCommand, arg string) error {
		switch cmd {
		case ports.CmdSelect:
			_, err := sessionService.SelectActivity(ctx, arg)
			return err
		case ports.CmdAdd:
			_, err := activityService.AddActivity(ctx, services.AddActivityRequest{Name: arg})
			return err
		case ports.CmdComplete:
			sessionService.CompleteCurrent(ctx)
		case ports.CmdBreak:
			return sessionService.StartBreak(ctx)
		case ports.CmdAddMinute:
			sessionService.AddOneMinute(ctx)
		case ports.CmdReset:
			sessionService.Reset(ctx)
		}
		return nil
	})

	board.SetNotifications(notifier.IsEnabled(), func(enabled bool) {
		appConfig.Notifications.Enabled = enabled
		if err := config.Save(appConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save config: %v\n", err)
		}
	})

	board.SetActivityCompleteCallback(func(name string, tracked time.Duration) {
		_ = notifier.NotifyActivityComplete(name, domain.FormatSeconds(tracked))
	})

	if err := board.Run(ctx, state); err != nil {
		return fmt.Errorf("board error: %w", err)
	}

	return nil
}

// runSetupWizard walks the first-run flow: pick a planned duration, then
// optionally seed the first activity.
func runSetupWizard(ctx context.Context) error {
	durations := []struct {
		label string
		value time.Duration
	}{
		{"25 minutes", 25 * time.Minute},
		{"50 minutes", 50 * time.Minute},
		{"1 hour", time.Hour},
		{"2 hours", 2 * time.Hour},
		{"Custom", 0},
	}

	items := make([]tui.PickerItem, len(durations))
	for i, d := range durations {
		items[i] = tui.PickerItem{Label: d.label}
	}

	result := tui.RunPicker("How long is this session?", items, "You can extend it later with 'm' on the board.", &appConfig.Theme)
	if result.Aborted {
		return fmt.Errorf("setup cancelled")
	}

	duration := durations[result.Index].value
	if duration == 0 {
		prompt := tui.RunTextPrompt("Planned duration (e.g. 90m, 1h30m):", "1h", &appConfig.Theme)
		if prompt.Aborted {
			return fmt.Errorf("setup cancelled")
		}
		parsed, err := parseDurationArg(prompt.Value)
		if err != nil {
			return err
		}
		duration = parsed
	}

	if err := sessionService.Setup(ctx, duration); err != nil {
		return fmt.Errorf("failed to set up session: %w", err)
	}

	activities, err := activityService.ListActivities(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	if len(activities) == 0 {
		prompt := tui.RunTextPrompt("Name your first activity:", "deep work", &appConfig.Theme)
		if !prompt.Aborted && prompt.Value != "" {
			if _, err := activityService.AddActivity(ctx, services.AddActivityRequest{Name: prompt.Value}); err != nil {
				return fmt.Errorf("failed to add activity: %w", err)
			}
		}
	}

	if appConfig.FirstRun {
		appConfig.FirstRun = false
		if err := config.Save(appConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save config: %v\n", err)
		}
	}

	return nil
}

// parseDurationArg accepts either a Go duration string ("1h30m") or a bare
// number of minutes ("90").
func parseDurationArg(arg string) (time.Duration, error) {
	if d, err := time.ParseDuration(arg); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("duration must be positive: %s", arg)
		}
		return d, nil
	}

	var minutes int
	if _, err := fmt.Sscanf(arg, "%d", &minutes); err == nil && minutes > 0 {
		return time.Duration(minutes) * time.Minute, nil
	}

	return 0, fmt.Errorf("invalid duration: %s (use formats like 90m, 1h30m, or a number of minutes)", arg)
}

// formatMinutes renders a duration as a short human label like "1h 30m".
func formatMinutes(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}
