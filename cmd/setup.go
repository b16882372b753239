package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// setupCmd represents the setup command
var setupCmd = &cobra.Command{
	Use:   "setup [duration]",
	Short: "Set the planned session duration",
	Long: `Set the planned duration for the shared session timer. The timer does
not start until the first activity is selected. Accepts Go duration strings
(90m, 1h30m) or a bare number of minutes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		duration, err := parseDurationArg(args[0])
		if err != nil {
			return err
		}

		if err := sessionService.Load(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		if err := sessionService.Setup(ctx, duration); err != nil {
			return fmt.Errorf("failed to set up session: %w", err)
		}

		fmt.Printf("⏱ Session planned for %s. Select an activity to start the clock.\n", formatMinutes(duration))
		return nil
	},
}
