package cmd

import (
	"context"
	"fmt"

	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/spf13/cobra"
)

// breakCmd represents the break command
var breakCmd = &cobra.Command{
	Use:   "break",
	Short: "Start a break",
	Long: `Close the current activity entry and record a break. Break time shows
up as idle in the summary, never attributed to an activity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := sessionService.Load(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		if err := sessionService.StartBreak(ctx); err != nil {
			if err == domain.ErrNoSessionConfigured {
				return fmt.Errorf("the session clock is not running, start an activity first")
			}
			return fmt.Errorf("failed to start break: %w", err)
		}

		fmt.Println("☕ Break started. Select an activity to get back to work.")
		return nil
	},
}
