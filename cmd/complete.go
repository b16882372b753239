package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// completeCmd represents the complete command
var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Complete the current activity",
	Long:  `Close the open timeline entry. The session clock keeps running; time until the next selection counts as idle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := sessionService.Load(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		current := sessionService.CurrentActivity()
		onBreak := sessionService.OnBreak()

		if !sessionService.CompleteCurrent(ctx) {
			fmt.Println("Nothing to complete.")
			return nil
		}

		if onBreak {
			fmt.Println("✅ Break ended.")
			return nil
		}
		if current != nil {
			fmt.Printf("✅ Completed %s.\n", current.Name)
			return nil
		}
		fmt.Println("✅ Entry closed.")
		return nil
	},
}
