package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the session",
	Long: `Clear the session timer and the entire timeline, including the persisted
snapshot. Activities survive a reset; only recorded time is lost. This cannot
be undone. Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := sessionService.Load(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		if !resetForce {
			fmt.Print("This will discard the current session and timeline. Type 'yes' to confirm: ")
			reader := bufio.NewReader(os.Stdin)
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(strings.ToLower(input))
			if input != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		sessionService.Reset(ctx)

		fmt.Println("Session reset. Fresh start.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
}
