package cmd

import (
	"context"
	"fmt"

	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/spf13/cobra"
)

var removeForce bool

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove an activity",
	Long: `Remove an activity from the board. The activity is only hidden; past
timeline entries keep their name and colors. Removal is refused while the
activity has recorded time in the current session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ref := args[0]

		if err := sessionService.Load(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		activity, err := activityService.ResolveActivity(ctx, ref)
		if err != nil {
			if err == domain.ErrActivityNotFound {
				return fmt.Errorf("activity not found: %s", ref)
			}
			return fmt.Errorf("failed to find activity: %w", err)
		}

		if !removeForce && !jsonOutput {
			fmt.Printf("Remove activity '%s' (%s)? [y/N]: ", activity.Name, activity.ID[:8])
			var confirm string
			_, _ = fmt.Scanln(&confirm)
			if confirm != "y" && confirm != "Y" {
				fmt.Println("Removal cancelled.")
				return nil
			}
		}

		if err := sessionService.RemoveActivity(ctx, activity.ID); err != nil {
			if err == domain.ErrActivityInUse {
				return fmt.Errorf("activity '%s' has recorded time in this session, complete or reset first", activity.Name)
			}
			return fmt.Errorf("failed to remove activity: %w", err)
		}

		if jsonOutput {
			fmt.Printf("{\"removed\": true, \"activity_id\": %q}\n", activity.ID)
			return nil
		}

		fmt.Printf("🗑 Activity '%s' removed.\n", activity.Name)
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")
}
