package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mrtimely/timely-cli/internal/adapters/tui"
	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [name|id]",
	Short: "Start tracking an activity",
	Long: `Switch time tracking to the given activity. The reference is matched
by ID first, then by fuzzy name. Starting the activity that is already being
tracked toggles it off instead. With no arguments, an interactive picker is
shown. The shared session clock starts on the first selection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := sessionService.Load(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		ref := strings.Join(args, " ")
		if ref == "" {
			picked, err := pickActivity(ctx)
			if err != nil {
				return err
			}
			if picked == "" {
				fmt.Println("Nothing selected.")
				return nil
			}
			ref = picked
		}

		wasCurrent := false
		if current := sessionService.CurrentActivity(); current != nil {
			wasCurrent = ref == current.ID || ref == current.Name
		}

		activity, err := sessionService.SelectActivity(ctx, ref)
		if err != nil {
			if err == domain.ErrNoSessionConfigured {
				return fmt.Errorf("no session configured, run: timely setup <duration>")
			}
			if err == domain.ErrActivityNotFound {
				return fmt.Errorf("activity not found: %s", ref)
			}
			return fmt.Errorf("failed to start activity: %w", err)
		}

		if activity == nil && wasCurrent {
			fmt.Printf("⏸ Stopped tracking %s.\n", ref)
			return nil
		}

		session := sessionService.Session()
		fmt.Printf("▶ Tracking %s. %s remaining.\n",
			activity.Name, domain.FormatSeconds(session.Remaining(time.Now())))
		return nil
	},
}

// pickActivity shows the interactive picker and returns the chosen activity ID.
func pickActivity(ctx context.Context) (string, error) {
	activities, err := activityService.ListActivities(ctx, false)
	if err != nil {
		return "", fmt.Errorf("failed to list activities: %w", err)
	}
	if len(activities) == 0 {
		return "", fmt.Errorf("no activities yet, add one with: timely add <name>")
	}

	items := make([]tui.PickerItem, len(activities))
	for i, a := range activities {
		items[i] = tui.PickerItem{Label: a.Name, Desc: a.Description}
	}

	result := tui.RunPicker("Start which activity?", items, "", &appConfig.Theme)
	if result.Aborted {
		return "", nil
	}
	return activities[result.Index].ID, nil
}
