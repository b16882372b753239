package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mrtimely/timely-cli/internal/services"
	"github.com/spf13/cobra"
)

var addDescription string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new activity",
	Long:  `Add a new activity to the board. Each activity gets the next free color slot.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		name := strings.Join(args, " ")

		activity, err := activityService.AddActivity(ctx, services.AddActivityRequest{
			Name:        name,
			Description: addDescription,
		})
		if err != nil {
			return fmt.Errorf("failed to add activity: %w", err)
		}

		if jsonOutput {
			data := map[string]interface{}{
				"id":          activity.ID,
				"name":        activity.Name,
				"description": activity.Description,
				"color_index": activity.ColorIndex,
				"created_at":  activity.CreatedAt.Format("2006-01-02T15:04:05"),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal activity: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		fmt.Printf("✅ Activity added: %s (ID: %s)\n", activity.Name, activity.ID[:8])
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "desc", "d", "", "Description for the activity")
}
