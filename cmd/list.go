package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var listAll bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities",
	Long:  `List all activities on the board. Removed activities are hidden unless --all is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		activities, err := activityService.ListActivities(ctx, listAll)
		if err != nil {
			return fmt.Errorf("failed to list activities: %w", err)
		}

		if jsonOutput {
			var list []map[string]interface{}
			for _, a := range activities {
				list = append(list, map[string]interface{}{
					"id":          a.ID,
					"name":        a.Name,
					"description": a.Description,
					"color_index": a.ColorIndex,
					"is_active":   a.IsActive,
					"created_at":  a.CreatedAt.Format("2006-01-02T15:04:05"),
				})
			}
			data := map[string]interface{}{
				"activities": list,
				"count":      len(list),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal activities: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		if len(activities) == 0 {
			fmt.Println("No activities yet. Add one with: timely add <name>")
			return nil
		}

		fmt.Printf("📋 Activities (%d):\n\n", len(activities))
		for _, a := range activities {
			colors := a.Colors(appConfig.Theme.Dark)
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Border)).Render("●")
			suffix := ""
			if !a.IsActive {
				suffix = " (removed)"
			}
			fmt.Printf("%s %s (ID: %s)%s\n", swatch, a.Name, a.ID[:8], suffix)
			if a.Description != "" {
				fmt.Printf("   %s\n", a.Description)
			}
		}

		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include removed activities")
}
