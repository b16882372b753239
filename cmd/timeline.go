package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/spf13/cobra"
)

// timelineCmd represents the timeline command
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the session timeline",
	Long:  `Display every recorded interval in order: activities, breaks, and the still-open entry if there is one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := sessionService.Load(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		entries, err := sessionService.GetTimeline(ctx)
		if err != nil {
			return fmt.Errorf("failed to get timeline: %w", err)
		}

		if jsonOutput {
			return outputTimelineJSON(entries)
		}

		printTimelineText(entries)
		return nil
	},
}

// outputTimelineJSON outputs the timeline in JSON format
func outputTimelineJSON(entries []domain.TimelineEntry) error {
	now := time.Now()

	var list []map[string]interface{}
	for i := range entries {
		entry := &entries[i]
		item := map[string]interface{}{
			"id":         entry.ID,
			"started_at": time.UnixMilli(entry.StartTime).Format("2006-01-02T15:04:05"),
			"duration":   domain.FormatSeconds(entry.Duration(now)),
			"open":       entry.IsOpen(),
		}
		if entry.ActivityID != nil {
			item["activity_id"] = *entry.ActivityID
		}
		if entry.ActivityName != nil {
			item["activity_name"] = *entry.ActivityName
		} else {
			item["activity_name"] = "break"
		}
		if entry.EndTime != nil {
			item["ended_at"] = time.UnixMilli(*entry.EndTime).Format("2006-01-02T15:04:05")
		}
		list = append(list, item)
	}

	data := map[string]interface{}{
		"entries": list,
		"count":   len(list),
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// printTimelineText prints the timeline in plain text format
func printTimelineText(entries []domain.TimelineEntry) {
	if len(entries) == 0 {
		fmt.Println("No timeline entries yet.")
		return
	}

	now := time.Now()
	fmt.Printf("🕐 Timeline (%d entries):\n\n", len(entries))
	for i := range entries {
		entry := &entries[i]
		name := "☕ break"
		if entry.ActivityName != nil {
			name = *entry.ActivityName
		}
		start := time.UnixMilli(entry.StartTime).Format("15:04:05")
		end := "now"
		if entry.EndTime != nil {
			end = time.UnixMilli(*entry.EndTime).Format("15:04:05")
		}
		fmt.Printf("   %s – %-8s  %-20s %s\n", start, end, name, domain.FormatSeconds(entry.Duration(now)))
	}
}
