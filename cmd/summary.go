package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/spf13/cobra"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show per-activity totals",
	Long:  `Display the session totals: elapsed, active, idle, overtime, and how much time each activity received.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := sessionService.Load(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		report, err := sessionService.GetSummary(ctx)
		if err != nil {
			return fmt.Errorf("failed to get summary: %w", err)
		}

		if jsonOutput {
			return outputSummaryJSON(report)
		}

		printSummaryText(report)
		return nil
	},
}

// outputSummaryJSON outputs the report in JSON format
func outputSummaryJSON(report *domain.Report) error {
	var perActivity []map[string]interface{}
	for _, total := range report.PerActivity {
		perActivity = append(perActivity, map[string]interface{}{
			"activity_id": total.ID,
			"name":        total.Name,
			"tracked":     domain.FormatSeconds(total.Duration),
		})
	}

	result := map[string]interface{}{
		"planned":      domain.FormatSeconds(report.Planned),
		"elapsed":      domain.FormatSeconds(report.Elapsed),
		"active":       domain.FormatSeconds(report.Active),
		"idle":         domain.FormatSeconds(report.Idle),
		"overtime":     domain.FormatSeconds(report.Overtime),
		"per_activity": perActivity,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// printSummaryText prints the report in plain text format
func printSummaryText(report *domain.Report) {
	fmt.Println("📊 Session Summary")
	fmt.Printf("   Planned:  %s\n", domain.FormatSeconds(report.Planned))
	fmt.Printf("   Elapsed:  %s\n", domain.FormatSeconds(report.Elapsed))
	fmt.Printf("   Active:   %s\n", domain.FormatSeconds(report.Active))
	fmt.Printf("   Idle:     %s\n", domain.FormatSeconds(report.Idle))
	if report.Overtime > 0 {
		fmt.Printf("   Overtime: +%s\n", domain.FormatSeconds(report.Overtime))
	}

	if len(report.PerActivity) == 0 {
		fmt.Println("\nNo tracked time yet.")
		return
	}

	fmt.Println("\n   Per activity:")
	for _, total := range report.PerActivity {
		swatch := "●"
		if total.Colors != nil {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(total.Colors.Border)).Render("●")
		}
		fmt.Printf("   %s %-20s %s\n", swatch, total.Name, domain.FormatSeconds(total.Duration))
	}
}
