package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/spf13/cobra"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session",
	Long:  "Export the session timeline and per-activity totals in markdown or CSV format.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(context.Background())
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "Output format: md or csv")
}

func runExport(ctx context.Context) error {
	if err := sessionService.Load(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	entries, err := sessionService.GetTimeline(ctx)
	if err != nil {
		return fmt.Errorf("failed to get timeline: %w", err)
	}

	report, err := sessionService.GetSummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to get summary: %w", err)
	}

	switch exportFormat {
	case "csv":
		return exportCSV(entries)
	default:
		return exportMarkdown(entries, report, sessionService.Session())
	}
}

func exportMarkdown(entries []domain.TimelineEntry, report *domain.Report, session *domain.Session) error {
	now := time.Now()

	fmt.Printf("# Timely Session Export\n\n")
	fmt.Printf("Generated: %s\n\n", now.Format("2006-01-02 15:04"))

	fmt.Printf("## Session\n\n")
	fmt.Printf("- Planned: %s\n", domain.FormatSeconds(report.Planned))
	fmt.Printf("- Elapsed: %s\n", domain.FormatSeconds(report.Elapsed))
	fmt.Printf("- Active: %s\n", domain.FormatSeconds(report.Active))
	fmt.Printf("- Idle: %s\n", domain.FormatSeconds(report.Idle))
	if report.Overtime > 0 {
		fmt.Printf("- Overtime: +%s\n", domain.FormatSeconds(report.Overtime))
	}
	if session != nil && session.GitBranch != "" {
		fmt.Printf("- Git: %s (%s)\n", session.GitBranch, session.GitCommit)
	}
	fmt.Println()

	if len(report.PerActivity) > 0 {
		fmt.Printf("## Activities\n\n")
		for _, total := range report.PerActivity {
			fmt.Printf("- %s: %s\n", total.Name, domain.FormatSeconds(total.Duration))
		}
		fmt.Println()
	}

	if len(entries) > 0 {
		fmt.Printf("## Timeline\n\n")
		for i := range entries {
			entry := &entries[i]
			name := "break"
			if entry.ActivityName != nil {
				name = *entry.ActivityName
			}
			start := time.UnixMilli(entry.StartTime).Format("15:04")
			end := "now"
			if entry.EndTime != nil {
				end = time.UnixMilli(*entry.EndTime).Format("15:04")
			}
			fmt.Printf("- %s–%s %s (%s)\n", start, end, name, domain.FormatSeconds(entry.Duration(now)))
		}
	}

	return nil
}

func exportCSV(entries []domain.TimelineEntry) error {
	now := time.Now()

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	_ = w.Write([]string{"started_at", "ended_at", "activity", "duration_sec", "is_break", "open"})

	for i := range entries {
		entry := &entries[i]
		name := ""
		isBreak := "true"
		if entry.ActivityName != nil {
			name = *entry.ActivityName
			isBreak = "false"
		}
		end := ""
		if entry.EndTime != nil {
			end = time.UnixMilli(*entry.EndTime).Format("2006-01-02T15:04:05")
		}
		_ = w.Write([]string{
			time.UnixMilli(entry.StartTime).Format("2006-01-02T15:04:05"),
			end,
			name,
			fmt.Sprintf("%.0f", entry.Duration(now).Seconds()),
			isBreak,
			fmt.Sprintf("%t", entry.IsOpen()),
		})
	}
	return nil
}
