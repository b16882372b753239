package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current status",
	Long:  `Display the session clock, the activity being tracked, and the headline totals.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := sessionService.Load(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		state, err := sessionService.GetCurrentState(ctx)
		if err != nil {
			return fmt.Errorf("failed to get current state: %w", err)
		}

		if jsonOutput {
			return outputStatusJSON(state)
		}

		printStatusText(state)
		return nil
	},
}

// outputStatusJSON outputs the status in JSON format
func outputStatusJSON(state *domain.CurrentState) error {
	now := time.Now()

	result := map[string]interface{}{
		"status":           state.StatusLabel(now),
		"configured":       state.IsConfigured(),
		"on_break":         state.OnBreak,
		"current_activity": nil,
		"session":          nil,
		"summary": map[string]interface{}{
			"active": domain.FormatSeconds(state.Report.Active),
			"idle":   domain.FormatSeconds(state.Report.Idle),
		},
		"activity_count": len(state.Activities),
	}

	if state.CurrentActivity != nil {
		result["current_activity"] = map[string]interface{}{
			"id":          state.CurrentActivity.ID,
			"name":        state.CurrentActivity.Name,
			"description": state.CurrentActivity.Description,
			"color_index": state.CurrentActivity.ColorIndex,
		}
	}

	if state.Session != nil && state.IsConfigured() {
		session := state.Session
		sessionData := map[string]interface{}{
			"planned":      domain.FormatSeconds(session.Duration),
			"elapsed":      domain.FormatSeconds(session.Elapsed(now)),
			"remaining":    domain.FormatSeconds(session.Remaining(now)),
			"overtime":     domain.FormatSeconds(session.Overtime(now)),
			"progress":     session.Progress(now),
			"timer_active": session.TimerActive,
		}
		if session.StartedAt != nil {
			sessionData["started_at"] = session.StartedAt.Format("2006-01-02T15:04:05")
		}
		if session.GitBranch != "" {
			sessionData["git_branch"] = session.GitBranch
			sessionData["git_commit"] = session.GitCommit
		}
		result["session"] = sessionData
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// printStatusText prints the status in plain text format
func printStatusText(state *domain.CurrentState) {
	now := time.Now()

	if !state.IsConfigured() {
		fmt.Println("No session configured. Run: timely setup <duration>")
		return
	}

	session := state.Session
	fmt.Printf("⏱ %s\n", state.StatusLabel(now))

	if session.TimerActive {
		if overtime := session.Overtime(now); overtime > 0 {
			fmt.Printf("   Planned: %s, overtime +%s\n",
				domain.FormatSeconds(session.Duration), domain.FormatSeconds(overtime))
		} else {
			fmt.Printf("   Remaining: %s of %s (%.0f%%)\n",
				domain.FormatSeconds(session.Remaining(now)),
				domain.FormatSeconds(session.Duration),
				session.Progress(now)*100)
		}
		if session.GitBranch != "" {
			commit := session.GitCommit
			if len(commit) > 7 {
				commit = commit[:7]
			}
			fmt.Printf("   Git: %s (%s)\n", session.GitBranch, commit)
		}
	} else {
		fmt.Printf("   Planned: %s, clock starts on first selection\n", domain.FormatSeconds(session.Duration))
	}

	if state.CurrentActivity != nil && !state.OnBreak {
		fmt.Printf("\n▶ Tracking: %s\n", state.CurrentActivity.Name)
	} else if state.OnBreak {
		fmt.Println("\n☕ On break")
	}

	fmt.Printf("\n📊 Active: %s · Idle: %s\n",
		domain.FormatSeconds(state.Report.Active),
		domain.FormatSeconds(state.Report.Idle))
}
