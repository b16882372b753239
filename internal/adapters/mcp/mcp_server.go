// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/mrtimely/timely-cli/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"timely",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: get_current_state
	s.server.AddTool(
		mcp.NewTool(
			"get_current_state",
			mcp.WithDescription("Get the current tracker state including the session timer, the tracked activity, and summary totals"),
		),
		s.handleGetCurrentState,
	)

	// Tool: list_activities
	listTool := mcp.NewTool(
		"list_activities",
		mcp.WithDescription("List activities available for tracking"),
		mcp.WithBoolean(
			"include_inactive",
			mcp.Description("Include removed activities in the list"),
		),
	)
	s.server.AddTool(listTool, s.handleListActivities)

	// Tool: get_timeline
	s.server.AddTool(
		mcp.NewTool(
			"get_timeline",
			mcp.WithDescription("Get the recorded timeline of activity intervals for the current session"),
		),
		s.handleGetTimeline,
	)

	// Tool: get_summary
	s.server.AddTool(
		mcp.NewTool(
			"get_summary",
			mcp.WithDescription("Get per-activity totals and the active/idle/overtime breakdown for the current session"),
		),
		s.handleGetSummary,
	)

	// Tool: create_activity
	createTool := mcp.NewTool(
		"create_activity",
		mcp.WithDescription("Create a new activity to track time against"),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("The name of the activity"),
		),
		mcp.WithString(
			"description",
			mcp.Description("Optional description of the activity"),
		),
	)
	s.server.AddTool(createTool, s.handleCreateActivity)

	// Tool: setup_session
	setupTool := mcp.NewTool(
		"setup_session",
		mcp.WithDescription("Configure the planned session duration"),
		mcp.WithNumber(
			"duration_minutes",
			mcp.Required(),
			mcp.Description("Planned session duration in minutes"),
		),
	)
	s.server.AddTool(setupTool, s.handleSetupSession)

	// Tool: select_activity
	selectTool := mcp.NewTool(
		"select_activity",
		mcp.WithDescription("Start tracking an activity by id or name. Selecting the running activity stops tracking it"),
		mcp.WithString(
			"activity",
			mcp.Required(),
			mcp.Description("The id or name of the activity to track"),
		),
	)
	s.server.AddTool(selectTool, s.handleSelectActivity)

	// Tool: start_break
	s.server.AddTool(
		mcp.NewTool(
			"start_break",
			mcp.WithDescription("Record an explicit break, closing the current activity entry"),
		),
		s.handleStartBreak,
	)

	// Tool: complete_activity
	s.server.AddTool(
		mcp.NewTool(
			"complete_activity",
			mcp.WithDescription("Close the current timeline entry, leaving the session idle"),
		),
		s.handleCompleteActivity,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func activityJSON(a *domain.Activity) map[string]interface{} {
	return map[string]interface{}{
		"id":          a.ID,
		"name":        a.Name,
		"description": a.Description,
		"color_index": a.ColorIndex,
		"is_active":   a.IsActive,
		"created_at":  time.UnixMilli(a.CreatedAt).Format("2006-01-02T15:04:05"),
	}
}

// handleGetCurrentState handles the get_current_state tool.
func (s *Server) handleGetCurrentState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetCurrentState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current state: %w", err)
	}

	now := time.Now()
	session := state.Session

	sessionData := map[string]interface{}{
		"planned":      session.Duration.String(),
		"elapsed":      session.Elapsed(now).String(),
		"remaining":    session.Remaining(now).String(),
		"overtime":     session.Overtime(now).String(),
		"progress":     session.Progress(now),
		"timer_active": session.TimerActive,
	}
	if session.StartedAt != nil {
		sessionData["started_at"] = session.StartedAt.Format("2006-01-02T15:04:05")
	}
	if session.GitBranch != "" {
		sessionData["git_branch"] = session.GitBranch
	}
	if session.GitCommit != "" {
		sessionData["git_commit"] = session.GitCommit
	}

	result := map[string]interface{}{
		"status":           state.StatusLabel(now),
		"configured":       state.IsConfigured(),
		"on_break":         state.OnBreak,
		"current_activity": nil,
		"session":          sessionData,
		"summary": map[string]interface{}{
			"active": domain.FormatSeconds(state.Report.Active),
			"idle":   domain.FormatSeconds(state.Report.Idle),
		},
		"activity_count": len(state.Activities),
	}

	if state.CurrentActivity != nil {
		result["current_activity"] = activityJSON(state.CurrentActivity)
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleListActivities handles the list_activities tool.
func (s *Server) handleListActivities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	includeInactive := request.GetBool("include_inactive", false)

	activities, err := s.stateProvider.ListActivities(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	var list []map[string]interface{}
	for _, activity := range activities {
		list = append(list, activityJSON(activity))
	}

	result := map[string]interface{}{
		"activities":  list,
		"total_count": len(list),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal activities: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetTimeline handles the get_timeline tool.
func (s *Server) handleGetTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.stateProvider.GetTimeline(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get timeline: %w", err)
	}

	now := time.Now()
	var list []map[string]interface{}
	for _, entry := range entries {
		entryData := map[string]interface{}{
			"id":         entry.ID,
			"started_at": time.UnixMilli(entry.StartTime).Format("2006-01-02T15:04:05"),
			"duration":   domain.FormatSeconds(entry.Duration(now)),
			"open":       entry.IsOpen(),
		}
		if entry.ActivityID != nil {
			entryData["activity_id"] = *entry.ActivityID
		}
		if entry.ActivityName != nil {
			entryData["activity_name"] = *entry.ActivityName
		} else {
			entryData["activity_name"] = "break"
		}
		if entry.EndTime != nil {
			entryData["ended_at"] = time.UnixMilli(*entry.EndTime).Format("2006-01-02T15:04:05")
		}
		list = append(list, entryData)
	}

	result := map[string]interface{}{
		"entries":     list,
		"total_count": len(list),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timeline: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetSummary handles the get_summary tool.
func (s *Server) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.stateProvider.GetSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	var perActivity []map[string]interface{}
	for _, total := range report.PerActivity {
		perActivity = append(perActivity, map[string]interface{}{
			"activity_id": total.ID,
			"name":        total.Name,
			"tracked":     domain.FormatSeconds(total.Duration),
		})
	}

	result := map[string]interface{}{
		"planned":      report.Planned.String(),
		"elapsed":      domain.FormatSeconds(report.Elapsed),
		"active":       domain.FormatSeconds(report.Active),
		"idle":         domain.FormatSeconds(report.Idle),
		"overtime":     domain.FormatSeconds(report.Overtime),
		"per_activity": perActivity,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleCreateActivity handles the create_activity tool.
func (s *Server) handleCreateActivity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required: " + err.Error()), nil
	}

	description := request.GetString("description", "")

	activity, err := s.stateProvider.CreateActivity(ctx, name, description)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create activity: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(activityJSON(activity), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal activity: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleSetupSession handles the setup_session tool.
func (s *Server) handleSetupSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minutes := request.GetFloat("duration_minutes", 0)
	if minutes <= 0 {
		return mcp.NewToolResultError("duration_minutes must be positive"), nil
	}

	duration := time.Duration(minutes * float64(time.Minute))
	if err := s.stateProvider.Setup(ctx, duration); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set up session: %v", err)), nil
	}

	result := map[string]interface{}{
		"planned": duration.String(),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleSelectActivity handles the select_activity tool.
func (s *Server) handleSelectActivity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := request.RequireString("activity")
	if err != nil {
		return mcp.NewToolResultError("activity is required: " + err.Error()), nil
	}

	activity, err := s.stateProvider.SelectActivity(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to select activity: %v", err)), nil
	}

	var result map[string]interface{}
	if activity == nil {
		result = map[string]interface{}{
			"tracking": false,
			"message":  "Stopped tracking the running activity",
		}
	} else {
		result = map[string]interface{}{
			"tracking": true,
			"activity": activityJSON(activity),
		}
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleStartBreak handles the start_break tool.
func (s *Server) handleStartBreak(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.stateProvider.StartBreak(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start break: %v", err)), nil
	}

	result := map[string]interface{}{
		"on_break": true,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleCompleteActivity handles the complete_activity tool.
func (s *Server) handleCompleteActivity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	closed := s.stateProvider.CompleteCurrent(ctx)

	result := map[string]interface{}{
		"closed": closed,
	}
	if !closed {
		result["message"] = "No entry was open"
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
