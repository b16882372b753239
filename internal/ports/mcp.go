package ports

import (
	"context"
	"time"

	"github.com/mrtimely/timely-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPStateProvider provides state information to the MCP server.
// This is a driven port (implemented by services layer).
type MCPStateProvider interface {
	// GetCurrentState returns the current tracker state.
	GetCurrentState(ctx context.Context) (*domain.CurrentState, error)

	// ListActivities returns all activities, optionally including
	// deactivated ones.
	ListActivities(ctx context.Context, includeInactive bool) ([]*domain.Activity, error)

	// GetTimeline returns the recorded timeline entries in order.
	GetTimeline(ctx context.Context) ([]domain.TimelineEntry, error)

	// GetSummary returns the metrics derived from the current timeline.
	GetSummary(ctx context.Context) (*domain.Report, error)

	// CreateActivity registers a new activity and assigns it a color slot.
	CreateActivity(ctx context.Context, name, description string) (*domain.Activity, error)

	// Setup configures the planned session duration.
	Setup(ctx context.Context, duration time.Duration) error

	// SelectActivity switches tracking to the given activity, or toggles it
	// off when it is already the one being tracked (returning nil).
	SelectActivity(ctx context.Context, ref string) (*domain.Activity, error)

	// StartBreak closes the open entry and records an explicit break.
	StartBreak(ctx context.Context) error

	// CompleteCurrent closes the open timeline entry. It reports whether an
	// entry was actually open.
	CompleteCurrent(ctx context.Context) bool
}
