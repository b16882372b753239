package domain

import (
	"time"
)

// CurrentState is the aggregate view of the running tracker: the shared
// session, the activity currently receiving time, and the metrics derived
// from the timeline. Services build it on demand for the TUI, the status
// command, and the MCP surface.
type CurrentState struct {
	Session         *Session
	CurrentActivity *Activity
	Activities      []*Activity
	Entries         []TimelineEntry
	Report          Report
	OnBreak         bool
}

// IsRunning reports whether the session clock is ticking.
func (cs *CurrentState) IsRunning() bool {
	return cs.Session != nil && cs.Session.TimerActive
}

// IsConfigured reports whether a planned duration has been set.
func (cs *CurrentState) IsConfigured() bool {
	return cs.Session != nil && cs.Session.Duration > 0
}

// HasCurrentActivity reports whether time is being attributed to an activity
// right now.
func (cs *CurrentState) HasCurrentActivity() bool {
	return cs.CurrentActivity != nil && !cs.OnBreak
}

// StatusLabel returns a human-readable label for the session state.
func (cs *CurrentState) StatusLabel(now time.Time) string {
	switch {
	case cs.Session == nil || !cs.IsConfigured():
		return "Not configured"
	case !cs.IsRunning():
		return "Stopped"
	case cs.OnBreak:
		return "On break"
	case cs.Session.Remaining(now) == 0:
		return "Overtime"
	case cs.CurrentActivity != nil:
		return "Tracking"
	default:
		return "Idle"
	}
}
