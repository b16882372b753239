package domain

import (
	"testing"
	"time"
)

func TestCurrentState_IsRunning(t *testing.T) {
	state := &CurrentState{}
	if state.IsRunning() {
		t.Error("IsRunning = true without a session")
	}

	state.Session = NewSession(time.Hour)
	if state.IsRunning() {
		t.Error("IsRunning = true before Start")
	}

	state.Session.Start(time.Now())
	if !state.IsRunning() {
		t.Error("IsRunning = false after Start")
	}
}

func TestCurrentState_IsConfigured(t *testing.T) {
	state := &CurrentState{}
	if state.IsConfigured() {
		t.Error("IsConfigured = true without a session")
	}

	state.Session = NewSession(0)
	if state.IsConfigured() {
		t.Error("IsConfigured = true with zero duration")
	}

	state.Session = NewSession(time.Hour)
	if !state.IsConfigured() {
		t.Error("IsConfigured = false with a duration set")
	}
}

func TestCurrentState_HasCurrentActivity(t *testing.T) {
	activity := testActivity(t, "work", 0)
	state := &CurrentState{CurrentActivity: activity}

	if !state.HasCurrentActivity() {
		t.Error("HasCurrentActivity = false with an activity selected")
	}

	state.OnBreak = true
	if state.HasCurrentActivity() {
		t.Error("HasCurrentActivity = true during a break")
	}
}

func TestCurrentState_StatusLabel(t *testing.T) {
	now := time.Now()
	activity := testActivity(t, "work", 0)

	state := &CurrentState{}
	if got := state.StatusLabel(now); got != "Not configured" {
		t.Errorf("StatusLabel = %q, want Not configured", got)
	}

	state.Session = NewSession(time.Hour)
	if got := state.StatusLabel(now); got != "Stopped" {
		t.Errorf("StatusLabel = %q, want Stopped", got)
	}

	state.Session.Start(now)
	if got := state.StatusLabel(now); got != "Idle" {
		t.Errorf("StatusLabel = %q, want Idle", got)
	}

	state.CurrentActivity = activity
	if got := state.StatusLabel(now); got != "Tracking" {
		t.Errorf("StatusLabel = %q, want Tracking", got)
	}

	state.OnBreak = true
	if got := state.StatusLabel(now); got != "On break" {
		t.Errorf("StatusLabel = %q, want On break", got)
	}

	state.OnBreak = false
	state.CurrentActivity = nil
	if got := state.StatusLabel(now.Add(2 * time.Hour)); got != "Overtime" {
		t.Errorf("StatusLabel = %q, want Overtime", got)
	}
}
