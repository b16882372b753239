package domain

import (
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	session := NewSession(90 * time.Minute)

	if session.ID == "" {
		t.Error("NewSession() ID is empty")
	}

	if session.Duration != 90*time.Minute {
		t.Errorf("Duration = %v, want %v", session.Duration, 90*time.Minute)
	}

	if session.TimerActive {
		t.Error("TimerActive = true before Start")
	}

	if session.StartedAt != nil {
		t.Error("StartedAt set before Start")
	}
}

func TestSession_Start(t *testing.T) {
	session := NewSession(time.Hour)
	now := time.Now()

	session.Start(now)

	if !session.TimerActive {
		t.Error("TimerActive = false after Start")
	}

	if session.StartedAt == nil || !session.StartedAt.Equal(now) {
		t.Errorf("StartedAt = %v, want %v", session.StartedAt, now)
	}
}

func TestSession_Start_AlreadyRunning(t *testing.T) {
	session := NewSession(time.Hour)
	first := time.Now()
	session.Start(first)

	session.Start(first.Add(10 * time.Minute))

	if !session.StartedAt.Equal(first) {
		t.Errorf("StartedAt = %v, want original %v", session.StartedAt, first)
	}
}

func TestSession_Elapsed(t *testing.T) {
	session := NewSession(time.Hour)
	start := time.Now()
	session.Start(start)

	elapsed := session.Elapsed(start.Add(25 * time.Minute))
	if elapsed != 25*time.Minute {
		t.Errorf("Elapsed = %v, want %v", elapsed, 25*time.Minute)
	}
}

func TestSession_Elapsed_NotStarted(t *testing.T) {
	session := NewSession(time.Hour)

	if elapsed := session.Elapsed(time.Now()); elapsed != 0 {
		t.Errorf("Elapsed = %v, want 0", elapsed)
	}
}

func TestSession_Remaining_ClampsAtZero(t *testing.T) {
	session := NewSession(30 * time.Minute)
	start := time.Now()
	session.Start(start)

	remaining := session.Remaining(start.Add(45 * time.Minute))
	if remaining != 0 {
		t.Errorf("Remaining = %v, want 0", remaining)
	}
}

func TestSession_Overtime(t *testing.T) {
	session := NewSession(30 * time.Minute)
	start := time.Now()
	session.Start(start)

	if over := session.Overtime(start.Add(20 * time.Minute)); over != 0 {
		t.Errorf("Overtime before deadline = %v, want 0", over)
	}

	if over := session.Overtime(start.Add(42 * time.Minute)); over != 12*time.Minute {
		t.Errorf("Overtime = %v, want %v", over, 12*time.Minute)
	}
}

func TestSession_Extend(t *testing.T) {
	session := NewSession(30 * time.Minute)

	session.Extend(time.Minute)
	if session.Duration != 31*time.Minute {
		t.Errorf("Duration = %v, want %v", session.Duration, 31*time.Minute)
	}

	session.Extend(-time.Minute)
	if session.Duration != 31*time.Minute {
		t.Errorf("Duration after negative Extend = %v, want %v", session.Duration, 31*time.Minute)
	}
}

func TestSession_Progress(t *testing.T) {
	session := NewSession(time.Hour)
	start := time.Now()
	session.Start(start)

	progress := session.Progress(start.Add(30 * time.Minute))
	if progress != 0.5 {
		t.Errorf("Progress = %v, want 0.5", progress)
	}

	progress = session.Progress(start.Add(2 * time.Hour))
	if progress != 1 {
		t.Errorf("Progress past end = %v, want 1", progress)
	}
}

func TestSession_Progress_ZeroDuration(t *testing.T) {
	session := NewSession(0)
	session.Start(time.Now())

	if progress := session.Progress(time.Now()); progress != 0 {
		t.Errorf("Progress = %v, want 0", progress)
	}
}
