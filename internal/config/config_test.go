package config

import (
	"testing"
	"time"
)

func TestDefaultConfig_Session(t *testing.T) {
	cfg := DefaultConfig()
	if time.Duration(cfg.Session.DefaultDuration) != time.Hour {
		t.Errorf("expected default duration 1h, got %v", cfg.Session.DefaultDuration)
	}
	if time.Duration(cfg.Session.MaxRecoveryAge) != 24*time.Hour {
		t.Errorf("expected max recovery age 24h, got %v", cfg.Session.MaxRecoveryAge)
	}
}

func TestDefaultConfig_Completion(t *testing.T) {
	cfg := DefaultConfig()
	if time.Duration(cfg.Completion.Delay) != 3*time.Second {
		t.Errorf("expected completion delay 3s, got %v", cfg.Completion.Delay)
	}
	if time.Duration(cfg.Completion.PromptTimeout) != 5*time.Second {
		t.Errorf("expected prompt timeout 5s, got %v", cfg.Completion.PromptTimeout)
	}
	if time.Duration(cfg.Completion.TickInterval) != 30*time.Millisecond {
		t.Errorf("expected tick interval 30ms, got %v", cfg.Completion.TickInterval)
	}
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1h30m")); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if time.Duration(d) != 90*time.Minute {
		t.Errorf("expected 90m, got %v", d)
	}

	if err := d.UnmarshalText([]byte("not a duration")); err == nil {
		t.Error("UnmarshalText accepted garbage")
	}
}

func TestDuration_RoundTrip(t *testing.T) {
	d := Duration(45 * time.Minute)
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}

	var parsed Duration
	if err := parsed.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if parsed != d {
		t.Errorf("round trip changed value: %v != %v", parsed, d)
	}
}
