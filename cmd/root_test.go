package cmd

import (
	"testing"
	"time"
)

func TestRootCmd(t *testing.T) {
	t.Run("root command structure", func(t *testing.T) {
		if rootCmd.Use != "timely" {
			t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "timely")
		}
		if !rootCmd.SilenceUsage {
			t.Error("rootCmd should silence usage on errors")
		}
	})

	t.Run("root command has persistent flags", func(t *testing.T) {
		if rootCmd.PersistentFlags().Lookup("db") == nil {
			t.Error("rootCmd should have --db flag")
		}
		if rootCmd.PersistentFlags().Lookup("json") == nil {
			t.Error("rootCmd should have --json flag")
		}
	})

	t.Run("subcommands registered", func(t *testing.T) {
		expected := []string{
			"setup", "add", "list", "start", "break", "complete", "remove",
			"status", "summary", "timeline", "export", "reset", "config", "mcp",
		}
		registered := make(map[string]bool)
		for _, c := range rootCmd.Commands() {
			registered[c.Name()] = true
		}
		for _, name := range expected {
			if !registered[name] {
				t.Errorf("subcommand %q not registered", name)
			}
		}
	})
}

func TestParseDurationArg(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    time.Duration
		wantErr bool
	}{
		{"go duration", "1h30m", 90 * time.Minute, false},
		{"minutes only", "90m", 90 * time.Minute, false},
		{"bare number is minutes", "45", 45 * time.Minute, false},
		{"seconds", "30s", 30 * time.Second, false},
		{"zero", "0m", 0, true},
		{"negative", "-5m", 0, true},
		{"garbage", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDurationArg(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDurationArg(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseDurationArg(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{90 * time.Minute, "1h 30m"},
		{time.Hour, "1h"},
		{25 * time.Minute, "25m"},
		{2 * time.Hour, "2h"},
		{0, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := formatMinutes(tt.duration)
			if got != tt.expected {
				t.Errorf("formatMinutes(%v) = %q, want %q", tt.duration, got, tt.expected)
			}
		})
	}
}
