package ports

import (
	"context"
)

// GitInfo holds git repository context information captured when a session
// starts.
type GitInfo struct {
	Branch     string
	Commit     string
	Modified   []string
	IsClean    bool
	Repository string
}

// GitDetector defines the interface for git context detection.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect scans the given directory for git context.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable checks if the working directory is inside a repository.
	IsAvailable() bool
}
