// Package domain contains the core entities for Timely: activities, the
// session timeline, derived metrics, and the completion countdown machine.
// These are independent of any external frameworks or infrastructure.
package domain

import (
	"errors"
	"time"
)

// Common domain errors.
var (
	ErrInvalidActivityID  = errors.New("invalid activity ID")
	ErrEmptyActivityName  = errors.New("activity name cannot be empty")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrActivityInUse      = errors.New("activity has recorded timeline entries")
	ErrNoSessionConfigured = errors.New("no session duration configured")
)

// Activity represents a user-defined task that can be timed.
type Activity struct {
	ID          string
	Name        string
	Description string
	ColorIndex  int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewActivity creates a new activity with the given name and color slot.
func NewActivity(name string, colorIndex int) (*Activity, error) {
	if err := validateActivityName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Activity{
		ID:         generateID(),
		Name:       name,
		ColorIndex: colorIndex,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// validateActivityName ensures the name is not empty.
func validateActivityName(name string) error {
	if name == "" {
		return ErrEmptyActivityName
	}
	return nil
}

// Deactivate soft-deletes the activity. Historical timeline entries keep
// their denormalized name and colors, so the row itself is never removed.
func (a *Activity) Deactivate() {
	a.IsActive = false
	a.UpdatedAt = time.Now()
}

// Colors resolves the activity's palette slot for the given theme.
func (a *Activity) Colors(dark bool) ColorSet {
	return ColorAt(a.ColorIndex, dark)
}
