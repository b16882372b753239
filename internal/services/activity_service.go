// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"fmt"

	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/mrtimely/timely-cli/internal/ports"
)

// ActivityService handles activity-related use cases.
type ActivityService struct {
	storage ports.Storage
}

// NewActivityService creates a new activity service.
func NewActivityService(storage ports.Storage) *ActivityService {
	return &ActivityService{storage: storage}
}

// AddActivityRequest contains the data needed to create a new activity.
type AddActivityRequest struct {
	Name        string
	Description string
}

// AddActivity creates a new activity, allocating the next free color slot.
func (s *ActivityService) AddActivity(ctx context.Context, req AddActivityRequest) (*domain.Activity, error) {
	assigned, err := s.storage.Activities().AssignedColorIndices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load color assignments: %w", err)
	}

	activity, err := domain.NewActivity(req.Name, domain.NextAvailableIndex(assigned))
	if err != nil {
		return nil, fmt.Errorf("invalid activity: %w", err)
	}
	activity.Description = req.Description

	if err := s.storage.Activities().Save(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to save activity: %w", err)
	}

	return activity, nil
}

// ListActivities retrieves activities, optionally including deactivated ones.
func (s *ActivityService) ListActivities(ctx context.Context, includeInactive bool) ([]*domain.Activity, error) {
	return s.storage.Activities().FindAll(ctx, includeInactive)
}

// GetActivity retrieves a single activity by ID.
func (s *ActivityService) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	return s.storage.Activities().FindByID(ctx, id)
}

// ResolveActivity finds an activity by exact id first, then by fuzzy name
// match.
func (s *ActivityService) ResolveActivity(ctx context.Context, ref string) (*domain.Activity, error) {
	activity, err := s.storage.Activities().FindByID(ctx, ref)
	if err == nil {
		return activity, nil
	}
	if err != domain.ErrActivityNotFound {
		return nil, err
	}

	return s.storage.Activities().FindByName(ctx, ref)
}
