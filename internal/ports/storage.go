// Package ports defines the interfaces (driven and driving ports)
// for the Timely application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"

	"github.com/mrtimely/timely-cli/internal/domain"
)

// Snapshot store keys. The session snapshot and the raw timeline array are
// persisted independently under fixed keys.
const (
	KeyCurrentSession  = "current-session"
	KeyTimelineEntries = "timeline-entries"
)

// ActivityRepository defines the interface for activity persistence.
// This is a driven port (implemented by adapters).
type ActivityRepository interface {
	// Save persists a new activity to storage.
	Save(ctx context.Context, activity *domain.Activity) error

	// FindByID retrieves an activity by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Activity, error)

	// FindByName retrieves the best fuzzy match for a name among active
	// activities.
	FindByName(ctx context.Context, name string) (*domain.Activity, error)

	// FindAll retrieves all activities. Deactivated ones are included only
	// when includeInactive is set.
	FindAll(ctx context.Context, includeInactive bool) ([]*domain.Activity, error)

	// Update modifies an existing activity.
	Update(ctx context.Context, activity *domain.Activity) error

	// AssignedColorIndices returns the color slot of every stored activity,
	// deactivated ones included.
	AssignedColorIndices(ctx context.Context) ([]int, error)
}

// SnapshotStore defines the interface for the durable key-value store
// holding JSON session blobs. This is a driven port (implemented by
// adapters).
type SnapshotStore interface {
	// Put writes a blob under a key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Get reads the blob under a key. A missing key returns (nil, nil).
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Activities provides access to activity operations.
	Activities() ActivityRepository

	// Snapshots provides access to the key-value snapshot store.
	Snapshots() SnapshotStore

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
