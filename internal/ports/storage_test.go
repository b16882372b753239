package ports

import (
	"context"
	"testing"

	"github.com/mrtimely/timely-cli/internal/domain"
)

// Mock implementations for testing interfaces.

type mockActivityRepository struct {
	activities map[string]*domain.Activity
}

func (m *mockActivityRepository) Save(ctx context.Context, activity *domain.Activity) error {
	m.activities[activity.ID] = activity
	return nil
}

func (m *mockActivityRepository) FindByID(ctx context.Context, id string) (*domain.Activity, error) {
	activity, ok := m.activities[id]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	return activity, nil
}

func (m *mockActivityRepository) FindByName(ctx context.Context, name string) (*domain.Activity, error) {
	for _, activity := range m.activities {
		if activity.IsActive && activity.Name == name {
			return activity, nil
		}
	}
	return nil, domain.ErrActivityNotFound
}

func (m *mockActivityRepository) FindAll(ctx context.Context, includeInactive bool) ([]*domain.Activity, error) {
	var result []*domain.Activity
	for _, activity := range m.activities {
		if includeInactive || activity.IsActive {
			result = append(result, activity)
		}
	}
	return result, nil
}

func (m *mockActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	if _, ok := m.activities[activity.ID]; !ok {
		return domain.ErrActivityNotFound
	}
	m.activities[activity.ID] = activity
	return nil
}

func (m *mockActivityRepository) AssignedColorIndices(ctx context.Context) ([]int, error) {
	var indices []int
	for _, activity := range m.activities {
		indices = append(indices, activity.ColorIndex)
	}
	return indices, nil
}

type mockSnapshotStore struct {
	blobs map[string][]byte
}

func (m *mockSnapshotStore) Put(ctx context.Context, key string, value []byte) error {
	m.blobs[key] = value
	return nil
}

func (m *mockSnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	return m.blobs[key], nil
}

func (m *mockSnapshotStore) Delete(ctx context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}

// TestActivityRepositoryInterface verifies a minimal implementation satisfies
// the contract.
func TestActivityRepositoryInterface(t *testing.T) {
	var repo ActivityRepository = &mockActivityRepository{activities: map[string]*domain.Activity{}}
	ctx := context.Background()

	activity, err := domain.NewActivity("writing", 0)
	if err != nil {
		t.Fatalf("failed to create activity: %v", err)
	}

	if err := repo.Save(ctx, activity); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	found, err := repo.FindByID(ctx, activity.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Name != "writing" {
		t.Errorf("found.Name = %q, want %q", found.Name, "writing")
	}

	if _, err := repo.FindByID(ctx, "missing"); err != domain.ErrActivityNotFound {
		t.Errorf("FindByID(missing) error = %v, want ErrActivityNotFound", err)
	}

	found.Deactivate()
	if err := repo.Update(ctx, found); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	visible, err := repo.FindAll(ctx, false)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("FindAll(false) returned %d activities, want 0", len(visible))
	}

	all, err := repo.FindAll(ctx, true)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("FindAll(true) returned %d activities, want 1", len(all))
	}

	indices, err := repo.AssignedColorIndices(ctx)
	if err != nil {
		t.Fatalf("AssignedColorIndices failed: %v", err)
	}
	if len(indices) != 1 || indices[0] != 0 {
		t.Errorf("AssignedColorIndices = %v, want [0]", indices)
	}
}

// TestSnapshotStoreInterface verifies the key-value contract, including the
// missing-key-returns-nil convention.
func TestSnapshotStoreInterface(t *testing.T) {
	var store SnapshotStore = &mockSnapshotStore{blobs: map[string][]byte{}}
	ctx := context.Background()

	if err := store.Put(ctx, KeyCurrentSession, []byte(`{"id":"abc"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, err := store.Get(ctx, KeyCurrentSession)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != `{"id":"abc"}` {
		t.Errorf("Get = %q, want %q", value, `{"id":"abc"}`)
	}

	missing, err := store.Get(ctx, "nope")
	if err != nil {
		t.Fatalf("Get(missing) failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Get(missing) = %v, want nil", missing)
	}

	if err := store.Delete(ctx, KeyCurrentSession); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	gone, _ := store.Get(ctx, KeyCurrentSession)
	if gone != nil {
		t.Errorf("Get after Delete = %v, want nil", gone)
	}
}
