package services

import (
	"context"
	"testing"

	"github.com/mrtimely/timely-cli/internal/adapters/storage"
	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/mrtimely/timely-cli/internal/ports"
)

func setupTestStorage(t *testing.T) (ports.Storage, func()) {
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	return store, func() { store.Close() }
}

func TestActivityService_AddActivity(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewActivityService(store)
	ctx := context.Background()

	t.Run("add valid activity", func(t *testing.T) {
		activity, err := service.AddActivity(ctx, AddActivityRequest{
			Name:        "Reading",
			Description: "technical books",
		})
		if err != nil {
			t.Fatalf("AddActivity() error = %v", err)
		}
		if activity.Name != "Reading" {
			t.Errorf("Name = %q, want Reading", activity.Name)
		}
		if activity.ColorIndex != 0 {
			t.Errorf("ColorIndex = %d, want 0 for first activity", activity.ColorIndex)
		}
	})

	t.Run("color slots allocated in order", func(t *testing.T) {
		second, err := service.AddActivity(ctx, AddActivityRequest{Name: "Writing"})
		if err != nil {
			t.Fatalf("AddActivity() error = %v", err)
		}
		if second.ColorIndex != 1 {
			t.Errorf("ColorIndex = %d, want 1 for second activity", second.ColorIndex)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		if _, err := service.AddActivity(ctx, AddActivityRequest{Name: ""}); err == nil {
			t.Error("AddActivity() accepted an empty name")
		}
	})
}

func TestActivityService_ResolveActivity(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewActivityService(store)
	ctx := context.Background()

	activity, err := service.AddActivity(ctx, AddActivityRequest{Name: "deep work"})
	if err != nil {
		t.Fatalf("AddActivity() error = %v", err)
	}

	t.Run("by id", func(t *testing.T) {
		found, err := service.ResolveActivity(ctx, activity.ID)
		if err != nil {
			t.Fatalf("ResolveActivity() error = %v", err)
		}
		if found.ID != activity.ID {
			t.Error("ResolveActivity() returned wrong activity")
		}
	})

	t.Run("by fuzzy name", func(t *testing.T) {
		found, err := service.ResolveActivity(ctx, "deep")
		if err != nil {
			t.Fatalf("ResolveActivity() error = %v", err)
		}
		if found.ID != activity.ID {
			t.Error("ResolveActivity() returned wrong activity")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := service.ResolveActivity(ctx, "zzz-nothing"); err != domain.ErrActivityNotFound {
			t.Errorf("ResolveActivity() error = %v, want ErrActivityNotFound", err)
		}
	})
}
