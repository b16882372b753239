package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/mrtimely/timely-cli/internal/ports"
	"github.com/sahilm/fuzzy"
)

// activityRepository implements ports.ActivityRepository using SQLite.
type activityRepository struct {
	db *sql.DB
}

// newActivityRepository creates a new activity repository.
func newActivityRepository(db *sql.DB) ports.ActivityRepository {
	return &activityRepository{db: db}
}

// Save persists an activity to storage.
func (r *activityRepository) Save(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (id, name, description, color_index, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		activity.ID,
		activity.Name,
		activity.Description,
		activity.ColorIndex,
		activity.IsActive,
		activity.CreatedAt,
		activity.UpdatedAt,
	)

	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("activity %s already exists: %w", activity.ID, err)
		}
		return fmt.Errorf("failed to save activity: %w", err)
	}

	return nil
}

// FindByID retrieves an activity by its unique identifier.
func (r *activityRepository) FindByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `
		SELECT id, name, description, color_index, is_active, created_at, updated_at
		FROM activities
		WHERE id = ?
	`

	activity, err := r.scanActivity(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}

	return activity, nil
}

// FindByName does a fuzzy search among active activities and returns the best
// match.
func (r *activityRepository) FindByName(ctx context.Context, name string) (*domain.Activity, error) {
	activities, err := r.FindAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities for fuzzy search: %w", err)
	}

	names := make([]string, len(activities))
	for i, activity := range activities {
		names[i] = activity.Name
	}

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return nil, domain.ErrActivityNotFound
	}

	return activities[matches[0].Index], nil
}

// FindAll retrieves all activities, newest first. Deactivated ones are
// included only when includeInactive is set.
func (r *activityRepository) FindAll(ctx context.Context, includeInactive bool) ([]*domain.Activity, error) {
	query := `
		SELECT id, name, description, color_index, is_active, created_at, updated_at
		FROM activities
		WHERE is_active = 1
		ORDER BY created_at ASC
	`
	if includeInactive {
		query = `
			SELECT id, name, description, color_index, is_active, created_at, updated_at
			FROM activities
			ORDER BY created_at ASC
		`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var activities []*domain.Activity
	for rows.Next() {
		activity, err := r.scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

// Update modifies an existing activity.
func (r *activityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	query := `
		UPDATE activities
		SET name = ?, description = ?, color_index = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	activity.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		activity.Name,
		activity.Description,
		activity.ColorIndex,
		activity.IsActive,
		activity.UpdatedAt,
		activity.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrActivityNotFound
	}

	return nil
}

// AssignedColorIndices returns the color slot of every stored activity,
// deactivated ones included so freed slots are not reused while history
// still shows them.
func (r *activityRepository) AssignedColorIndices(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT color_index FROM activities`)
	if err != nil {
		return nil, fmt.Errorf("failed to query color indices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var indices []int
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, fmt.Errorf("failed to scan color index: %w", err)
		}
		indices = append(indices, idx)
	}

	return indices, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanActivity scans a single activity row.
func (r *activityRepository) scanActivity(row rowScanner) (*domain.Activity, error) {
	var activity domain.Activity
	var description sql.NullString

	err := row.Scan(
		&activity.ID,
		&activity.Name,
		&description,
		&activity.ColorIndex,
		&activity.IsActive,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		activity.Description = description.String
	}

	return &activity, nil
}
