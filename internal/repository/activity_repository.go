package repository

import (
	"context"

	"github.com/abim/abim-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepository appends to and reads the activity feed.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Create appends an activity row.
func (r *ActivityRepository) Create(ctx context.Context, a *model.Activity) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO activities (type, message) VALUES ($1, $2) RETURNING id, created_at`,
		a.Type, a.Message,
	).Scan(&a.ID, &a.CreatedAt)
}

// Recent returns the newest limit rows, newest first.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]model.Activity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, type, message, created_at FROM activities ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []model.Activity{}
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
