package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
)

// HolidayRepository provides persistence for the public-holiday table.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository creates a new holiday repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// ListAll returns every holiday ordered by date.
func (r *HolidayRepository) ListAll(ctx context.Context) ([]models.Holiday, error) {
	const query = `SELECT id, holiday_date, name, created_at FROM holidays ORDER BY holiday_date ASC`
	var holidays []models.Holiday
	if err := r.db.SelectContext(ctx, &holidays, query); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return holidays, nil
}

// Create stores a new holiday entry.
func (r *HolidayRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	if holiday.ID == "" {
		holiday.ID = uuid.NewString()
	}
	if holiday.CreatedAt.IsZero() {
		holiday.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO holidays (id, holiday_date, name, created_at) VALUES (:id, :holiday_date, :name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, holiday); err != nil {
		return fmt.Errorf("create holiday: %w", err)
	}
	return nil
}

// Delete removes a holiday by id.
func (r *HolidayRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	return nil
}
