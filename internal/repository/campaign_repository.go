package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
)

// CampaignRepository provides persistence for campaign records.
type CampaignRepository struct {
	db *sqlx.DB
}

// NewCampaignRepository creates a new campaign repository.
func NewCampaignRepository(db *sqlx.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

const campaignColumns = "task_id, brand, location, sales_person, task_type, campaign_start_date, campaign_end_date, time_block, filming_date, status, created_at, updated_at"

// ListPending returns every campaign still awaiting a filming date.
func (r *CampaignRepository) ListPending(ctx context.Context) ([]models.Campaign, error) {
	query := fmt.Sprintf("SELECT %s FROM campaigns WHERE status = $1 ORDER BY created_at ASC", campaignColumns)
	var campaigns []models.Campaign
	if err := r.db.SelectContext(ctx, &campaigns, query, models.CampaignStatusPending); err != nil {
		return nil, fmt.Errorf("list pending campaigns: %w", err)
	}
	return campaigns, nil
}

// List returns campaigns with optional filtering and pagination.
func (r *CampaignRepository) List(ctx context.Context, filter models.CampaignFilter) ([]models.Campaign, int, error) {
	base := "FROM campaigns WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Location+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at ASC LIMIT %d OFFSET %d", campaignColumns, base, size, offset)
	var campaigns []models.Campaign
	if err := r.db.SelectContext(ctx, &campaigns, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	return campaigns, total, nil
}

// FindByID loads a campaign by task id.
func (r *CampaignRepository) FindByID(ctx context.Context, taskID string) (*models.Campaign, error) {
	query := fmt.Sprintf("SELECT %s FROM campaigns WHERE task_id = $1", campaignColumns)
	var campaign models.Campaign
	if err := r.db.GetContext(ctx, &campaign, query, taskID); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// Create stores a new campaign record.
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	now := time.Now().UTC()
	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = now
	}
	campaign.UpdatedAt = now
	if campaign.Status == "" {
		campaign.Status = models.CampaignStatusPending
	}

	const query = `INSERT INTO campaigns (task_id, brand, location, sales_person, task_type, campaign_start_date, campaign_end_date, time_block, filming_date, status, created_at, updated_at) VALUES (:task_id, :brand, :location, :sales_person, :task_type, :campaign_start_date, :campaign_end_date, :time_block, :filming_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, campaign); err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

// UpdateFilmingDate stamps a single campaign with its assigned date.
func (r *CampaignRepository) UpdateFilmingDate(ctx context.Context, taskID, filmingDate string) error {
	const query = `UPDATE campaigns SET filming_date = $1, updated_at = $2 WHERE task_id = $3`
	if _, err := r.db.ExecContext(ctx, query, filmingDate, time.Now().UTC(), taskID); err != nil {
		return fmt.Errorf("update filming date for %s: %w", taskID, err)
	}
	return nil
}

// UpdateFilmingDates persists a whole assignment map within one transaction.
func (r *CampaignRepository) UpdateFilmingDates(ctx context.Context, assignments map[string]string) error {
	if len(assignments) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin filming date update: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	for taskID, date := range assignments {
		if _, err = tx.ExecContext(ctx, `UPDATE campaigns SET filming_date = $1, updated_at = $2 WHERE task_id = $3`, date, now, taskID); err != nil {
			return fmt.Errorf("update filming date for %s: %w", taskID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit filming date update: %w", err)
	}
	return nil
}
