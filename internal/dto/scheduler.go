package dto

import "github.com/Amrtamer711/ironforge-sub001/internal/models"

// FilmingDateRequest asks for an advisory filming date for a campaign that
// is about to be created and is not yet part of the pending pool.
type FilmingDateRequest struct {
	Location  string `json:"location" validate:"required"`
	StartDate string `json:"campaign_start_date" validate:"required"`
	EndDate   string `json:"campaign_end_date"`
	TaskType  string `json:"task_type"`
	TimeBlock string `json:"time_block"`
}

// FilmingDateResponse carries the advised date in DD-MM-YYYY form.
type FilmingDateResponse struct {
	FilmingDate string `json:"filming_date"`
}

// ScheduleRunRequest controls a scheduling run invocation.
type ScheduleRunRequest struct {
	DryRun bool `json:"dry_run"`
}

// ShootDayView is the transport shape of one planned visit.
type ShootDayView struct {
	ID         string             `json:"id"`
	Date       string             `json:"date"`
	Area       models.Area        `json:"area"`
	TimeBlocks []models.TimeBlock `json:"time_blocks"`
	TaskIDs    []string           `json:"task_ids"`
	Score      int                `json:"score"`
}

// PlanWeekView groups visits under their ISO week key (YYYY-Www).
type PlanWeekView struct {
	Week      string         `json:"week"`
	ShootDays []ShootDayView `json:"shoot_days"`
}

// ScheduleRunResponse reports the outcome of a scheduling run.
type ScheduleRunResponse struct {
	RunID       string            `json:"run_id"`
	DryRun      bool              `json:"dry_run"`
	Assignments map[string]string `json:"assignments"`
	RescueTiers map[string]int    `json:"rescue_tiers,omitempty"`
	Unscheduled []string          `json:"unscheduled,omitempty"`
	Weeks       []PlanWeekView    `json:"weeks"`
}

// CreateCampaignRequest describes the campaign intake payload.
type CreateCampaignRequest struct {
	TaskID      string `json:"task_id" validate:"required"`
	Brand       string `json:"brand" validate:"required"`
	Location    string `json:"location" validate:"required"`
	SalesPerson string `json:"sales_person"`
	TaskType    string `json:"task_type"`
	StartDate   string `json:"campaign_start_date" validate:"required"`
	EndDate     string `json:"campaign_end_date"`
	TimeBlock   string `json:"time_block"`
}

// CreateHolidayRequest registers a public holiday.
type CreateHolidayRequest struct {
	Date string `json:"date" validate:"required"`
	Name string `json:"name" validate:"required"`
}
