package models

import (
	"strings"
	"time"
)

// Area identifies one of the two managed Abu Dhabi shoot areas. The set is
// closed: locations that resolve to neither area are outside this system.
type Area string

const (
	AreaGalleriaMall Area = "GALLERIA_MALL"
	AreaAlQana       Area = "AL_QANA"
)

// PlanningOrder lists the areas in the order they are planned each week.
// Galleria Mall commits its shoots first; Al Qana plans around them.
func PlanningOrder() []Area {
	return []Area{AreaGalleriaMall, AreaAlQana}
}

// TimeBlock describes when on a shoot day a campaign can be filmed.
type TimeBlock string

const (
	TimeBlockDay   TimeBlock = "day"
	TimeBlockNight TimeBlock = "night"
	TimeBlockBoth  TimeBlock = "both"
	TimeBlockNone  TimeBlock = ""
)

// ParseTimeBlock normalises a raw value. Anything unrecognised maps to
// TimeBlockNone, which the batch scorer treats as not schedulable.
func ParseTimeBlock(raw string) TimeBlock {
	switch TimeBlock(strings.ToLower(strings.TrimSpace(raw))) {
	case TimeBlockDay:
		return TimeBlockDay
	case TimeBlockNight:
		return TimeBlockNight
	case TimeBlockBoth:
		return TimeBlockBoth
	default:
		return TimeBlockNone
	}
}

// CompatibleWith reports whether two time blocks can share a shoot visit:
// either side being "both" matches everything, otherwise they must be equal.
func (b TimeBlock) CompatibleWith(other TimeBlock) bool {
	if b == TimeBlockBoth || other == TimeBlockBoth {
		return true
	}
	return b == other
}

// TimeBlocks enumerates the concrete blocks in scoring order.
func TimeBlocks() []TimeBlock {
	return []TimeBlock{TimeBlockDay, TimeBlockNight, TimeBlockBoth}
}

// CampaignStatusPending is the only status eligible for (re)scheduling.
const CampaignStatusPending = "not yet assigned"

// Campaign is the persisted campaign record. Date columns keep the legacy
// DD-MM-YYYY text format; parsing happens inside the scheduler so a single
// malformed record never aborts a batch.
type Campaign struct {
	TaskID      string    `db:"task_id" json:"task_id"`
	Brand       string    `db:"brand" json:"brand"`
	Location    string    `db:"location" json:"location"`
	SalesPerson string    `db:"sales_person" json:"sales_person"`
	TaskType    string    `db:"task_type" json:"task_type"`
	StartDate   string    `db:"campaign_start_date" json:"campaign_start_date"`
	EndDate     string    `db:"campaign_end_date" json:"campaign_end_date"`
	TimeBlock   string    `db:"time_block" json:"time_block"`
	FilmingDate string    `db:"filming_date" json:"filming_date"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CampaignFilter narrows campaign listings.
type CampaignFilter struct {
	Status   string
	Location string
	Page     int
	PageSize int
}
