package service

import (
	"time"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
)

// pendingCampaign is the parsed, in-memory view of a campaign the planning
// components work with. Dates are midnight-UTC values; the end date has
// already been defaulted to start+30 days when the record carried none.
type pendingCampaign struct {
	taskID      string
	brand       string
	location    string
	salesPerson string
	area        models.Area
	block       models.TimeBlock
	start       time.Time
	end         time.Time
	filming     *time.Time
}

func (c pendingCampaign) liveOn(date time.Time) bool {
	return !date.Before(c.start) && !date.After(c.end)
}

// OverlapScorer counts how many pending campaigns could be filmed on a
// candidate (date, area, time block) visit. It is a pure function over its
// inputs and is the objective the greedy planner maximises.
//
// A campaign with no usable time block never counts here, even though the
// single-task advisory path defaults such campaigns to "day" when scoring
// their own creation. The asymmetry is inherited behaviour; harmonising it
// is a product decision, not a code cleanup.
type OverlapScorer struct{}

// Score returns the number of matching campaigns and their task IDs.
func (OverlapScorer) Score(date time.Time, area models.Area, block models.TimeBlock, pool []pendingCampaign) (int, []string) {
	var taskIDs []string
	for _, campaign := range pool {
		if campaign.area != area {
			continue
		}
		if campaign.block == models.TimeBlockNone {
			continue
		}
		if !campaign.block.CompatibleWith(block) {
			continue
		}
		if !campaign.liveOn(date) {
			continue
		}
		taskIDs = append(taskIDs, campaign.taskID)
	}
	return len(taskIDs), taskIDs
}
