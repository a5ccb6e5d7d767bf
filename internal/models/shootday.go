package models

import (
	"time"

	"github.com/Amrtamer711/ironforge-sub001/pkg/dates"
)

// ShootDay is one physical visit to one area on one calendar date. It is a
// planning artifact: the full set across the horizon is the output schedule.
type ShootDay struct {
	ID         string      `json:"id"`
	Date       time.Time   `json:"-"`
	Area       Area        `json:"area"`
	TimeBlocks []TimeBlock `json:"time_blocks"`
	TaskIDs    []string    `json:"task_ids"`
	Score      int         `json:"score"`
}

// AddTask appends a campaign to the visit, recording its time block once.
func (d *ShootDay) AddTask(taskID string, block TimeBlock) {
	d.TaskIDs = append(d.TaskIDs, taskID)
	d.addBlock(block)
}

func (d *ShootDay) addBlock(block TimeBlock) {
	if block == TimeBlockNone {
		return
	}
	for _, existing := range d.TimeBlocks {
		if existing == block {
			return
		}
	}
	d.TimeBlocks = append(d.TimeBlocks, block)
}

// WeekKey returns the ISO week bucket of the visit, formatted YYYY-Www.
func (d *ShootDay) WeekKey() string {
	return dates.WeekKey(d.Date)
}

// SchedulePlan accumulates shoot days keyed by ISO week across a planning
// run. Later weeks and areas consult it so commitments near ISO-week
// boundaries are never double-booked.
type SchedulePlan map[string][]*ShootDay

// Add stores the shoot day under its own ISO week.
func (p SchedulePlan) Add(day *ShootDay) {
	key := day.WeekKey()
	p[key] = append(p[key], day)
}

// Week returns the shoot days committed in the given ISO week.
func (p SchedulePlan) Week(key string) []*ShootDay {
	return p[key]
}

// Days flattens the plan in no particular order.
func (p SchedulePlan) Days() []*ShootDay {
	var all []*ShootDay
	for _, days := range p {
		all = append(all, days...)
	}
	return all
}

// FindVisit returns an existing visit for the area on the exact date.
func (p SchedulePlan) FindVisit(area Area, date time.Time) *ShootDay {
	for _, day := range p.Week(dates.WeekKey(date)) {
		if day.Area == area && day.Date.Equal(date) {
			return day
		}
	}
	return nil
}
