package models

import "time"

// Holiday is a public-holiday entry consulted by the working-day calendar.
type Holiday struct {
	ID        string    `db:"id" json:"id"`
	Date      time.Time `db:"holiday_date" json:"date"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
