package models

import "time"

type Trip struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Price        float64   `gorm:"not null" json:"price"`
	Date         time.Time `gorm:"not null" json:"date"`
	MinTravelers int       `gorm:"not null" json:"min_travelers"`
	MaxTravelers int       `gorm:"not null" json:"max_travelers"`
	MaxGuides    int       `gorm:"not null" json:"max_guides"`
	Deleted      bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Started reports whether the trip's departure date has already passed.
// Started trips reject updates, deletion and booking cancellation.
func (t *Trip) Started(now time.Time) bool {
	return t.Date.Before(now)
}
