package models

import "time"

// Booking is a traveler's seat on a trip. At most MaxTravelers active
// bookings per trip, at most one active per (traveler, trip). Cancelling
// flips Active to false instead of deleting the row.
type Booking struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TravelerID uint      `gorm:"not null" json:"traveler_id"`
	TripID     uint      `gorm:"not null" json:"trip_id"`
	BookedAt   time.Time `gorm:"not null" json:"booked_at"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
