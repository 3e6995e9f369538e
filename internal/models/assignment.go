package models

import "time"

// Assignment schedules a guide for a trip. At most MaxGuides per trip,
// at most one per (guide, trip).
type Assignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GuideID    uint      `gorm:"not null" json:"guide_id"`
	TripID     uint      `gorm:"not null" json:"trip_id"`
	AssignedAt time.Time `gorm:"not null" json:"assigned_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
