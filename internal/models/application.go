package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is a guide's request to lead a trip. One per (guide, trip).
// Status moves from pending to exactly one of accepted/rejected and never
// changes again; a pending application can instead be withdrawn (deleted).
type Application struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	GuideID   uint              `gorm:"not null" json:"guide_id"`
	TripID    uint              `gorm:"not null" json:"trip_id"`
	CV        string            `json:"cv"`
	Status    ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
