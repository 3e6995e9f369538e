package models

import "time"

// RecipientKind is the closed set of notification recipients. Dispatch is
// on this tag, never on runtime type inspection.
type RecipientKind string

const (
	RecipientGuide    RecipientKind = "guide"
	RecipientTraveler RecipientKind = "traveler"
)

type Notification struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	RecipientID   uint          `gorm:"not null" json:"recipient_id"`
	RecipientKind RecipientKind `gorm:"type:varchar(20);not null" json:"recipient_kind"`
	Text          string        `gorm:"not null" json:"text"`
	Read          bool          `gorm:"not null;default:false" json:"read"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
