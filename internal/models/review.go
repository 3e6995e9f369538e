package models

import "time"

// TargetKind tags what a review is about. Callers set it explicitly at
// construction time.
type TargetKind string

const (
	TargetGuide TargetKind = "guide"
	TargetTrip  TargetKind = "trip"
)

type Review struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Rating     int        `gorm:"not null" json:"rating"` // 1..5
	Text       string     `json:"text"`
	AuthorID   uint       `gorm:"not null" json:"author_id"`
	TargetID   uint       `gorm:"not null" json:"target_id"`
	TargetKind TargetKind `gorm:"type:varchar(20);not null" json:"target_kind"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
