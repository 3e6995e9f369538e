package repository

import (
	"context"

	"github.com/Supanida/trip-agency-service/internal/models"
	"gorm.io/gorm"
)

type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	FindByID(ctx context.Context, id uint) (*models.Trip, error)
	FindAll(ctx context.Context) ([]models.Trip, error)
	Update(ctx context.Context, trip *models.Trip) error
	SoftDelete(ctx context.Context, id uint) error
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepository) FindByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.WithContext(ctx).
		Where("deleted = ?", false).
		First(&trip, id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) FindAll(ctx context.Context) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.db.WithContext(ctx).
		Where("deleted = ?", false).
		Order("date ASC").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) Update(ctx context.Context, trip *models.Trip) error {
	return r.db.WithContext(ctx).Save(trip).Error
}

// SoftDelete marks the trip deleted; rows are never removed so that past
// bookings and reviews keep a valid target.
func (r *tripRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Trip{}).
		Where("id = ?", id).
		Update("deleted", true).Error
}
