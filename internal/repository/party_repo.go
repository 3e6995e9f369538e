package repository

import (
	"context"

	"github.com/Supanida/trip-agency-service/internal/models"
	"gorm.io/gorm"
)

// Guide and traveler lookups. Registration and credentials live in a
// separate identity service; these rows are synced reference data.

type GuideRepository interface {
	Create(ctx context.Context, guide *models.Guide) error
	FindByID(ctx context.Context, id uint) (*models.Guide, error)
}

type guideRepository struct {
	db *gorm.DB
}

func NewGuideRepository(db *gorm.DB) GuideRepository {
	return &guideRepository{db: db}
}

func (r *guideRepository) Create(ctx context.Context, guide *models.Guide) error {
	return r.db.WithContext(ctx).Create(guide).Error
}

func (r *guideRepository) FindByID(ctx context.Context, id uint) (*models.Guide, error) {
	var guide models.Guide
	if err := r.db.WithContext(ctx).First(&guide, id).Error; err != nil {
		return nil, err
	}
	return &guide, nil
}

type TravelerRepository interface {
	Create(ctx context.Context, traveler *models.Traveler) error
	FindByID(ctx context.Context, id uint) (*models.Traveler, error)
}

type travelerRepository struct {
	db *gorm.DB
}

func NewTravelerRepository(db *gorm.DB) TravelerRepository {
	return &travelerRepository{db: db}
}

func (r *travelerRepository) Create(ctx context.Context, traveler *models.Traveler) error {
	return r.db.WithContext(ctx).Create(traveler).Error
}

func (r *travelerRepository) FindByID(ctx context.Context, id uint) (*models.Traveler, error) {
	var traveler models.Traveler
	if err := r.db.WithContext(ctx).First(&traveler, id).Error; err != nil {
		return nil, err
	}
	return &traveler, nil
}
