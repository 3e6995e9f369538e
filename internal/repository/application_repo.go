package repository

import (
	"context"

	"github.com/Supanida/trip-agency-service/internal/models"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id uint) (*models.Application, error)
	FindByGuideAndTrip(ctx context.Context, guideID, tripID uint) (*models.Application, error)
	FindByTrip(ctx context.Context, tripID uint) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error
	Delete(ctx context.Context, id uint) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByGuideAndTrip(ctx context.Context, guideID, tripID uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Where("guide_id = ? AND trip_id = ?", guideID, tripID).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByTrip(ctx context.Context, tripID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at ASC, id ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *applicationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Application{}, id).Error
}
