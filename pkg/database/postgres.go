package database

import (
	"log"

	"github.com/Supanida/trip-agency-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Trip{},
		&models.Guide{},
		&models.Traveler{},
		&models.Application{},
		&models.Assignment{},
		&models.Booking{},
		&models.Notification{},
		&models.Review{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Database backstop for the register uniqueness invariants.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_active
		ON bookings (trip_id, traveler_id)
		WHERE active
	`)
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_application_guide_trip
		ON applications (trip_id, guide_id)
	`)
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_assignment_guide_trip
		ON assignments (trip_id, guide_id)
	`)

	return db
}
