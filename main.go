package main

import (
	"log"

	"github.com/Supanida/trip-agency-service/config"
	"github.com/Supanida/trip-agency-service/internal/handler"
	"github.com/Supanida/trip-agency-service/internal/middleware"
	"github.com/Supanida/trip-agency-service/internal/repository"
	"github.com/Supanida/trip-agency-service/internal/service"
	"github.com/Supanida/trip-agency-service/pkg/database"
	"github.com/Supanida/trip-agency-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: notification delivery side-channel
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Repositories
	tripRepo := repository.NewTripRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	guideRepo := repository.NewGuideRepository(db)
	travelerRepo := repository.NewTravelerRepository(db)

	// Services
	arena := service.NewArena(bookingRepo, assignmentRepo, applicationRepo, reviewRepo)
	notificationSvc := service.NewNotificationService(notificationRepo, publisher)
	reviewSvc := service.NewReviewService(reviewRepo, arena)
	tripSvc := service.NewTripService(tripRepo, arena, notificationSvc)
	applicationSvc := service.NewApplicationService(applicationRepo, tripRepo, guideRepo, arena, notificationSvc)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, tripRepo, guideRepo, arena, notificationSvc, reviewSvc)
	bookingSvc := service.NewBookingService(bookingRepo, tripRepo, travelerRepo, arena, notificationSvc)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "trip-agency-service"})
	})

	handler.NewTripHandler(tripSvc, bookingSvc, assignmentSvc).RegisterRoutes(e)
	handler.NewApplicationHandler(applicationSvc).RegisterRoutes(e)
	handler.NewAssignmentHandler(assignmentSvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewNotificationHandler(notificationSvc).RegisterRoutes(e)
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(e)

	log.Printf("Trip Agency Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
