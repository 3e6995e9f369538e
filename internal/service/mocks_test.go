package service

import (
	"context"
	"sync"
	"time"

	"github.com/Supanida/trip-agency-service/internal/models"
	"gorm.io/gorm"
)

// In-memory repositories for the engine tests. The err fields let a test
// inject a storage failure for one call path.

var fixtureEpoch = time.Date(2027, 3, 1, 9, 0, 0, 0, time.UTC)

type memTripRepo struct {
	mu       sync.Mutex
	trips    map[uint]*models.Trip
	nextID   uint
	findHook func(id uint) // runs before each FindByID, for interleaving tests
}

func newMemTripRepo() *memTripRepo {
	return &memTripRepo{trips: make(map[uint]*models.Trip)}
}

func (r *memTripRepo) Create(_ context.Context, trip *models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	trip.ID = r.nextID
	trip.CreatedAt = fixtureEpoch
	stored := *trip
	r.trips[trip.ID] = &stored
	return nil
}

func (r *memTripRepo) FindByID(_ context.Context, id uint) (*models.Trip, error) {
	if r.findHook != nil {
		r.findHook(id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	trip, ok := r.trips[id]
	if !ok || trip.Deleted {
		return nil, gorm.ErrRecordNotFound
	}
	found := *trip
	return &found, nil
}

func (r *memTripRepo) FindAll(_ context.Context) ([]models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var trips []models.Trip
	for _, trip := range r.trips {
		if !trip.Deleted {
			trips = append(trips, *trip)
		}
	}
	return trips, nil
}

func (r *memTripRepo) Update(_ context.Context, trip *models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *trip
	r.trips[trip.ID] = &stored
	return nil
}

func (r *memTripRepo) SoftDelete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if trip, ok := r.trips[id]; ok {
		trip.Deleted = true
	}
	return nil
}

func (r *memTripRepo) maxTravelers(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trips[id].MaxTravelers
}

type memBookingRepo struct {
	mu            sync.Mutex
	bookings      map[uint]*models.Booking
	nextID        uint
	createErr     error
	deactivateErr error
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[uint]*models.Booking)}
}

func (r *memBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	booking.ID = r.nextID
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *booking
	return &found, nil
}

func (r *memBookingRepo) FindActiveByTravelerAndTrip(_ context.Context, travelerID, tripID uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, booking := range r.bookings {
		if booking.TravelerID == travelerID && booking.TripID == tripID && booking.Active {
			found := *booking
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memBookingRepo) FindActiveByTrip(_ context.Context, tripID uint) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []models.Booking
	for _, booking := range r.bookings {
		if booking.TripID == tripID && booking.Active {
			bookings = append(bookings, *booking)
		}
	}
	return bookings, nil
}

func (r *memBookingRepo) Deactivate(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deactivateErr != nil {
		return r.deactivateErr
	}
	if booking, ok := r.bookings[id]; ok {
		booking.Active = false
	}
	return nil
}

func (r *memBookingRepo) activeCount(tripID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, booking := range r.bookings {
		if booking.TripID == tripID && booking.Active {
			count++
		}
	}
	return count
}

type memApplicationRepo struct {
	apps        map[uint]*models.Application
	nextID      uint
	deleteCalls int
	createErr   error
	deleteErr   error
	updateErr   error
}

func newMemApplicationRepo() *memApplicationRepo {
	return &memApplicationRepo{apps: make(map[uint]*models.Application)}
}

func (r *memApplicationRepo) Create(_ context.Context, app *models.Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	app.ID = r.nextID
	// Distinct, increasing timestamps keep the submission order deterministic.
	app.CreatedAt = fixtureEpoch.Add(time.Duration(r.nextID) * time.Minute)
	stored := *app
	r.apps[app.ID] = &stored
	return nil
}

func (r *memApplicationRepo) FindByID(_ context.Context, id uint) (*models.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *app
	return &found, nil
}

func (r *memApplicationRepo) FindByGuideAndTrip(_ context.Context, guideID, tripID uint) (*models.Application, error) {
	for _, app := range r.apps {
		if app.GuideID == guideID && app.TripID == tripID {
			found := *app
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memApplicationRepo) FindByTrip(_ context.Context, tripID uint) ([]models.Application, error) {
	var apps []models.Application
	for _, app := range r.apps {
		if app.TripID == tripID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (r *memApplicationRepo) UpdateStatus(_ context.Context, id uint, status models.ApplicationStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if app, ok := r.apps[id]; ok {
		app.Status = status
	}
	return nil
}

func (r *memApplicationRepo) Delete(_ context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleteCalls++
	delete(r.apps, id)
	return nil
}

type memAssignmentRepo struct {
	assignments map[uint]*models.Assignment
	nextID      uint
	creates     int
	createErr   error
	createErrOn int // when set, createErr fires on the Nth create only
	deleteErr   error
}

func newMemAssignmentRepo() *memAssignmentRepo {
	return &memAssignmentRepo{assignments: make(map[uint]*models.Assignment)}
}

func (r *memAssignmentRepo) Create(_ context.Context, assignment *models.Assignment) error {
	r.creates++
	if r.createErr != nil && (r.createErrOn == 0 || r.creates == r.createErrOn) {
		return r.createErr
	}
	r.nextID++
	assignment.ID = r.nextID
	stored := *assignment
	r.assignments[assignment.ID] = &stored
	return nil
}

func (r *memAssignmentRepo) FindByGuideAndTrip(_ context.Context, guideID, tripID uint) (*models.Assignment, error) {
	for _, assignment := range r.assignments {
		if assignment.GuideID == guideID && assignment.TripID == tripID {
			found := *assignment
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memAssignmentRepo) FindByTrip(_ context.Context, tripID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	for _, assignment := range r.assignments {
		if assignment.TripID == tripID {
			assignments = append(assignments, *assignment)
		}
	}
	return assignments, nil
}

func (r *memAssignmentRepo) Delete(_ context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.assignments, id)
	return nil
}

type memReviewRepo struct {
	reviews map[uint]*models.Review
	nextID  uint
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: make(map[uint]*models.Review)}
}

func (r *memReviewRepo) Create(_ context.Context, review *models.Review) error {
	r.nextID++
	review.ID = r.nextID
	stored := *review
	r.reviews[review.ID] = &stored
	return nil
}

func (r *memReviewRepo) FindByID(_ context.Context, id uint) (*models.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *review
	return &found, nil
}

func (r *memReviewRepo) FindByTarget(_ context.Context, kind models.TargetKind, targetID uint) ([]models.Review, error) {
	var reviews []models.Review
	for _, review := range r.reviews {
		if review.TargetKind == kind && review.TargetID == targetID {
			reviews = append(reviews, *review)
		}
	}
	return reviews, nil
}

func (r *memReviewRepo) Update(_ context.Context, review *models.Review) error {
	stored := *review
	r.reviews[review.ID] = &stored
	return nil
}

type memNotificationRepo struct {
	mu            sync.Mutex
	notifications map[uint]*models.Notification
	nextID        uint
	createErr     error
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{notifications: make(map[uint]*models.Notification)}
}

func (r *memNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	notification.ID = r.nextID
	notification.CreatedAt = fixtureEpoch.Add(time.Duration(r.nextID) * time.Second)
	stored := *notification
	r.notifications[notification.ID] = &stored
	return nil
}

func (r *memNotificationRepo) FindByID(_ context.Context, id uint) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification, ok := r.notifications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *notification
	return &found, nil
}

func (r *memNotificationRepo) FindByRecipient(_ context.Context, kind models.RecipientKind, recipientID uint) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var notifications []models.Notification
	for _, notification := range r.notifications {
		if notification.RecipientKind == kind && notification.RecipientID == recipientID {
			notifications = append(notifications, *notification)
		}
	}
	return notifications, nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification, ok := r.notifications[id]; ok {
		notification.Read = true
	}
	return nil
}

func (r *memNotificationRepo) MarkAllRead(_ context.Context, kind models.RecipientKind, recipientID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, notification := range r.notifications {
		if notification.RecipientKind == kind && notification.RecipientID == recipientID {
			notification.Read = true
		}
	}
	return nil
}

type memGuideRepo struct {
	guides map[uint]*models.Guide
}

func newMemGuideRepo() *memGuideRepo {
	return &memGuideRepo{guides: make(map[uint]*models.Guide)}
}

func (r *memGuideRepo) Create(_ context.Context, guide *models.Guide) error {
	r.guides[guide.ID] = guide
	return nil
}

func (r *memGuideRepo) FindByID(_ context.Context, id uint) (*models.Guide, error) {
	guide, ok := r.guides[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return guide, nil
}

type memTravelerRepo struct {
	travelers map[uint]*models.Traveler
}

func newMemTravelerRepo() *memTravelerRepo {
	return &memTravelerRepo{travelers: make(map[uint]*models.Traveler)}
}

func (r *memTravelerRepo) Create(_ context.Context, traveler *models.Traveler) error {
	r.travelers[traveler.ID] = traveler
	return nil
}

func (r *memTravelerRepo) FindByID(_ context.Context, id uint) (*models.Traveler, error) {
	traveler, ok := r.travelers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return traveler, nil
}

// fixture wires the engines over the in-memory repositories, with a real
// notification service (nil publisher) so fan-out can be asserted.
type fixture struct {
	trips         *memTripRepo
	bookings      *memBookingRepo
	applications  *memApplicationRepo
	assignments   *memAssignmentRepo
	reviews       *memReviewRepo
	notifications *memNotificationRepo
	guides        *memGuideRepo
	travelers     *memTravelerRepo

	arena    *Arena
	notifier NotificationService

	tripSvc        TripService
	applicationSvc ApplicationService
	assignmentSvc  AssignmentService
	bookingSvc     BookingService
	reviewSvc      ReviewService
}

func newFixture() *fixture {
	f := &fixture{
		trips:         newMemTripRepo(),
		bookings:      newMemBookingRepo(),
		applications:  newMemApplicationRepo(),
		assignments:   newMemAssignmentRepo(),
		reviews:       newMemReviewRepo(),
		notifications: newMemNotificationRepo(),
		guides:        newMemGuideRepo(),
		travelers:     newMemTravelerRepo(),
	}
	f.arena = NewArena(f.bookings, f.assignments, f.applications, f.reviews)
	f.notifier = NewNotificationService(f.notifications, nil)
	f.tripSvc = NewTripService(f.trips, f.arena, f.notifier)
	f.applicationSvc = NewApplicationService(f.applications, f.trips, f.guides, f.arena, f.notifier)
	f.reviewSvc = NewReviewService(f.reviews, f.arena)
	f.assignmentSvc = NewAssignmentService(f.assignments, f.trips, f.guides, f.arena, f.notifier, f.reviewSvc)
	f.bookingSvc = NewBookingService(f.bookings, f.trips, f.travelers, f.arena, f.notifier)
	return f
}

func (f *fixture) addTrip(maxTravelers, maxGuides int) *models.Trip {
	trip := &models.Trip{
		Title:        "Chiang Mai Highlands",
		Description:  "Five days in the northern hills",
		Price:        1490,
		Date:         fixtureEpoch.AddDate(0, 1, 0),
		MinTravelers: 1,
		MaxTravelers: maxTravelers,
		MaxGuides:    maxGuides,
	}
	_ = f.trips.Create(context.Background(), trip)
	return trip
}

func (f *fixture) addGuide(id uint) {
	f.guides.guides[id] = &models.Guide{ID: id, Name: "Guide", Email: "guide@example.com"}
}

func (f *fixture) addTraveler(id uint) {
	f.travelers.travelers[id] = &models.Traveler{ID: id, Name: "Traveler", Email: "traveler@example.com"}
}

func (f *fixture) rateGuide(guideID uint, ratings ...int) {
	for _, rating := range ratings {
		_ = f.reviews.Create(context.Background(), &models.Review{
			Rating:     rating,
			AuthorID:   99,
			TargetID:   guideID,
			TargetKind: models.TargetGuide,
		})
	}
}

func (f *fixture) notificationsFor(kind models.RecipientKind, recipientID uint) []models.Notification {
	out, _ := f.notifications.FindByRecipient(context.Background(), kind, recipientID)
	return out
}
