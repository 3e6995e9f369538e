package registry

import (
	"sort"

	"github.com/Supanida/trip-agency-service/internal/models"
)

// The registers below are pure in-memory containers with capacity
// bookkeeping. They do no I/O and no validation beyond membership; the
// services own the rules and only mutate a register after the matching
// database write has succeeded.

// BookingRegister tracks the active bookings of one trip, keyed by traveler.
type BookingRegister struct {
	byTraveler map[uint]uint // travelerID -> bookingID
}

func newBookingRegister() *BookingRegister {
	return &BookingRegister{byTraveler: make(map[uint]uint)}
}

func (r *BookingRegister) Size() int { return len(r.byTraveler) }

func (r *BookingRegister) Has(travelerID uint) bool {
	_, ok := r.byTraveler[travelerID]
	return ok
}

func (r *BookingRegister) BookingID(travelerID uint) (uint, bool) {
	id, ok := r.byTraveler[travelerID]
	return id, ok
}

func (r *BookingRegister) Add(travelerID, bookingID uint) {
	r.byTraveler[travelerID] = bookingID
}

func (r *BookingRegister) Remove(travelerID uint) {
	delete(r.byTraveler, travelerID)
}

func (r *BookingRegister) TravelerIDs() []uint {
	ids := make([]uint, 0, len(r.byTraveler))
	for id := range r.byTraveler {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AssignmentRegister tracks the guide slots of one trip, keyed by guide.
type AssignmentRegister struct {
	byGuide map[uint]uint // guideID -> assignmentID
}

func newAssignmentRegister() *AssignmentRegister {
	return &AssignmentRegister{byGuide: make(map[uint]uint)}
}

func (r *AssignmentRegister) Size() int { return len(r.byGuide) }

func (r *AssignmentRegister) Has(guideID uint) bool {
	_, ok := r.byGuide[guideID]
	return ok
}

func (r *AssignmentRegister) AssignmentID(guideID uint) (uint, bool) {
	id, ok := r.byGuide[guideID]
	return id, ok
}

func (r *AssignmentRegister) Add(guideID, assignmentID uint) {
	r.byGuide[guideID] = assignmentID
}

func (r *AssignmentRegister) Remove(guideID uint) {
	delete(r.byGuide, guideID)
}

func (r *AssignmentRegister) GuideIDs() []uint {
	ids := make([]uint, 0, len(r.byGuide))
	for id := range r.byGuide {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ApplicationRegister tracks the applications of one trip, keyed by guide.
// Entries are copies; the database row stays authoritative for persistence.
type ApplicationRegister struct {
	byGuide map[uint]models.Application
}

func newApplicationRegister() *ApplicationRegister {
	return &ApplicationRegister{byGuide: make(map[uint]models.Application)}
}

func (r *ApplicationRegister) Size() int { return len(r.byGuide) }

func (r *ApplicationRegister) Has(guideID uint) bool {
	_, ok := r.byGuide[guideID]
	return ok
}

func (r *ApplicationRegister) Get(guideID uint) (models.Application, bool) {
	app, ok := r.byGuide[guideID]
	return app, ok
}

func (r *ApplicationRegister) Put(app models.Application) {
	r.byGuide[app.GuideID] = app
}

func (r *ApplicationRegister) Remove(guideID uint) {
	delete(r.byGuide, guideID)
}

// Accepted returns the accepted applications ordered by submission time,
// earliest first, with the ID as a stable tie-break.
func (r *ApplicationRegister) Accepted() []models.Application {
	apps := make([]models.Application, 0, len(r.byGuide))
	for _, app := range r.byGuide {
		if app.Status == models.ApplicationAccepted {
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].CreatedAt.Before(apps[j].CreatedAt)
		}
		return apps[i].ID < apps[j].ID
	})
	return apps
}

// ReviewRegister tracks the reviews targeting one trip.
type ReviewRegister struct {
	reviews map[uint]models.Review // reviewID -> review
}

func newReviewRegister() *ReviewRegister {
	return &ReviewRegister{reviews: make(map[uint]models.Review)}
}

func (r *ReviewRegister) Size() int { return len(r.reviews) }

func (r *ReviewRegister) Put(review models.Review) {
	r.reviews[review.ID] = review
}

// Average returns the mean rating, or 0 when the register is empty.
func (r *ReviewRegister) Average() float64 {
	if len(r.reviews) == 0 {
		return 0
	}
	sum := 0
	for _, review := range r.reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(r.reviews))
}

// NotificationRegister tracks the notifications of one recipient together
// with the unread counter. Read transitions are idempotent: marking a read
// notification again never double-decrements the counter.
type NotificationRegister struct {
	read   map[uint]bool // notificationID -> read
	unread int
}

func newNotificationRegister() *NotificationRegister {
	return &NotificationRegister{read: make(map[uint]bool)}
}

func (r *NotificationRegister) Size() int   { return len(r.read) }
func (r *NotificationRegister) Unread() int { return r.unread }

func (r *NotificationRegister) Add(notificationID uint, alreadyRead bool) {
	if _, ok := r.read[notificationID]; ok {
		return
	}
	r.read[notificationID] = alreadyRead
	if !alreadyRead {
		r.unread++
	}
}

func (r *NotificationRegister) MarkRead(notificationID uint) {
	wasRead, ok := r.read[notificationID]
	if !ok || wasRead {
		return
	}
	r.read[notificationID] = true
	r.unread--
}

func (r *NotificationRegister) MarkAllRead() {
	for id := range r.read {
		r.read[id] = true
	}
	r.unread = 0
}
