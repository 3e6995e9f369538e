package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Supanida/trip-agency-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock BookingService ---

type mockBookingService struct {
	bookFn    func(ctx context.Context, travelerID, tripID uint) (bool, error)
	cancelFn  func(ctx context.Context, travelerID, tripID uint) (bool, error)
	spotsFn   func(ctx context.Context, tripID uint) (int, error)
	minimumFn func(ctx context.Context, tripID uint) (bool, error)
	fullFn    func(ctx context.Context, tripID uint) (bool, error)
}

func (m *mockBookingService) Book(ctx context.Context, travelerID, tripID uint) (bool, error) {
	return m.bookFn(ctx, travelerID, tripID)
}
func (m *mockBookingService) Cancel(ctx context.Context, travelerID, tripID uint) (bool, error) {
	return m.cancelFn(ctx, travelerID, tripID)
}
func (m *mockBookingService) AvailableSpots(ctx context.Context, tripID uint) (int, error) {
	return m.spotsFn(ctx, tripID)
}
func (m *mockBookingService) HasMinimumParticipants(ctx context.Context, tripID uint) (bool, error) {
	return m.minimumFn(ctx, tripID)
}
func (m *mockBookingService) IsFull(ctx context.Context, tripID uint) (bool, error) {
	return m.fullFn(ctx, tripID)
}

func newBookingContext(t *testing.T, method, target, body, tripID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewRequestValidator()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(tripID)
	return c, rec
}

// --- Tests ---

func TestCreateBooking_Handler_Booked(t *testing.T) {
	svc := &mockBookingService{
		bookFn: func(ctx context.Context, travelerID, tripID uint) (bool, error) {
			assert.Equal(t, uint(7), travelerID)
			assert.Equal(t, uint(1), tripID)
			return true, nil
		},
	}

	c, rec := newBookingContext(t, http.MethodPost, "/api/v1/trips/1/bookings", `{"traveler_id":7}`, "1")
	err := NewBookingHandler(svc).CreateBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]bool
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp["booked"])
}

func TestCreateBooking_Handler_FullTripIsNotAnError(t *testing.T) {
	svc := &mockBookingService{
		bookFn: func(ctx context.Context, travelerID, tripID uint) (bool, error) {
			return false, nil
		},
	}

	c, rec := newBookingContext(t, http.MethodPost, "/api/v1/trips/1/bookings", `{"traveler_id":7}`, "1")
	err := NewBookingHandler(svc).CreateBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]bool
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp["booked"])
}

func TestCreateBooking_Handler_MissingTravelerID(t *testing.T) {
	c, _ := newBookingContext(t, http.MethodPost, "/api/v1/trips/1/bookings", `{}`, "1")
	err := NewBookingHandler(nil).CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_Handler_InvalidTripID(t *testing.T) {
	c, _ := newBookingContext(t, http.MethodPost, "/api/v1/trips/abc/bookings", `{"traveler_id":7}`, "abc")
	err := NewBookingHandler(nil).CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_Handler_TripNotFound(t *testing.T) {
	svc := &mockBookingService{
		bookFn: func(ctx context.Context, travelerID, tripID uint) (bool, error) {
			return false, service.ErrNotFound
		},
	}

	c, _ := newBookingContext(t, http.MethodPost, "/api/v1/trips/999/bookings", `{"traveler_id":7}`, "999")
	err := NewBookingHandler(svc).CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCancelBooking_Handler_Cancelled(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, travelerID, tripID uint) (bool, error) {
			return true, nil
		},
	}

	c, rec := newBookingContext(t, http.MethodDelete, "/api/v1/trips/1/bookings", `{"traveler_id":7}`, "1")
	err := NewBookingHandler(svc).CancelBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]bool
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp["cancelled"])
}

func TestCancelBooking_Handler_NothingToCancel(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, travelerID, tripID uint) (bool, error) {
			return false, nil
		},
	}

	c, rec := newBookingContext(t, http.MethodDelete, "/api/v1/trips/1/bookings", `{"traveler_id":7}`, "1")
	err := NewBookingHandler(svc).CancelBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]bool
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp["cancelled"])
}

func TestCancelBooking_Handler_TripAlreadyStarted(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, travelerID, tripID uint) (bool, error) {
			return false, service.ErrTripAlreadyStarted
		},
	}

	c, _ := newBookingContext(t, http.MethodDelete, "/api/v1/trips/1/bookings", `{"traveler_id":7}`, "1")
	err := NewBookingHandler(svc).CancelBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}
