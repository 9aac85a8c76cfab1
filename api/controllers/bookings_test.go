package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gotoresto/gotoresto-backend/api/middleware"
	"github.com/gotoresto/gotoresto-backend/internal/bookings"
	"github.com/gotoresto/gotoresto-backend/internal/tables"
	"github.com/gotoresto/gotoresto-backend/pkg/logger"
)

type testBookingsService struct {
	availabilityFn func(ctx context.Context, slot bookings.Slot) ([]tables.TableDTO, error)
	createFn       func(ctx context.Context, userID uuid.UUID, dto bookings.CreateBookingDTO) (bookings.BookingDTO, error)
	listMineFn     func(ctx context.Context, userID uuid.UUID) ([]bookings.BookingDTO, error)
}

func (s *testBookingsService) Availability(ctx context.Context, slot bookings.Slot) ([]tables.TableDTO, error) {
	if s.availabilityFn != nil {
		return s.availabilityFn(ctx, slot)
	}
	return nil, nil
}

func (s *testBookingsService) Create(ctx context.Context, userID uuid.UUID, dto bookings.CreateBookingDTO) (bookings.BookingDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, userID, dto)
	}
	return bookings.BookingDTO{}, nil
}

func (s *testBookingsService) ListMine(ctx context.Context, userID uuid.UUID) ([]bookings.BookingDTO, error) {
	if s.listMineFn != nil {
		return s.listMineFn(ctx, userID)
	}
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func authenticated(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func TestCreateBookingSuccess(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	var captured bookings.CreateBookingDTO
	svc := &testBookingsService{
		createFn: func(ctx context.Context, uid uuid.UUID, dto bookings.CreateBookingDTO) (bookings.BookingDTO, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			captured = dto
			return bookings.BookingDTO{ID: uuid.New(), UserID: uid, RestaurantID: dto.RestaurantID, Date: dto.Date, Time: dto.Time, Guests: dto.Guests}, nil
		},
	}

	payload := `{"restaurant_id":"` + restaurantID.String() + `","date":"2026-09-12","time":"19:00","guests":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	req = authenticated(req, userID)
	resp := httptest.NewRecorder()
	CreateBooking(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if captured.RestaurantID != restaurantID {
		t.Fatalf("unexpected restaurant %s", captured.RestaurantID)
	}
	if captured.Date != "2026-09-12" || captured.Time != "19:00" || captured.Guests != 2 {
		t.Fatalf("unexpected dto %+v", captured)
	}
	if captured.TableID != nil {
		t.Fatal("expected no table preference")
	}
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	CreateBooking(&testBookingsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCreateBookingRejectsBadRestaurantID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{"restaurant_id":"nope","date":"2026-09-12","time":"19:00","guests":2}`))
	req = authenticated(req, uuid.New())
	resp := httptest.NewRecorder()
	CreateBooking(&testBookingsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateBookingRejectsMissingGuests(t *testing.T) {
	payload := `{"restaurant_id":"` + uuid.NewString() + `","date":"2026-09-12","time":"19:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	req = authenticated(req, uuid.New())
	resp := httptest.NewRecorder()
	CreateBooking(&testBookingsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateBookingForwardsTablePreference(t *testing.T) {
	tableID := uuid.New()
	var captured bookings.CreateBookingDTO
	svc := &testBookingsService{
		createFn: func(ctx context.Context, uid uuid.UUID, dto bookings.CreateBookingDTO) (bookings.BookingDTO, error) {
			captured = dto
			return bookings.BookingDTO{}, nil
		},
	}

	payload := `{"restaurant_id":"` + uuid.NewString() + `","table_id":"` + tableID.String() + `","date":"2026-09-12","time":"19:00","guests":4}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	req = authenticated(req, uuid.New())
	resp := httptest.NewRecorder()
	CreateBooking(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if captured.TableID == nil || *captured.TableID != tableID {
		t.Fatalf("expected table preference %s, got %v", tableID, captured.TableID)
	}
}

func TestListMyBookings(t *testing.T) {
	userID := uuid.New()
	svc := &testBookingsService{
		listMineFn: func(ctx context.Context, uid uuid.UUID) ([]bookings.BookingDTO, error) {
			return []bookings.BookingDTO{{ID: uuid.New(), UserID: uid}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req = authenticated(req, userID)
	resp := httptest.NewRecorder()
	ListMyBookings(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data []bookings.BookingDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected one booking got %d", len(envelope.Data))
	}
}
