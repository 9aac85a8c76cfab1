package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/gotoresto/gotoresto-backend/internal/bookings"
	"github.com/gotoresto/gotoresto-backend/internal/tables"
)

func TestGetAvailabilityPassesSlot(t *testing.T) {
	restaurantID := uuid.New()
	var captured bookings.Slot
	svc := &testBookingsService{
		availabilityFn: func(ctx context.Context, slot bookings.Slot) ([]tables.TableDTO, error) {
			captured = slot
			return []tables.TableDTO{{ID: uuid.New(), RestaurantID: slot.RestaurantID, TableNumber: 1, Seats: 4}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/"+restaurantID.String()+"/availability?date=2026-09-12&time=19:00", nil)
	req = addRouteParam(req, "restaurantID", restaurantID.String())
	resp := httptest.NewRecorder()
	GetAvailability(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if captured.RestaurantID != restaurantID || captured.Date != "2026-09-12" || captured.Time != "19:00" {
		t.Fatalf("unexpected slot %+v", captured)
	}

	var envelope struct {
		Data struct {
			Tables []tables.TableDTO `json:"tables"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data.Tables) != 1 {
		t.Fatalf("expected one free table got %d", len(envelope.Data.Tables))
	}
}

func TestGetAvailabilityRejectsMalformedDate(t *testing.T) {
	restaurantID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/"+restaurantID.String()+"/availability?date=12-09-2026&time=19:00", nil)
	req = addRouteParam(req, "restaurantID", restaurantID.String())
	resp := httptest.NewRecorder()
	GetAvailability(&testBookingsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetAvailabilityRejectsMalformedTime(t *testing.T) {
	restaurantID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/"+restaurantID.String()+"/availability?date=2026-09-12&time=7pm", nil)
	req = addRouteParam(req, "restaurantID", restaurantID.String())
	resp := httptest.NewRecorder()
	GetAvailability(&testBookingsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetAvailabilityRejectsBadRestaurantID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/nope/availability?date=2026-09-12&time=19:00", nil)
	req = addRouteParam(req, "restaurantID", "nope")
	resp := httptest.NewRecorder()
	GetAvailability(&testBookingsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
