package controllers

import (
	"net/http"
	"strings"

	"github.com/gotoresto/gotoresto-backend/api/responses"
	"github.com/gotoresto/gotoresto-backend/api/validators"
	"github.com/gotoresto/gotoresto-backend/internal/analytics"
	"github.com/gotoresto/gotoresto-backend/internal/bookings"
	"github.com/gotoresto/gotoresto-backend/internal/restaurants"
	"github.com/gotoresto/gotoresto-backend/internal/tables"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"github.com/gotoresto/gotoresto-backend/pkg/logger"
)

// SearchRestaurants lists venues filtered by free text, cuisine, and price band.
func SearchRestaurants(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurants service unavailable"))
			return
		}

		params := restaurants.SearchParams{
			Query:   strings.TrimSpace(r.URL.Query().Get("q")),
			Cuisine: strings.TrimSpace(r.URL.Query().Get("cuisine")),
			Price:   strings.TrimSpace(r.URL.Query().Get("price")),
		}

		results, err := svc.Search(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}

// GetRestaurant returns one venue by id.
func GetRestaurant(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurants service unavailable"))
			return
		}

		restaurantID, err := validators.ParseUUIDParam(r, "restaurantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		restaurant, err := svc.Get(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, restaurant)
	}
}

// ListRestaurantTables returns a venue's table registry.
func ListRestaurantTables(svc tables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tables service unavailable"))
			return
		}

		restaurantID, err := validators.ParseUUIDParam(r, "restaurantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListByRestaurant(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetAvailability returns the free tables for one (restaurant, date, time) slot.
func GetAvailability(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		restaurantID, err := validators.ParseUUIDParam(r, "restaurantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := validators.ParseQueryDate(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		slotTime, err := validators.ParseQueryTime(r, "time")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		free, err := svc.Availability(r.Context(), bookings.Slot{
			RestaurantID: restaurantID,
			Date:         date,
			Time:         slotTime,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"restaurant_id": restaurantID,
			"date":          date,
			"time":          slotTime,
			"tables":        free,
		})
	}
}

// GetRestaurantStats aggregates bookings and the rating summary for a venue.
func GetRestaurantStats(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		restaurantID, err := validators.ParseUUIDParam(r, "restaurantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.RestaurantStats(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
