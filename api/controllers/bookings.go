package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/gotoresto/gotoresto-backend/api/responses"
	"github.com/gotoresto/gotoresto-backend/api/validators"
	"github.com/gotoresto/gotoresto-backend/internal/bookings"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"github.com/gotoresto/gotoresto-backend/pkg/logger"
)

type createBookingBody struct {
	RestaurantID string  `json:"restaurant_id" validate:"required,uuid"`
	TableID      *string `json:"table_id" validate:"omitempty,uuid"`
	Date         string  `json:"date" validate:"required"`
	Time         string  `json:"time" validate:"required"`
	Guests       int     `json:"guests" validate:"required,gt=0"`
}

// CreateBooking reserves a table for the authenticated user.
func CreateBooking(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createBookingBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		restaurantID, err := uuid.Parse(body.RestaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id"))
			return
		}

		dto := bookings.CreateBookingDTO{
			RestaurantID: restaurantID,
			Date:         body.Date,
			Time:         body.Time,
			Guests:       body.Guests,
		}
		if body.TableID != nil {
			tableID, err := uuid.Parse(*body.TableID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid table id"))
				return
			}
			dto.TableID = &tableID
		}

		booking, err := svc.Create(r.Context(), userID, dto)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, booking)
	}
}

// ListMyBookings returns the caller's reservations, most recent slot first.
func ListMyBookings(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
