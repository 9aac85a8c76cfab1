package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/internal/tables"
	pkgdb "github.com/gotoresto/gotoresto-backend/pkg/db"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"github.com/gotoresto/gotoresto-backend/pkg/logger"
	"gorm.io/gorm"
)

// Service exposes availability lookups and booking creation.
type Service interface {
	Availability(ctx context.Context, slot Slot) ([]tables.TableDTO, error)
	Create(ctx context.Context, userID uuid.UUID, dto CreateBookingDTO) (BookingDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]BookingDTO, error)
}

type bookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error)
	BookedTableIDs(ctx context.Context, slot Slot) ([]uuid.UUID, error)
	LockTable(ctx context.Context, tx *gorm.DB, tableID uuid.UUID) (*models.Table, error)
	FindFreeTable(ctx context.Context, tx *gorm.DB, slot Slot, guests int) (*models.Table, error)
}

type tableRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Table, error)
}

type restaurantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type loyaltyAwarder interface {
	AwardBookingPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, bookingID uuid.UUID) error
}

type notifier interface {
	Send(ctx context.Context, userID uuid.UUID, content string) error
}

// ServiceParams bundles the dependencies for the bookings service.
type ServiceParams struct {
	BookingRepo    bookingRepository
	TableRepo      tableRepository
	RestaurantRepo restaurantFinder
	Tx             txRunner
	Loyalty        loyaltyAwarder
	Notifier       notifier
	Logger         *logger.Logger
}

type service struct {
	bookings    bookingRepository
	tables      tableRepository
	restaurants restaurantFinder
	tx          txRunner
	loyalty     loyaltyAwarder
	notifier    notifier
	logg        *logger.Logger
}

// NewService constructs a bookings service.
func NewService(params ServiceParams) (Service, error) {
	if params.BookingRepo == nil {
		return nil, fmt.Errorf("booking repository is required")
	}
	if params.TableRepo == nil {
		return nil, fmt.Errorf("table repository is required")
	}
	if params.RestaurantRepo == nil {
		return nil, fmt.Errorf("restaurant repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{
		bookings:    params.BookingRepo,
		tables:      params.TableRepo,
		restaurants: params.RestaurantRepo,
		tx:          params.Tx,
		loyalty:     params.Loyalty,
		notifier:    params.Notifier,
		logg:        params.Logger,
	}, nil
}

// Availability returns the tables of a restaurant that have no booking for
// the exact slot, in registry order.
func (s *service) Availability(ctx context.Context, slot Slot) ([]tables.TableDTO, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	if _, err := s.restaurants.FindByID(ctx, slot.RestaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}

	all, err := s.tables.ListByRestaurant(ctx, slot.RestaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tables")
	}
	bookedIDs, err := s.bookings.BookedTableIDs(ctx, slot)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list booked tables")
	}

	booked := make(map[uuid.UUID]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	free := make([]tables.TableDTO, 0, len(all))
	for i := range all {
		if _, taken := booked[all[i].ID]; taken {
			continue
		}
		free = append(free, tables.FromModel(&all[i]))
	}
	return free, nil
}

// Create reserves a table for the slot inside a single transaction. When
// the request names a table it is checked and locked; otherwise the
// smallest free table that seats the party is assigned.
func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateBookingDTO) (BookingDTO, error) {
	if userID == uuid.Nil {
		return BookingDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	if err := validateSlot(Slot{RestaurantID: dto.RestaurantID, Date: dto.Date, Time: dto.Time}); err != nil {
		return BookingDTO{}, err
	}
	if dto.Guests < 1 {
		return BookingDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "guests must be at least 1")
	}

	if _, err := s.restaurants.FindByID(ctx, dto.RestaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return BookingDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}

	slot := Slot{RestaurantID: dto.RestaurantID, Date: dto.Date, Time: dto.Time}
	booking := &models.Booking{
		ID:           uuid.New(),
		UserID:       userID,
		RestaurantID: dto.RestaurantID,
		Date:         dto.Date,
		Time:         dto.Time,
		Guests:       dto.Guests,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if dto.TableID != nil {
			table, err := s.bookings.LockTable(ctx, tx, *dto.TableID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "table not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lock table")
			}
			if table.RestaurantID != dto.RestaurantID {
				return pkgerrors.New(pkgerrors.CodeValidation, "table does not belong to this restaurant")
			}
			if table.Seats < dto.Guests {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "table does not seat the party")
			}
			booking.TableID = &table.ID
		} else {
			table, err := s.bookings.FindFreeTable(ctx, tx, slot, dto.Guests)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find free table")
			}
			if table == nil {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "no table is available for this slot")
			}
			booking.TableID = &table.ID
		}

		if err := s.bookings.Create(ctx, tx, booking); err != nil {
			if pkgdb.IsUniqueViolation(err, "bookings_slot_key") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "table is already booked for this slot")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create booking")
		}

		if s.loyalty != nil {
			if err := s.loyalty.AwardBookingPoints(ctx, tx, userID, booking.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "award booking points")
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return BookingDTO{}, typed
		}
		return BookingDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create booking")
	}

	if s.notifier != nil {
		content := fmt.Sprintf("Booking confirmed for %s at %s", dto.Date, dto.Time)
		if notifyErr := s.notifier.Send(ctx, userID, content); notifyErr != nil && s.logg != nil {
			s.logg.Warn(ctx, "booking confirmation notification failed")
		}
	}

	return FromModel(booking), nil
}

// ListMine returns the caller's bookings, most recent slot first.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]BookingDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	rows, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list bookings")
	}
	result := make([]BookingDTO, 0, len(rows))
	for i := range rows {
		result = append(result, FromModel(&rows[i]))
	}
	return result, nil
}

func validateSlot(slot Slot) error {
	if slot.RestaurantID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if _, err := time.Parse(DateLayout, slot.Date); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "date must be formatted as YYYY-MM-DD")
	}
	if _, err := time.Parse(TimeLayout, slot.Time); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "time must be formatted as HH:MM")
	}
	return nil
}
