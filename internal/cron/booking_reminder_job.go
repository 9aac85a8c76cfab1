package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/internal/bookings"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"github.com/gotoresto/gotoresto-backend/pkg/enums"
	"github.com/gotoresto/gotoresto-backend/pkg/logger"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type reminderBookingSource interface {
	ListForDate(ctx context.Context, date string) ([]models.Booking, error)
}

type reminderLedger interface {
	HasBookingReminder(ctx context.Context, bookingID uuid.UUID) (bool, error)
	Record(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action enums.ActivityAction, details map[string]any) error
}

type reminderNotifier interface {
	Send(ctx context.Context, userID uuid.UUID, content string) error
}

// BookingReminderJob notifies guests about tomorrow's bookings. The
// activity log marks which bookings were already reminded so reruns do
// not notify twice.
type BookingReminderJob struct {
	bookings reminderBookingSource
	ledger   reminderLedger
	notifier reminderNotifier
	logg     *logger.Logger
	now      func() time.Time
}

// BookingReminderJobParams bundles the job's dependencies.
type BookingReminderJobParams struct {
	Bookings reminderBookingSource
	Ledger   reminderLedger
	Notifier reminderNotifier
	Logger   *logger.Logger
	Now      func() time.Time
}

// NewBookingReminderJob constructs the reminder job.
func NewBookingReminderJob(params BookingReminderJobParams) (*BookingReminderJob, error) {
	if params.Bookings == nil {
		return nil, fmt.Errorf("booking source is required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("activity ledger is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &BookingReminderJob{
		bookings: params.Bookings,
		ledger:   params.Ledger,
		notifier: params.Notifier,
		logg:     params.Logger,
		now:      params.Now,
	}, nil
}

func (j *BookingReminderJob) Name() string {
	return "booking_reminder"
}

func (j *BookingReminderJob) Run(ctx context.Context) error {
	date := j.now().UTC().Add(24 * time.Hour).Format(bookings.DateLayout)
	rows, err := j.bookings.ListForDate(ctx, date)
	if err != nil {
		return fmt.Errorf("list bookings for %s: %w", date, err)
	}

	var errs error
	sent := 0
	for i := range rows {
		booking := &rows[i]
		already, err := j.ledger.HasBookingReminder(ctx, booking.ID)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("check reminder for booking %s: %w", booking.ID, err))
			continue
		}
		if already {
			continue
		}

		content := fmt.Sprintf("Reminder: you have a booking tomorrow at %s", booking.Time)
		if err := j.notifier.Send(ctx, booking.UserID, content); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("notify booking %s: %w", booking.ID, err))
			continue
		}
		err = j.ledger.Record(ctx, nil, booking.UserID, enums.ActivityReminderSent, map[string]any{
			"booking_id": booking.ID.String(),
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("record reminder for booking %s: %w", booking.ID, err))
			continue
		}
		sent++
	}

	if j.logg != nil {
		j.logg.Info(ctx, fmt.Sprintf("booking reminders sent: %d for %s", sent, date))
	}
	return errs
}
