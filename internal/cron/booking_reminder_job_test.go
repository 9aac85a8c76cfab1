package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"github.com/gotoresto/gotoresto-backend/pkg/enums"
	"gorm.io/gorm"
)

type fakeBookingSource struct {
	byDate map[string][]models.Booking
	asked  []string
}

func (f *fakeBookingSource) ListForDate(ctx context.Context, date string) ([]models.Booking, error) {
	f.asked = append(f.asked, date)
	return f.byDate[date], nil
}

type fakeLedger struct {
	reminded map[uuid.UUID]bool
	recorded []uuid.UUID
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{reminded: map[uuid.UUID]bool{}}
}

func (f *fakeLedger) HasBookingReminder(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	return f.reminded[bookingID], nil
}

func (f *fakeLedger) Record(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action enums.ActivityAction, details map[string]any) error {
	if action != enums.ActivityReminderSent {
		return errors.New("unexpected action")
	}
	if raw, ok := details["booking_id"].(string); ok {
		id, err := uuid.Parse(raw)
		if err != nil {
			return err
		}
		f.reminded[id] = true
		f.recorded = append(f.recorded, id)
	}
	return nil
}

type fakeReminderNotifier struct {
	sent []uuid.UUID
	err  error
}

func (f *fakeReminderNotifier) Send(ctx context.Context, userID uuid.UUID, content string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, userID)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, 9, 11, 8, 0, 0, 0, time.UTC)
}

func newReminderJob(t *testing.T, source *fakeBookingSource, ledger *fakeLedger, notifier *fakeReminderNotifier) *BookingReminderJob {
	t.Helper()
	job, err := NewBookingReminderJob(BookingReminderJobParams{
		Bookings: source,
		Ledger:   ledger,
		Notifier: notifier,
		Now:      fixedNow,
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	return job
}

func TestReminderTargetsTomorrowsBookings(t *testing.T) {
	userID := uuid.New()
	source := &fakeBookingSource{byDate: map[string][]models.Booking{
		"2026-09-12": {{ID: uuid.New(), UserID: userID, Date: "2026-09-12", Time: "19:00"}},
	}}
	ledger := newFakeLedger()
	notifier := &fakeReminderNotifier{}

	job := newReminderJob(t, source, ledger, notifier)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(source.asked) != 1 || source.asked[0] != "2026-09-12" {
		t.Fatalf("expected lookup for 2026-09-12, got %v", source.asked)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != userID {
		t.Fatalf("expected one reminder to %s, got %v", userID, notifier.sent)
	}
	if len(ledger.recorded) != 1 {
		t.Fatalf("expected reminder marker, got %v", ledger.recorded)
	}
}

func TestReminderIsIdempotentAcrossRuns(t *testing.T) {
	booking := models.Booking{ID: uuid.New(), UserID: uuid.New(), Date: "2026-09-12", Time: "19:00"}
	source := &fakeBookingSource{byDate: map[string][]models.Booking{"2026-09-12": {booking}}}
	ledger := newFakeLedger()
	notifier := &fakeReminderNotifier{}

	job := newReminderJob(t, source, ledger, notifier)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected exactly one reminder, got %d", len(notifier.sent))
	}
}

func TestReminderFailureDoesNotMark(t *testing.T) {
	booking := models.Booking{ID: uuid.New(), UserID: uuid.New(), Date: "2026-09-12", Time: "19:00"}
	source := &fakeBookingSource{byDate: map[string][]models.Booking{"2026-09-12": {booking}}}
	ledger := newFakeLedger()
	notifier := &fakeReminderNotifier{err: errors.New("store down")}

	job := newReminderJob(t, source, ledger, notifier)
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(ledger.recorded) != 0 {
		t.Fatal("failed notification must not be marked as reminded")
	}
}
