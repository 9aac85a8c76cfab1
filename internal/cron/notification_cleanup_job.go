package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/gotoresto/gotoresto-backend/pkg/logger"
)

type notificationJanitor interface {
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationCleanupJob removes read notifications that aged out of the
// retention window.
type NotificationCleanupJob struct {
	notifications notificationJanitor
	retention     time.Duration
	logg          *logger.Logger
}

// NotificationCleanupJobParams bundles the job's dependencies.
type NotificationCleanupJobParams struct {
	Notifications notificationJanitor
	Retention     time.Duration
	Logger        *logger.Logger
}

// NewNotificationCleanupJob constructs the cleanup job.
func NewNotificationCleanupJob(params NotificationCleanupJobParams) (*NotificationCleanupJob, error) {
	if params.Notifications == nil {
		return nil, fmt.Errorf("notification repository is required")
	}
	if params.Retention <= 0 {
		return nil, fmt.Errorf("retention must be positive")
	}
	return &NotificationCleanupJob{
		notifications: params.Notifications,
		retention:     params.Retention,
		logg:          params.Logger,
	}, nil
}

func (j *NotificationCleanupJob) Name() string {
	return "notification_cleanup"
}

func (j *NotificationCleanupJob) Run(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.retention)
	removed, err := j.notifications.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete read notifications: %w", err)
	}
	if j.logg != nil {
		j.logg.Info(ctx, fmt.Sprintf("notification cleanup removed %d rows", removed))
	}
	return nil
}
