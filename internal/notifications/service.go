package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"github.com/gotoresto/gotoresto-backend/pkg/pagination"
)

// Service exposes in-app notifications.
type Service interface {
	Send(ctx context.Context, userID uuid.UUID, content string) error
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (PageDTO, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (bool, error)
}

// ServiceParams bundles the dependencies for the notifications service.
type ServiceParams struct {
	NotificationRepo notificationRepository
}

type service struct {
	notifications notificationRepository
}

// NewService constructs a notifications service.
func NewService(params ServiceParams) (Service, error) {
	if params.NotificationRepo == nil {
		return nil, fmt.Errorf("notification repository is required")
	}
	return &service{notifications: params.NotificationRepo}, nil
}

func (s *service) Send(ctx context.Context, userID uuid.UUID, content string) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient is required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}
	notification := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create notification")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (PageDTO, error) {
	if userID == uuid.Nil {
		return PageDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}

	rows, err := s.notifications.ListByUser(ctx, userID, params)
	if err != nil {
		return PageDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	page := PageDTO{Notifications: make([]NotificationDTO, 0, limit)}
	for i := range rows {
		if i == limit {
			last := rows[limit-1]
			page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		page.Notifications = append(page.Notifications, FromModel(&rows[i]))
	}
	return page, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id is required")
	}
	updated, err := s.notifications.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notification read")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}
