package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/repository"
)

type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) FindByUser(ctx context.Context, userID string, query *repository.ListQuery) ([]models.Notification, int64, error) {
	items, total, err := s.repo.FindByUser(ctx, userID, query)
	if err != nil {
		return nil, 0, storeError("load notifications", err)
	}
	return items, total, nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *NotificationService) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	return storeError("create notification", s.repo.Create(ctx, notification))
}

// MarkAsRead marks one of userID's notifications as read. Notifications of
// other users are reported as not found.
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("notification "+id, err)
	}
	if notification.UserID != userID {
		return nil, fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	if !notification.IsRead() {
		notification.MarkAsRead()
		if err := s.repo.Update(ctx, notification); err != nil {
			return nil, storeError("update notification", err)
		}
	}
	return notification, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// NotifyUser creates a plain notification for userID
func (s *NotificationService) NotifyUser(ctx context.Context, userID, title, message, notifType string) error {
	return s.Create(ctx, &models.Notification{
		UserID:           userID,
		Title:            title,
		Message:          message,
		NotificationType: &notifType,
	})
}
