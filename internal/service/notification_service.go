package service

import (
	"context"
	"fmt"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/repository"
)

type NotificationService interface {
	// Notify appends an unread notification for the user. It is an internal
	// entry point for the engines; there is no generic HTTP create.
	Notify(ctx context.Context, userID int64, message string) (*domain.Notification, error)
	List(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, error)
	// MarkRead marks the caller's listed notifications read and returns the
	// number of rows flipped. IDs owned by other users are ignored, and
	// re-marking already-read rows counts zero.
	MarkRead(ctx context.Context, userID int64, ids []int64) (int64, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Notify(ctx context.Context, userID int64, message string) (*domain.Notification, error) {
	notification, err := s.notificationRepo.Create(ctx, userID, domain.TruncateMessage(message))
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

func (s *notificationService) List(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

func (s *notificationService) MarkRead(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.notificationRepo.MarkRead(ctx, userID, ids)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
