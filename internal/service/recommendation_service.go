package service

import (
	"context"
	"fmt"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/repository"
	"github.com/voyago/travelbook/pkg/events"
	"github.com/voyago/travelbook/pkg/logger"
)

type RecommendationService interface {
	Create(ctx context.Context, req *domain.RecommendationCreate) (*domain.Recommendation, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Recommendation, error)
}

type recommendationService struct {
	recommendationRepo repository.RecommendationRepository
	destinationRepo    repository.DestinationRepository
	userRepo           repository.UserRepository
	eventBus           events.Publisher
}

func NewRecommendationService(
	recommendationRepo repository.RecommendationRepository,
	destinationRepo repository.DestinationRepository,
	userRepo repository.UserRepository,
	eventBus events.Publisher,
) RecommendationService {
	return &recommendationService{
		recommendationRepo: recommendationRepo,
		destinationRepo:    destinationRepo,
		userRepo:           userRepo,
		eventBus:           eventBus,
	}
}

// Create stores a scored recommendation record and notifies the user. The
// score arrives from the caller; nothing here computes one.
func (s *recommendationService) Create(ctx context.Context, req *domain.RecommendationCreate) (*domain.Recommendation, error) {
	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	destination, err := s.destinationRepo.GetByID(ctx, req.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load destination: %w", err)
	}
	if destination == nil {
		return nil, domain.ErrNotFound
	}

	message := domain.TruncateMessage(fmt.Sprintf("We recommend %s based on your preferences!", destination.Name))
	rec, notification, err := s.recommendationRepo.CreateWithNotification(ctx, req, message)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommendation: %w", err)
	}

	if err := s.eventBus.Publish(ctx, events.RecommendationCreated, events.RecommendationCreatedEvent{
		RecommendationID: rec.ID,
		UserID:           rec.UserID,
		DestinationID:    rec.DestinationID,
		Score:            rec.Score,
		CreatedAt:        rec.CreatedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish recommendation event", "error", err, "recommendation_id", rec.ID)
	}

	if err := s.eventBus.Publish(ctx, events.NotificationCreated, events.NotificationCreatedEvent{
		NotificationID: notification.ID,
		UserID:         notification.UserID,
		UserEmail:      user.Email,
		UserName:       user.Username,
		Message:        notification.Message,
		CreatedAt:      notification.CreatedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish notification event", "error", err, "notification_id", notification.ID)
	}

	return rec, nil
}

func (s *recommendationService) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Recommendation, error) {
	return s.recommendationRepo.ListByUser(ctx, userID, limit, offset)
}
