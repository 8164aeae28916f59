package service

import (
	"context"
	"fmt"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/repository"
	"github.com/voyago/travelbook/pkg/events"
	"github.com/voyago/travelbook/pkg/logger"
)

type ReviewService interface {
	Create(ctx context.Context, userID, destinationID int64, req *domain.ReviewCreate) (*domain.Review, error)
	Update(ctx context.Context, id, callerID int64, patch *domain.ReviewPatch) (*domain.Review, error)
	ListByDestination(ctx context.Context, destinationID int64, limit, offset int) ([]domain.Review, error)
}

type reviewService struct {
	reviewRepo      repository.ReviewRepository
	destinationRepo repository.DestinationRepository
	userRepo        repository.UserRepository
	eventBus        events.Publisher
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	destinationRepo repository.DestinationRepository,
	userRepo repository.UserRepository,
	eventBus events.Publisher,
) ReviewService {
	return &reviewService{
		reviewRepo:      reviewRepo,
		destinationRepo: destinationRepo,
		userRepo:        userRepo,
		eventBus:        eventBus,
	}
}

// Create validates the rating, persists the review and notifies the
// destination's partner, exactly once per review. Edits never re-notify.
func (s *reviewService) Create(ctx context.Context, userID, destinationID int64, req *domain.ReviewCreate) (*domain.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if author == nil {
		return nil, domain.ErrNotFound
	}

	destination, err := s.destinationRepo.GetByID(ctx, destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load destination: %w", err)
	}
	if destination == nil {
		return nil, domain.ErrNotFound
	}

	review := &domain.Review{
		UserID:        userID,
		DestinationID: destinationID,
		Rating:        req.Rating,
		Content:       req.Content,
	}
	message := domain.TruncateMessage(fmt.Sprintf("New review posted by %s on %s: %s", author.Username, destination.Name, req.Content))

	created, notification, err := s.reviewRepo.CreateWithNotification(ctx, review, destination.PartnerID, message)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.eventBus.Publish(ctx, events.ReviewCreated, events.ReviewCreatedEvent{
		ReviewID:      created.ID,
		UserID:        created.UserID,
		DestinationID: created.DestinationID,
		Rating:        created.Rating,
		CreatedAt:     created.CreatedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish review created event", "error", err, "review_id", created.ID)
	}

	if owner, err := s.userRepo.FindByID(ctx, destination.PartnerID); err == nil && owner != nil {
		if err := s.eventBus.Publish(ctx, events.NotificationCreated, events.NotificationCreatedEvent{
			NotificationID: notification.ID,
			UserID:         notification.UserID,
			UserEmail:      owner.Email,
			UserName:       owner.Username,
			Message:        notification.Message,
			CreatedAt:      notification.CreatedAt,
		}); err != nil {
			logger.ErrorContext(ctx, "Failed to publish notification event", "error", err, "notification_id", notification.ID)
		}
	}

	return created, nil
}

func (s *reviewService) Update(ctx context.Context, id, callerID int64, patch *domain.ReviewPatch) (*domain.Review, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if existing.UserID != callerID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.reviewRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return updated, nil
}

func (s *reviewService) ListByDestination(ctx context.Context, destinationID int64, limit, offset int) ([]domain.Review, error) {
	return s.reviewRepo.ListByDestination(ctx, destinationID, limit, offset)
}
