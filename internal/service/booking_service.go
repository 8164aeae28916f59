package service

import (
	"context"
	"fmt"
	"time"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/repository"
	"github.com/voyago/travelbook/pkg/events"
	"github.com/voyago/travelbook/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, userID int64, req *domain.BookingCreate) (*domain.Booking, error)
	Get(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int, status *domain.BookingStatus) ([]domain.Booking, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	Cancel(ctx context.Context, id, callerID int64, callerRole domain.Role) (bool, error)
}

type bookingService struct {
	bookingRepo     repository.BookingRepository
	destinationRepo repository.DestinationRepository
	userRepo        repository.UserRepository
	eventBus        events.Publisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	destinationRepo repository.DestinationRepository,
	userRepo repository.UserRepository,
	eventBus events.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo:     bookingRepo,
		destinationRepo: destinationRepo,
		userRepo:        userRepo,
		eventBus:        eventBus,
	}
}

// Create prices and persists a booking. The wallet route settles atomically:
// funds deduction, the paid booking row and the payment notification either
// all commit or none do. Other payment methods persist unpaid and never touch
// the ledger.
func (s *bookingService) Create(ctx context.Context, userID int64, req *domain.BookingCreate) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
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

	price := destination.Price
	if req.TotalPrice != nil {
		price = *req.TotalPrice
	}

	booking := &domain.Booking{
		UserID:        userID,
		DestinationID: destination.ID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalPrice:    price,
		PaymentMethod: req.PaymentMethod,
	}

	if req.PaymentMethod == domain.PaymentWallet {
		message := domain.TruncateMessage(fmt.Sprintf("Your booking for %s has been successfully paid and confirmed!", destination.Name))
		created, notification, err := s.bookingRepo.CreateWalletSettled(ctx, booking, message)
		if err != nil {
			return nil, err
		}

		s.publishBookingCreated(ctx, created)
		s.publish(ctx, events.PaymentCaptured, events.PaymentCapturedEvent{
			BookingID: created.ID,
			UserID:    created.UserID,
			Amount:    created.TotalPrice.StringFixed(2),
			Method:    string(created.PaymentMethod),
			PaidAt:    created.CreatedAt,
		})
		s.publishNotification(ctx, user, notification)
		return created, nil
	}

	created, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	s.publishBookingCreated(ctx, created)
	return created, nil
}

func (s *bookingService) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	return booking, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID int64, limit, offset int, status *domain.BookingStatus) ([]domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID, limit, offset, status)
}

func (s *bookingService) ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	return s.bookingRepo.List(ctx, limit, offset)
}

func (s *bookingService) Cancel(ctx context.Context, id, callerID int64, callerRole domain.Role) (bool, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return false, domain.ErrNotFound
	}
	if !booking.IsOwner(callerID) && callerRole != domain.RoleAdmin {
		return false, domain.ErrForbidden
	}

	canceled, err := s.bookingRepo.Cancel(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}

	if canceled {
		reason := "user_requested"
		if callerRole == domain.RoleAdmin && !booking.IsOwner(callerID) {
			reason = "admin_canceled"
		}
		s.publish(ctx, events.BookingCanceled, events.BookingCanceledEvent{
			BookingID:  booking.ID,
			UserID:     booking.UserID,
			Reason:     reason,
			CanceledAt: time.Now(),
		})
	}
	return canceled, nil
}

func (s *bookingService) publishBookingCreated(ctx context.Context, b *domain.Booking) {
	s.publish(ctx, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:     b.ID,
		UserID:        b.UserID,
		DestinationID: b.DestinationID,
		TotalPrice:    b.TotalPrice.StringFixed(2),
		PaymentMethod: string(b.PaymentMethod),
		PaymentStatus: string(b.PaymentStatus),
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		CreatedAt:     b.CreatedAt,
	})
}

func (s *bookingService) publishNotification(ctx context.Context, user *domain.User, n *domain.Notification) {
	s.publish(ctx, events.NotificationCreated, events.NotificationCreatedEvent{
		NotificationID: n.ID,
		UserID:         n.UserID,
		UserEmail:      user.Email,
		UserName:       user.Username,
		Message:        n.Message,
		CreatedAt:      n.CreatedAt,
	})
}

// Event publishing is post-commit and best-effort: a bus outage never unwinds
// a committed booking.
func (s *bookingService) publish(ctx context.Context, subject string, event any) {
	if err := s.eventBus.Publish(ctx, subject, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish event", "error", err, "subject", subject)
	}
}
