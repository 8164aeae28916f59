package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/repository"
)

type CatalogService interface {
	CreateDestination(ctx context.Context, partnerID int64, req *domain.DestinationCreate) (*domain.Destination, error)
	GetDestination(ctx context.Context, id int64) (*domain.DestinationDetail, error)
	ListDestinations(ctx context.Context, limit, offset int) ([]domain.Destination, error)
	ListByPartner(ctx context.Context, partnerID int64, limit, offset int) ([]domain.Destination, error)
	UpdateDestination(ctx context.Context, id, callerID int64, callerRole domain.Role, patch *domain.DestinationPatch) (*domain.Destination, error)
	DeleteDestination(ctx context.Context, id, callerID int64, callerRole domain.Role) (bool, error)
	AddImage(ctx context.Context, destinationID, callerID int64, callerRole domain.Role, url string) (*domain.DestinationImage, error)
	AverageRating(ctx context.Context, destinationID int64) (decimal.Decimal, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	ListActivities(ctx context.Context, categoryID int64) ([]domain.Activity, error)
}

type catalogService struct {
	destinationRepo repository.DestinationRepository
	userRepo        repository.UserRepository
}

func NewCatalogService(destinationRepo repository.DestinationRepository, userRepo repository.UserRepository) CatalogService {
	return &catalogService{
		destinationRepo: destinationRepo,
		userRepo:        userRepo,
	}
}

// CreateDestination requires the owner to hold the partner role. The check is
// an explicit precondition here, not a query-time filter.
func (s *catalogService) CreateDestination(ctx context.Context, partnerID int64, req *domain.DestinationCreate) (*domain.Destination, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	partner, err := s.userRepo.FindByID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if partner == nil {
		return nil, domain.ErrNotFound
	}
	if !partner.IsPartner() {
		return nil, domain.ErrNotPartner
	}

	destination, err := s.destinationRepo.Create(ctx, partnerID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination: %w", err)
	}
	return destination, nil
}

func (s *catalogService) GetDestination(ctx context.Context, id int64) (*domain.DestinationDetail, error) {
	detail, err := s.destinationRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return detail, nil
}

func (s *catalogService) ListDestinations(ctx context.Context, limit, offset int) ([]domain.Destination, error) {
	return s.destinationRepo.List(ctx, limit, offset)
}

func (s *catalogService) ListByPartner(ctx context.Context, partnerID int64, limit, offset int) ([]domain.Destination, error) {
	return s.destinationRepo.ListByPartner(ctx, partnerID, limit, offset)
}

func (s *catalogService) UpdateDestination(ctx context.Context, id, callerID int64, callerRole domain.Role, patch *domain.DestinationPatch) (*domain.Destination, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireOwnerOrAdmin(ctx, id, callerID, callerRole); err != nil {
		return nil, err
	}

	updated, err := s.destinationRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update destination: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return updated, nil
}

func (s *catalogService) DeleteDestination(ctx context.Context, id, callerID int64, callerRole domain.Role) (bool, error) {
	if err := s.requireOwnerOrAdmin(ctx, id, callerID, callerRole); err != nil {
		return false, err
	}
	return s.destinationRepo.Delete(ctx, id)
}

func (s *catalogService) AddImage(ctx context.Context, destinationID, callerID int64, callerRole domain.Role, url string) (*domain.DestinationImage, error) {
	if url == "" {
		return nil, fmt.Errorf("image url is required")
	}
	if err := s.requireOwnerOrAdmin(ctx, destinationID, callerID, callerRole); err != nil {
		return nil, err
	}
	return s.destinationRepo.AddImage(ctx, destinationID, url)
}

func (s *catalogService) AverageRating(ctx context.Context, destinationID int64) (decimal.Decimal, error) {
	return s.destinationRepo.AverageRating(ctx, destinationID)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.destinationRepo.ListCategories(ctx)
}

func (s *catalogService) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	return s.destinationRepo.CreateCategory(ctx, name, description)
}

func (s *catalogService) ListActivities(ctx context.Context, categoryID int64) ([]domain.Activity, error) {
	return s.destinationRepo.ListActivitiesByCategory(ctx, categoryID)
}

func (s *catalogService) requireOwnerOrAdmin(ctx context.Context, destinationID, callerID int64, callerRole domain.Role) error {
	destination, err := s.destinationRepo.GetByID(ctx, destinationID)
	if err != nil {
		return fmt.Errorf("failed to load destination: %w", err)
	}
	if destination == nil {
		return domain.ErrNotFound
	}
	if destination.PartnerID != callerID && callerRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
