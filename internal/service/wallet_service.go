package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/repository"
	"github.com/voyago/travelbook/pkg/events"
	"github.com/voyago/travelbook/pkg/logger"
)

type WalletService interface {
	Get(ctx context.Context, userID int64) (*domain.Wallet, error)
	// Deduct subtracts amount when the balance covers it. Returns false
	// with no mutation otherwise. A zero amount is a no-op that reports
	// success.
	Deduct(ctx context.Context, userID int64, amount decimal.Decimal) (bool, error)
	// Add credits the wallet (top-up). Not otherwise gated.
	Add(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error)
	FormattedBalance(wallet *domain.Wallet, locale language.Tag) string
}

type walletService struct {
	walletRepo repository.WalletRepository
	eventBus   events.Publisher
}

func NewWalletService(walletRepo repository.WalletRepository, eventBus events.Publisher) WalletService {
	return &walletService{walletRepo: walletRepo, eventBus: eventBus}
}

func (s *walletService) Get(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	if wallet == nil {
		return nil, domain.ErrNotFound
	}
	return wallet, nil
}

func (s *walletService) Deduct(ctx context.Context, userID int64, amount decimal.Decimal) (bool, error) {
	if amount.IsNegative() {
		return false, domain.ErrInvalidAmount
	}
	if amount.IsZero() {
		return true, nil
	}
	return s.walletRepo.Deduct(ctx, userID, amount)
}

func (s *walletService) Add(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error) {
	if amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if amount.IsZero() {
		return s.Get(ctx, userID)
	}

	wallet, err := s.walletRepo.Add(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to add funds: %w", err)
	}
	if wallet == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.eventBus.Publish(ctx, events.WalletTopUp, events.WalletTopUpEvent{
		UserID:   userID,
		Amount:   amount.StringFixed(2),
		Balance:  wallet.Balance.StringFixed(2),
		ToppedAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish top-up event", "error", err, "user_id", userID)
	}
	return wallet, nil
}

func (s *walletService) FormattedBalance(wallet *domain.Wallet, locale language.Tag) string {
	return domain.FormatBalance(wallet.Balance, locale)
}
