package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/service"
	"github.com/voyago/travelbook/pkg/events"
)

func newWalletFixture(balance string) (*mockWalletRepo, *mockEventBus, service.WalletService) {
	wallets := newMockWalletRepo()
	wallets.balances[1] = decimal.RequireFromString(balance)
	bus := &mockEventBus{}
	return wallets, bus, service.NewWalletService(wallets, bus)
}

func TestWalletDeduct(t *testing.T) {
	tests := []struct {
		name        string
		balance     string
		amount      string
		wantOK      bool
		wantErr     error
		wantBalance string
	}{
		{name: "covered", balance: "100.00", amount: "40.00", wantOK: true, wantBalance: "60.00"},
		{name: "exact", balance: "100.00", amount: "100.00", wantOK: true, wantBalance: "0.00"},
		{name: "short by a cent", balance: "99.99", amount: "100.00", wantOK: false, wantBalance: "99.99"},
		{name: "zero is a no-op", balance: "100.00", amount: "0", wantOK: true, wantBalance: "100.00"},
		{name: "negative rejected", balance: "100.00", amount: "-5.00", wantErr: domain.ErrInvalidAmount, wantBalance: "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wallets, _, svc := newWalletFixture(tt.balance)

			ok, err := svc.Deduct(context.Background(), 1, decimal.RequireFromString(tt.amount))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Deduct: %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got := wallets.balances[1]; !got.Equal(decimal.RequireFromString(tt.wantBalance)) {
				t.Errorf("balance = %s, want %s", got, tt.wantBalance)
			}
		})
	}
}

func TestWalletAdd(t *testing.T) {
	wallets, bus, svc := newWalletFixture("10.00")

	wallet, err := svc.Add(context.Background(), 1, decimal.RequireFromString("25.50"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !wallet.Balance.Equal(decimal.RequireFromString("35.50")) {
		t.Errorf("balance = %s, want 35.50", wallet.Balance)
	}
	if bus.count(events.WalletTopUp) != 1 {
		t.Errorf("wallet.topup published %d times, want 1", bus.count(events.WalletTopUp))
	}

	if _, err := svc.Add(context.Background(), 1, decimal.RequireFromString("-1")); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("negative top-up err = %v, want ErrInvalidAmount", err)
	}
	if got := wallets.balances[1]; !got.Equal(decimal.RequireFromString("35.50")) {
		t.Errorf("balance after rejected top-up = %s, want 35.50", got)
	}
}

func TestWalletAdd_ZeroReturnsCurrent(t *testing.T) {
	_, bus, svc := newWalletFixture("42.00")

	wallet, err := svc.Add(context.Background(), 1, decimal.Zero)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !wallet.Balance.Equal(decimal.RequireFromString("42.00")) {
		t.Errorf("balance = %s, want 42.00", wallet.Balance)
	}
	if len(bus.published) != 0 {
		t.Error("zero top-up should not publish")
	}
}

func TestWalletGet_Unknown(t *testing.T) {
	_, _, svc := newWalletFixture("1.00")

	if _, err := svc.Get(context.Background(), 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFormattedBalance(t *testing.T) {
	_, _, svc := newWalletFixture("1234.50")
	wallet := &domain.Wallet{Balance: decimal.RequireFromString("1234.50")}

	got := svc.FormattedBalance(wallet, language.AmericanEnglish)
	if got == "" {
		t.Fatal("formatted balance is empty")
	}
	// en-US groups with commas and uses a decimal point.
	if !strings.Contains(got, "1,234.50") {
		t.Errorf("en-US balance = %q, want comma grouping and decimal point", got)
	}

	// The locale is per call, not process-wide: German output uses different
	// separators and must not match the en-US rendering.
	de := svc.FormattedBalance(wallet, language.German)
	if de == "" || de == got {
		t.Errorf("de balance = %q, want a rendering distinct from en-US %q", de, got)
	}
}
