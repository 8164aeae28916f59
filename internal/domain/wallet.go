package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's cash-equivalent balance. The balance never goes
// negative: deductions are all-or-nothing and only the ledger entry points
// (Deduct, Add, and the booking settlement transaction) mutate it.
type Wallet struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
