package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCanceled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "cod"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentWallet       PaymentMethod = "wallet"
	PaymentOnline       PaymentMethod = "online"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentCOD, PaymentBankTransfer, PaymentWallet, PaymentOnline:
		return PaymentMethod(s), true
	default:
		return "", false
	}
}

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

type Booking struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	DestinationID int64           `json:"destination_id"`
	BookingDate   time.Time       `json:"booking_date"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	Status        BookingStatus   `json:"status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (b *Booking) IsOwner(userID int64) bool {
	return b.UserID == userID
}

type BookingCreate struct {
	DestinationID int64            `json:"destination_id"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       time.Time        `json:"end_date"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	TotalPrice    *decimal.Decimal `json:"total_price,omitempty"` // overrides destination price when set
}

func (r *BookingCreate) Validate() error {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return ErrInvalidDateRange
	}
	if r.StartDate.After(r.EndDate) {
		return ErrInvalidDateRange
	}
	if _, ok := ParsePaymentMethod(string(r.PaymentMethod)); !ok {
		return ErrInvalidPaymentMethod
	}
	if r.TotalPrice != nil && r.TotalPrice.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
