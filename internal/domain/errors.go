package domain

import "errors"

var (
	// ErrInsufficientFunds is returned when a wallet deduction would drive
	// the balance negative. The deduction is all-or-nothing.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")

	// ErrInvalidDateRange is returned when a booking's start date is after
	// its end date.
	ErrInvalidDateRange = errors.New("start date must be on or before end date")

	// ErrInvalidRating is returned for review ratings outside [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidAmount is returned for negative wallet amounts.
	ErrInvalidAmount = errors.New("amount must be non-negative")

	// ErrInvalidPaymentMethod is returned for unknown payment methods.
	ErrInvalidPaymentMethod = errors.New("payment method must be cod, bank_transfer, wallet or online")

	// ErrNotFound is returned when a referenced user, destination, booking
	// or review does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotPartner is returned when a destination operation requires a
	// partner-role owner.
	ErrNotPartner = errors.New("user does not have the partner role")

	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("operation not permitted for this user")

	// ErrEmailExists is returned on duplicate registration.
	ErrEmailExists = errors.New("user with this email already exists")
)
