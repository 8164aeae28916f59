package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyago/travelbook/internal/domain"
)

type BookingRepository interface {
	// Create persists a booking without touching the wallet (cod,
	// bank_transfer and online routes).
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// CreateWalletSettled runs the settlement transaction: conditional
	// wallet deduction, booking insert with payment_status=paid and the
	// payment notification, all-or-nothing. Returns
	// domain.ErrInsufficientFunds when the balance does not cover the
	// price; in that case nothing is persisted.
	CreateWalletSettled(ctx context.Context, b *domain.Booking, notificationMsg string) (*domain.Booking, *domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int, status *domain.BookingStatus) ([]domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	Cancel(ctx context.Context, id int64) (bool, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingCols = `id, user_id, destination_id, booking_date,
start_date, end_date, status, total_price,
payment_method, payment_status, created_at, updated_at`

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(
		&b.ID, &b.UserID, &b.DestinationID, &b.BookingDate,
		&b.StartDate, &b.EndDate, &b.Status, &b.TotalPrice,
		&b.PaymentMethod, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt,
	)
}

const insertBooking = `INSERT INTO bookings (
	user_id, destination_id, booking_date,
	start_date, end_date, status, total_price,
	payment_method, payment_status
) VALUES ($1,$2,now(),$3,$4,'pending',$5,$6,$7)
RETURNING ` + bookingCols

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var out domain.Booking
	err := scanBooking(r.pool.QueryRow(ctx, insertBooking,
		b.UserID, b.DestinationID,
		b.StartDate, b.EndDate, b.TotalPrice,
		b.PaymentMethod, domain.PaymentUnpaid,
	), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *bookingRepository) CreateWalletSettled(ctx context.Context, b *domain.Booking, notificationMsg string) (*domain.Booking, *domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	// Funds come out first; the booking row only ever exists as paid.
	result, err := tx.Exec(ctx, deductQuery, b.TotalPrice, b.UserID)
	if err != nil {
		return nil, nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, nil, domain.ErrInsufficientFunds
	}

	var out domain.Booking
	err = scanBooking(tx.QueryRow(ctx, insertBooking,
		b.UserID, b.DestinationID,
		b.StartDate, b.EndDate, b.TotalPrice,
		b.PaymentMethod, domain.PaymentPaid,
	), &out)
	if err != nil {
		return nil, nil, err
	}

	var n domain.Notification
	err = tx.QueryRow(ctx,
		`INSERT INTO notifications (user_id, message) VALUES ($1,$2)
		RETURNING id, user_id, message, is_read, created_at`,
		b.UserID, notificationMsg,
	).Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &out, &n, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := scanBooking(r.pool.QueryRow(ctx, q, id), &b)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &b, err
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int, status *domain.BookingStatus) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := `SELECT ` + bookingCols + ` FROM bookings WHERE user_id=$1`
	args := []any{userID}
	if status != nil {
		q += ` AND status=$2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		args = append(args, *status, limit, offset)
	} else {
		q += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `SELECT ` + bookingCols + ` FROM bookings ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	const q = `UPDATE bookings SET status='canceled', updated_at=now() WHERE id=$1 AND status != 'canceled'`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
