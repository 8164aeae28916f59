package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/voyago/travelbook/internal/domain"
)

type WalletRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error)
	// Deduct atomically subtracts amount when the balance covers it.
	// Returns false with no mutation otherwise.
	Deduct(ctx context.Context, userID int64, amount decimal.Decimal) (bool, error)
	Add(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error)
}

type walletRepository struct {
	pool *pgxpool.Pool
}

func NewWalletRepository(pool *pgxpool.Pool) WalletRepository {
	return &walletRepository{pool: pool}
}

const walletCols = `id, user_id, balance, created_at, updated_at`

func (r *walletRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	const q = `SELECT ` + walletCols + ` FROM wallets WHERE user_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var w domain.Wallet
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&w.ID, &w.UserID, &w.Balance, &w.CreatedAt, &w.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &w, err
}

// The conditional WHERE clause is the whole concurrency story: the row lock
// taken by UPDATE serializes concurrent deductions against one wallet, and
// the balance check rides inside the same statement, so two simultaneous
// bookings cannot both spend the same funds.
const deductQuery = `UPDATE wallets
	SET balance = balance - $1, updated_at = now()
	WHERE user_id = $2 AND balance >= $1`

func (r *walletRepository) Deduct(ctx context.Context, userID int64, amount decimal.Decimal) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, deductQuery, amount, userID)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *walletRepository) Add(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error) {
	const q = `UPDATE wallets
		SET balance = balance + $1, updated_at = now()
		WHERE user_id = $2
		RETURNING ` + walletCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var w domain.Wallet
	err := r.pool.QueryRow(ctx, q, amount, userID).Scan(
		&w.ID, &w.UserID, &w.Balance, &w.CreatedAt, &w.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &w, err
}
