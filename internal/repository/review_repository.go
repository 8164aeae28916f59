package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyago/travelbook/internal/domain"
)

type ReviewRepository interface {
	// CreateWithNotification inserts the review and the owner notification
	// in one transaction, so the review only ever exists alongside exactly
	// one notification to the destination's partner.
	CreateWithNotification(ctx context.Context, review *domain.Review, ownerID int64, notificationMsg string) (*domain.Review, *domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	// Update edits rating/content only; created_at stays put and no
	// notification is written.
	Update(ctx context.Context, id int64, patch *domain.ReviewPatch) (*domain.Review, error)
	ListByDestination(ctx context.Context, destinationID int64, limit, offset int) ([]domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

const reviewCols = `id, user_id, destination_id, rating, content, created_at, updated_at`

func scanReview(row pgx.Row, rv *domain.Review) error {
	return row.Scan(&rv.ID, &rv.UserID, &rv.DestinationID, &rv.Rating, &rv.Content, &rv.CreatedAt, &rv.UpdatedAt)
}

func (r *reviewRepository) CreateWithNotification(ctx context.Context, review *domain.Review, ownerID int64, notificationMsg string) (*domain.Review, *domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO reviews (user_id, destination_id, rating, content)
		VALUES ($1,$2,$3,$4)
		RETURNING ` + reviewCols

	var out domain.Review
	if err := scanReview(tx.QueryRow(ctx, q,
		review.UserID, review.DestinationID, review.Rating, review.Content,
	), &out); err != nil {
		return nil, nil, err
	}

	var n domain.Notification
	err = tx.QueryRow(ctx,
		`INSERT INTO notifications (user_id, message) VALUES ($1,$2)
		RETURNING id, user_id, message, is_read, created_at`,
		ownerID, notificationMsg,
	).Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &out, &n, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	const q = `SELECT ` + reviewCols + ` FROM reviews WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var rv domain.Review
	err := scanReview(r.pool.QueryRow(ctx, q, id), &rv)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &rv, err
}

func (r *reviewRepository) Update(ctx context.Context, id int64, patch *domain.ReviewPatch) (*domain.Review, error) {
	const q = `UPDATE reviews
		SET
			rating  = COALESCE($2, rating),
			content = COALESCE($3, content),
			updated_at = now()
		WHERE id=$1
		RETURNING ` + reviewCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var rv domain.Review
	err := scanReview(r.pool.QueryRow(ctx, q, id, patch.Rating, patch.Content), &rv)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &rv, err
}

func (r *reviewRepository) ListByDestination(ctx context.Context, destinationID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `SELECT ` + reviewCols + ` FROM reviews WHERE destination_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, destinationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
