package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyago/travelbook/internal/domain"
)

type RecommendationRepository interface {
	// CreateWithNotification inserts the recommendation, its activity links
	// and the user notification in one transaction.
	CreateWithNotification(ctx context.Context, req *domain.RecommendationCreate, notificationMsg string) (*domain.Recommendation, *domain.Notification, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Recommendation, error)
}

type recommendationRepository struct {
	pool *pgxpool.Pool
}

func NewRecommendationRepository(pool *pgxpool.Pool) RecommendationRepository {
	return &recommendationRepository{pool: pool}
}

func (r *recommendationRepository) CreateWithNotification(ctx context.Context, req *domain.RecommendationCreate, notificationMsg string) (*domain.Recommendation, *domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO recommendations (user_id, destination_id, score)
		VALUES ($1,$2,$3)
		RETURNING id, user_id, destination_id, score, created_at`

	var rec domain.Recommendation
	err = tx.QueryRow(ctx, q, req.UserID, req.DestinationID, req.Score).Scan(
		&rec.ID, &rec.UserID, &rec.DestinationID, &rec.Score, &rec.CreatedAt,
	)
	if err != nil {
		return nil, nil, err
	}

	for _, activityID := range req.ActivityIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO recommendation_activities (recommendation_id, activity_id) VALUES ($1,$2)`,
			rec.ID, activityID,
		); err != nil {
			return nil, nil, err
		}
	}
	rec.ActivityIDs = req.ActivityIDs

	var n domain.Notification
	err = tx.QueryRow(ctx,
		`INSERT INTO notifications (user_id, message) VALUES ($1,$2)
		RETURNING id, user_id, message, is_read, created_at`,
		req.UserID, notificationMsg,
	).Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &rec, &n, nil
}

func (r *recommendationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Recommendation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `SELECT id, user_id, destination_id, score, created_at
		FROM recommendations WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.Recommendation
	for rows.Next() {
		var rec domain.Recommendation
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.DestinationID, &rec.Score, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recs {
		activityRows, err := r.pool.Query(ctx,
			`SELECT activity_id FROM recommendation_activities WHERE recommendation_id=$1`, recs[i].ID)
		if err != nil {
			return nil, err
		}
		ids, err := pgx.CollectRows(activityRows, pgx.RowTo[int64])
		if err != nil {
			return nil, err
		}
		recs[i].ActivityIDs = ids
	}
	return recs, nil
}
