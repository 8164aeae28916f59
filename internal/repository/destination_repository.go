package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/voyago/travelbook/internal/domain"
)

type DestinationRepository interface {
	Create(ctx context.Context, partnerID int64, req *domain.DestinationCreate) (*domain.Destination, error)
	GetByID(ctx context.Context, id int64) (*domain.Destination, error)
	GetDetail(ctx context.Context, id int64) (*domain.DestinationDetail, error)
	List(ctx context.Context, limit, offset int) ([]domain.Destination, error)
	ListByPartner(ctx context.Context, partnerID int64, limit, offset int) ([]domain.Destination, error)
	Update(ctx context.Context, id int64, patch *domain.DestinationPatch) (*domain.Destination, error)
	// Delete removes the destination; images and reviews go with it via
	// ON DELETE CASCADE.
	Delete(ctx context.Context, id int64) (bool, error)
	AddImage(ctx context.Context, destinationID int64, url string) (*domain.DestinationImage, error)
	// AverageRating computes AVG(rating) over the destination's reviews,
	// 0 when there are none.
	AverageRating(ctx context.Context, destinationID int64) (decimal.Decimal, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	ListActivitiesByCategory(ctx context.Context, categoryID int64) ([]domain.Activity, error)
}

type destinationRepository struct {
	pool *pgxpool.Pool
}

func NewDestinationRepository(pool *pgxpool.Pool) DestinationRepository {
	return &destinationRepository{pool: pool}
}

const destinationCols = `id, name, description, location, price, partner_id, created_at`

func scanDestination(row pgx.Row, d *domain.Destination) error {
	return row.Scan(&d.ID, &d.Name, &d.Description, &d.Location, &d.Price, &d.PartnerID, &d.CreatedAt)
}

func (r *destinationRepository) Create(ctx context.Context, partnerID int64, req *domain.DestinationCreate) (*domain.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO destinations (name, description, location, price, partner_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING ` + destinationCols

	var d domain.Destination
	if err := scanDestination(tx.QueryRow(ctx, q,
		req.Name, req.Description, req.Location, req.Price, partnerID,
	), &d); err != nil {
		return nil, err
	}

	for _, categoryID := range req.CategoryIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO destination_categories (destination_id, category_id) VALUES ($1,$2)`,
			d.ID, categoryID,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *destinationRepository) GetByID(ctx context.Context, id int64) (*domain.Destination, error) {
	const q = `SELECT ` + destinationCols + ` FROM destinations WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var d domain.Destination
	err := scanDestination(r.pool.QueryRow(ctx, q, id), &d)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &d, err
}

func (r *destinationRepository) GetDetail(ctx context.Context, id int64) (*domain.DestinationDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var detail domain.DestinationDetail
	err := scanDestination(r.pool.QueryRow(ctx,
		`SELECT `+destinationCols+` FROM destinations WHERE id=$1`, id,
	), &detail.Destination)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE destination_id=$1`, id,
	).Scan(&detail.AverageRating, &detail.ReviewCount)
	if err != nil {
		return nil, err
	}

	imgRows, err := r.pool.Query(ctx,
		`SELECT id, destination_id, url, created_at FROM destination_images
		WHERE destination_id=$1 ORDER BY created_at`, id)
	if err != nil {
		return nil, err
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var img domain.DestinationImage
		if err := imgRows.Scan(&img.ID, &img.DestinationID, &img.URL, &img.CreatedAt); err != nil {
			return nil, err
		}
		detail.Images = append(detail.Images, img)
	}
	if err := imgRows.Err(); err != nil {
		return nil, err
	}

	catRows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name, COALESCE(c.description, '') FROM categories c
		JOIN destination_categories dc ON dc.category_id = c.id
		WHERE dc.destination_id=$1 ORDER BY c.name`, id)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()
	for catRows.Next() {
		var c domain.Category
		if err := catRows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		detail.Categories = append(detail.Categories, c)
	}
	return &detail, catRows.Err()
}

func (r *destinationRepository) List(ctx context.Context, limit, offset int) ([]domain.Destination, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `SELECT ` + destinationCols + ` FROM destinations ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var destinations []domain.Destination
	for rows.Next() {
		var d domain.Destination
		if err := scanDestination(rows, &d); err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

func (r *destinationRepository) ListByPartner(ctx context.Context, partnerID int64, limit, offset int) ([]domain.Destination, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `SELECT ` + destinationCols + ` FROM destinations WHERE partner_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var destinations []domain.Destination
	for rows.Next() {
		var d domain.Destination
		if err := scanDestination(rows, &d); err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

func (r *destinationRepository) Update(ctx context.Context, id int64, patch *domain.DestinationPatch) (*domain.Destination, error) {
	const q = `UPDATE destinations
		SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			location    = COALESCE($4, location),
			price       = COALESCE($5, price)
		WHERE id=$1
		RETURNING ` + destinationCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var d domain.Destination
	err := scanDestination(r.pool.QueryRow(ctx, q,
		id, patch.Name, patch.Description, patch.Location, patch.Price,
	), &d)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &d, err
}

func (r *destinationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM destinations WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *destinationRepository) AddImage(ctx context.Context, destinationID int64, url string) (*domain.DestinationImage, error) {
	const q = `INSERT INTO destination_images (destination_id, url) VALUES ($1,$2)
		RETURNING id, destination_id, url, created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var img domain.DestinationImage
	err := r.pool.QueryRow(ctx, q, destinationID, url).Scan(
		&img.ID, &img.DestinationID, &img.URL, &img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *destinationRepository) AverageRating(ctx context.Context, destinationID int64) (decimal.Decimal, error) {
	const q = `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE destination_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var avg decimal.Decimal
	err := r.pool.QueryRow(ctx, q, destinationID).Scan(&avg)
	return avg, err
}

func (r *destinationRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const q = `SELECT id, name, COALESCE(description, '') FROM categories ORDER BY name`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *destinationRepository) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	const q = `INSERT INTO categories (name, description) VALUES ($1,$2)
		RETURNING id, name, COALESCE(description, '')`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var c domain.Category
	err := r.pool.QueryRow(ctx, q, name, description).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *destinationRepository) ListActivitiesByCategory(ctx context.Context, categoryID int64) ([]domain.Activity, error) {
	const q = `SELECT id, name, category_id, description, rating FROM activities
		WHERE category_id=$1 ORDER BY name`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.CategoryID, &a.Description, &a.Rating); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
