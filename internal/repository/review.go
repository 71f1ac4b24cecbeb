package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peacockstore/peacock-api/internal/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	List(ctx context.Context, productID int64) ([]model.Review, error)
}

type pgReviewRepo struct{ pool *pgxpool.Pool }

func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &pgReviewRepo{pool: pool}
}

func (r *pgReviewRepo) Create(ctx context.Context, review *model.Review) error {
	query := `INSERT INTO reviews (product_id, author, location, text, rating)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		review.ProductID, review.Author, review.Location, review.Text, review.Rating,
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// List returns every review, or only those for one product when
// productID is non-zero.
func (r *pgReviewRepo) List(ctx context.Context, productID int64) ([]model.Review, error) {
	query := `SELECT id, product_id, COALESCE(author, ''), COALESCE(location, ''), COALESCE(text, ''), rating
			  FROM reviews
			  WHERE ($1 = 0 OR product_id = $1)
			  ORDER BY id`
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.Author, &rev.Location, &rev.Text, &rev.Rating); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
