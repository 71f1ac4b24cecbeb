package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peacockstore/peacock-api/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, category model.Category) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
}

type pgProductRepo struct{ pool *pgxpool.Pool }

func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &pgProductRepo{pool: pool}
}

func (r *pgProductRepo) Create(ctx context.Context, product *model.Product) error {
	query := `INSERT INTO products (name, category, description, styling_notes, image_urls, buy_price, rent_price, seller_email)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		product.Name, product.Category, product.Description, product.StylingNotes,
		product.ImageURLs, product.BuyPrice, product.RentPrice, product.SellerEmail,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *pgProductRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT id, name, category, description, COALESCE(styling_notes, ''), image_urls, buy_price, rent_price, COALESCE(seller_email, '')
			  FROM products WHERE id = $1`
	p := &model.Product{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.StylingNotes,
		&p.ImageURLs, &p.BuyPrice, &p.RentPrice, &p.SellerEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *pgProductRepo) List(ctx context.Context, category model.Category) ([]model.Product, error) {
	query := `SELECT id, name, category, description, COALESCE(styling_notes, ''), image_urls, buy_price, rent_price, COALESCE(seller_email, '')
			  FROM products
			  WHERE ($1 = '' OR category = $1)
			  ORDER BY id`
	rows, err := r.pool.Query(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Description, &p.StylingNotes,
			&p.ImageURLs, &p.BuyPrice, &p.RentPrice, &p.SellerEmail,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *pgProductRepo) Update(ctx context.Context, product *model.Product) error {
	query := `UPDATE products SET name=$2, category=$3, description=$4, styling_notes=$5, image_urls=$6, buy_price=$7, rent_price=$8
			  WHERE id=$1`
	ct, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Description,
		product.StylingNotes, product.ImageURLs, product.BuyPrice, product.RentPrice,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgProductRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
