package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peacockstore/peacock-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmailAndType(ctx context.Context, email string, userType model.UserType) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type pgUserRepo struct{ pool *pgxpool.Pool }

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgUserRepo{pool: pool}
}

func (r *pgUserRepo) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (name, email, password, phone_number, user_type)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.Password, user.PhoneNumber, user.UserType,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *pgUserRepo) GetByEmailAndType(ctx context.Context, email string, userType model.UserType) (*model.User, error) {
	query := `SELECT id, name, email, password, COALESCE(phone_number, ''), user_type
			  FROM users WHERE email = $1 AND user_type = $2`
	user := &model.User{}
	err := r.pool.QueryRow(ctx, query, email, userType).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.PhoneNumber, &user.UserType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (r *pgUserRepo) Update(ctx context.Context, user *model.User) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $3, phone_number = $4, password = $5 WHERE email = $1 AND user_type = $2`,
		user.Email, user.UserType, user.Name, user.PhoneNumber, user.Password,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
