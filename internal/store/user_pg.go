package store

import (
	"context"
	"errors"

	"bookreview/internal/entity"
	"bookreview/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserPG struct {
	db *pgxpool.Pool
}

func NewUserPG(db *pgxpool.Pool) *UserPG {
	return &UserPG{db: db}
}

func (r *UserPG) Create(ctx context.Context, u *entity.User) error {
	const query = `
	INSERT INTO users (id, name, email, password)
	VALUES (gen_random_uuid(), $1, $2, $3)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, u.Name, u.Email, u.Password).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *UserPG) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	const query = `
	SELECT id, name, email, password, created_at, updated_at
	FROM users
	WHERE email = $1
	LIMIT 1
	`
	var u entity.User
	err := r.db.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, err
	}
	return u, nil
}

func (r *UserPG) GetByID(ctx context.Context, id string) (entity.User, error) {
	const query = `
	SELECT id, name, email, password, created_at, updated_at
	FROM users
	WHERE id = $1
	LIMIT 1
	`
	var u entity.User
	err := r.db.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, err
	}
	return u, nil
}
