package store

import (
	"context"

	"bookreview/internal/entity"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewPG struct {
	db *pgxpool.Pool
}

func NewReviewPG(db *pgxpool.Pool) *ReviewPG {
	return &ReviewPG{db: db}
}

func (r *ReviewPG) Create(ctx context.Context, review *entity.Review) error {
	const query = `
	INSERT INTO reviews (id, rating, text, user_id, book_id)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		review.Rating, review.Text, review.UserID, review.BookID,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *ReviewPG) ListByBook(ctx context.Context, bookID string) ([]entity.Review, error) {
	const query = `
	SELECT r.id, r.rating, r.text, r.user_id, r.book_id, u.name, r.created_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	WHERE r.book_id = $1
	ORDER BY r.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []entity.Review
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.Rating, &rv.Text, &rv.UserID, &rv.BookID, &rv.Reviewer, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewPG) ListByBooks(ctx context.Context, bookIDs []string) (map[string][]entity.Review, error) {
	if len(bookIDs) == 0 {
		return map[string][]entity.Review{}, nil
	}
	const query = `
	SELECT r.id, r.rating, r.text, r.user_id, r.book_id, u.name, r.created_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	WHERE r.book_id = ANY($1::uuid[])
	ORDER BY r.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, bookIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byBook := make(map[string][]entity.Review, len(bookIDs))
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.Rating, &rv.Text, &rv.UserID, &rv.BookID, &rv.Reviewer, &rv.CreatedAt); err != nil {
			return nil, err
		}
		byBook[rv.BookID] = append(byBook[rv.BookID], rv)
	}
	return byBook, rows.Err()
}
