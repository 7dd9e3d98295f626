package store

import (
	"context"

	"bookreview/internal/entity"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LikePG struct {
	db *pgxpool.Pool
}

func NewLikePG(db *pgxpool.Pool) *LikePG {
	return &LikePG{db: db}
}

// Toggle flips the like state without a read-then-act window: the DELETE and
// the INSERT each decide on the row's existence atomically, and the composite
// primary key is the backstop. When a concurrent toggle wins the insert race
// the conflict collapses into liked=true rather than an error.
func (r *LikePG) Toggle(ctx context.Context, userID, bookID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO likes (user_id, book_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, book_id) DO NOTHING`, userID, bookID)
	if err != nil {
		return false, mapPgError(err)
	}
	return true, nil
}

func (r *LikePG) ListLikedBooks(ctx context.Context, userID string) ([]entity.Book, error) {
	const query = `
	SELECT b.id, b.title, b.author, b.isbn, b.genre, b.description, b.cover_image, b.user_id, b.created_at, b.updated_at
	FROM likes l
	JOIN books b ON b.id = l.book_id
	WHERE l.user_id = $1
	ORDER BY l.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
