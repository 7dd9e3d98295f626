package usecase

import (
	"context"

	"bookreview/internal/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	// ListByBook returns a book's reviews with reviewer names filled in.
	ListByBook(ctx context.Context, bookID string) ([]entity.Review, error)
	// ListByBooks returns reviews for a set of books keyed by book id,
	// used when listing an owner's books together with their reviews.
	ListByBooks(ctx context.Context, bookIDs []string) (map[string][]entity.Review, error)
}
