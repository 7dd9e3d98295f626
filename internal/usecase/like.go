package usecase

import (
	"context"

	"bookreview/internal/entity"
)

type LikeRepository interface {
	// Toggle flips the like state for (userID, bookID) atomically against the
	// pair's uniqueness constraint and reports the resulting state. A toggle
	// that loses a concurrent insert race still reports liked=true: the pair
	// exists afterwards either way.
	Toggle(ctx context.Context, userID, bookID string) (liked bool, err error)
	// ListLikedBooks returns the books the user currently likes.
	ListLikedBooks(ctx context.Context, userID string) ([]entity.Book, error)
}
