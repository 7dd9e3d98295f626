package usecase

import (
	"context"

	"bookreview/internal/entity"
)

// Filter is the base predicate for book listing: an optional genre set and a
// free-text query matched against title, author and ISBN.
type Filter struct {
	Genres []string
	Query  string
}

// GenreSet returns the effective genre restriction. The client sends the
// sentinel "all" for "no restriction"; an empty set means the same.
func (f Filter) GenreSet() []string {
	for _, g := range f.Genres {
		if g == "all" {
			return nil
		}
	}
	return f.Genres
}

type Sort struct {
	Field string // title, author, genre, createdAt; anything else = store order
	Order string // "asc" or "desc"
}

type Page struct {
	Number int
	Size   int
}

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// Normalize replaces missing or non-positive values with the defaults.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = DefaultPageNumber
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	return p
}

// ListParams describes one book query: the base predicate plus the
// personalization clauses the discovery engine layers on top of it.
type ListParams struct {
	Filter Filter
	Sort   Sort

	// IncludeGenres/IncludeAuthors restrict to books sharing a genre OR an
	// author with the viewer's liked books. Both empty = no restriction.
	IncludeGenres  []string
	IncludeAuthors []string

	// ExcludeIDs removes books already emitted as recommended.
	ExcludeIDs []string
}

type BookRepository interface {
	List(ctx context.Context, p ListParams) ([]entity.Book, error)
	GetByID(ctx context.Context, id string) (entity.Book, error)
	Create(ctx context.Context, b *entity.Book) error
	ListByOwner(ctx context.Context, userID string) ([]entity.Book, error)
	Genres(ctx context.Context) ([]string, error)
}
