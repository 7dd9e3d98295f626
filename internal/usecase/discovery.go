package usecase

import (
	"context"
	"math/rand"

	"bookreview/internal/entity"
)

// Discovery produces the personalized, paginated book listing.
//
// For an identified viewer the listing is split in two: books sharing a genre
// or an author with something the viewer has liked come first (sorted as
// requested), then the rest of the matching books in a fresh random order.
// Anonymous viewers get the whole matching set shuffled. The shuffle is
// re-drawn on every request, so page N+1 is not guaranteed to be consistent
// with page N.
type Discovery struct {
	books BookRepository
	likes LikeRepository

	// shuffle has the contract of rand.Shuffle; replaced in tests.
	shuffle func(n int, swap func(i, j int))
}

func NewDiscovery(books BookRepository, likes LikeRepository) *Discovery {
	return &Discovery{
		books:   books,
		likes:   likes,
		shuffle: rand.Shuffle,
	}
}

type DiscoverResult struct {
	Books      []entity.Book
	TotalPages int
}

func (d *Discovery) Discover(ctx context.Context, viewer Viewer, filter Filter, sort Sort, page Page) (DiscoverResult, error) {
	page = page.Normalize()

	var recommended []entity.Book
	var excludeIDs []string

	if viewer.Identified() {
		liked, err := d.likes.ListLikedBooks(ctx, viewer.UserID)
		if err != nil {
			return DiscoverResult{}, err
		}
		if len(liked) > 0 {
			genres, authors := likedTraits(liked)
			recommended, err = d.books.List(ctx, ListParams{
				Filter:         filter,
				Sort:           sort,
				IncludeGenres:  genres,
				IncludeAuthors: authors,
			})
			if err != nil {
				return DiscoverResult{}, err
			}
			excludeIDs = bookIDs(recommended)
		}
	}

	remainder, err := d.books.List(ctx, ListParams{
		Filter:     filter,
		Sort:       sort,
		ExcludeIDs: excludeIDs,
	})
	if err != nil {
		return DiscoverResult{}, err
	}
	d.shuffle(len(remainder), func(i, j int) {
		remainder[i], remainder[j] = remainder[j], remainder[i]
	})

	all := make([]entity.Book, 0, len(recommended)+len(remainder))
	all = append(all, recommended...)
	all = append(all, remainder...)

	total := len(all)
	totalPages := (total + page.Size - 1) / page.Size

	start := (page.Number - 1) * page.Size
	if start > total {
		start = total
	}
	end := start + page.Size
	if end > total {
		end = total
	}

	return DiscoverResult{
		Books:      all[start:end],
		TotalPages: totalPages,
	}, nil
}

// likedTraits collects the distinct genres and authors appearing among the
// viewer's liked books, preserving first-seen order.
func likedTraits(liked []entity.Book) (genres, authors []string) {
	seenGenre := make(map[string]bool, len(liked))
	seenAuthor := make(map[string]bool, len(liked))
	for _, b := range liked {
		if b.Genre != "" && !seenGenre[b.Genre] {
			seenGenre[b.Genre] = true
			genres = append(genres, b.Genre)
		}
		if b.Author != "" && !seenAuthor[b.Author] {
			seenAuthor[b.Author] = true
			authors = append(authors, b.Author)
		}
	}
	return genres, authors
}

func bookIDs(books []entity.Book) []string {
	ids := make([]string, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	return ids
}
