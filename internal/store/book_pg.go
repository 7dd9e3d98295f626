package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookreview/internal/entity"
	"bookreview/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

const bookColumns = `id, title, author, isbn, genre, description, cover_image, user_id, created_at, updated_at`

// sortColumns whitelists the client-facing sort fields. Anything else falls
// through to store order.
var sortColumns = map[string]string{
	"title":     "title",
	"author":    "author",
	"genre":     "genre",
	"createdAt": "created_at",
}

func (r *BookPG) List(ctx context.Context, p usecase.ListParams) ([]entity.Book, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if genres := p.Filter.GenreSet(); len(genres) > 0 {
		conds = append(conds, fmt.Sprintf("genre = ANY(%s)", arg(genres)))
	}
	if q := strings.TrimSpace(p.Filter.Query); q != "" {
		like := arg("%" + q + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR author ILIKE %s OR isbn ILIKE %s)", like, like, like))
	}
	if len(p.IncludeGenres) > 0 || len(p.IncludeAuthors) > 0 {
		conds = append(conds, fmt.Sprintf("(genre = ANY(%s) OR author = ANY(%s))",
			arg(p.IncludeGenres), arg(p.IncludeAuthors)))
	}
	if len(p.ExcludeIDs) > 0 {
		conds = append(conds, fmt.Sprintf("NOT (id = ANY(%s::uuid[]))", arg(p.ExcludeIDs)))
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + bookColumns + " FROM books")
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	if col, ok := sortColumns[p.Sort.Field]; ok {
		dir := "ASC"
		if strings.EqualFold(p.Sort.Order, "desc") {
			dir = "DESC"
		}
		sb.WriteString(" ORDER BY " + col + " " + dir + ", id ASC")
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
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

func (r *BookPG) GetByID(ctx context.Context, id string) (entity.Book, error) {
	const query = `
	SELECT ` + bookColumns + `
	FROM books
	WHERE id = $1
	LIMIT 1
	`
	var b entity.Book
	if err := scanBook(r.db.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	const query = `
	INSERT INTO books (id, title, author, isbn, genre, description, cover_image, user_id)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		b.Title, b.Author, b.ISBN, b.Genre, b.Description, b.CoverImage, b.UserID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookPG) ListByOwner(ctx context.Context, userID string) ([]entity.Book, error) {
	const query = `
	SELECT ` + bookColumns + `
	FROM books
	WHERE user_id = $1
	ORDER BY created_at DESC, id
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

func (r *BookPG) Genres(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT genre FROM books WHERE genre <> ''`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func scanBook(row pgx.Row, b *entity.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Genre,
		&b.Description, &b.CoverImage, &b.UserID, &b.CreatedAt, &b.UpdatedAt)
}
