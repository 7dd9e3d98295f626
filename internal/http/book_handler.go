package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"bookreview/internal/entity"
	"bookreview/internal/httpx"
	"bookreview/internal/logger"
	"bookreview/internal/usecase"
)

// CoverUploader pushes a cover image to the external image host and returns
// its hosted URL.
type CoverUploader interface {
	Upload(ctx context.Context, filename string, data io.Reader) (string, error)
}

type BookHandler struct {
	books     usecase.BookRepository
	reviews   usecase.ReviewRepository
	discovery *usecase.Discovery
	covers    CoverUploader // nil disables cover uploads
}

func NewBookHandler(books usecase.BookRepository, reviews usecase.ReviewRepository, discovery *usecase.Discovery, covers CoverUploader) *BookHandler {
	return &BookHandler{
		books:     books,
		reviews:   reviews,
		discovery: discovery,
		covers:    covers,
	}
}

// parseBookPath splits /api/v1/books/{id}[/{action}].
func parseBookPath(path string) (id, action string, ok bool) {
	trimmed := strings.Trim(strings.TrimPrefix(path, "/api/v1"), "/")
	parts := strings.Split(trimmed, "/")
	switch {
	case len(parts) == 2 && parts[0] == "books":
		return parts[1], "", true
	case len(parts) == 3 && parts[0] == "books":
		return parts[1], parts[2], true
	}
	return "", "", false
}

// @Summary List books
// @Description Personalized, paginated book listing with genre and text filters
// @Tags books
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sortField query string false "Sort field: title, author, genre, createdAt"
// @Param sortOrder query string false "asc or desc"
// @Param genres query string false "Comma-separated genres, or 'all'"
// @Param searchQuery query string false "Matches title, author or ISBN"
// @Success 200 {object} map[string]interface{}
// @Router /books [get]
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	var genres []string
	if raw := strings.TrimSpace(q.Get("genres")); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			if g = strings.TrimSpace(g); g != "" {
				genres = append(genres, g)
			}
		}
	}

	filter := usecase.Filter{
		Genres: genres,
		Query:  q.Get("searchQuery"),
	}
	sort := usecase.Sort{
		Field: q.Get("sortField"),
		Order: q.Get("sortOrder"),
	}

	result, err := h.discovery.Discover(r.Context(), httpx.ViewerFrom(r), filter, sort,
		usecase.Page{Number: page, Size: limit})
	if err != nil {
		zlog := logger.Get()
		zlog.Error().Err(err).Msg("discover books failed")
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	books := result.Books
	if books == nil {
		books = []entity.Book{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"books":      books,
		"totalPages": result.TotalPages,
	})
}

// @Summary Get book by id
// @Description Book details with its reviews and reviewer names
// @Tags books
// @Produce json
// @Param id path string true "Book id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, action, ok := parseBookPath(r.URL.Path)
	if !ok || action != "" {
		http.NotFound(w, r)
		return
	}

	book, err := h.books.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, httpx.CodeNotFound, "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	reviews, err := h.reviews.ListByBook(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}
	if reviews == nil {
		reviews = []entity.Review{}
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"book":    book,
		"reviews": reviews,
	})
}

// @Summary List own books
// @Description Books owned by the authenticated viewer, with their reviews
// @Tags books
// @Produce json
// @Security Bearer
// @Success 200 {array} map[string]interface{}
// @Router /books/mine [get]
func (h *BookHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	viewer := httpx.ViewerFrom(r)

	books, err := h.books.ListByOwner(r.Context(), viewer.UserID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	ids := make([]string, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	reviewsByBook, err := h.reviews.ListByBooks(r.Context(), ids)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	type bookWithReviews struct {
		entity.Book
		Reviews []entity.Review `json:"reviews"`
	}
	out := make([]bookWithReviews, 0, len(books))
	for _, b := range books {
		reviews := reviewsByBook[b.ID]
		if reviews == nil {
			reviews = []entity.Review{}
		}
		out = append(out, bookWithReviews{Book: b, Reviews: reviews})
	}

	httpx.JSON(w, http.StatusOK, out)
}

type createBookForm struct {
	Title       string `validate:"required,max=200"`
	Author      string `validate:"required,max=200"`
	ISBN        string `validate:"required,isbn"`
	Genre       string `validate:"required,max=100"`
	Description string `validate:"max=5000"`
}

// @Summary Add a book
// @Description Create a book owned by the viewer; multipart form with optional coverImage file
// @Tags books
// @Accept mpfd
// @Produce json
// @Security Bearer
// @Success 201 {object} entity.Book
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeBadRequest, "Invalid multipart form", nil)
		return
	}

	form := createBookForm{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Author:      strings.TrimSpace(r.FormValue("author")),
		ISBN:        strings.TrimSpace(r.FormValue("isbn")),
		Genre:       strings.TrimSpace(r.FormValue("genre")),
		Description: r.FormValue("desc"),
	}
	if details := ValidateStruct(form); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidation, "Invalid input", details)
		return
	}

	var coverURL string
	if file, header, err := r.FormFile("coverImage"); err == nil {
		defer file.Close()
		if h.covers == nil {
			httpx.JSONError(w, http.StatusBadRequest, httpx.CodeBadRequest, "Cover uploads are not enabled", nil)
			return
		}
		coverURL, err = h.covers.Upload(r.Context(), header.Filename, file)
		if err != nil {
			zlog := logger.Get()
			zlog.Error().Err(err).Msg("cover upload failed")
			httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Cover upload failed", nil)
			return
		}
	}

	book := &entity.Book{
		Title:       form.Title,
		Author:      form.Author,
		ISBN:        form.ISBN,
		Genre:       form.Genre,
		Description: form.Description,
		CoverImage:  coverURL,
		UserID:      httpx.ViewerFrom(r).UserID,
	}
	if err := h.books.Create(r.Context(), book); err != nil {
		zlog := logger.Get()
		zlog.Error().Err(err).Msg("create book failed")
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusCreated, book)
}

// @Summary List genres
// @Description Distinct genres across all books
// @Tags books
// @Produce json
// @Success 200 {array} string
// @Router /genres [get]
func (h *BookHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.books.Genres(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}
	if genres == nil {
		genres = []string{}
	}
	httpx.JSON(w, http.StatusOK, genres)
}
