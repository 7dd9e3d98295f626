package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookreview/internal/entity"
	"bookreview/internal/httpx"
	"bookreview/internal/logger"
	"bookreview/internal/usecase"
)

type ReviewHandler struct {
	reviews usecase.ReviewRepository
	books   usecase.BookRepository
}

func NewReviewHandler(reviews usecase.ReviewRepository, books usecase.BookRepository) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, books: books}
}

type createReviewReq struct {
	Rating int    `json:"rating" validate:"required"`
	Text   string `json:"text" validate:"required,max=5000"`
}

// @Summary Add a review
// @Description Submit a review for a book as the authenticated viewer
// @Tags reviews
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Book id"
// @Param review body createReviewReq true "Review"
// @Success 201 {object} entity.Review
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id}/reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	bookID, action, ok := parseBookPath(r.URL.Path)
	if !ok || action != "reviews" {
		http.NotFound(w, r)
		return
	}

	var req createReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeBadRequest, "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidation, "Invalid input", details)
		return
	}

	if _, err := h.books.GetByID(r.Context(), bookID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, httpx.CodeNotFound, "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	review := &entity.Review{
		Rating: req.Rating,
		Text:   req.Text,
		UserID: httpx.ViewerFrom(r).UserID,
		BookID: bookID,
	}
	if err := h.reviews.Create(r.Context(), review); err != nil {
		zlog := logger.Get()
		zlog.Error().Err(err).Msg("create review failed")
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusCreated, review)
}
