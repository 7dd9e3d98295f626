package http

import (
	"errors"
	"net/http"

	"bookreview/internal/httpx"
	"bookreview/internal/logger"
	"bookreview/internal/usecase"
)

type LikeHandler struct {
	likes usecase.LikeRepository
	books usecase.BookRepository
}

func NewLikeHandler(likes usecase.LikeRepository, books usecase.BookRepository) *LikeHandler {
	return &LikeHandler{likes: likes, books: books}
}

// @Summary Toggle like
// @Description Like the book if not yet liked, otherwise remove the like
// @Tags likes
// @Produce json
// @Security Bearer
// @Param id path string true "Book id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id}/like [post]
func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	bookID, action, ok := parseBookPath(r.URL.Path)
	if !ok || action != "like" {
		http.NotFound(w, r)
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

	liked, err := h.likes.Toggle(r.Context(), httpx.ViewerFrom(r).UserID, bookID)
	if err != nil {
		zlog := logger.Get()
		zlog.Error().Err(err).Msg("toggle like failed")
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	message := "Book liked"
	if !liked {
		message = "Book unliked"
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": message,
		"liked":   liked,
	})
}
