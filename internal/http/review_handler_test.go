package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookreview/internal/entity"
	"bookreview/internal/httpx"
	"bookreview/internal/store/mocks"
	"bookreview/internal/testutil"
	"bookreview/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewRequest(bookID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/books/"+bookID+"/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(httpx.ContextWithViewer(req.Context(), usecase.IdentifiedViewer(testutil.TestUser.ID)))
}

func TestReviewHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reviewRepo := mocks.NewMockReviewRepository(ctrl)
		bookRepo := mocks.NewMockBookRepository(ctrl)
		handler := NewReviewHandler(reviewRepo, bookRepo)

		bookRepo.EXPECT().
			GetByID(gomock.Any(), testutil.TestBook.ID).
			Return(testutil.TestBook, nil)
		reviewRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, r *entity.Review) error {
				assert.Equal(t, 4, r.Rating)
				assert.Equal(t, "Loved it", r.Text)
				assert.Equal(t, testutil.TestUser.ID, r.UserID)
				assert.Equal(t, testutil.TestBook.ID, r.BookID)
				r.ID = "new-review-id"
				return nil
			})

		rec := httptest.NewRecorder()
		handler.Create(rec, reviewRequest(testutil.TestBook.ID, `{"rating":4,"text":"Loved it"}`))

		require.Equal(t, http.StatusCreated, rec.Code)
		var created entity.Review
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "new-review-id", created.ID)
	})

	t.Run("book not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reviewRepo := mocks.NewMockReviewRepository(ctrl)
		bookRepo := mocks.NewMockBookRepository(ctrl)
		handler := NewReviewHandler(reviewRepo, bookRepo)

		bookRepo.EXPECT().
			GetByID(gomock.Any(), "missing").
			Return(entity.Book{}, usecase.ErrNotFound)

		rec := httptest.NewRecorder()
		handler.Create(rec, reviewRequest("missing", `{"rating":4,"text":"Loved it"}`))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		handler := NewReviewHandler(mocks.NewMockReviewRepository(ctrl), mocks.NewMockBookRepository(ctrl))

		rec := httptest.NewRecorder()
		handler.Create(rec, reviewRequest(testutil.TestBook.ID, `{not json`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		handler := NewReviewHandler(mocks.NewMockReviewRepository(ctrl), mocks.NewMockBookRepository(ctrl))

		rec := httptest.NewRecorder()
		handler.Create(rec, reviewRequest(testutil.TestBook.ID, `{"text":"no rating"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
