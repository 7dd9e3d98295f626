package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func likeRequest(bookID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/books/"+bookID+"/like", nil)
	return req.WithContext(httpx.ContextWithViewer(req.Context(), usecase.IdentifiedViewer(testutil.TestUser.ID)))
}

func TestLikeHandler_Toggle(t *testing.T) {
	t.Run("serial toggles alternate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		likeRepo := mocks.NewMockLikeRepository(ctrl)
		bookRepo := mocks.NewMockBookRepository(ctrl)
		handler := NewLikeHandler(likeRepo, bookRepo)

		bookRepo.EXPECT().
			GetByID(gomock.Any(), testutil.TestBook.ID).
			Return(testutil.TestBook, nil).
			Times(2)
		gomock.InOrder(
			likeRepo.EXPECT().
				Toggle(gomock.Any(), testutil.TestUser.ID, testutil.TestBook.ID).
				Return(true, nil),
			likeRepo.EXPECT().
				Toggle(gomock.Any(), testutil.TestUser.ID, testutil.TestBook.ID).
				Return(false, nil),
		)

		for i, wantLiked := range []bool{true, false} {
			rec := httptest.NewRecorder()
			handler.Toggle(rec, likeRequest(testutil.TestBook.ID))
			require.Equal(t, http.StatusOK, rec.Code, "toggle %d", i)

			var body struct {
				Message string `json:"message"`
				Liked   bool   `json:"liked"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, wantLiked, body.Liked)
			assert.NotEmpty(t, body.Message)
		}
	})

	t.Run("unknown book", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		likeRepo := mocks.NewMockLikeRepository(ctrl)
		bookRepo := mocks.NewMockBookRepository(ctrl)
		handler := NewLikeHandler(likeRepo, bookRepo)

		bookRepo.EXPECT().
			GetByID(gomock.Any(), "missing").
			Return(entity.Book{}, usecase.ErrNotFound)

		rec := httptest.NewRecorder()
		handler.Toggle(rec, likeRequest("missing"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		likeRepo := mocks.NewMockLikeRepository(ctrl)
		bookRepo := mocks.NewMockBookRepository(ctrl)
		handler := NewLikeHandler(likeRepo, bookRepo)

		bookRepo.EXPECT().
			GetByID(gomock.Any(), testutil.TestBook.ID).
			Return(testutil.TestBook, nil)
		likeRepo.EXPECT().
			Toggle(gomock.Any(), testutil.TestUser.ID, testutil.TestBook.ID).
			Return(false, assert.AnError)

		rec := httptest.NewRecorder()
		handler.Toggle(rec, likeRequest(testutil.TestBook.ID))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
