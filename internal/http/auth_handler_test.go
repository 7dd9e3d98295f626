package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookreview/internal/auth"
	"bookreview/internal/entity"
	"bookreview/internal/store/mocks"
	"bookreview/internal/testutil"
	"bookreview/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthHandlerForTest(t *testing.T) (*AuthHandler, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	userRepo := mocks.NewMockUserRepository(ctrl)
	return NewAuthHandler(userRepo, testSecret, time.Hour), userRepo
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		handler, userRepo := newAuthHandlerForTest(t)

		userRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *entity.User) error {
				assert.Equal(t, "New Reader", u.Name)
				assert.Equal(t, "new@example.com", u.Email)
				assert.NotEqual(t, "secretpw", u.Password, "password must be stored hashed")
				u.ID = testutil.TestUser.ID
				return nil
			})

		rec := httptest.NewRecorder()
		handler.Register(rec, postJSON("/api/v1/auth/register",
			`{"name":"New Reader","email":"new@example.com","password":"secretpw"}`))

		require.Equal(t, http.StatusCreated, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		claims, err := auth.ParseToken(testSecret, body["token"])
		require.NoError(t, err)
		assert.Equal(t, testutil.TestUser.ID, claims.Sub)
	})

	t.Run("duplicate email", func(t *testing.T) {
		handler, userRepo := newAuthHandlerForTest(t)
		userRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(usecase.ErrAlreadyExists)

		rec := httptest.NewRecorder()
		handler.Register(rec, postJSON("/api/v1/auth/register",
			`{"name":"New Reader","email":"taken@example.com","password":"secretpw"}`))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		handler, _ := newAuthHandlerForTest(t)

		rec := httptest.NewRecorder()
		handler.Register(rec, postJSON("/api/v1/auth/register",
			`{"name":"","email":"not-an-email","password":"x"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	hashed, err := auth.HashPassword("correct-password")
	require.NoError(t, err)
	storedUser := testutil.TestUser
	storedUser.Password = hashed

	t.Run("success", func(t *testing.T) {
		handler, userRepo := newAuthHandlerForTest(t)
		userRepo.EXPECT().
			GetByEmail(gomock.Any(), storedUser.Email).
			Return(storedUser, nil)

		rec := httptest.NewRecorder()
		handler.Login(rec, postJSON("/api/v1/auth/login",
			`{"email":"`+storedUser.Email+`","password":"correct-password"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		claims, err := auth.ParseToken(testSecret, body["token"])
		require.NoError(t, err)
		assert.Equal(t, storedUser.ID, claims.Sub)
	})

	t.Run("wrong password", func(t *testing.T) {
		handler, userRepo := newAuthHandlerForTest(t)
		userRepo.EXPECT().
			GetByEmail(gomock.Any(), storedUser.Email).
			Return(storedUser, nil)

		rec := httptest.NewRecorder()
		handler.Login(rec, postJSON("/api/v1/auth/login",
			`{"email":"`+storedUser.Email+`","password":"wrong"}`))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		handler, userRepo := newAuthHandlerForTest(t)
		userRepo.EXPECT().
			GetByEmail(gomock.Any(), "nobody@example.com").
			Return(entity.User{}, usecase.ErrNotFound)

		rec := httptest.NewRecorder()
		handler.Login(rec, postJSON("/api/v1/auth/login",
			`{"email":"nobody@example.com","password":"whatever"}`))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
