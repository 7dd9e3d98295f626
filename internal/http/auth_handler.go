package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"bookreview/internal/auth"
	"bookreview/internal/entity"
	"bookreview/internal/httpx"
	"bookreview/internal/logger"
	"bookreview/internal/usecase"
)

type AuthHandler struct {
	users    usecase.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthHandler(users usecase.UserRepository, secret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

type registerReq struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// @Summary Register new user
// @Description Create a user account and return a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body registerReq true "User registration data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeBadRequest, "Invalid request body", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidation, "Invalid input", details)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	newUser := &entity.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}
	if err := h.users.Create(r.Context(), newUser); err != nil {
		if errors.Is(err, usecase.ErrAlreadyExists) {
			httpx.JSONError(w, http.StatusConflict, httpx.CodeConflict, "Email already exists", nil)
			return
		}
		zlog := logger.Get()
		zlog.Error().Err(err).Msg("create user failed")
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	token, err := auth.GenerateToken(h.secret, newUser.ID, h.tokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]string{
		"message": "User created successfully",
		"token":   token,
	})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// @Summary Login
// @Description Verify credentials and return a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body loginReq true "Login credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeBadRequest, "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidation, "Invalid input", details)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil || !auth.VerifyPassword(user.Password, req.Password) {
		httpx.JSONError(w, http.StatusUnauthorized, httpx.CodeAuthInvalid, "Invalid email or password", nil)
		return
	}

	token, err := auth.GenerateToken(h.secret, user.ID, h.tokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"token": token})
}
