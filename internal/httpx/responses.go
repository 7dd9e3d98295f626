package httpx

import (
	"encoding/json"
	"net/http"
)

// Error codes shared across handlers and middleware.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidation      = "VALIDATION_ERROR"
	CodeAuthMissing     = "AUTH_MISSING"
	CodeAuthInvalid     = "AUTH_INVALID"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	CodeInternal        = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error ErrorResponseBody `json:"error"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func JSONError(w http.ResponseWriter, statusCode int, code, message string, details []ErrorDetail) {
	JSON(w, statusCode, ErrorResponse{
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
