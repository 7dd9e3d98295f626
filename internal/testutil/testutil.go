package testutil

import (
	"time"

	"bookreview/internal/auth"
	"bookreview/internal/entity"

	"github.com/golang-jwt/jwt/v5"
)

// TestUser is a fixture user for handler tests.
var TestUser = entity.User{
	ID:        "7b61a3a5-9b3f-4c57-9a55-27d13c2f01aa",
	Name:      "Test Reader",
	Email:     "reader@example.com",
	Password:  "hashedpassword",
	CreatedAt: time.Now(),
	UpdatedAt: time.Now(),
}

// TestBook is a fixture book for handler tests.
var TestBook = entity.Book{
	ID:          "f2a7c7be-4017-4a2e-a1e2-6f4a3f9f55cc",
	Title:       "Test Book Title",
	Author:      "Test Author",
	ISBN:        "9780123456786",
	Genre:       "Fiction",
	Description: "A test book description",
	UserID:      TestUser.ID,
	CreatedAt:   time.Now(),
	UpdatedAt:   time.Now(),
}

// GenerateTestToken returns a valid signed token for userID.
func GenerateTestToken(secret, userID string) string {
	token, _ := auth.GenerateToken(secret, userID, time.Hour)
	return token
}

// GenerateExpiredToken returns a token whose expiry is in the past.
func GenerateExpiredToken(secret, userID string) string {
	c := auth.Claims{
		Sub: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, _ := t.SignedString([]byte(secret))
	return signed
}
