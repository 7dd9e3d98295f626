package entity

import "time"

// Like marks that a user likes a book. The (UserID, BookID) pair is unique;
// existence of a row is the whole fact.
type Like struct {
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}
