package entity

import "time"

type Review struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	UserID    string    `json:"userId"`
	BookID    string    `json:"bookId"`
	// Reviewer is the display name of the submitting user, filled when
	// reviews are read joined with their authors.
	Reviewer  string    `json:"reviewer,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
