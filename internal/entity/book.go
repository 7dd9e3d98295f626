package entity

import "time"

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	ISBN        string    `json:"isbn"`
	Genre       string    `json:"genre"`
	Description string    `json:"desc"`
	CoverImage  string    `json:"coverImage"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
