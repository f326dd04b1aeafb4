package model

import (
	"encoding/json"
	"time"
)

// MaxPrice is the largest value the NUMERIC(10,2) price column holds
const MaxPrice = 99999999.99

// Product is a book listed for sale (or donation when Price is zero)
type Product struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"` // Pointer for optional field
	ImageURL    *string   `json:"image_url"`   // Pointer for optional field
	CategoryID  int       `json:"category_id"`
	UserID      int       `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined from users and categories
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"` // only on the single-product view
	Category string  `json:"category"`
}

// ProductRequest is the body of both create and update; update replaces all fields.
// Price and CategoryID are json.Number because form-driven clients send them
// either as numbers or as numeric strings ("150", "1").
type ProductRequest struct {
	Title       string      `json:"title"`
	Price       json.Number `json:"price"`
	Description *string     `json:"description"`
	ImageURL    *string     `json:"image_url"`
	CategoryID  json.Number `json:"category_id"`
}

// ProductInput is a validated ProductRequest, ready for the store
type ProductInput struct {
	Title       string
	Price       float64
	Description *string
	ImageURL    *string
	CategoryID  int
}
