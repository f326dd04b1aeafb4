package model

// Category is read-only reference data attached to every product
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
