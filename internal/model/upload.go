package model

import "time"

type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// ImageUpload is a presigned PUT target. Clients upload to UploadURL and
// then send ImageURL as the product's image_url.
type ImageUpload struct {
	UploadURL string    `json:"upload_url"`
	ImageURL  string    `json:"image_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}
