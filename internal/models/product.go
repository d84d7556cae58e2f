package models

import (
	"io"
	"time"
)

type Product struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Brand         string    `json:"brand" db:"brand"`
	Category      string    `json:"category" db:"category"`
	Price         float64   `json:"price" db:"price"`
	Description   *string   `json:"description" db:"description"`
	ImageFileName string    `json:"image_file_name" db:"image_file_name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// ImageUpload carries a raw image payload submitted with a create or update
// request. Reader is consumed at most once.
type ImageUpload struct {
	OriginalName string
	Reader       io.Reader
	Size         int64
}

// ProductInput is the transient per-request input for create and update.
// A nil Price on update keeps the stored price; a nil Image on update keeps
// the stored asset.
type ProductInput struct {
	Name        string       `json:"name"`
	Brand       string       `json:"brand"`
	Category    string       `json:"category"`
	Price       *float64     `json:"price"`
	Description *string      `json:"description"`
	Image       *ImageUpload `json:"-"`
}
