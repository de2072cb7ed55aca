package dto

import "io"

// ProductInput serves both create and update. On update nil fields are left unchanged.
type ProductInput struct {
	ID           string
	Name         *string
	CategoryID   *string
	BasePrice    *float64
	Description  *string
	IsActive     *bool
	DatasheetURL *string
	ProductURL   *string
	Image        *ImageUpload
}

type ImageUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}
