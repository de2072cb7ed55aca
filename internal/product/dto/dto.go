package dto

import "github.com/fekuna/omnipos-dealer-service/internal/model"

type ProductResponse struct {
	Success bool           `json:"success"`
	Product *model.Product `json:"product"`
}

type CatalogProductResponse struct {
	Success bool                  `json:"success"`
	Product *model.CatalogProduct `json:"product"`
}

// SearchDocument is the Elasticsearch representation of a product.
type SearchDocument struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	BasePrice    float64 `json:"base_price"`
	IsActive     bool    `json:"is_active"`
}

func NewSearchDocument(p *model.Product) SearchDocument {
	doc := SearchDocument{
		ID:        p.ID,
		Name:      p.Name,
		BasePrice: p.BasePrice,
		IsActive:  p.IsActive,
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	if p.CategoryID != nil {
		doc.CategoryID = *p.CategoryID
	}
	if p.CategoryName != nil {
		doc.CategoryName = *p.CategoryName
	}
	return doc
}
