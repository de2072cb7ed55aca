package dto

type CategoryVisibilityInput struct {
	DealerID   string `json:"dealer_id"`
	CategoryID string `json:"category_id"`
}

type ProductVisibilityInput struct {
	DealerID  string `json:"dealer_id"`
	ProductID string `json:"product_id"`
}

type ReplaceVisibilityInput struct {
	DealerID         string   `json:"-"`
	HiddenCategories []string `json:"hidden_categories"`
	HiddenProducts   []string `json:"hidden_products"`
}
