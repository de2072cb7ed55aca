package dto

import "github.com/fekuna/omnipos-dealer-service/internal/model"

type DealerVisibility struct {
	DealerID         string                       `json:"dealer_id"`
	HiddenCategories []model.DealerHiddenCategory `json:"hidden_categories"`
	HiddenProducts   []model.DealerHiddenProduct  `json:"hidden_products"`
}
