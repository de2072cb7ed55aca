package dto

import "github.com/fekuna/omnipos-dealer-service/internal/model"

type CategoryResponse struct {
	Success  bool            `json:"success"`
	Category *model.Category `json:"category"`
}
