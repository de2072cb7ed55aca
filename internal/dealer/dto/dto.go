package dto

import "github.com/fekuna/omnipos-dealer-service/internal/model"

type DealerResponse struct {
	Success bool          `json:"success"`
	Dealer  *model.Dealer `json:"dealer"`
}
