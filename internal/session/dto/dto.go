package dto

import "github.com/fekuna/omnipos-dealer-service/internal/model"

type SessionUser struct {
	ID          string     `json:"id"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Role        model.Role `json:"role"`
	DealerID    string     `json:"dealer_id,omitempty"`
	DealerName  string     `json:"dealer_name,omitempty"`
	CompanyName string     `json:"company_name,omitempty"`
}

type LoginResult struct {
	Token string
	User  *SessionUser
}
