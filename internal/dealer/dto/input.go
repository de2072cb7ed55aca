package dto

type CreateDealerInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Password    string `json:"password"`
}

// UpdateDealerInput is a partial update; nil fields are left unchanged.
type UpdateDealerInput struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	CompanyName *string `json:"company_name"`
	Address     *string `json:"address"`
	Password    *string `json:"password"`
	IsActive    *bool   `json:"is_active"`
}
