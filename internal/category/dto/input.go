package dto

type CreateCategoryInput struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

type UpdateCategoryInput struct {
	ID       string  `json:"-"`
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}
