package model

import "time"

type Dealer struct {
	BaseModel
	UserID      string     `db:"user_id" json:"user_id"`
	Name        string     `db:"name" json:"name"`
	CompanyName string     `db:"company_name" json:"company_name"`
	Address     *string    `db:"address" json:"address"`
	DeletedAt   *time.Time `db:"deleted_at" json:"-"`

	// Joined from users
	Email    *string `db:"email" json:"email"`
	Phone    *string `db:"phone" json:"phone"`
	IsActive bool    `db:"is_active" json:"is_active"`
}
