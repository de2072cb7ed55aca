package model

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDealer Role = "dealer"
)

type User struct {
	BaseModel
	Email        *string `db:"email" json:"email"`
	Phone        *string `db:"phone" json:"phone"`
	PasswordHash string  `db:"password_hash" json:"-"`
	Role         Role    `db:"role" json:"role"`
	IsActive     bool    `db:"is_active" json:"is_active"`
}
