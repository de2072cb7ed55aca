package session

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type Repository interface {
	// FindByIdentifier matches an email (case-insensitive) or a phone number.
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}
