package dealer

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type Repository interface {
	// Create inserts the login user and the dealer profile in one transaction.
	Create(ctx context.Context, user *model.User, dealer *model.Dealer) error
	FindByID(ctx context.Context, id string) (*model.Dealer, error)
	FindByUserID(ctx context.Context, userID string) (*model.Dealer, error)
	FindUser(ctx context.Context, userID string) (*model.User, error)
	FindAll(ctx context.Context, params listquery.Params) (*listquery.Result[model.Dealer], error)
	Update(ctx context.Context, user *model.User, dealer *model.Dealer) error
	SoftDelete(ctx context.Context, id string) error

	// IdentityTaken reports whether email or phone belongs to a user other than excludeUserID.
	IdentityTaken(ctx context.Context, email, phone *string, excludeUserID string) (bool, error)
}
