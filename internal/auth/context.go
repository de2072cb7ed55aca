package auth

import (
	"context"

	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   string     `json:"id"`
	Role     model.Role `json:"role"`
	DealerID string     `json:"dealer_id,omitempty"`
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(*Principal)
	return p, ok && p != nil
}

// GetDealerID returns the dealer id of the caller, or "" for non-dealers.
func GetDealerID(ctx context.Context) string {
	if p, ok := PrincipalFrom(ctx); ok {
		return p.DealerID
	}
	return ""
}
