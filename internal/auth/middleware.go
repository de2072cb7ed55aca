package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/httpx"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

// DealerFinder returns the live (not soft-deleted) dealer row, or nil.
type DealerFinder interface {
	FindByID(ctx context.Context, id string) (*model.Dealer, error)
}

type Middleware struct {
	tokens *TokenManager
	logger logger.ZapLogger
}

func NewMiddleware(tokens *TokenManager, log logger.ZapLogger) *Middleware {
	return &Middleware{tokens: tokens, logger: log}
}

// Authenticate requires a valid session token from the auth_token cookie or
// an Authorization bearer header and stores the principal in the context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := tokenFromRequest(r)
		if raw == "" {
			httpx.Error(w, r, m.logger, apperror.Unauthorized("authentication required"))
			return
		}
		p, err := m.tokens.Parse(raw)
		if err != nil {
			httpx.Error(w, r, m.logger, apperror.Unauthorized("invalid or expired token"))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

func (m *Middleware) RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				httpx.Error(w, r, m.logger, apperror.Unauthorized("authentication required"))
				return
			}
			if p.Role != role {
				httpx.Error(w, r, m.logger, apperror.Forbidden(string(role)+" access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireActiveDealer rejects dealer tokens whose dealer was deleted or
// deactivated after the token was issued.
func (m *Middleware) RequireActiveDealer(dealers DealerFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok || p.DealerID == "" {
				httpx.Error(w, r, m.logger, apperror.Unauthorized("dealer account required"))
				return
			}
			d, err := dealers.FindByID(r.Context(), p.DealerID)
			if err != nil {
				httpx.Error(w, r, m.logger, apperror.Internal(err))
				return
			}
			if d == nil || !d.IsActive || d.UserID != p.UserID {
				m.logger.Warn("dealer token rejected", zap.String("dealer_id", p.DealerID))
				httpx.Error(w, r, m.logger, apperror.Unauthorized("dealer account is not active"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
