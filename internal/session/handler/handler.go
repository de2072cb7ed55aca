package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/auth"
	"github.com/fekuna/omnipos-dealer-service/internal/httpx"
	"github.com/fekuna/omnipos-dealer-service/internal/session"
	"github.com/fekuna/omnipos-dealer-service/internal/session/dto"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type SessionHandler struct {
	uc           session.UseCase
	tokens       *auth.TokenManager
	cookieSecure bool
	logger       logger.ZapLogger
}

func NewSessionHandler(uc session.UseCase, tokens *auth.TokenManager, cookieSecure bool, log logger.ZapLogger) *SessionHandler {
	return &SessionHandler{
		uc:           uc,
		tokens:       tokens,
		cookieSecure: cookieSecure,
		logger:       log,
	}
}

type userResponse struct {
	Success bool             `json:"success"`
	User    *dto.SessionUser `json:"user"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input dto.LoginInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}

	res, err := h.uc.Login(r.Context(), &input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}

	auth.SetSessionCookie(w, res.Token, h.tokens.TTL(), h.cookieSecure)
	httpx.JSON(w, http.StatusOK, userResponse{Success: true, User: res.User})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cookieSecure)
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Logged out successfully"})
}

func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		httpx.Error(w, r, h.logger, apperror.Unauthorized("authentication required"))
		return
	}

	user, err := h.uc.Me(r.Context(), p)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, userResponse{Success: true, User: user})
}
