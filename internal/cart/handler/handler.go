package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/omnipos-dealer-service/internal/auth"
	"github.com/fekuna/omnipos-dealer-service/internal/cart"
	"github.com/fekuna/omnipos-dealer-service/internal/cart/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/httpx"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.uc.GetCart(r.Context(), auth.GetDealerID(r.Context()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input dto.AddItemInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	if err := h.uc.AddItem(r.Context(), auth.GetDealerID(r.Context()), &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Cart updated successfully"})
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateCartInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	res, err := h.uc.UpdateItems(r.Context(), auth.GetDealerID(r.Context()), &input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		*dto.UpdateResult
	}{Success: true, Message: "Cart updated successfully", UpdateResult: res})
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.RemoveItem(r.Context(), auth.GetDealerID(r.Context()), chi.URLParam(r, "productId")); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Item removed from cart"})
}
