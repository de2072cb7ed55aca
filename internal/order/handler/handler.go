package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/omnipos-dealer-service/internal/auth"
	"github.com/fekuna/omnipos-dealer-service/internal/httpx"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/order"
	"github.com/fekuna/omnipos-dealer-service/internal/order/dto"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

// Dealer routes

func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.PlaceOrder(r.Context(), auth.GetDealerID(r.Context()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, res)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.ListDealerOrders(r.Context(), auth.GetDealerID(r.Context()), listquery.ParseParams(r.URL.Query()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *OrderHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	o, err := h.uc.GetDealerOrder(r.Context(), auth.GetDealerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.OrderResponse{Success: true, Order: o})
}

// Admin routes

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.ListOrders(r.Context(), listquery.ParseParams(r.URL.Query()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.uc.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.OrderResponse{Success: true, Order: o})
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateStatusInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	input.ID = chi.URLParam(r, "id")

	o, err := h.uc.UpdateStatus(r.Context(), &input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.OrderResponse{Success: true, Order: o})
}
