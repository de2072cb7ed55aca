package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/omnipos-dealer-service/internal/discount"
	"github.com/fekuna/omnipos-dealer-service/internal/discount/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/httpx"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type DiscountHandler struct {
	uc     discount.UseCase
	logger logger.ZapLogger
}

func NewDiscountHandler(uc discount.UseCase, log logger.ZapLogger) *DiscountHandler {
	return &DiscountHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *DiscountHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var input dto.AssignDiscountInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	d, err := h.uc.AssignDiscount(r.Context(), &input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, dto.DiscountResponse{Success: true, Discount: d})
}

func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.ListDiscounts(r.Context(), listquery.ParseParams(r.URL.Query()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *DiscountHandler) GetDealerDiscounts(w http.ResponseWriter, r *http.Request) {
	dealerID := chi.URLParam(r, "id")
	discounts, err := h.uc.GetDealerDiscounts(r.Context(), dealerID)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.DealerDiscountsResponse{DealerID: dealerID, Discounts: discounts})
}

func (h *DiscountHandler) ReplaceDealerDiscounts(w http.ResponseWriter, r *http.Request) {
	var input dto.ReplaceDiscountsInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	input.DealerID = chi.URLParam(r, "id")

	discounts, err := h.uc.ReplaceDealerDiscounts(r.Context(), &input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Discounts updated successfully",
		"dealer_id": input.DealerID,
		"discounts": discounts,
	})
}

func (h *DiscountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteDiscount(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Discount removed"})
}
