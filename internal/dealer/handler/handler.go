package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/omnipos-dealer-service/internal/dealer"
	"github.com/fekuna/omnipos-dealer-service/internal/dealer/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/httpx"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type DealerHandler struct {
	uc     dealer.UseCase
	logger logger.ZapLogger
}

func NewDealerHandler(uc dealer.UseCase, log logger.ZapLogger) *DealerHandler {
	return &DealerHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *DealerHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.ListDealers(r.Context(), listquery.ParseParams(r.URL.Query()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *DealerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateDealerInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}

	d, err := h.uc.CreateDealer(r.Context(), &input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, dto.DealerResponse{Success: true, Dealer: d})
}

func (h *DealerHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.uc.GetDealer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.DealerResponse{Success: true, Dealer: d})
}

func (h *DealerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateDealerInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	input.ID = chi.URLParam(r, "id")

	d, err := h.uc.UpdateDealer(r.Context(), &input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.DealerResponse{Success: true, Dealer: d})
}

func (h *DealerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteDealer(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Dealer deleted"})
}
