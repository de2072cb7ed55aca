package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/omnipos-dealer-service/internal/httpx"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility/dto"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type VisibilityHandler struct {
	uc     visibility.UseCase
	logger logger.ZapLogger
}

func NewVisibilityHandler(uc visibility.UseCase, log logger.ZapLogger) *VisibilityHandler {
	return &VisibilityHandler{
		uc:     uc,
		logger: log,
	}
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *VisibilityHandler) HideCategory(w http.ResponseWriter, r *http.Request) {
	var input dto.CategoryVisibilityInput
	if err := decodeCategoryInput(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	if err := h.uc.HideCategory(r.Context(), &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Success: true, Message: "Category hidden from dealer"})
}

func (h *VisibilityHandler) UnhideCategory(w http.ResponseWriter, r *http.Request) {
	var input dto.CategoryVisibilityInput
	if err := decodeCategoryInput(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	if err := h.uc.UnhideCategory(r.Context(), &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Success: true, Message: "Category visible to dealer"})
}

func (h *VisibilityHandler) HideProduct(w http.ResponseWriter, r *http.Request) {
	var input dto.ProductVisibilityInput
	if err := decodeProductInput(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	if err := h.uc.HideProduct(r.Context(), &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Success: true, Message: "Product hidden from dealer"})
}

func (h *VisibilityHandler) UnhideProduct(w http.ResponseWriter, r *http.Request) {
	var input dto.ProductVisibilityInput
	if err := decodeProductInput(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	if err := h.uc.UnhideProduct(r.Context(), &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Success: true, Message: "Product visible to dealer"})
}

func (h *VisibilityHandler) GetDealerVisibility(w http.ResponseWriter, r *http.Request) {
	v, err := h.uc.GetDealerVisibility(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *VisibilityHandler) ReplaceDealerVisibility(w http.ResponseWriter, r *http.Request) {
	var input dto.ReplaceVisibilityInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	input.DealerID = chi.URLParam(r, "id")

	v, err := h.uc.ReplaceDealerVisibility(r.Context(), &input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*dto.DealerVisibility
	}{Success: true, DealerVisibility: v})
}

// DELETE requests may carry the pair as query parameters instead of a body.
func decodeCategoryInput(r *http.Request, input *dto.CategoryVisibilityInput) error {
	if r.Method == http.MethodDelete && r.ContentLength <= 0 {
		input.DealerID = r.URL.Query().Get("dealer_id")
		input.CategoryID = r.URL.Query().Get("category_id")
		return nil
	}
	return httpx.DecodeJSON(r, input)
}

func decodeProductInput(r *http.Request, input *dto.ProductVisibilityInput) error {
	if r.Method == http.MethodDelete && r.ContentLength <= 0 {
		input.DealerID = r.URL.Query().Get("dealer_id")
		input.ProductID = r.URL.Query().Get("product_id")
		return nil
	}
	return httpx.DecodeJSON(r, input)
}
