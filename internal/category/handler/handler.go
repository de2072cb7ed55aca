package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/omnipos-dealer-service/internal/auth"
	"github.com/fekuna/omnipos-dealer-service/internal/category"
	"github.com/fekuna/omnipos-dealer-service/internal/category/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/httpx"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.ListCategories(r.Context(), listquery.ParseParams(r.URL.Query()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateCategoryInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}

	cat, err := h.uc.CreateCategory(r.Context(), &input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, dto.CategoryResponse{Success: true, Category: cat})
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	cat, err := h.uc.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.CategoryResponse{Success: true, Category: cat})
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateCategoryInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	input.ID = chi.URLParam(r, "id")

	cat, err := h.uc.UpdateCategory(r.Context(), &input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.CategoryResponse{Success: true, Category: cat})
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Category deleted"})
}

// ListForDealer returns the caller's visible categories.
func (h *CategoryHandler) ListForDealer(w http.ResponseWriter, r *http.Request) {
	categories, err := h.uc.ListDealerCategories(r.Context(), auth.GetDealerID(r.Context()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"data": categories})
}
