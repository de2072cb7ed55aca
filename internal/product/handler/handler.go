package handler

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/auth"
	"github.com/fekuna/omnipos-dealer-service/internal/httpx"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/product"
	"github.com/fekuna/omnipos-dealer-service/internal/product/dto"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

const maxUploadBytes = 10 << 20

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type productRequest struct {
	Name         *string  `json:"name"`
	CategoryID   *string  `json:"category_id"`
	BasePrice    *float64 `json:"base_price"`
	Description  *string  `json:"description"`
	Status       *string  `json:"status"`
	IsActive     *bool    `json:"is_active"`
	DatasheetURL *string  `json:"datasheet_url"`
	ProductURL   *string  `json:"product_url"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.ListProducts(r.Context(), listquery.ParseParams(r.URL.Query()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := decodeProductInput(w, r)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}

	p, err := h.uc.CreateProduct(r.Context(), input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, dto.ProductResponse{Success: true, Product: p})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.ProductResponse{Success: true, Product: p})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	input, err := decodeProductInput(w, r)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	input.ID = chi.URLParam(r, "id")

	p, err := h.uc.UpdateProduct(r.Context(), input)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.ProductResponse{Success: true, Product: p})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Product deleted"})
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"data": products})
}

func (h *ProductHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.ListCatalog(r.Context(), auth.GetDealerID(r.Context()), listquery.ParseParams(r.URL.Query()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *ProductHandler) GetCatalogProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetCatalogProduct(r.Context(), auth.GetDealerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.CatalogProductResponse{Success: true, Product: p})
}

func decodeProductInput(w http.ResponseWriter, r *http.Request) (*dto.ProductInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return decodeMultipart(w, r)
	}

	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	input := &dto.ProductInput{
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		BasePrice:    req.BasePrice,
		Description:  req.Description,
		IsActive:     req.IsActive,
		DatasheetURL: req.DatasheetURL,
		ProductURL:   req.ProductURL,
	}
	if req.Status != nil {
		active, err := parseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		input.IsActive = &active
	}
	return input, nil
}

func decodeMultipart(w http.ResponseWriter, r *http.Request) (*dto.ProductInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, apperror.Validation("invalid multipart form")
	}

	input := &dto.ProductInput{
		Name:         formValue(r, "name"),
		CategoryID:   formValue(r, "category_id"),
		Description:  formValue(r, "description"),
		DatasheetURL: formValue(r, "datasheet_url"),
		ProductURL:   formValue(r, "product_url"),
	}
	if v := formValue(r, "base_price"); v != nil {
		price, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
		if err != nil {
			return nil, apperror.Validation("base_price must be a number")
		}
		input.BasePrice = &price
	}
	if v := formValue(r, "status"); v != nil {
		active, err := parseStatus(*v)
		if err != nil {
			return nil, err
		}
		input.IsActive = &active
	}

	file, header, err := r.FormFile("product_image")
	if err == nil {
		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		input.Image = &dto.ImageUpload{FileName: header.Filename, ContentType: contentType, Body: file}
	} else if err != http.ErrMissingFile {
		return nil, apperror.Validation("invalid product_image")
	}
	return input, nil
}

// formValue returns nil when the field was not sent at all.
func formValue(r *http.Request, key string) *string {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func parseStatus(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return true, nil
	case "inactive":
		return false, nil
	}
	return false, apperror.Validation("status must be active or inactive")
}
