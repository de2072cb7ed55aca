package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/pricing"
	"github.com/fekuna/omnipos-dealer-service/internal/product"
	"github.com/fekuna/omnipos-dealer-service/internal/product/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
	"github.com/fekuna/omnipos-dealer-service/pkg/search"
)

const (
	searchIndex = "dealer-products"
	searchLimit = 20
)

const searchMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"description": { "type": "text" },
			"category_id": { "type": "keyword" },
			"category_name": { "type": "text" },
			"base_price": { "type": "double" },
			"is_active": { "type": "boolean" }
		}
	}
}`

type CategoryFinder interface {
	FindByID(ctx context.Context, id string) (*model.Category, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, prefix, fileName, contentType string, r io.Reader) (string, error)
}

// SearchIndex is implemented by *search.Client.
type SearchIndex interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc interface{}) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
	Delete(ctx context.Context, index, id string) error
}

type CatalogCache interface {
	PageKey(ctx context.Context, scope, dealerID string, params interface{}) string
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, v interface{})
	InvalidateCatalog(ctx context.Context)
}

type PriceResolver interface {
	ResolvePrice(ctx context.Context, p pricing.ProductPrice, dealerID string) (float64, error)
	ResolvePrices(ctx context.Context, dealerID string, products []pricing.ProductPrice) (map[string]float64, error)
}

type VisibilityChecker interface {
	IsVisible(ctx context.Context, dealerID string, item visibility.Item) (bool, error)
}

type Deps struct {
	Repo       product.Repository
	Categories CategoryFinder
	Prices     PriceResolver
	Visibility VisibilityChecker
	Cache      CatalogCache
	Images     ImageUploader // nil disables uploads
	Search     SearchIndex   // nil falls back to Postgres
}

type productUseCase struct {
	repo       product.Repository
	categories CategoryFinder
	prices     PriceResolver
	visibility VisibilityChecker
	cache      CatalogCache
	images     ImageUploader
	es         SearchIndex
	logger     logger.ZapLogger
}

func NewProductUseCase(deps Deps, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:       deps.Repo,
		categories: deps.Categories,
		prices:     deps.Prices,
		visibility: deps.Visibility,
		cache:      deps.Cache,
		images:     deps.Images,
		es:         deps.Search,
		logger:     log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.Validation("name is required")
	}
	if input.BasePrice == nil {
		return nil, apperror.Validation("base_price is required")
	}
	if input.CategoryID == nil || *input.CategoryID == "" {
		return nil, apperror.Validation("category_id is required")
	}

	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		IsActive:  true,
		ImageURLs: []string{},
	}
	if err := uc.apply(ctx, p, input); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.afterWrite(p)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if p == nil {
		return nil, apperror.NotFound("product not found")
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, params listquery.Params) (*listquery.Result[model.Product], error) {
	res, err := uc.repo.FindAll(ctx, params)
	if err != nil {
		return nil, apperror.From(err)
	}
	return res, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, p, input); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.afterWrite(p)
	return p, nil
}

// apply validates input and copies the provided fields onto p, uploading the image if any.
func (uc *productUseCase) apply(ctx context.Context, p *model.Product, input *dto.ProductInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return apperror.Validation("name cannot be empty")
		}
		p.Name = name
	}
	if input.BasePrice != nil {
		if *input.BasePrice < 0 {
			return apperror.Validation("base_price must not be negative")
		}
		p.BasePrice = *input.BasePrice
	}
	if input.CategoryID != nil {
		if *input.CategoryID == "" {
			return apperror.Validation("category_id cannot be empty")
		}
		cat, err := uc.categories.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return apperror.Internal(err)
		}
		if cat == nil {
			return apperror.Validation("category_id does not match an existing category")
		}
		id := cat.ID
		name := cat.Name
		p.CategoryID = &id
		p.CategoryName = &name
	}
	if input.Description != nil {
		p.Description = optional(*input.Description)
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if input.DatasheetURL != nil {
		p.DatasheetURL = optional(*input.DatasheetURL)
	}
	if input.ProductURL != nil {
		p.ProductURL = optional(*input.ProductURL)
	}

	if input.Image != nil {
		if uc.images == nil {
			return apperror.Validation("image uploads are not enabled")
		}
		if !strings.HasPrefix(input.Image.ContentType, "image/") {
			return apperror.Validation("product_image must be an image")
		}
		url, err := uc.images.Upload(ctx, "products/"+p.ID, input.Image.FileName, input.Image.ContentType, input.Image.Body)
		if err != nil {
			return apperror.Internal(fmt.Errorf("upload product image: %w", err))
		}
		p.ImageURLs = append(p.ImageURLs, url)
	}
	return nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uc.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return apperror.Internal(err)
	}

	uc.cache.InvalidateCatalog(ctx)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), searchIndex, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.String("product_id", id), zap.Error(err))
			}
		}()
	}
	return nil
}

func (uc *productUseCase) afterWrite(p *model.Product) {
	uc.cache.InvalidateCatalog(context.Background())
	if uc.es != nil {
		doc := dto.NewSearchDocument(p)
		go uc.syncToElastic(context.Background(), doc)
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, doc dto.SearchDocument) {
	_ = uc.es.CreateIndex(ctx, searchIndex, searchMapping)
	if err := uc.es.Index(ctx, searchIndex, doc.ID, doc); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", doc.ID), zap.Error(err))
	}
}

// SearchProducts is the admin quick search. Hits come from Elasticsearch when
// available and are always re-read from Postgres.
func (uc *productUseCase) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Product{}, nil
	}

	if uc.es != nil {
		products, err := uc.searchElastic(ctx, query)
		if err == nil {
			return products, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, err := uc.repo.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return products, nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, query string) ([]model.Product, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^3", "category_name", "description"},
				"fuzziness": "AUTO",
			},
		},
		"size": searchLimit,
	}
	res, err := uc.es.Search(ctx, searchIndex, q)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	found, err := uc.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (uc *productUseCase) ListCatalog(ctx context.Context, dealerID string, params listquery.Params) (*listquery.Result[model.CatalogProduct], error) {
	key := uc.cache.PageKey(ctx, "products", dealerID, params)
	var cached listquery.Result[model.CatalogProduct]
	if uc.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	res, err := uc.repo.FindCatalog(ctx, dealerID, params)
	if err != nil {
		return nil, apperror.From(err)
	}

	priceInputs := make([]pricing.ProductPrice, len(res.Data))
	for i, p := range res.Data {
		priceInputs[i] = pricing.ProductPrice{ID: p.ID, BasePrice: p.BasePrice, CategoryID: p.CategoryID}
	}
	prices, err := uc.prices.ResolvePrices(ctx, dealerID, priceInputs)
	if err != nil {
		return nil, apperror.From(err)
	}

	out := &listquery.Result[model.CatalogProduct]{
		Data: make([]model.CatalogProduct, len(res.Data)),
		Meta: res.Meta,
	}
	for i, p := range res.Data {
		out.Data[i] = model.CatalogProduct{Product: p, DiscountedPrice: prices[p.ID]}
	}

	uc.cache.Set(ctx, key, out)
	return out, nil
}

func (uc *productUseCase) GetCatalogProduct(ctx context.Context, dealerID, id string) (*model.CatalogProduct, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if p == nil || !p.IsActive {
		return nil, apperror.NotFound("product not found")
	}

	visible, err := uc.visibility.IsVisible(ctx, dealerID, visibility.Item{ProductID: p.ID, CategoryID: p.CategoryID})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !visible {
		return nil, apperror.NotFound("product not found")
	}

	price, err := uc.prices.ResolvePrice(ctx, pricing.ProductPrice{ID: p.ID, BasePrice: p.BasePrice, CategoryID: p.CategoryID}, dealerID)
	if err != nil {
		return nil, apperror.From(err)
	}
	return &model.CatalogProduct{Product: *p, DiscountedPrice: price}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
