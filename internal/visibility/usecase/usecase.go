package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility/dto"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type DealerFinder interface {
	FindByID(ctx context.Context, id string) (*model.Dealer, error)
}

type CategoryFinder interface {
	FindByID(ctx context.Context, id string) (*model.Category, error)
}

type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

type CacheInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

type visibilityUseCase struct {
	repo       visibility.Repository
	dealers    DealerFinder
	categories CategoryFinder
	products   ProductFinder
	cache      CacheInvalidator
	logger     logger.ZapLogger
}

func NewVisibilityUseCase(
	repo visibility.Repository,
	dealers DealerFinder,
	categories CategoryFinder,
	products ProductFinder,
	cache CacheInvalidator,
	log logger.ZapLogger,
) visibility.UseCase {
	return &visibilityUseCase{
		repo:       repo,
		dealers:    dealers,
		categories: categories,
		products:   products,
		cache:      cache,
		logger:     log,
	}
}

func (uc *visibilityUseCase) HideCategory(ctx context.Context, input *dto.CategoryVisibilityInput) error {
	if input.DealerID == "" || input.CategoryID == "" {
		return apperror.Validation("dealer_id and category_id are required")
	}
	if err := uc.requireDealer(ctx, input.DealerID); err != nil {
		return err
	}
	if err := uc.requireCategory(ctx, input.CategoryID); err != nil {
		return err
	}

	err := uc.repo.HideCategory(ctx, &model.DealerHiddenCategory{
		ID:         uuid.New().String(),
		DealerID:   input.DealerID,
		CategoryID: input.CategoryID,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return apperror.Internal(err)
	}
	uc.cache.InvalidateCatalog(ctx)
	return nil
}

func (uc *visibilityUseCase) UnhideCategory(ctx context.Context, input *dto.CategoryVisibilityInput) error {
	if input.DealerID == "" || input.CategoryID == "" {
		return apperror.Validation("dealer_id and category_id are required")
	}
	if err := uc.repo.UnhideCategory(ctx, input.DealerID, input.CategoryID); err != nil {
		return apperror.Internal(err)
	}
	uc.cache.InvalidateCatalog(ctx)
	return nil
}

func (uc *visibilityUseCase) HideProduct(ctx context.Context, input *dto.ProductVisibilityInput) error {
	if input.DealerID == "" || input.ProductID == "" {
		return apperror.Validation("dealer_id and product_id are required")
	}
	if err := uc.requireDealer(ctx, input.DealerID); err != nil {
		return err
	}
	if err := uc.requireProduct(ctx, input.ProductID); err != nil {
		return err
	}

	err := uc.repo.HideProduct(ctx, &model.DealerHiddenProduct{
		ID:        uuid.New().String(),
		DealerID:  input.DealerID,
		ProductID: input.ProductID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return apperror.Internal(err)
	}
	uc.cache.InvalidateCatalog(ctx)
	return nil
}

func (uc *visibilityUseCase) UnhideProduct(ctx context.Context, input *dto.ProductVisibilityInput) error {
	if input.DealerID == "" || input.ProductID == "" {
		return apperror.Validation("dealer_id and product_id are required")
	}
	if err := uc.repo.UnhideProduct(ctx, input.DealerID, input.ProductID); err != nil {
		return apperror.Internal(err)
	}
	uc.cache.InvalidateCatalog(ctx)
	return nil
}

func (uc *visibilityUseCase) GetDealerVisibility(ctx context.Context, dealerID string) (*dto.DealerVisibility, error) {
	if err := uc.requireDealer(ctx, dealerID); err != nil {
		return nil, err
	}

	categories, err := uc.repo.FindHiddenCategories(ctx, dealerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	products, err := uc.repo.FindHiddenProducts(ctx, dealerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &dto.DealerVisibility{
		DealerID:         dealerID,
		HiddenCategories: categories,
		HiddenProducts:   products,
	}, nil
}

func (uc *visibilityUseCase) ReplaceDealerVisibility(ctx context.Context, input *dto.ReplaceVisibilityInput) (*dto.DealerVisibility, error) {
	if err := uc.requireDealer(ctx, input.DealerID); err != nil {
		return nil, err
	}

	now := time.Now()
	categoryIDs := dedupe(input.HiddenCategories)
	categories := make([]model.DealerHiddenCategory, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if err := uc.requireCategory(ctx, id); err != nil {
			return nil, err
		}
		categories = append(categories, model.DealerHiddenCategory{
			ID: uuid.New().String(), DealerID: input.DealerID, CategoryID: id, CreatedAt: now,
		})
	}

	productIDs := dedupe(input.HiddenProducts)
	products := make([]model.DealerHiddenProduct, 0, len(productIDs))
	for _, id := range productIDs {
		if err := uc.requireProduct(ctx, id); err != nil {
			return nil, err
		}
		products = append(products, model.DealerHiddenProduct{
			ID: uuid.New().String(), DealerID: input.DealerID, ProductID: id, CreatedAt: now,
		})
	}

	if err := uc.repo.ReplaceForDealer(ctx, input.DealerID, categories, products); err != nil {
		return nil, apperror.Internal(err)
	}
	uc.cache.InvalidateCatalog(ctx)

	uc.logger.Info("dealer visibility replaced",
		zap.String("dealer_id", input.DealerID),
		zap.Int("hidden_categories", len(categories)),
		zap.Int("hidden_products", len(products)),
	)
	return uc.GetDealerVisibility(ctx, input.DealerID)
}

func (uc *visibilityUseCase) requireDealer(ctx context.Context, id string) error {
	d, err := uc.dealers.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if d == nil || !d.IsActive {
		return apperror.NotFound("dealer not found")
	}
	return nil
}

func (uc *visibilityUseCase) requireCategory(ctx context.Context, id string) error {
	c, err := uc.categories.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if c == nil || !c.IsActive {
		return apperror.NotFound("category not found")
	}
	return nil
}

func (uc *visibilityUseCase) requireProduct(ctx context.Context, id string) error {
	p, err := uc.products.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if p == nil {
		return apperror.NotFound("product not found")
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
