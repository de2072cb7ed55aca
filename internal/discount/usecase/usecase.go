package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/discount"
	"github.com/fekuna/omnipos-dealer-service/internal/discount/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type DealerFinder interface {
	FindByID(ctx context.Context, id string) (*model.Dealer, error)
}

type CategoryFinder interface {
	FindByID(ctx context.Context, id string) (*model.Category, error)
}

type CacheInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

type discountUseCase struct {
	repo       discount.Repository
	dealers    DealerFinder
	categories CategoryFinder
	cache      CacheInvalidator
	logger     logger.ZapLogger
}

func NewDiscountUseCase(
	repo discount.Repository,
	dealers DealerFinder,
	categories CategoryFinder,
	cache CacheInvalidator,
	log logger.ZapLogger,
) discount.UseCase {
	return &discountUseCase{
		repo:       repo,
		dealers:    dealers,
		categories: categories,
		cache:      cache,
		logger:     log,
	}
}

func (uc *discountUseCase) AssignDiscount(ctx context.Context, input *dto.AssignDiscountInput) (*model.DealerCategoryDiscount, error) {
	if input.DealerID == "" || input.CategoryID == "" || input.DiscountPercentage == nil {
		return nil, apperror.Validation("dealer_id, category_id and discount_percentage are required")
	}
	if err := validatePercentage(*input.DiscountPercentage); err != nil {
		return nil, err
	}
	if err := uc.requireDealer(ctx, input.DealerID); err != nil {
		return nil, err
	}
	if err := uc.requireCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	d := &model.DealerCategoryDiscount{
		BaseModel:          model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		DealerID:           input.DealerID,
		CategoryID:         input.CategoryID,
		DiscountPercentage: *input.DiscountPercentage,
	}
	if err := uc.repo.Upsert(ctx, d); err != nil {
		return nil, apperror.Internal(err)
	}
	uc.cache.InvalidateCatalog(ctx)

	uc.logger.Info("discount assigned",
		zap.String("dealer_id", d.DealerID),
		zap.String("category_id", d.CategoryID),
		zap.Float64("discount_percentage", d.DiscountPercentage),
	)
	return d, nil
}

func (uc *discountUseCase) ListDiscounts(ctx context.Context, params listquery.Params) (*listquery.Result[model.DealerCategoryDiscount], error) {
	res, err := uc.repo.FindAll(ctx, params)
	if err != nil {
		return nil, apperror.From(err)
	}
	return res, nil
}

func (uc *discountUseCase) GetDealerDiscounts(ctx context.Context, dealerID string) ([]model.DealerCategoryDiscount, error) {
	if err := uc.requireDealer(ctx, dealerID); err != nil {
		return nil, err
	}
	discounts, err := uc.repo.FindByDealer(ctx, dealerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return discounts, nil
}

// ReplaceDealerDiscounts swaps the dealer's whole discount set. A category listed twice keeps its last entry.
func (uc *discountUseCase) ReplaceDealerDiscounts(ctx context.Context, input *dto.ReplaceDiscountsInput) ([]model.DealerCategoryDiscount, error) {
	if err := uc.requireDealer(ctx, input.DealerID); err != nil {
		return nil, err
	}

	now := time.Now()
	index := make(map[string]int, len(input.Discounts))
	discounts := make([]model.DealerCategoryDiscount, 0, len(input.Discounts))
	for _, in := range input.Discounts {
		if in.CategoryID == "" {
			return nil, apperror.Validation("category_id is required")
		}
		if err := validatePercentage(in.DiscountPercentage); err != nil {
			return nil, err
		}
		if i, ok := index[in.CategoryID]; ok {
			discounts[i].DiscountPercentage = in.DiscountPercentage
			continue
		}
		if err := uc.requireCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		index[in.CategoryID] = len(discounts)
		discounts = append(discounts, model.DealerCategoryDiscount{
			BaseModel:          model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			DealerID:           input.DealerID,
			CategoryID:         in.CategoryID,
			DiscountPercentage: in.DiscountPercentage,
		})
	}

	if err := uc.repo.ReplaceForDealer(ctx, input.DealerID, discounts); err != nil {
		return nil, apperror.Internal(err)
	}
	uc.cache.InvalidateCatalog(ctx)

	uc.logger.Info("dealer discounts replaced",
		zap.String("dealer_id", input.DealerID),
		zap.Int("count", len(discounts)),
	)
	return uc.GetDealerDiscounts(ctx, input.DealerID)
}

func (uc *discountUseCase) DeleteDiscount(ctx context.Context, id string) error {
	d, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if d == nil {
		return apperror.NotFound("discount not found")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	uc.cache.InvalidateCatalog(ctx)
	return nil
}

func validatePercentage(pct float64) error {
	if pct < 0 || pct > 100 {
		return apperror.Validation("discount_percentage must be between 0 and 100")
	}
	return nil
}

func (uc *discountUseCase) requireDealer(ctx context.Context, id string) error {
	d, err := uc.dealers.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if d == nil || !d.IsActive {
		return apperror.NotFound("dealer not found")
	}
	return nil
}

func (uc *discountUseCase) requireCategory(ctx context.Context, id string) error {
	c, err := uc.categories.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if c == nil || !c.IsActive {
		return apperror.NotFound("category not found")
	}
	return nil
}
