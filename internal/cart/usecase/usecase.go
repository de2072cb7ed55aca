package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/cart"
	"github.com/fekuna/omnipos-dealer-service/internal/cart/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/pricing"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

type PriceResolver interface {
	ResolvePrice(ctx context.Context, p pricing.ProductPrice, dealerID string) (float64, error)
	ResolvePrices(ctx context.Context, dealerID string, products []pricing.ProductPrice) (map[string]float64, error)
}

// VisibilityFilter is implemented by *visibility.Filter.
type VisibilityFilter interface {
	IsVisible(ctx context.Context, dealerID string, item visibility.Item) (bool, error)
	Load(ctx context.Context, dealerID string) (*visibility.HiddenSet, error)
}

type cartUseCase struct {
	repo       cart.Repository
	products   ProductFinder
	prices     PriceResolver
	visibility VisibilityFilter
	logger     logger.ZapLogger
}

func NewCartUseCase(
	repo cart.Repository,
	products ProductFinder,
	prices PriceResolver,
	visibility VisibilityFilter,
	log logger.ZapLogger,
) cart.UseCase {
	return &cartUseCase{
		repo:       repo,
		products:   products,
		prices:     prices,
		visibility: visibility,
		logger:     log,
	}
}

// GetCart prices every line at the current discount. Lines whose product is
// deleted, inactive or hidden are left out.
func (uc *cartUseCase) GetCart(ctx context.Context, dealerID string) (*dto.CartView, error) {
	items, err := uc.repo.FindByDealer(ctx, dealerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	hidden, err := uc.visibility.Load(ctx, dealerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	kept := make([]model.CartItem, 0, len(items))
	priceInputs := make([]pricing.ProductPrice, 0, len(items))
	for _, item := range items {
		if item.ProductDeletedAt != nil || !item.ProductIsActive {
			continue
		}
		if hidden.Hides(visibility.Item{ProductID: item.ProductID, CategoryID: item.CategoryID}) {
			continue
		}
		kept = append(kept, item)
		priceInputs = append(priceInputs, pricing.ProductPrice{ID: item.ProductID, BasePrice: item.BasePrice, CategoryID: item.CategoryID})
	}

	prices, err := uc.prices.ResolvePrices(ctx, dealerID, priceInputs)
	if err != nil {
		return nil, apperror.From(err)
	}

	view := &dto.CartView{CartItems: make([]dto.CartLine, len(kept))}
	lines := make([]pricing.Line, len(kept))
	for i, item := range kept {
		price := prices[item.ProductID]
		view.CartItems[i] = dto.CartLine{CartItem: item, CurrentDiscountedPrice: price}
		lines[i] = pricing.Line{UnitPrice: price, Quantity: item.Quantity}
	}
	view.Totals = pricing.ComputeTotals(lines)
	return view, nil
}

func (uc *cartUseCase) AddItem(ctx context.Context, dealerID string, input *dto.AddItemInput) error {
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" || input.Quantity <= 0 {
		return apperror.Validation("productId and quantity (must be > 0) are required")
	}

	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return apperror.Internal(err)
	}
	if p == nil {
		return apperror.NotFound("product not found")
	}
	if !p.IsActive {
		return apperror.Validation("product is inactive and cannot be added to cart")
	}

	visible, err := uc.visibility.IsVisible(ctx, dealerID, visibility.Item{ProductID: p.ID, CategoryID: p.CategoryID})
	if err != nil {
		return apperror.Internal(err)
	}
	if !visible {
		return apperror.Forbidden("product is not visible to this dealer")
	}

	price, err := uc.prices.ResolvePrice(ctx, pricing.ProductPrice{ID: p.ID, BasePrice: p.BasePrice, CategoryID: p.CategoryID}, dealerID)
	if err != nil {
		return apperror.From(err)
	}

	now := time.Now()
	item := &model.CartItem{
		BaseModel:       model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		DealerID:        dealerID,
		ProductID:       p.ID,
		Quantity:        input.Quantity,
		PriceAtAddition: price,
	}
	if err := uc.repo.Upsert(ctx, item); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// UpdateItems applies each update independently. Updates naming a missing,
// inactive or hidden product are skipped and reported, not failed.
func (uc *cartUseCase) UpdateItems(ctx context.Context, dealerID string, input *dto.UpdateCartInput) (*dto.UpdateResult, error) {
	if input.Updates == nil {
		return nil, apperror.Validation("updates must be an array")
	}

	result := &dto.UpdateResult{Skipped: []string{}}
	for _, u := range input.Updates {
		productID := strings.TrimSpace(u.ProductID)
		if productID == "" {
			continue
		}

		if u.Remove {
			if err := uc.repo.Delete(ctx, dealerID, productID); err != nil {
				return nil, apperror.Internal(err)
			}
			result.Applied++
			continue
		}
		if u.Quantity == nil || *u.Quantity <= 0 {
			result.Skipped = append(result.Skipped, productID)
			continue
		}

		applied, err := uc.reprice(ctx, dealerID, productID, *u.Quantity)
		if err != nil {
			return nil, err
		}
		if applied {
			result.Applied++
		} else {
			result.Skipped = append(result.Skipped, productID)
		}
	}
	return result, nil
}

func (uc *cartUseCase) reprice(ctx context.Context, dealerID, productID string, quantity int) (bool, error) {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if p == nil || !p.IsActive {
		uc.logger.Warn("cart update skipped, product not found or inactive",
			zap.String("dealer_id", dealerID), zap.String("product_id", productID))
		return false, nil
	}

	visible, err := uc.visibility.IsVisible(ctx, dealerID, visibility.Item{ProductID: p.ID, CategoryID: p.CategoryID})
	if err != nil {
		return false, apperror.Internal(err)
	}
	if !visible {
		uc.logger.Warn("cart update skipped, product not visible",
			zap.String("dealer_id", dealerID), zap.String("product_id", productID))
		return false, nil
	}

	price, err := uc.prices.ResolvePrice(ctx, pricing.ProductPrice{ID: p.ID, BasePrice: p.BasePrice, CategoryID: p.CategoryID}, dealerID)
	if err != nil {
		return false, apperror.From(err)
	}
	found, err := uc.repo.UpdateLine(ctx, dealerID, productID, quantity, price)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return found, nil
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, dealerID, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return apperror.Validation("productId is required")
	}
	if err := uc.repo.Delete(ctx, dealerID, productID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
