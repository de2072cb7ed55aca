package pricing

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

// GSTRate is the goods and services tax applied to every order, in percent.
const GSTRate = 18

// DiscountLookup reads per-dealer, per-category discount percentages.
type DiscountLookup interface {
	FindPercentage(ctx context.Context, dealerID, categoryID string) (float64, bool, error)
	FindPercentagesByDealer(ctx context.Context, dealerID string) (map[string]float64, error)
}

type ProductPrice struct {
	ID         string
	BasePrice  float64
	CategoryID *string
}

type Resolver struct {
	lookup   DiscountLookup
	failOpen bool
	logger   logger.ZapLogger
}

// NewResolver builds a price resolver. With failOpen a failed discount lookup
// yields the base price; otherwise the error is returned as Internal.
func NewResolver(lookup DiscountLookup, failOpen bool, log logger.ZapLogger) *Resolver {
	return &Resolver{lookup: lookup, failOpen: failOpen, logger: log}
}

// ResolvePrice returns the dealer's unit price for p.
func (r *Resolver) ResolvePrice(ctx context.Context, p ProductPrice, dealerID string) (float64, error) {
	if p.CategoryID == nil || *p.CategoryID == "" {
		return p.BasePrice, nil
	}

	pct, found, err := r.lookup.FindPercentage(ctx, dealerID, *p.CategoryID)
	if err != nil {
		return r.fallback(p, dealerID, err)
	}
	if !found {
		return p.BasePrice, nil
	}
	return ApplyDiscount(p.BasePrice, pct), nil
}

// ResolvePrices prices many products for one dealer with a single lookup.
func (r *Resolver) ResolvePrices(ctx context.Context, dealerID string, products []ProductPrice) (map[string]float64, error) {
	prices := make(map[string]float64, len(products))

	discounts, err := r.lookup.FindPercentagesByDealer(ctx, dealerID)
	if err != nil {
		if !r.failOpen {
			return nil, apperror.Internal(err)
		}
		r.logger.Warn("discount lookup failed, using base prices",
			zap.String("dealer_id", dealerID), zap.Error(err))
		discounts = nil
	}

	for _, p := range products {
		price := p.BasePrice
		if p.CategoryID != nil {
			if pct, ok := discounts[*p.CategoryID]; ok {
				price = ApplyDiscount(p.BasePrice, pct)
			}
		}
		prices[p.ID] = price
	}
	return prices, nil
}

func (r *Resolver) fallback(p ProductPrice, dealerID string, err error) (float64, error) {
	if !r.failOpen {
		return 0, apperror.Internal(err)
	}
	r.logger.Warn("discount lookup failed, using base price",
		zap.String("dealer_id", dealerID),
		zap.String("product_id", p.ID),
		zap.Error(err),
	)
	return p.BasePrice, nil
}

// ApplyDiscount returns base * (1 - pct/100) rounded half-up to 2 decimals.
func ApplyDiscount(base, pct float64) float64 {
	hundred := decimal.NewFromInt(100)
	factor := hundred.Sub(decimal.NewFromFloat(pct)).Div(hundred)
	return decimal.NewFromFloat(base).Mul(factor).Round(2).InexactFloat64()
}

type Line struct {
	UnitPrice float64
	Quantity  int
}

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	GSTAmount   float64 `json:"gst_amount"`
	TotalAmount float64 `json:"total_amount"`
}

// ComputeTotals sums the lines and adds GST.
func ComputeTotals(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l))
	}
	gst := subtotal.Mul(decimal.NewFromInt(GSTRate)).Div(decimal.NewFromInt(100)).Round(2)
	return Totals{
		Subtotal:    subtotal.InexactFloat64(),
		GSTAmount:   gst.InexactFloat64(),
		TotalAmount: subtotal.Add(gst).InexactFloat64(),
	}
}

func LineTotal(l Line) decimal.Decimal {
	return decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}
