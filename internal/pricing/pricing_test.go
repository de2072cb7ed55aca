package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type fakeLookup struct {
	discounts map[string]float64 // key dealer|category
	err       error
	calls     int
}

func (f *fakeLookup) FindPercentage(_ context.Context, dealerID, categoryID string) (float64, bool, error) {
	f.calls++
	if f.err != nil {
		return 0, false, f.err
	}
	pct, ok := f.discounts[dealerID+"|"+categoryID]
	return pct, ok, nil
}

func (f *fakeLookup) FindPercentagesByDealer(_ context.Context, dealerID string) (map[string]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]float64{}
	for k, v := range f.discounts {
		if len(k) > len(dealerID) && k[:len(dealerID)+1] == dealerID+"|" {
			out[k[len(dealerID)+1:]] = v
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		base, pct, want float64
	}{
		{1000, 20, 800},
		{1000, 0, 1000},
		{1000, 100, 0},
		{99.99, 15, 84.99},      // 84.9915
		{10.05, 50, 5.03},       // 5.025 rounds half-up
		{333.33, 33.33, 222.23}, // 222.231111
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ApplyDiscount(tt.base, tt.pct), "base=%v pct=%v", tt.base, tt.pct)
	}
}

func TestResolvePrice(t *testing.T) {
	lookup := &fakeLookup{discounts: map[string]float64{"d1|c1": 20}}
	r := NewResolver(lookup, true, logger.NewNop())
	ctx := context.Background()

	tests := []struct {
		name     string
		product  ProductPrice
		dealerID string
		want     float64
	}{
		{"discounted", ProductPrice{ID: "p1", BasePrice: 1000, CategoryID: strPtr("c1")}, "d1", 800},
		{"other dealer", ProductPrice{ID: "p1", BasePrice: 1000, CategoryID: strPtr("c1")}, "d2", 1000},
		{"other category", ProductPrice{ID: "p2", BasePrice: 500, CategoryID: strPtr("c2")}, "d1", 500},
		{"no category", ProductPrice{ID: "p3", BasePrice: 250}, "d1", 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolvePrice(ctx, tt.product, tt.dealerID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePriceLookupFailure(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("connection reset")}
	p := ProductPrice{ID: "p1", BasePrice: 1000, CategoryID: strPtr("c1")}

	open := NewResolver(lookup, true, logger.NewNop())
	got, err := open.ResolvePrice(context.Background(), p, "d1")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got)

	closed := NewResolver(lookup, false, logger.NewNop())
	_, err = closed.ResolvePrice(context.Background(), p, "d1")
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))

	_, err = closed.ResolvePrices(context.Background(), "d1", []ProductPrice{p})
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestResolvePricesSingleLookup(t *testing.T) {
	lookup := &fakeLookup{discounts: map[string]float64{"d1|c1": 20, "d1|c2": 10, "d2|c1": 50}}
	r := NewResolver(lookup, true, logger.NewNop())

	prices, err := r.ResolvePrices(context.Background(), "d1", []ProductPrice{
		{ID: "a", BasePrice: 1000, CategoryID: strPtr("c1")},
		{ID: "b", BasePrice: 200, CategoryID: strPtr("c2")},
		{ID: "c", BasePrice: 300, CategoryID: strPtr("c3")},
		{ID: "d", BasePrice: 400},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"a": 800, "b": 180, "c": 300, "d": 400}, prices)
	assert.Equal(t, 1, lookup.calls)
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals([]Line{
		{UnitPrice: 800, Quantity: 2},
		{UnitPrice: 500, Quantity: 1},
	})
	assert.Equal(t, Totals{Subtotal: 2100, GSTAmount: 378, TotalAmount: 2478}, totals)

	totals = ComputeTotals([]Line{{UnitPrice: 19.99, Quantity: 3}})
	assert.Equal(t, 59.97, totals.Subtotal)
	assert.Equal(t, 10.79, totals.GSTAmount) // 10.7946
	assert.Equal(t, 70.76, totals.TotalAmount)

	assert.Equal(t, Totals{}, ComputeTotals(nil))
}
