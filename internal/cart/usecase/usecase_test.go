package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/cart/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/pricing"
	prodrepo "github.com/fekuna/omnipos-dealer-service/internal/product/repository"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type fakeRepo struct {
	lines map[string]*model.CartItem // keyed by product id, single dealer
}

func (f *fakeRepo) FindByDealer(_ context.Context, dealerID string) ([]model.CartItem, error) {
	var out []model.CartItem
	for _, id := range []string{"a", "b", "hidden", "off", "gone"} {
		if l, ok := f.lines[id]; ok && l.DealerID == dealerID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepo) Upsert(_ context.Context, item *model.CartItem) error {
	cp := *item
	f.lines[item.ProductID] = &cp
	return nil
}

func (f *fakeRepo) UpdateLine(_ context.Context, _, productID string, quantity int, price float64) (bool, error) {
	l, ok := f.lines[productID]
	if !ok {
		return false, nil
	}
	l.Quantity = quantity
	l.PriceAtAddition = price
	return true, nil
}

func (f *fakeRepo) Delete(_ context.Context, _, productID string) error {
	delete(f.lines, productID)
	return nil
}

func (f *fakeRepo) Clear(context.Context, string) error {
	f.lines = map[string]*model.CartItem{}
	return nil
}

type fakeProducts map[string]*model.Product

func (f fakeProducts) FindByID(_ context.Context, id string) (*model.Product, error) { return f[id], nil }

type fakeDiscounts map[string]float64

func (f fakeDiscounts) FindPercentage(_ context.Context, _, categoryID string) (float64, bool, error) {
	pct, ok := f[categoryID]
	return pct, ok, nil
}

func (f fakeDiscounts) FindPercentagesByDealer(context.Context, string) (map[string]float64, error) {
	return f, nil
}

type fakeVisibility struct {
	categories []string
	products   []string
}

func (f fakeVisibility) IsVisible(_ context.Context, _ string, item visibility.Item) (bool, error) {
	return !visibility.NewHiddenSet(f.categories, f.products).Hides(item), nil
}

func (f fakeVisibility) Load(context.Context, string) (*visibility.HiddenSet, error) {
	return visibility.NewHiddenSet(f.categories, f.products), nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func catalog() fakeProducts {
	return fakeProducts{
		"a":      {BaseModel: model.BaseModel{ID: "a"}, Name: "A", BasePrice: 1000, CategoryID: strPtr("c1"), IsActive: true},
		"b":      {BaseModel: model.BaseModel{ID: "b"}, Name: "B", BasePrice: 500, CategoryID: strPtr("c2"), IsActive: true},
		"hidden": {BaseModel: model.BaseModel{ID: "hidden"}, Name: "H", BasePrice: 10, CategoryID: strPtr("secret"), IsActive: true},
		"off":    {BaseModel: model.BaseModel{ID: "off"}, Name: "Off", BasePrice: 10, IsActive: false},
	}
}

func newTestUseCase(hiddenCategories ...string) (*cartUseCase, *fakeRepo) {
	repo := &fakeRepo{lines: map[string]*model.CartItem{}}
	uc := NewCartUseCase(
		repo,
		catalog(),
		pricing.NewResolver(fakeDiscounts{"c1": 20}, true, logger.NewNop()),
		fakeVisibility{categories: hiddenCategories},
		logger.NewNop(),
	)
	return uc.(*cartUseCase), repo
}

func TestAddItemCapturesResolvedPrice(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()

	require.NoError(t, uc.AddItem(ctx, "d1", &dto.AddItemInput{ProductID: "a", Quantity: 2}))
	require.NoError(t, uc.AddItem(ctx, "d1", &dto.AddItemInput{ProductID: "a", Quantity: 5}))

	require.Len(t, repo.lines, 1)
	assert.Equal(t, 5, repo.lines["a"].Quantity)
	assert.Equal(t, 800.0, repo.lines["a"].PriceAtAddition)
}

func TestAddItemRejects(t *testing.T) {
	tests := []struct {
		name  string
		input dto.AddItemInput
		kind  apperror.Kind
	}{
		{"zero quantity", dto.AddItemInput{ProductID: "a", Quantity: 0}, apperror.KindValidation},
		{"missing product id", dto.AddItemInput{Quantity: 1}, apperror.KindValidation},
		{"unknown product", dto.AddItemInput{ProductID: "nope", Quantity: 1}, apperror.KindNotFound},
		{"inactive product", dto.AddItemInput{ProductID: "off", Quantity: 1}, apperror.KindValidation},
		{"hidden category", dto.AddItemInput{ProductID: "hidden", Quantity: 1}, apperror.KindForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo := newTestUseCase("secret")
			err := uc.AddItem(context.Background(), "d1", &tt.input)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
			assert.Empty(t, repo.lines)
		})
	}
}

func TestAddItemMalformedProductID(t *testing.T) {
	uc, repo := newTestUseCase()
	uc.products = prodrepo.NewPGRepository(nil)

	err := uc.AddItem(context.Background(), "d1", &dto.AddItemInput{ProductID: "abc", Quantity: 1})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Empty(t, repo.lines)
}

func TestGetCartDropsUnavailableLines(t *testing.T) {
	uc, repo := newTestUseCase("secret")
	deleted := time.Now()
	repo.lines = map[string]*model.CartItem{
		"a":      {DealerID: "d1", ProductID: "a", Quantity: 2, PriceAtAddition: 900, BasePrice: 1000, CategoryID: strPtr("c1"), ProductIsActive: true},
		"b":      {DealerID: "d1", ProductID: "b", Quantity: 1, PriceAtAddition: 500, BasePrice: 500, CategoryID: strPtr("c2"), ProductIsActive: true},
		"hidden": {DealerID: "d1", ProductID: "hidden", Quantity: 1, BasePrice: 10, CategoryID: strPtr("secret"), ProductIsActive: true},
		"off":    {DealerID: "d1", ProductID: "off", Quantity: 1, BasePrice: 10, ProductIsActive: false},
		"gone":   {DealerID: "d1", ProductID: "gone", Quantity: 1, BasePrice: 10, ProductIsActive: true, ProductDeletedAt: &deleted},
	}

	view, err := uc.GetCart(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, view.CartItems, 2)
	assert.Equal(t, "a", view.CartItems[0].ProductID)
	assert.Equal(t, 800.0, view.CartItems[0].CurrentDiscountedPrice)
	assert.Equal(t, 900.0, view.CartItems[0].PriceAtAddition)
	assert.Equal(t, 500.0, view.CartItems[1].CurrentDiscountedPrice)

	assert.Equal(t, 2100.0, view.Totals.Subtotal)
	assert.Equal(t, 378.0, view.Totals.GSTAmount)
	assert.Equal(t, 2478.0, view.Totals.TotalAmount)
}

func TestGetCartEmpty(t *testing.T) {
	uc, _ := newTestUseCase()
	view, err := uc.GetCart(context.Background(), "d1")
	require.NoError(t, err)
	assert.NotNil(t, view.CartItems)
	assert.Empty(t, view.CartItems)
	assert.Zero(t, view.Totals.TotalAmount)
}

func TestUpdateItems(t *testing.T) {
	uc, repo := newTestUseCase("secret")
	repo.lines = map[string]*model.CartItem{
		"a":      {DealerID: "d1", ProductID: "a", Quantity: 1, PriceAtAddition: 1000},
		"b":      {DealerID: "d1", ProductID: "b", Quantity: 1, PriceAtAddition: 500},
		"hidden": {DealerID: "d1", ProductID: "hidden", Quantity: 1, PriceAtAddition: 10},
	}

	res, err := uc.UpdateItems(context.Background(), "d1", &dto.UpdateCartInput{Updates: []dto.CartUpdate{
		{ProductID: "a", Quantity: intPtr(3)},
		{ProductID: "b", Remove: true},
		{ProductID: "hidden", Quantity: intPtr(4)},
		{ProductID: "off", Quantity: intPtr(1)},
		{ProductID: "a", Quantity: intPtr(0)},
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, []string{"hidden", "off", "a"}, res.Skipped)
	assert.Equal(t, 3, repo.lines["a"].Quantity)
	assert.Equal(t, 800.0, repo.lines["a"].PriceAtAddition)
	assert.NotContains(t, repo.lines, "b")
	assert.Equal(t, 1, repo.lines["hidden"].Quantity)
}

func TestUpdateItemsRequiresArray(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.UpdateItems(context.Background(), "d1", &dto.UpdateCartInput{})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
