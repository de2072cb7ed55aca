package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility/dto"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type fakeRepo struct {
	hiddenCategories []model.DealerHiddenCategory
	hiddenProducts   []model.DealerHiddenProduct
	replaced         bool
}

func (f *fakeRepo) HideCategory(_ context.Context, h *model.DealerHiddenCategory) error {
	f.hiddenCategories = append(f.hiddenCategories, *h)
	return nil
}
func (f *fakeRepo) UnhideCategory(context.Context, string, string) error { return nil }
func (f *fakeRepo) HideProduct(_ context.Context, h *model.DealerHiddenProduct) error {
	f.hiddenProducts = append(f.hiddenProducts, *h)
	return nil
}
func (f *fakeRepo) UnhideProduct(context.Context, string, string) error { return nil }
func (f *fakeRepo) IsCategoryHidden(context.Context, string, string) (bool, error) {
	return false, nil
}
func (f *fakeRepo) IsProductHidden(context.Context, string, string) (bool, error) {
	return false, nil
}
func (f *fakeRepo) FindHiddenCategories(context.Context, string) ([]model.DealerHiddenCategory, error) {
	return f.hiddenCategories, nil
}
func (f *fakeRepo) FindHiddenProducts(context.Context, string) ([]model.DealerHiddenProduct, error) {
	return f.hiddenProducts, nil
}
func (f *fakeRepo) ReplaceForDealer(_ context.Context, _ string, c []model.DealerHiddenCategory, p []model.DealerHiddenProduct) error {
	f.replaced = true
	f.hiddenCategories = c
	f.hiddenProducts = p
	return nil
}

type fakeDealers map[string]*model.Dealer

func (f fakeDealers) FindByID(_ context.Context, id string) (*model.Dealer, error) { return f[id], nil }

type fakeCategories map[string]*model.Category

func (f fakeCategories) FindByID(_ context.Context, id string) (*model.Category, error) {
	return f[id], nil
}

type fakeProducts map[string]*model.Product

func (f fakeProducts) FindByID(_ context.Context, id string) (*model.Product, error) {
	return f[id], nil
}

type countingCache struct{ invalidations int }

func (c *countingCache) InvalidateCatalog(context.Context) { c.invalidations++ }

func newTestUseCase() (*visibilityUseCase, *fakeRepo, *countingCache) {
	repo := &fakeRepo{}
	cache := &countingCache{}
	uc := NewVisibilityUseCase(
		repo,
		fakeDealers{
			"d1":       {BaseModel: model.BaseModel{ID: "d1"}, IsActive: true},
			"inactive": {BaseModel: model.BaseModel{ID: "inactive"}, IsActive: false},
		},
		fakeCategories{
			"c1":  {BaseModel: model.BaseModel{ID: "c1"}, IsActive: true},
			"off": {BaseModel: model.BaseModel{ID: "off"}, IsActive: false},
		},
		fakeProducts{"p1": {BaseModel: model.BaseModel{ID: "p1"}}},
		cache,
		logger.NewNop(),
	)
	return uc.(*visibilityUseCase), repo, cache
}

func TestHideCategory(t *testing.T) {
	tests := []struct {
		name  string
		input dto.CategoryVisibilityInput
		kind  apperror.Kind
		ok    bool
	}{
		{"hides", dto.CategoryVisibilityInput{DealerID: "d1", CategoryID: "c1"}, 0, true},
		{"missing fields", dto.CategoryVisibilityInput{DealerID: "d1"}, apperror.KindValidation, false},
		{"unknown dealer", dto.CategoryVisibilityInput{DealerID: "nope", CategoryID: "c1"}, apperror.KindNotFound, false},
		{"inactive dealer", dto.CategoryVisibilityInput{DealerID: "inactive", CategoryID: "c1"}, apperror.KindNotFound, false},
		{"unknown category", dto.CategoryVisibilityInput{DealerID: "d1", CategoryID: "nope"}, apperror.KindNotFound, false},
		{"inactive category", dto.CategoryVisibilityInput{DealerID: "d1", CategoryID: "off"}, apperror.KindNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, cache := newTestUseCase()
			err := uc.HideCategory(context.Background(), &tt.input)
			if tt.ok {
				require.NoError(t, err)
				require.Len(t, repo.hiddenCategories, 1)
				assert.Equal(t, "c1", repo.hiddenCategories[0].CategoryID)
				assert.Equal(t, 1, cache.invalidations)
				return
			}
			assert.Equal(t, tt.kind, apperror.KindOf(err))
			assert.Empty(t, repo.hiddenCategories)
			assert.Zero(t, cache.invalidations)
		})
	}
}

func TestHideProductUnknown(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	err := uc.HideProduct(context.Background(), &dto.ProductVisibilityInput{DealerID: "d1", ProductID: "ghost"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Empty(t, repo.hiddenProducts)

	require.NoError(t, uc.HideProduct(context.Background(), &dto.ProductVisibilityInput{DealerID: "d1", ProductID: "p1"}))
	assert.Len(t, repo.hiddenProducts, 1)
}

func TestReplaceDealerVisibility(t *testing.T) {
	uc, repo, cache := newTestUseCase()

	v, err := uc.ReplaceDealerVisibility(context.Background(), &dto.ReplaceVisibilityInput{
		DealerID:         "d1",
		HiddenCategories: []string{"c1", "c1", " "},
		HiddenProducts:   []string{"p1"},
	})
	require.NoError(t, err)
	assert.True(t, repo.replaced)
	assert.Len(t, v.HiddenCategories, 1)
	assert.Len(t, v.HiddenProducts, 1)
	assert.Equal(t, 1, cache.invalidations)
}

func TestReplaceDealerVisibilityRejectsUnknownIDs(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	_, err := uc.ReplaceDealerVisibility(context.Background(), &dto.ReplaceVisibilityInput{
		DealerID:         "d1",
		HiddenCategories: []string{"c1", "ghost"},
	})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.False(t, repo.replaced)
}
