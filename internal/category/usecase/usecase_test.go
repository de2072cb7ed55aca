package usecase

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/category/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type fakeRepo struct {
	categories map[string]*model.Category
	createErr  error
}

func (f *fakeRepo) Create(_ context.Context, c *model.Category) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) FindAll(context.Context, listquery.Params) (*listquery.Result[model.Category], error) {
	return nil, apperror.Validation("unsupported sort field")
}

func (f *fakeRepo) FindVisible(context.Context, string) ([]model.Category, error) {
	return nil, nil
}

func (f *fakeRepo) Update(_ context.Context, c *model.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id string) error {
	now := f.categories[id].CreatedAt
	f.categories[id].DeletedAt = &now
	return nil
}

type countingCache struct{ n int }

func (c *countingCache) InvalidateCatalog(context.Context) { c.n++ }

func TestCategoryLifecycle(t *testing.T) {
	repo := &fakeRepo{categories: map[string]*model.Category{}}
	cache := &countingCache{}
	uc := NewCategoryUseCase(repo, cache, logger.NewNop())
	ctx := context.Background()

	_, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "  "})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: " Brakes "})
	require.NoError(t, err)
	assert.Equal(t, "Brakes", cat.Name)
	assert.True(t, cat.IsActive)

	inactive := false
	updated, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: cat.ID, IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Brakes", updated.Name)

	require.NoError(t, uc.DeleteCategory(ctx, cat.ID))
	_, err = uc.GetCategory(ctx, cat.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	err = uc.DeleteCategory(ctx, cat.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	assert.Equal(t, 3, cache.n)
}

func TestCreateCategoryDuplicate(t *testing.T) {
	repo := &fakeRepo{categories: map[string]*model.Category{}, createErr: &pq.Error{Code: "23505"}}
	uc := NewCategoryUseCase(repo, &countingCache{}, logger.NewNop())

	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "Brakes"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestListCategoriesKeepsValidationErrors(t *testing.T) {
	uc := NewCategoryUseCase(&fakeRepo{}, &countingCache{}, logger.NewNop())

	_, err := uc.ListCategories(context.Background(), listquery.Params{SortBy: "bogus"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
