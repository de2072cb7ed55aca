package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/category"
	"github.com/fekuna/omnipos-dealer-service/internal/category/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
	"github.com/fekuna/omnipos-dealer-service/pkg/postgres"
)

type CacheInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

type categoryUseCase struct {
	repo   category.Repository
	cache  CacheInvalidator
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, cache CacheInvalidator, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     name,
		IsActive: true,
	}
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperror.Conflict("category name already exists")
		}
		return nil, apperror.Internal(err)
	}

	uc.cache.InvalidateCatalog(ctx)
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if cat == nil {
		return nil, apperror.NotFound("category not found")
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, params listquery.Params) (*listquery.Result[model.Category], error) {
	res, err := uc.repo.FindAll(ctx, params)
	if err != nil {
		return nil, apperror.From(err)
	}
	return res, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.Validation("name cannot be empty")
		}
		cat.Name = name
	}
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperror.Conflict("category name already exists")
		}
		return nil, apperror.Internal(err)
	}

	uc.cache.InvalidateCatalog(ctx)
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.GetCategory(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return apperror.Internal(err)
	}

	uc.cache.InvalidateCatalog(ctx)
	uc.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}

func (uc *categoryUseCase) ListDealerCategories(ctx context.Context, dealerID string) ([]model.Category, error) {
	categories, err := uc.repo.FindVisible(ctx, dealerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}
