package usecase

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/dealer"
	"github.com/fekuna/omnipos-dealer-service/internal/dealer/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
	"github.com/fekuna/omnipos-dealer-service/pkg/postgres"
)

type dealerUseCase struct {
	repo   dealer.Repository
	logger logger.ZapLogger
}

func NewDealerUseCase(repo dealer.Repository, log logger.ZapLogger) dealer.UseCase {
	return &dealerUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *dealerUseCase) CreateDealer(ctx context.Context, input *dto.CreateDealerInput) (*model.Dealer, error) {
	name := strings.TrimSpace(input.Name)
	company := strings.TrimSpace(input.CompanyName)
	email := normalizeEmail(input.Email)
	phone := optional(input.Phone)

	if name == "" || company == "" || input.Password == "" {
		return nil, apperror.Validation("name, company_name and password are required")
	}
	if email == nil && phone == nil {
		return nil, apperror.Validation("email or phone is required")
	}

	taken, err := uc.repo.IdentityTaken(ctx, email, phone, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if taken {
		return nil, apperror.Conflict("a user with this email or phone already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	user := &model.User{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         model.RoleDealer,
		IsActive:     true,
	}
	d := &model.Dealer{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		UserID:      user.ID,
		Name:        name,
		CompanyName: company,
		Address:     optional(input.Address),
		Email:       email,
		Phone:       phone,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, user, d); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperror.Conflict("a user with this email or phone already exists")
		}
		return nil, apperror.Internal(err)
	}

	uc.logger.Info("dealer created", zap.String("dealer_id", d.ID), zap.String("user_id", user.ID))
	return d, nil
}

func (uc *dealerUseCase) GetDealer(ctx context.Context, id string) (*model.Dealer, error) {
	d, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if d == nil {
		return nil, apperror.NotFound("dealer not found")
	}
	return d, nil
}

func (uc *dealerUseCase) ListDealers(ctx context.Context, params listquery.Params) (*listquery.Result[model.Dealer], error) {
	res, err := uc.repo.FindAll(ctx, params)
	if err != nil {
		return nil, apperror.From(err)
	}
	return res, nil
}

func (uc *dealerUseCase) UpdateDealer(ctx context.Context, input *dto.UpdateDealerInput) (*model.Dealer, error) {
	d, err := uc.GetDealer(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	user, err := uc.repo.FindUser(ctx, d.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("dealer not found")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.Validation("name cannot be empty")
		}
		d.Name = strings.TrimSpace(*input.Name)
	}
	if input.CompanyName != nil {
		if strings.TrimSpace(*input.CompanyName) == "" {
			return nil, apperror.Validation("company_name cannot be empty")
		}
		d.CompanyName = strings.TrimSpace(*input.CompanyName)
	}
	if input.Address != nil {
		d.Address = optional(*input.Address)
	}

	identityChanged := false
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
		identityChanged = true
	}
	if input.Phone != nil {
		user.Phone = optional(*input.Phone)
		identityChanged = true
	}
	if user.Email == nil && user.Phone == nil {
		return nil, apperror.Validation("email or phone is required")
	}
	if identityChanged {
		taken, err := uc.repo.IdentityTaken(ctx, user.Email, user.Phone, user.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if taken {
			return nil, apperror.Conflict("a user with this email or phone already exists")
		}
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.PasswordHash = string(hash)
	}

	now := time.Now()
	user.UpdatedAt = now
	d.UpdatedAt = now

	if err := uc.repo.Update(ctx, user, d); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperror.Conflict("a user with this email or phone already exists")
		}
		return nil, apperror.Internal(err)
	}

	d.Email = user.Email
	d.Phone = user.Phone
	d.IsActive = user.IsActive
	return d, nil
}

func (uc *dealerUseCase) DeleteDealer(ctx context.Context, id string) error {
	if _, err := uc.GetDealer(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NotFound("dealer not found")
		}
		return apperror.Internal(err)
	}
	uc.logger.Info("dealer deleted", zap.String("dealer_id", id))
	return nil
}

func normalizeEmail(s string) *string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	return &s
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
