package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/auth"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/session"
	"github.com/fekuna/omnipos-dealer-service/internal/session/dto"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
	"github.com/fekuna/omnipos-dealer-service/pkg/postgres"
)

const invalidCredentials = "invalid credentials"

type DealerFinder interface {
	FindByUserID(ctx context.Context, userID string) (*model.Dealer, error)
}

type sessionUseCase struct {
	repo    session.Repository
	dealers DealerFinder
	tokens  *auth.TokenManager
	logger  logger.ZapLogger
}

func NewSessionUseCase(repo session.Repository, dealers DealerFinder, tokens *auth.TokenManager, log logger.ZapLogger) session.UseCase {
	return &sessionUseCase{
		repo:    repo,
		dealers: dealers,
		tokens:  tokens,
		logger:  log,
	}
}

func (uc *sessionUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" {
		return nil, apperror.Validation("identifier and password are required")
	}

	user, err := uc.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.Unauthorized(invalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.Unauthorized(invalidCredentials)
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("account is inactive")
	}

	sessionUser, err := uc.describe(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(auth.Principal{
		UserID:   user.ID,
		Role:     user.Role,
		DealerID: sessionUser.DealerID,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	uc.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return &dto.LoginResult{Token: token, User: sessionUser}, nil
}

func (uc *sessionUseCase) Me(ctx context.Context, principal *auth.Principal) (*dto.SessionUser, error) {
	user, err := uc.repo.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || !user.IsActive {
		return nil, apperror.Unauthorized("account is inactive")
	}
	return uc.describe(ctx, user)
}

func (uc *sessionUseCase) describe(ctx context.Context, user *model.User) (*dto.SessionUser, error) {
	su := &dto.SessionUser{
		ID:    user.ID,
		Email: user.Email,
		Phone: user.Phone,
		Role:  user.Role,
	}
	if user.Role != model.RoleDealer {
		return su, nil
	}

	d, err := uc.dealers.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if d == nil {
		return nil, apperror.Unauthorized("dealer account not found")
	}
	su.DealerID = d.ID
	su.DealerName = d.Name
	su.CompanyName = d.CompanyName
	return su, nil
}

func (uc *sessionUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	existing, err := uc.repo.FindByIdentifier(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	err = uc.repo.Create(ctx, &model.User{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Email:        &email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	})
	if err != nil && !postgres.IsUniqueViolation(err) {
		return err
	}
	uc.logger.Info("bootstrap admin ensured", zap.String("email", email))
	return nil
}
