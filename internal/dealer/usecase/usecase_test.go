package usecase

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/dealer/dto"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

type fakeRepo struct {
	users     map[string]*model.User
	dealers   map[string]*model.Dealer
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*model.User{}, dealers: map[string]*model.Dealer{}}
}

func (f *fakeRepo) Create(_ context.Context, u *model.User, d *model.Dealer) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[u.ID] = u
	f.dealers[d.ID] = d
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*model.Dealer, error) {
	d, ok := f.dealers[id]
	if !ok || d.DeletedAt != nil {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) FindByUserID(_ context.Context, userID string) (*model.Dealer, error) {
	for _, d := range f.dealers {
		if d.UserID == userID && d.DeletedAt == nil {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindUser(_ context.Context, userID string) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) FindAll(context.Context, listquery.Params) (*listquery.Result[model.Dealer], error) {
	return &listquery.Result[model.Dealer]{}, nil
}

func (f *fakeRepo) Update(_ context.Context, u *model.User, d *model.Dealer) error {
	f.users[u.ID] = u
	f.dealers[d.ID] = d
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id string) error {
	d := f.dealers[id]
	now := d.CreatedAt
	d.DeletedAt = &now
	f.users[d.UserID].IsActive = false
	return nil
}

func (f *fakeRepo) IdentityTaken(_ context.Context, email, phone *string, excludeUserID string) (bool, error) {
	for _, u := range f.users {
		if u.ID == excludeUserID {
			continue
		}
		if email != nil && u.Email != nil && *u.Email == *email {
			return true, nil
		}
		if phone != nil && u.Phone != nil && *u.Phone == *phone {
			return true, nil
		}
	}
	return false, nil
}

func strPtr(s string) *string { return &s }

func TestCreateDealer(t *testing.T) {
	repo := newFakeRepo()
	uc := NewDealerUseCase(repo, logger.NewNop())

	d, err := uc.CreateDealer(context.Background(), &dto.CreateDealerInput{
		Name:        "Budi",
		Email:       " Budi@Example.com ",
		CompanyName: "Budi Motor",
		Password:    "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", *d.Email)
	assert.True(t, d.IsActive)

	u := repo.users[d.UserID]
	require.NotNil(t, u)
	assert.Equal(t, model.RoleDealer, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
}

func TestCreateDealerValidation(t *testing.T) {
	tests := []struct {
		name  string
		input dto.CreateDealerInput
		kind  apperror.Kind
	}{
		{"missing name", dto.CreateDealerInput{Email: "a@b.c", CompanyName: "X", Password: "p"}, apperror.KindValidation},
		{"missing company", dto.CreateDealerInput{Name: "A", Email: "a@b.c", Password: "p"}, apperror.KindValidation},
		{"missing password", dto.CreateDealerInput{Name: "A", Email: "a@b.c", CompanyName: "X"}, apperror.KindValidation},
		{"no email or phone", dto.CreateDealerInput{Name: "A", CompanyName: "X", Password: "p"}, apperror.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewDealerUseCase(newFakeRepo(), logger.NewNop())
			_, err := uc.CreateDealer(context.Background(), &tt.input)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}
}

func TestCreateDealerDuplicateIdentity(t *testing.T) {
	repo := newFakeRepo()
	uc := NewDealerUseCase(repo, logger.NewNop())
	ctx := context.Background()

	_, err := uc.CreateDealer(ctx, &dto.CreateDealerInput{Name: "A", Phone: "0812", CompanyName: "X", Password: "p"})
	require.NoError(t, err)

	_, err = uc.CreateDealer(ctx, &dto.CreateDealerInput{Name: "B", Phone: "0812", CompanyName: "Y", Password: "p"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	// A unique index violation that slips past the pre-check is still a conflict.
	repo.createErr = &pq.Error{Code: "23505"}
	_, err = uc.CreateDealer(ctx, &dto.CreateDealerInput{Name: "C", Phone: "0899", CompanyName: "Z", Password: "p"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestUpdateDealer(t *testing.T) {
	repo := newFakeRepo()
	uc := NewDealerUseCase(repo, logger.NewNop())
	ctx := context.Background()

	a, err := uc.CreateDealer(ctx, &dto.CreateDealerInput{Name: "A", Email: "a@x.com", CompanyName: "X", Password: "p"})
	require.NoError(t, err)
	_, err = uc.CreateDealer(ctx, &dto.CreateDealerInput{Name: "B", Email: "b@x.com", CompanyName: "Y", Password: "p"})
	require.NoError(t, err)

	inactive := false
	updated, err := uc.UpdateDealer(ctx, &dto.UpdateDealerInput{
		ID:          a.ID,
		CompanyName: strPtr("X Group"),
		IsActive:    &inactive,
		Password:    strPtr("new-pass"),
	})
	require.NoError(t, err)
	assert.Equal(t, "X Group", updated.CompanyName)
	assert.False(t, updated.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[a.UserID].PasswordHash), []byte("new-pass")))

	_, err = uc.UpdateDealer(ctx, &dto.UpdateDealerInput{ID: a.ID, Email: strPtr("b@x.com")})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = uc.UpdateDealer(ctx, &dto.UpdateDealerInput{ID: a.ID, Name: strPtr("  ")})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = uc.UpdateDealer(ctx, &dto.UpdateDealerInput{ID: "missing", Name: strPtr("Z")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteDealer(t *testing.T) {
	repo := newFakeRepo()
	uc := NewDealerUseCase(repo, logger.NewNop())
	ctx := context.Background()

	d, err := uc.CreateDealer(ctx, &dto.CreateDealerInput{Name: "A", Email: "a@x.com", CompanyName: "X", Password: "p"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteDealer(ctx, d.ID))
	assert.False(t, repo.users[d.UserID].IsActive)

	_, err = uc.GetDealer(ctx, d.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	err = uc.DeleteDealer(ctx, d.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
