package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/pkg/postgres"
)

const selectDealer = `
        SELECT d.id, d.user_id, d.name, d.company_name, d.address, d.deleted_at,
               d.created_at, d.updated_at, u.email, u.phone, u.is_active
        FROM dealers d
        JOIN users u ON u.id = d.user_id
    `

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User, d *model.Dealer) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		userQuery := `
            INSERT INTO users (id, email, phone, password_hash, role, is_active, created_at, updated_at)
            VALUES (:id, :email, :phone, :password_hash, :role, :is_active, :created_at, :updated_at)
        `
		if _, err := tx.NamedExecContext(ctx, userQuery, u); err != nil {
			return err
		}
		dealerQuery := `
            INSERT INTO dealers (id, user_id, name, company_name, address, created_at, updated_at)
            VALUES (:id, :user_id, :name, :company_name, :address, :created_at, :updated_at)
        `
		_, err := tx.NamedExecContext(ctx, dealerQuery, d)
		return err
	})
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Dealer, error) {
	if !model.ValidID(id) {
		return nil, nil
	}
	return r.findOne(ctx, selectDealer+" WHERE d.id = $1 AND d.deleted_at IS NULL LIMIT 1", id)
}

func (r *PGRepository) FindByUserID(ctx context.Context, userID string) (*model.Dealer, error) {
	return r.findOne(ctx, selectDealer+" WHERE d.user_id = $1 AND d.deleted_at IS NULL LIMIT 1", userID)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg string) (*model.Dealer, error) {
	var dealer model.Dealer
	err := r.DB.GetContext(ctx, &dealer, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &dealer, nil
}

func (r *PGRepository) FindUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.DB.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1 LIMIT 1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func ListSpec() listquery.Spec {
	return listquery.Spec{
		Select: `d.id, d.user_id, d.name, d.company_name, d.address, d.deleted_at,
               d.created_at, d.updated_at, u.email, u.phone, u.is_active`,
		From:         "dealers d JOIN users u ON u.id = d.user_id",
		SearchColumn: "d.name",
		IDColumn:     "d.id",
		Sortable: map[string]string{
			"name":         "d.name",
			"company_name": "d.company_name",
			"created_at":   "d.created_at",
		},
		Filterable: map[string]string{
			"is_active":    "u.is_active",
			"company_name": "d.company_name",
		},
		FilterTypes: map[string]listquery.FilterType{
			"is_active": listquery.FilterBool,
		},
		DefaultSort:  "created_at",
		DefaultOrder: "desc",
		Conditions:   []string{"d.deleted_at IS NULL"},
	}
}

func (r *PGRepository) FindAll(ctx context.Context, params listquery.Params) (*listquery.Result[model.Dealer], error) {
	return listquery.Run[model.Dealer](ctx, r.DB, ListSpec(), params)
}

func (r *PGRepository) Update(ctx context.Context, u *model.User, d *model.Dealer) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		userQuery := `
            UPDATE users
            SET email = :email,
                phone = :phone,
                password_hash = :password_hash,
                is_active = :is_active,
                updated_at = :updated_at
            WHERE id = :id
        `
		if _, err := tx.NamedExecContext(ctx, userQuery, u); err != nil {
			return err
		}
		dealerQuery := `
            UPDATE dealers
            SET name = :name,
                company_name = :company_name,
                address = :address,
                updated_at = :updated_at
            WHERE id = :id AND deleted_at IS NULL
        `
		_, err := tx.NamedExecContext(ctx, dealerQuery, d)
		return err
	})
}

func (r *PGRepository) SoftDelete(ctx context.Context, id string) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		var userID string
		err := tx.GetContext(ctx, &userID,
			`UPDATE dealers SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL RETURNING user_id`, id)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `UPDATE users SET is_active = false, updated_at = NOW() WHERE id = $1`, userID)
		return err
	})
}

func (r *PGRepository) IdentityTaken(ctx context.Context, email, phone *string, excludeUserID string) (bool, error) {
	var count int
	query := `
        SELECT count(*) FROM users
        WHERE (($1::text IS NOT NULL AND lower(email) = lower($1)) OR ($2::text IS NOT NULL AND phone = $2))
          AND ($3 = '' OR id::text <> $3)
    `
	if err := r.DB.GetContext(ctx, &count, query, email, phone, excludeUserID); err != nil {
		return false, err
	}
	return count > 0, nil
}
