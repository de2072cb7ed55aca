package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, is_active, created_at, updated_at)
        VALUES (:id, :name, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	if !model.ValidID(id) {
		return nil, nil
	}
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 AND deleted_at IS NULL LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func ListSpec() listquery.Spec {
	return listquery.Spec{
		Select:       "*",
		From:         "categories",
		SearchColumn: "name",
		IDColumn:     "id",
		Sortable: map[string]string{
			"name":       "name",
			"created_at": "created_at",
		},
		Filterable: map[string]string{
			"is_active": "is_active",
		},
		FilterTypes: map[string]listquery.FilterType{
			"is_active": listquery.FilterBool,
		},
		DefaultSort: "name",
		Conditions:  []string{"deleted_at IS NULL"},
	}
}

func (r *PGRepository) FindAll(ctx context.Context, params listquery.Params) (*listquery.Result[model.Category], error) {
	return listquery.Run[model.Category](ctx, r.DB, ListSpec(), params)
}

func (r *PGRepository) FindVisible(ctx context.Context, dealerID string) ([]model.Category, error) {
	categories := []model.Category{}
	query := "SELECT c.* FROM categories c WHERE c.is_active = true AND c.deleted_at IS NULL AND " +
		visibility.CategoryCondition("c.id") + " ORDER BY c.name ASC, c.id ASC"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &categories, map[string]interface{}{visibility.DealerArg: dealerID})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND deleted_at IS NULL
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE categories SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)
	return err
}
