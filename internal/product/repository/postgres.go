package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility"
)

const (
	productColumns = `p.id, p.category_id, p.name, p.description, p.base_price, p.is_active,
        p.image_urls, p.datasheet_url, p.product_url, p.created_at, p.updated_at, p.deleted_at,
        c.name AS category_name`
	productFrom = "products p LEFT JOIN categories c ON c.id = p.category_id"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, category_id, name, description, base_price, is_active,
            image_urls, datasheet_url, product_url, created_at, updated_at
        )
        VALUES (
            :id, :category_id, :name, :description, :base_price, :is_active,
            :image_urls, :datasheet_url, :product_url, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	if !model.ValidID(id) {
		return nil, nil
	}
	var product model.Product
	query := "SELECT " + productColumns + " FROM " + productFrom + " WHERE p.id = $1 AND p.deleted_at IS NULL LIMIT 1"
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	products := []model.Product{}
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if model.ValidID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return products, nil
	}
	query := "SELECT " + productColumns + " FROM " + productFrom + " WHERE p.id = ANY($1) AND p.deleted_at IS NULL"
	if err := r.DB.SelectContext(ctx, &products, query, pq.Array(valid)); err != nil {
		return nil, err
	}
	return products, nil
}

func ListSpec() listquery.Spec {
	return listquery.Spec{
		Select:       productColumns,
		From:         productFrom,
		SearchColumn: "p.name",
		IDColumn:     "p.id",
		Sortable: map[string]string{
			"name":       "p.name",
			"base_price": "p.base_price",
			"created_at": "p.created_at",
		},
		Filterable: map[string]string{
			"category_id": "p.category_id",
			"is_active":   "p.is_active",
		},
		FilterTypes: map[string]listquery.FilterType{
			"category_id": listquery.FilterID,
			"is_active":   listquery.FilterBool,
		},
		DefaultSort:  "created_at",
		DefaultOrder: "desc",
		Conditions:   []string{"p.deleted_at IS NULL"},
	}
}

// CatalogSpec lists what one dealer may order: active, not deleted, not hidden.
func CatalogSpec(dealerID string) listquery.Spec {
	conditions := []string{"p.deleted_at IS NULL", "p.is_active = true"}
	conditions = append(conditions, visibility.CatalogConditions("p.id", "p.category_id")...)

	return listquery.Spec{
		Select:       productColumns,
		From:         productFrom,
		SearchColumn: "p.name",
		IDColumn:     "p.id",
		Sortable: map[string]string{
			"name":       "p.name",
			"base_price": "p.base_price",
		},
		Filterable: map[string]string{
			"category_id": "p.category_id",
		},
		FilterTypes: map[string]listquery.FilterType{
			"category_id": listquery.FilterID,
		},
		DefaultSort: "name",
		Conditions:  conditions,
		Args:        map[string]interface{}{visibility.DealerArg: dealerID},
	}
}

func (r *PGRepository) FindAll(ctx context.Context, params listquery.Params) (*listquery.Result[model.Product], error) {
	return listquery.Run[model.Product](ctx, r.DB, ListSpec(), params)
}

func (r *PGRepository) FindCatalog(ctx context.Context, dealerID string, params listquery.Params) (*listquery.Result[model.Product], error) {
	return listquery.Run[model.Product](ctx, r.DB, CatalogSpec(dealerID), params)
}

func (r *PGRepository) Search(ctx context.Context, term string, limit int) ([]model.Product, error) {
	products := []model.Product{}
	query := "SELECT " + productColumns + " FROM " + productFrom +
		` WHERE p.deleted_at IS NULL AND p.name ILIKE $1 ESCAPE '\' ORDER BY p.name ASC, p.id ASC LIMIT $2`
	if err := r.DB.SelectContext(ctx, &products, query, "%"+listquery.EscapeLike(term)+"%", limit); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET category_id = :category_id,
            name = :name,
            description = :description,
            base_price = :base_price,
            is_active = :is_active,
            image_urls = :image_urls,
            datasheet_url = :datasheet_url,
            product_url = :product_url,
            updated_at = :updated_at
        WHERE id = :id AND deleted_at IS NULL
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE products SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)
	return err
}
