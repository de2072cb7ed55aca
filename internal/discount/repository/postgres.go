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

const discountColumns = `
        dd.id, dd.dealer_id, dd.category_id, dd.discount_percentage, dd.created_at, dd.updated_at,
        d.name AS dealer_name, d.company_name, c.name AS category_name
    `

const discountFrom = `
        dealer_category_discounts dd
        LEFT JOIN dealers d ON d.id = dd.dealer_id
        LEFT JOIN categories c ON c.id = dd.category_id
    `

const upsertDiscount = `
        INSERT INTO dealer_category_discounts (id, dealer_id, category_id, discount_percentage, created_at, updated_at)
        VALUES (:id, :dealer_id, :category_id, :discount_percentage, :created_at, :updated_at)
        ON CONFLICT (dealer_id, category_id)
        DO UPDATE SET discount_percentage = EXCLUDED.discount_percentage, updated_at = EXCLUDED.updated_at
        RETURNING id, created_at
    `

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Upsert(ctx context.Context, d *model.DealerCategoryDiscount) error {
	stmt, err := r.DB.PrepareNamedContext(ctx, upsertDiscount)
	if err != nil {
		return err
	}
	defer stmt.Close()
	return stmt.GetContext(ctx, d, d)
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.DealerCategoryDiscount, error) {
	if !model.ValidID(id) {
		return nil, nil
	}
	var d model.DealerCategoryDiscount
	query := "SELECT " + discountColumns + " FROM " + discountFrom + " WHERE dd.id = $1 LIMIT 1"
	err := r.DB.GetContext(ctx, &d, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func ListSpec() listquery.Spec {
	return listquery.Spec{
		Select:       discountColumns,
		From:         discountFrom,
		SearchColumn: "d.name",
		IDColumn:     "dd.id",
		Sortable: map[string]string{
			"discount_percentage": "dd.discount_percentage",
			"created_at":          "dd.created_at",
			"dealer_name":         "d.name",
			"category_name":       "c.name",
		},
		Filterable: map[string]string{
			"dealer_id":   "dd.dealer_id",
			"category_id": "dd.category_id",
		},
		FilterTypes: map[string]listquery.FilterType{
			"dealer_id":   listquery.FilterID,
			"category_id": listquery.FilterID,
		},
		DefaultSort:  "created_at",
		DefaultOrder: "desc",
		Conditions:   []string{"d.deleted_at IS NULL", "c.deleted_at IS NULL"},
	}
}

func (r *PGRepository) FindAll(ctx context.Context, params listquery.Params) (*listquery.Result[model.DealerCategoryDiscount], error) {
	return listquery.Run[model.DealerCategoryDiscount](ctx, r.DB, ListSpec(), params)
}

func (r *PGRepository) FindByDealer(ctx context.Context, dealerID string) ([]model.DealerCategoryDiscount, error) {
	discounts := []model.DealerCategoryDiscount{}
	query := "SELECT " + discountColumns + " FROM " + discountFrom + " WHERE dd.dealer_id = $1 ORDER BY c.name ASC"
	if err := r.DB.SelectContext(ctx, &discounts, query, dealerID); err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *PGRepository) ReplaceForDealer(ctx context.Context, dealerID string, discounts []model.DealerCategoryDiscount) error {
	insert := `
        INSERT INTO dealer_category_discounts (id, dealer_id, category_id, discount_percentage, created_at, updated_at)
        VALUES (:id, :dealer_id, :category_id, :discount_percentage, :created_at, :updated_at)
    `
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM dealer_category_discounts WHERE dealer_id = $1", dealerID); err != nil {
			return err
		}
		for i := range discounts {
			if _, err := tx.NamedExecContext(ctx, insert, &discounts[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	if !model.ValidID(id) {
		return nil
	}
	_, err := r.DB.ExecContext(ctx, "DELETE FROM dealer_category_discounts WHERE id = $1", id)
	return err
}

func (r *PGRepository) FindPercentage(ctx context.Context, dealerID, categoryID string) (float64, bool, error) {
	var pct float64
	query := `SELECT discount_percentage FROM dealer_category_discounts WHERE dealer_id = $1 AND category_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &pct, query, dealerID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return pct, true, nil
}

func (r *PGRepository) FindPercentagesByDealer(ctx context.Context, dealerID string) (map[string]float64, error) {
	var rows []struct {
		CategoryID string  `db:"category_id"`
		Percentage float64 `db:"discount_percentage"`
	}
	query := `SELECT category_id, discount_percentage FROM dealer_category_discounts WHERE dealer_id = $1`
	if err := r.DB.SelectContext(ctx, &rows, query, dealerID); err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.CategoryID] = row.Percentage
	}
	return out, nil
}
