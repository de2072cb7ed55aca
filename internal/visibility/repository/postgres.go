package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/pkg/postgres"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertHiddenCategory = `
        INSERT INTO dealer_hidden_categories (id, dealer_id, category_id, created_at)
        VALUES (:id, :dealer_id, :category_id, :created_at)
        ON CONFLICT (dealer_id, category_id) DO NOTHING
    `

const insertHiddenProduct = `
        INSERT INTO dealer_hidden_products (id, dealer_id, product_id, created_at)
        VALUES (:id, :dealer_id, :product_id, :created_at)
        ON CONFLICT (dealer_id, product_id) DO NOTHING
    `

func (r *PGRepository) HideCategory(ctx context.Context, h *model.DealerHiddenCategory) error {
	_, err := r.DB.NamedExecContext(ctx, insertHiddenCategory, h)
	return err
}

func (r *PGRepository) UnhideCategory(ctx context.Context, dealerID, categoryID string) error {
	if !model.ValidID(dealerID) || !model.ValidID(categoryID) {
		return nil
	}
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM dealer_hidden_categories WHERE dealer_id = $1 AND category_id = $2", dealerID, categoryID)
	return err
}

func (r *PGRepository) HideProduct(ctx context.Context, h *model.DealerHiddenProduct) error {
	_, err := r.DB.NamedExecContext(ctx, insertHiddenProduct, h)
	return err
}

func (r *PGRepository) UnhideProduct(ctx context.Context, dealerID, productID string) error {
	if !model.ValidID(dealerID) || !model.ValidID(productID) {
		return nil
	}
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM dealer_hidden_products WHERE dealer_id = $1 AND product_id = $2", dealerID, productID)
	return err
}

func (r *PGRepository) IsCategoryHidden(ctx context.Context, dealerID, categoryID string) (bool, error) {
	var hidden bool
	query := `SELECT EXISTS (SELECT 1 FROM dealer_hidden_categories WHERE dealer_id = $1 AND category_id = $2)`
	err := r.DB.GetContext(ctx, &hidden, query, dealerID, categoryID)
	return hidden, err
}

func (r *PGRepository) IsProductHidden(ctx context.Context, dealerID, productID string) (bool, error) {
	var hidden bool
	query := `SELECT EXISTS (SELECT 1 FROM dealer_hidden_products WHERE dealer_id = $1 AND product_id = $2)`
	err := r.DB.GetContext(ctx, &hidden, query, dealerID, productID)
	return hidden, err
}

func (r *PGRepository) FindHiddenCategories(ctx context.Context, dealerID string) ([]model.DealerHiddenCategory, error) {
	hidden := []model.DealerHiddenCategory{}
	query := `
        SELECT hc.id, hc.dealer_id, hc.category_id, hc.created_at, c.name AS category_name
        FROM dealer_hidden_categories hc
        LEFT JOIN categories c ON c.id = hc.category_id
        WHERE hc.dealer_id = $1
        ORDER BY c.name ASC
    `
	if err := r.DB.SelectContext(ctx, &hidden, query, dealerID); err != nil {
		return nil, err
	}
	return hidden, nil
}

func (r *PGRepository) FindHiddenProducts(ctx context.Context, dealerID string) ([]model.DealerHiddenProduct, error) {
	hidden := []model.DealerHiddenProduct{}
	query := `
        SELECT hp.id, hp.dealer_id, hp.product_id, hp.created_at, p.name AS product_name
        FROM dealer_hidden_products hp
        LEFT JOIN products p ON p.id = hp.product_id
        WHERE hp.dealer_id = $1
        ORDER BY p.name ASC
    `
	if err := r.DB.SelectContext(ctx, &hidden, query, dealerID); err != nil {
		return nil, err
	}
	return hidden, nil
}

func (r *PGRepository) ReplaceForDealer(ctx context.Context, dealerID string, categories []model.DealerHiddenCategory, products []model.DealerHiddenProduct) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM dealer_hidden_categories WHERE dealer_id = $1", dealerID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM dealer_hidden_products WHERE dealer_id = $1", dealerID); err != nil {
			return err
		}
		for i := range categories {
			if _, err := tx.NamedExecContext(ctx, insertHiddenCategory, &categories[i]); err != nil {
				return err
			}
		}
		for i := range products {
			if _, err := tx.NamedExecContext(ctx, insertHiddenProduct, &products[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
