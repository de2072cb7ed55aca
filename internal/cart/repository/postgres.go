package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByDealer(ctx context.Context, dealerID string) ([]model.CartItem, error) {
	items := []model.CartItem{}
	query := `
        SELECT ci.id, ci.dealer_id, ci.product_id, ci.quantity, ci.price_at_addition,
               ci.created_at, ci.updated_at,
               p.name AS product_name, p.base_price, p.category_id,
               p.is_active AS product_is_active, p.deleted_at AS product_deleted_at
        FROM dealer_cart_items ci
        JOIN products p ON p.id = ci.product_id
        WHERE ci.dealer_id = $1
        ORDER BY ci.created_at ASC, ci.id ASC
    `
	if err := r.DB.SelectContext(ctx, &items, query, dealerID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) Upsert(ctx context.Context, item *model.CartItem) error {
	query := `
        INSERT INTO dealer_cart_items (id, dealer_id, product_id, quantity, price_at_addition, created_at, updated_at)
        VALUES (:id, :dealer_id, :product_id, :quantity, :price_at_addition, :created_at, :updated_at)
        ON CONFLICT (dealer_id, product_id)
        DO UPDATE SET quantity = EXCLUDED.quantity,
                      price_at_addition = EXCLUDED.price_at_addition,
                      updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *PGRepository) UpdateLine(ctx context.Context, dealerID, productID string, quantity int, price float64) (bool, error) {
	query := `
        UPDATE dealer_cart_items
        SET quantity = $3, price_at_addition = $4, updated_at = NOW()
        WHERE dealer_id = $1 AND product_id = $2
    `
	res, err := r.DB.ExecContext(ctx, query, dealerID, productID, quantity, price)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete is a no-op for ids that cannot match a row.
func (r *PGRepository) Delete(ctx context.Context, dealerID, productID string) error {
	if !model.ValidID(productID) {
		return nil
	}
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM dealer_cart_items WHERE dealer_id = $1 AND product_id = $2", dealerID, productID)
	return err
}

func (r *PGRepository) Clear(ctx context.Context, dealerID string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM dealer_cart_items WHERE dealer_id = $1", dealerID)
	return err
}
