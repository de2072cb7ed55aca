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

const orderColumns = `
        o.id, o.dealer_id, o.subtotal, o.gst_amount, o.total_amount, o.order_status,
        o.created_at, o.updated_at, d.name AS dealer_name, d.company_name
    `

const orderFrom = `orders o LEFT JOIN dealers d ON d.id = o.dealer_id`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) error {
	orderQuery := `
        INSERT INTO orders (id, dealer_id, subtotal, gst_amount, total_amount, order_status, created_at, updated_at)
        VALUES (:id, :dealer_id, :subtotal, :gst_amount, :total_amount, :order_status, :created_at, :updated_at)
    `
	itemQuery := `
        INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price_at_order, created_at)
        VALUES (:id, :order_id, :product_id, :product_name, :quantity, :price_at_order, :created_at)
    `
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, orderQuery, o); err != nil {
			return err
		}
		for i := range items {
			if _, err := tx.NamedExecContext(ctx, itemQuery, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	if !model.ValidID(id) {
		return nil, nil
	}
	var o model.Order
	query := "SELECT " + orderColumns + " FROM " + orderFrom + " WHERE o.id = $1 LIMIT 1"
	err := r.DB.GetContext(ctx, &o, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	query := `
        SELECT id, order_id, product_id, product_name, quantity, price_at_order, created_at
        FROM order_items
        WHERE order_id = $1
        ORDER BY created_at ASC, id ASC
    `
	if err := r.DB.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, err
	}
	return items, nil
}

// ListSpec is the admin order list. Search matches the order id.
func ListSpec() listquery.Spec {
	return listquery.Spec{
		Select:       orderColumns,
		From:         orderFrom,
		SearchColumn: "CAST(o.id AS TEXT)",
		IDColumn:     "o.id",
		Sortable: map[string]string{
			"created_at":   "o.created_at",
			"total_amount": "o.total_amount",
			"order_status": "o.order_status",
			"dealer_name":  "d.name",
		},
		Filterable: map[string]string{
			"order_status": "o.order_status",
			"dealer_id":    "o.dealer_id",
		},
		FilterTypes: map[string]listquery.FilterType{
			"dealer_id": listquery.FilterID,
		},
		DefaultSort:  "created_at",
		DefaultOrder: "desc",
	}
}

// DealerListSpec restricts ListSpec to one dealer's orders.
func DealerListSpec(dealerID string) listquery.Spec {
	spec := ListSpec()
	delete(spec.Filterable, "dealer_id")
	delete(spec.FilterTypes, "dealer_id")
	spec.Conditions = []string{"o.dealer_id = :dealer_id"}
	spec.Args = map[string]interface{}{"dealer_id": dealerID}
	return spec
}

func (r *PGRepository) FindByDealer(ctx context.Context, dealerID string, params listquery.Params) (*listquery.Result[model.Order], error) {
	return listquery.Run[model.Order](ctx, r.DB, DealerListSpec(dealerID), params)
}

func (r *PGRepository) FindAll(ctx context.Context, params listquery.Params) (*listquery.Result[model.Order], error) {
	return listquery.Run[model.Order](ctx, r.DB, ListSpec(), params)
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET order_status = $3, updated_at = NOW() WHERE id = $1 AND order_status = $2`,
		id, from, to)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
