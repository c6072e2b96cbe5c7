package order

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `order_id, user_id, order_items, shipping_address, payment_method,
		items_price, tax_price, shipping_price, total_price,
		is_paid, paid_at, payment_result, is_delivered, delivered_at,
		status, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (Order, error) {
	var ord Order
	var itemsJSON, addressJSON []byte
	var resultJSON []byte
	var paidAt, deliveredAt sql.NullString
	err := row.Scan(&ord.ID, &ord.UserID, &itemsJSON, &addressJSON, &ord.PaymentMethod,
		&ord.ItemsPrice, &ord.TaxPrice, &ord.ShippingPrice, &ord.TotalPrice,
		&ord.IsPaid, &paidAt, &resultJSON, &ord.IsDelivered, &deliveredAt,
		&ord.Status, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(addressJSON, &ord.ShippingAddress); err != nil {
		return Order{}, err
	}
	if len(resultJSON) > 0 {
		var res PaymentResult
		if err := json.Unmarshal(resultJSON, &res); err != nil {
			return Order{}, err
		}
		ord.PaymentResult = &res
	}
	ord.PaidAt = paidAt.String
	ord.DeliveredAt = deliveredAt.String
	return ord, nil
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}
	addressJSON, err := json.Marshal(ord.ShippingAddress)
	if err != nil {
		return Order{}, err
	}

	err = r.db.QueryRow(`INSERT INTO orders (user_id, order_items, shipping_address, payment_method,
			items_price, tax_price, shipping_price, total_price, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING order_id`,
		ord.UserID, itemsJSON, addressJSON, ord.PaymentMethod,
		ord.ItemsPrice, ord.TaxPrice, ord.ShippingPrice, ord.TotalPrice,
		ord.Status, ord.CreatedAt, ord.UpdatedAt).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.list(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_id DESC`, userID)
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	return r.list(`SELECT ` + orderColumns + ` FROM orders ORDER BY order_id DESC`)
}

func (r *PostgresRepository) list(query string, args ...interface{}) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

// ConditionalMarkPaid performs the claim as one conditional UPDATE so that
// concurrent webhook deliveries for the same payment serialize on the
// is_paid flag: exactly one caller gets the updated row back.
func (r *PostgresRepository) ConditionalMarkPaid(id int, paidAt string, result PaymentResult) (*Order, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	ord, err := scanOrder(r.db.QueryRow(`UPDATE orders
		SET is_paid = true, paid_at = $2, payment_result = $3, updated_at = $2
		WHERE order_id = $1 AND is_paid = false
		RETURNING `+orderColumns, id, paidAt, resultJSON))
	if err == sql.ErrNoRows {
		// already paid, or unknown order id
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *PostgresRepository) UpdateStatus(id int, status string, updatedAt string) (Order, error) {
	delivered := status == StatusDelivered
	ord, err := scanOrder(r.db.QueryRow(`UPDATE orders
		SET status = $2, updated_at = $3,
			is_delivered = is_delivered OR $4,
			delivered_at = CASE WHEN $4 AND delivered_at IS NULL THEN $3 ELSE delivered_at END
		WHERE order_id = $1
		RETURNING `+orderColumns, id, status, updatedAt, delivered))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) Stats() (Stats, error) {
	var st Stats
	err := r.db.QueryRow(`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE is_paid),
			COUNT(*) FILTER (WHERE NOT is_paid),
			COALESCE(SUM(total_price) FILTER (WHERE is_paid), 0)
		FROM orders`).
		Scan(&st.TotalOrders, &st.PaidOrders, &st.PendingOrders, &st.TotalRevenue)
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}
