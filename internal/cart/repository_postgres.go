package cart

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/huellitas/pet-shop-backend/internal/product"
	"github.com/huellitas/pet-shop-backend/internal/user"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const getCartQuery = `
	SELECT product_id, name, price, description, image, stock, category, created_at, updated_at
	FROM product
	WHERE product_id = ANY($1::int[])
	ORDER BY array_position($1::int[], product_id)
`

func (r *PostgresRepository) loadCartMap(userID int) (map[string]int, error) {
	var raw sql.NullString
	if err := r.db.QueryRow(`SELECT cart FROM users WHERE user_id = $1`, userID).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}
		return nil, err
	}

	m := make(map[string]int)
	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (r *PostgresRepository) AddToCart(userID int, productID int, qty int, updatedAt string) ([]CartItem, error) {
	m, err := r.loadCartMap(userID)
	if err != nil {
		return nil, err
	}

	key := strconv.Itoa(productID)
	newQty := m[key] + qty
	if newQty <= 0 {
		delete(m, key)
	} else {
		m[key] = newQty
	}

	updatedCart, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.Exec(`UPDATE users SET cart = $1, updated_at = $2 WHERE user_id = $3`,
		string(updatedCart), updatedAt, userID); err != nil {
		return nil, err
	}

	return r.GetCart(userID)
}

func (r *PostgresRepository) GetCart(userID int) ([]CartItem, error) {
	m, err := r.loadCartMap(userID)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return []CartItem{}, nil
	}

	ids := make([]int, 0, len(m))
	for k := range m {
		if pid, err := strconv.Atoi(k); err == nil {
			ids = append(ids, pid)
		}
	}

	rows, err := r.db.Query(getCartQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CartItem, 0, len(ids))
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.Stock, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, CartItem{Product: p, Quantity: m[strconv.Itoa(p.ID)]})
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Clear(userID int, updatedAt string) error {
	res, err := r.db.Exec(`UPDATE users SET cart = '{}', updated_at = $1 WHERE user_id = $2`, updatedAt, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}
	return nil
}
