package notification

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(n Notification) (Notification, error) {
	var userID interface{}
	if n.UserID != nil {
		userID = *n.UserID
	}
	err := r.db.QueryRow(`INSERT INTO notifications (user_id, message, type, link, is_read, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING notification_id`,
		userID, n.Message, n.Type, n.Link, n.IsRead, n.CreatedAt).Scan(&n.ID)
	if err != nil {
		return Notification{}, err
	}
	return n, nil
}

func (r *PostgresRepository) ListForUser(userID int, isAdmin bool, limit int) ([]Notification, error) {
	query := `SELECT notification_id, user_id, message, type, link, is_read, created_at
		FROM notifications WHERE user_id = $1`
	if isAdmin {
		query = `SELECT notification_id, user_id, message, type, link, is_read, created_at
		FROM notifications WHERE user_id = $1 OR user_id IS NULL`
	}
	query += ` ORDER BY is_read ASC, created_at DESC LIMIT $2`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		var uid sql.NullInt64
		if err := rows.Scan(&n.ID, &uid, &n.Message, &n.Type, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		if uid.Valid {
			v := int(uid.Int64)
			n.UserID = &v
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) MarkRead(id int) error {
	res, err := r.db.Exec(`UPDATE notifications SET is_read = true WHERE notification_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM notifications WHERE notification_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
