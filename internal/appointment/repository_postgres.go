package appointment

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const appointmentColumns = `appointment_id, user_id, pet_name, pet_photo, contact_phone,
		date_requested, status, confirmed_date, notes, created_at, updated_at`

func scanAppointment(row interface{ Scan(...interface{}) error }) (Appointment, error) {
	var a Appointment
	var confirmed, notes sql.NullString
	err := row.Scan(&a.ID, &a.UserID, &a.PetName, &a.PetPhoto, &a.ContactPhone,
		&a.DateRequested, &a.Status, &confirmed, &notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Appointment{}, err
	}
	a.ConfirmedDate = confirmed.String
	a.Notes = notes.String
	return a, nil
}

func (r *PostgresRepository) Create(a Appointment) (Appointment, error) {
	err := r.db.QueryRow(`INSERT INTO appointments (user_id, pet_name, pet_photo, contact_phone,
			date_requested, status, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING appointment_id`,
		a.UserID, a.PetName, a.PetPhoto, a.ContactPhone,
		a.DateRequested, a.Status, a.Notes, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	if err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (r *PostgresRepository) GetByID(id int) (Appointment, error) {
	a, err := scanAppointment(r.db.QueryRow(`SELECT `+appointmentColumns+` FROM appointments WHERE appointment_id = $1`, id))
	if err == sql.ErrNoRows {
		return Appointment{}, ErrNotFound
	}
	if err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (r *PostgresRepository) ListAll() ([]Appointment, error) {
	rows, err := r.db.Query(`SELECT ` + appointmentColumns + ` FROM appointments ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(id int, a Appointment) (Appointment, error) {
	var confirmed interface{}
	if a.ConfirmedDate != "" {
		confirmed = a.ConfirmedDate
	}
	res, err := r.db.Exec(`UPDATE appointments
		SET status = $1, confirmed_date = $2, notes = $3, updated_at = $4
		WHERE appointment_id = $5`,
		a.Status, confirmed, a.Notes, a.UpdatedAt, id)
	if err != nil {
		return Appointment{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Appointment{}, ErrNotFound
	}
	a.ID = id
	return a, nil
}
