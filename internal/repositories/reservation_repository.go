package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"tablebook/internal/models"
)

type ReservationFilter struct {
	RestaurantID int64
	Date         string // YYYY-MM-DD
	UserID       int64  // 0 — без фильтра (для персонала)
}

type ReservationRepository interface {
	Create(res *models.Reservation) error
	GetByID(id int64) (*models.Reservation, error)
	Exists(id int64) (bool, error)
	List(filter ReservationFilter) ([]*models.Reservation, error)
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
	// FindConflict ищет pending/confirmed бронь того же стола в окне ±2 часа.
	FindConflict(tableID int64, at time.Time, excludeID int64) (*models.Reservation, error)
	ExpirePending(before time.Time) (int64, error)
}

type reservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{DB: db}
}

func (r *reservationRepository) Create(res *models.Reservation) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("create reservation: begin: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO reservations (user_id, table_id, date_time, status, price_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	if err := tx.QueryRow(q,
		res.UserID, res.TableID, res.DateTime, res.Status, res.PriceCents,
	).Scan(&res.ID, &res.CreatedAt); err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}

	for _, f := range res.Foods {
		if _, err := tx.Exec(`
			INSERT INTO food_reservation (reservation_id, food_id, quantity, created_at)
			VALUES ($1, $2, $3, NOW())`,
			res.ID, f.FoodID, f.Quantity,
		); err != nil {
			return fmt.Errorf("attach reservation food: %w", err)
		}
	}
	return tx.Commit()
}

func (r *reservationRepository) GetByID(id int64) (*models.Reservation, error) {
	const q = `
		SELECT id, user_id, table_id, date_time, status, price_cents, created_at
		FROM reservations WHERE id = $1
	`
	var res models.Reservation
	if err := r.DB.QueryRow(q, id).Scan(
		&res.ID, &res.UserID, &res.TableID, &res.DateTime, &res.Status, &res.PriceCents, &res.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if err := r.loadFoods(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) loadFoods(res *models.Reservation) error {
	const q = `
		SELECT fr.food_id, f.name, f.price_cents, fr.quantity
		FROM food_reservation fr
		JOIN foods f ON f.id = fr.food_id
		WHERE fr.reservation_id = $1
	`
	rows, err := r.DB.Query(q, res.ID)
	if err != nil {
		return fmt.Errorf("load reservation foods: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var f models.ReservationFood
		if err := rows.Scan(&f.FoodID, &f.Name, &f.PriceCents, &f.Quantity); err != nil {
			return fmt.Errorf("scan reservation food: %w", err)
		}
		res.Foods = append(res.Foods, f)
	}
	return rows.Err()
}

func (r *reservationRepository) Exists(id int64) (bool, error) {
	var ok bool
	if err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM reservations WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("reservation exists: %w", err)
	}
	return ok, nil
}

func (r *reservationRepository) List(filter ReservationFilter) ([]*models.Reservation, error) {
	q := `
		SELECT res.id, res.user_id, res.table_id, res.date_time, res.status, res.price_cents, res.created_at
		FROM reservations res
		JOIN tables t ON t.id = res.table_id
		WHERE 1=1
	`
	args := []interface{}{}
	if filter.RestaurantID != 0 {
		args = append(args, filter.RestaurantID)
		q += fmt.Sprintf(" AND t.restaurant_id = $%d", len(args))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		q += fmt.Sprintf(" AND res.date_time::date = $%d::date", len(args))
	}
	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		q += fmt.Sprintf(" AND res.user_id = $%d", len(args))
	}
	q += " ORDER BY res.date_time DESC"

	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var out []*models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.TableID, &res.DateTime, &res.Status, &res.PriceCents, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, res := range out {
		if err := r.loadFoods(res); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *reservationRepository) UpdateStatus(id int64, status string) error {
	if _, err := r.DB.Exec(`UPDATE reservations SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	return nil
}

func (r *reservationRepository) Delete(id int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("delete reservation: begin: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM food_reservation WHERE reservation_id = $1`, id); err != nil {
		return fmt.Errorf("delete reservation foods: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM reservations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	return tx.Commit()
}

func (r *reservationRepository) FindConflict(tableID int64, at time.Time, excludeID int64) (*models.Reservation, error) {
	const q = `
		SELECT id, user_id, table_id, date_time, status, price_cents, created_at
		FROM reservations
		WHERE table_id = $1
		  AND date_time BETWEEN $2 AND $3
		  AND status IN ('pending', 'confirmed')
		  AND id <> $4
		LIMIT 1
	`
	var res models.Reservation
	if err := r.DB.QueryRow(q, tableID, at.Add(-2*time.Hour), at.Add(2*time.Hour), excludeID).Scan(
		&res.ID, &res.UserID, &res.TableID, &res.DateTime, &res.Status, &res.PriceCents, &res.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find reservation conflict: %w", err)
	}
	return &res, nil
}

func (r *reservationRepository) ExpirePending(before time.Time) (int64, error) {
	resu, err := r.DB.Exec(
		`UPDATE reservations SET status = 'expired' WHERE status = 'pending' AND date_time < $1`,
		before,
	)
	if err != nil {
		return 0, fmt.Errorf("expire pending reservations: %w", err)
	}
	n, _ := resu.RowsAffected()
	return n, nil
}
