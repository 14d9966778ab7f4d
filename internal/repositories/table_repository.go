package repositories

import (
	"database/sql"
	"fmt"

	"tablebook/internal/models"
)

type TableRepository interface {
	Create(table *models.Table) error
	GetByID(id int64) (*models.Table, error)
	ListByRestaurant(restaurantID int64) ([]*models.Table, error)
	Update(table *models.Table) error
	Delete(id int64) error
	NumberTaken(restaurantID int64, number int, excludeID int64) (bool, error)
}

type tableRepository struct {
	DB *sql.DB
}

func NewTableRepository(db *sql.DB) TableRepository {
	return &tableRepository{DB: db}
}

func (r *tableRepository) Create(table *models.Table) error {
	const q = `
		INSERT INTO tables (restaurant_id, number, seats, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q, table.RestaurantID, table.Number, table.Seats).
		Scan(&table.ID, &table.CreatedAt); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (r *tableRepository) GetByID(id int64) (*models.Table, error) {
	const q = `SELECT id, restaurant_id, number, seats, created_at FROM tables WHERE id = $1`
	var t models.Table
	if err := r.DB.QueryRow(q, id).Scan(&t.ID, &t.RestaurantID, &t.Number, &t.Seats, &t.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get table: %w", err)
	}
	return &t, nil
}

func (r *tableRepository) ListByRestaurant(restaurantID int64) ([]*models.Table, error) {
	const q = `
		SELECT id, restaurant_id, number, seats, created_at
		FROM tables WHERE restaurant_id = $1 ORDER BY number
	`
	rows, err := r.DB.Query(q, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var out []*models.Table
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Number, &t.Seats, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *tableRepository) Update(table *models.Table) error {
	const q = `UPDATE tables SET number = $1, seats = $2 WHERE id = $3`
	if _, err := r.DB.Exec(q, table.Number, table.Seats, table.ID); err != nil {
		return fmt.Errorf("update table: %w", err)
	}
	return nil
}

func (r *tableRepository) Delete(id int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("delete table: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM food_reservation WHERE reservation_id IN (
		SELECT id FROM reservations WHERE table_id = $1)`, id); err != nil {
		return fmt.Errorf("delete table reservation foods: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM reservations WHERE table_id = $1`, id); err != nil {
		return fmt.Errorf("delete table reservations: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tables WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	return tx.Commit()
}

func (r *tableRepository) NumberTaken(restaurantID int64, number int, excludeID int64) (bool, error) {
	const q = `SELECT EXISTS(
		SELECT 1 FROM tables WHERE restaurant_id = $1 AND number = $2 AND id <> $3)`
	var taken bool
	if err := r.DB.QueryRow(q, restaurantID, number, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("table number taken: %w", err)
	}
	return taken, nil
}
