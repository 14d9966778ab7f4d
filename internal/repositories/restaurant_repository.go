package repositories

import (
	"database/sql"
	"fmt"

	"tablebook/internal/models"
)

type RestaurantRepository interface {
	Create(rest *models.Restaurant) error
	GetByID(id int64) (*models.Restaurant, error)
	List() ([]*models.Restaurant, error)
	Update(rest *models.Restaurant) error
	Delete(id int64) error
}

type restaurantRepository struct {
	DB *sql.DB
}

func NewRestaurantRepository(db *sql.DB) RestaurantRepository {
	return &restaurantRepository{DB: db}
}

func (r *restaurantRepository) Create(rest *models.Restaurant) error {
	const q = `
		INSERT INTO restaurants (name, address, description, layout_data, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	layout := rest.LayoutData
	if len(layout) == 0 {
		layout = nil
	}
	if err := r.DB.QueryRow(q, rest.Name, rest.Address, rest.Description, layout).
		Scan(&rest.ID, &rest.CreatedAt); err != nil {
		return fmt.Errorf("create restaurant: %w", err)
	}
	return nil
}

func (r *restaurantRepository) GetByID(id int64) (*models.Restaurant, error) {
	const q = `
		SELECT r.id, r.name, r.address, r.description, r.layout_data, r.created_at,
		       (SELECT COUNT(*) FROM tables t WHERE t.restaurant_id = r.id)
		FROM restaurants r WHERE r.id = $1
	`
	var rest models.Restaurant
	if err := r.DB.QueryRow(q, id).Scan(
		&rest.ID, &rest.Name, &rest.Address, &rest.Description, &rest.LayoutData,
		&rest.CreatedAt, &rest.TablesCount,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return &rest, nil
}

func (r *restaurantRepository) List() ([]*models.Restaurant, error) {
	const q = `
		SELECT r.id, r.name, r.address, r.description, r.layout_data, r.created_at,
		       (SELECT COUNT(*) FROM tables t WHERE t.restaurant_id = r.id)
		FROM restaurants r
		ORDER BY r.created_at DESC
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var out []*models.Restaurant
	for rows.Next() {
		var rest models.Restaurant
		if err := rows.Scan(
			&rest.ID, &rest.Name, &rest.Address, &rest.Description, &rest.LayoutData,
			&rest.CreatedAt, &rest.TablesCount,
		); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, &rest)
	}
	return out, rows.Err()
}

func (r *restaurantRepository) Update(rest *models.Restaurant) error {
	const q = `
		UPDATE restaurants
		SET name = $1, address = $2, description = $3, layout_data = $4
		WHERE id = $5
	`
	if _, err := r.DB.Exec(q, rest.Name, rest.Address, rest.Description, rest.LayoutData, rest.ID); err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	return nil
}

// Delete удаляет ресторан вместе со столами и их бронями.
func (r *restaurantRepository) Delete(id int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("delete restaurant: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM food_reservation WHERE reservation_id IN (
		SELECT res.id FROM reservations res
		JOIN tables t ON t.id = res.table_id WHERE t.restaurant_id = $1)`, id); err != nil {
		return fmt.Errorf("delete restaurant reservation foods: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM reservations WHERE table_id IN (
		SELECT id FROM tables WHERE restaurant_id = $1)`, id); err != nil {
		return fmt.Errorf("delete restaurant reservations: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tables WHERE restaurant_id = $1`, id); err != nil {
		return fmt.Errorf("delete restaurant tables: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM restaurants WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	return tx.Commit()
}
