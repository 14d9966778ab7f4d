package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"tablebook/internal/models"
)

type FoodRepository interface {
	Create(food *models.Food) error
	GetByID(id int64) (*models.Food, error)
	GetByIDs(ids []int64) ([]*models.Food, error)
	List() ([]*models.Food, error)
	Update(food *models.Food) error
	Delete(id int64) error
}

type foodRepository struct {
	DB *sql.DB
}

func NewFoodRepository(db *sql.DB) FoodRepository {
	return &foodRepository{DB: db}
}

func (r *foodRepository) Create(food *models.Food) error {
	const q = `
		INSERT INTO foods (name, image_url, calories, ingredients, price_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		food.Name, food.ImageURL, food.Calories, food.Ingredients, food.PriceCents,
	).Scan(&food.ID, &food.CreatedAt); err != nil {
		return fmt.Errorf("create food: %w", err)
	}
	return nil
}

func (r *foodRepository) GetByID(id int64) (*models.Food, error) {
	const q = `
		SELECT id, name, image_url, calories, ingredients, price_cents, created_at
		FROM foods WHERE id = $1
	`
	var f models.Food
	if err := r.DB.QueryRow(q, id).Scan(
		&f.ID, &f.Name, &f.ImageURL, &f.Calories, &f.Ingredients, &f.PriceCents, &f.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get food: %w", err)
	}
	return &f, nil
}

func (r *foodRepository) GetByIDs(ids []int64) ([]*models.Food, error) {
	const q = `
		SELECT id, name, image_url, calories, ingredients, price_cents, created_at
		FROM foods WHERE id = ANY($1)
	`
	rows, err := r.DB.Query(q, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("get foods by ids: %w", err)
	}
	return scanFoods(rows)
}

func (r *foodRepository) List() ([]*models.Food, error) {
	const q = `
		SELECT id, name, image_url, calories, ingredients, price_cents, created_at
		FROM foods ORDER BY name
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return scanFoods(rows)
}

func scanFoods(rows *sql.Rows) ([]*models.Food, error) {
	defer rows.Close()
	var out []*models.Food
	for rows.Next() {
		var f models.Food
		if err := rows.Scan(
			&f.ID, &f.Name, &f.ImageURL, &f.Calories, &f.Ingredients, &f.PriceCents, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

func (r *foodRepository) Update(food *models.Food) error {
	const q = `
		UPDATE foods
		SET name = $1, image_url = $2, calories = $3, ingredients = $4, price_cents = $5
		WHERE id = $6
	`
	if _, err := r.DB.Exec(q,
		food.Name, food.ImageURL, food.Calories, food.Ingredients, food.PriceCents, food.ID,
	); err != nil {
		return fmt.Errorf("update food: %w", err)
	}
	return nil
}

func (r *foodRepository) Delete(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM foods WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	return nil
}
