package repositories

import (
	"database/sql"
	"fmt"

	"tablebook/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ListByRole(role string) ([]*models.User, error)
	ListAll() ([]*models.User, error)
	SetBlocked(id int64, blocked bool) error
	Delete(id int64) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, email, password_hash, role, is_blocked, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		user.Name, user.Email, user.PasswordHash, user.Role, user.IsBlocked,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int64) (*models.User, error) {
	const q = `
		SELECT id, name, email, password_hash, role, is_blocked, created_at
		FROM users WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, name, email, password_hash, role, is_blocked, created_at
		FROM users WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRow(q, email))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsBlocked, &u.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// списки для админки — сразу со счётчиками броней и платежей
const listQ = `
	SELECT u.id, u.name, u.email, u.password_hash, u.role, u.is_blocked, u.created_at,
	       (SELECT COUNT(*) FROM reservations r WHERE r.user_id = u.id),
	       (SELECT COUNT(*) FROM payments p WHERE p.user_id = u.id)
	FROM users u
`

func (r *userRepository) ListByRole(role string) ([]*models.User, error) {
	rows, err := r.DB.Query(listQ+` WHERE u.role = $1 ORDER BY u.created_at DESC`, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return scanUsers(rows)
}

func (r *userRepository) ListAll() ([]*models.User, error) {
	rows, err := r.DB.Query(listQ + ` ORDER BY u.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return scanUsers(rows)
}

func scanUsers(rows *sql.Rows) ([]*models.User, error) {
	defer rows.Close()
	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsBlocked, &u.CreatedAt,
			&u.ReservationsCount, &u.PaymentsCount,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *userRepository) SetBlocked(id int64, blocked bool) error {
	if _, err := r.DB.Exec(`UPDATE users SET is_blocked = $1 WHERE id = $2`, blocked, id); err != nil {
		return fmt.Errorf("set user blocked: %w", err)
	}
	return nil
}

// Delete удаляет пользователя вместе с его бронями.
// Платежи остаются: FK user_id/reservation_id обнуляются (ON DELETE SET NULL).
func (r *userRepository) Delete(id int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("delete user: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM food_reservation WHERE reservation_id IN (SELECT id FROM reservations WHERE user_id = $1)`, id); err != nil {
		return fmt.Errorf("delete user foods: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM reservations WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("delete user reservations: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return tx.Commit()
}
