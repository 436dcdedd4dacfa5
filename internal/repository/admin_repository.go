package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"charitysite/internal/entity"
)

var ErrNotFound = errors.New("not found")

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByEmail(email string) (entity.Admin, error) {
	var a entity.Admin

	err := r.db.QueryRow(`
		SELECT id, name, email, password_hash, role, created_at
		FROM admins
		WHERE email = $1
	`, email).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	if err != nil {
		return a, fmt.Errorf("get admin by email: %w", err)
	}

	return a, nil
}

func (r *AdminRepository) GetByID(id string) (entity.Admin, error) {
	var a entity.Admin

	err := r.db.QueryRow(`
		SELECT id, name, email, password_hash, role, created_at
		FROM admins
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	if err != nil {
		return a, fmt.Errorf("get admin by id: %w", err)
	}

	return a, nil
}

func (r *AdminRepository) Insert(a entity.Admin) error {
	_, err := r.db.Exec(`
		INSERT INTO admins (id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, a.Name, a.Email, a.PasswordHash, a.Role, a.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all accounts for the manage-admins page, oldest first.
func (r *AdminRepository) List() ([]entity.Admin, error) {
	rows, err := r.db.Query(`
		SELECT id, name, email, password_hash, role, created_at
		FROM admins
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var admins []entity.Admin
	for rows.Next() {
		var a entity.Admin
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
			return admins, err
		}
		admins = append(admins, a)
	}

	if err := rows.Err(); err != nil {
		return admins, err
	}
	return admins, nil
}
