package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"charitysite/internal/entity"

	"github.com/lib/pq"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Insert(a entity.Activity) error {
	_, err := r.db.Exec(`
		INSERT INTO activities (id, title, description, youtube_link, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.Title, a.Description, nullable(a.YoutubeLink), imagesValue(a.Images), a.CreatedAt, a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) Update(a entity.Activity) error {
	res, err := r.db.Exec(`
		UPDATE activities
		SET title = $2, description = $3, youtube_link = $4, images = $5, updated_at = $6
		WHERE id = $1
	`, a.ID, a.Title, a.Description, nullable(a.YoutubeLink), imagesValue(a.Images), a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ActivityRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ActivityRepository) GetByID(id string) (entity.Activity, error) {
	var a entity.Activity
	var link sql.NullString
	var images pq.StringArray

	err := r.db.QueryRow(`
		SELECT id, title, description, youtube_link, images, created_at, updated_at
		FROM activities
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Title, &a.Description, &link, &images, &a.CreatedAt, &a.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	if err != nil {
		return a, fmt.Errorf("get activity: %w", err)
	}

	a.YoutubeLink = link.String
	a.Images = images
	return a, nil
}

// List returns activities newest first.
func (r *ActivityRepository) List() ([]entity.Activity, error) {
	rows, err := r.db.Query(`
		SELECT id, title, description, youtube_link, images, created_at, updated_at
		FROM activities
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []entity.Activity
	for rows.Next() {
		var a entity.Activity
		var link sql.NullString
		var images pq.StringArray

		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &link, &images, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return activities, err
		}

		a.YoutubeLink = link.String
		a.Images = images
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return activities, err
	}
	return activities, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// imagesValue keeps the column NULL rather than an empty array when an
// activity has no photos.
func imagesValue(images []string) interface{} {
	if len(images) == 0 {
		return nil
	}
	return pq.Array(images)
}
