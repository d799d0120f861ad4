package repositories

import (
	"context"
	"database/sql"

	"taskhub/internal/models"
)

type CategoryRepository interface {
	Store(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	FindAll(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Store(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (user_id, name, color, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		category.UserID, category.Name, category.Color, category.Description,
		category.CreatedAt, category.UpdatedAt,
	).Scan(&category.ID)
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT id, user_id, name, color, description, created_at, updated_at
	       FROM categories WHERE id = $1`
	category := &models.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.UserID, &category.Name, &category.Color,
		&category.Description, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	query := `SELECT id, user_id, name, color, description, created_at, updated_at FROM categories`
	args := []interface{}{}
	if filter.UserID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *filter.UserID)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Name, &c.Color, &c.Description,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories SET name=$1, color=$2, description=$3, updated_at=$4
		WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query,
		category.Name, category.Color, category.Description, category.UpdatedAt, category.ID,
	)
	return err
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
