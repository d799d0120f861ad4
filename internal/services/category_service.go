package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// ErrCategoryNotFound covers both a missing row and a category owned by
// another user; callers never learn which.
var ErrCategoryNotFound = errors.New("categoria não encontrada")

// CategoryService handles the category CRUD. Categories carry no business
// rules beyond a required name; tasks only reference them by id. Per-id
// operations are scoped to the authenticated owner.
type CategoryService interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	GetByID(ctx context.Context, id, userID int64) (*models.Category, error)
	GetAll(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error)
	Update(ctx context.Context, id, userID int64, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id, userID int64) error
}

type categoryService struct {
	repo repositories.CategoryRepository
}

func NewCategoryService(repo repositories.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, fmt.Errorf("o nome da categoria é obrigatório")
	}
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := s.repo.Store(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id, userID int64) (*models.Category, error) {
	return s.findOwned(ctx, id, userID)
}

func (s *categoryService) GetAll(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *categoryService) Update(ctx context.Context, id, userID int64, updateData *models.Category) (*models.Category, error) {
	existing, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(updateData.Name); name != "" {
		existing.Name = name
	}
	existing.Color = updateData.Color
	existing.Description = updateData.Description
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *categoryService) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.findOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *categoryService) findOwned(ctx context.Context, id, userID int64) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil || category.UserID != userID {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}
