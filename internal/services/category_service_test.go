package services

import (
	"context"
	"errors"
	"testing"

	"taskhub/internal/models"
)

func TestCategoryGetByIDScopedToOwner(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(3)) // category 3 belongs to user 1

	category, err := svc.GetByID(context.Background(), 3, 1)
	if err != nil || category == nil {
		t.Fatalf("owner lookup failed: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), 3, 2); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("foreign lookup should read as not found, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), 99, 1); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("missing category should read as not found, got %v", err)
	}
}

func TestCategoryUpdateScopedToOwner(t *testing.T) {
	repo := newFakeCategoryRepo(3)
	svc := NewCategoryService(repo)

	if _, err := svc.Update(context.Background(), 3, 2, &models.Category{Name: "Invadida"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("foreign update should read as not found, got %v", err)
	}
	if repo.categories[3].Name != "cat-3" {
		t.Errorf("foreign update mutated the category: %q", repo.categories[3].Name)
	}

	updated, err := svc.Update(context.Background(), 3, 1, &models.Category{Name: "Trabalho"})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Name != "Trabalho" {
		t.Errorf("Name = %q", updated.Name)
	}
}

func TestCategoryDeleteScopedToOwner(t *testing.T) {
	repo := newFakeCategoryRepo(3)
	svc := NewCategoryService(repo)

	if err := svc.Delete(context.Background(), 3, 2); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("foreign delete should read as not found, got %v", err)
	}
	if _, ok := repo.categories[3]; !ok {
		t.Fatal("foreign delete must not remove the category")
	}

	if err := svc.Delete(context.Background(), 3, 1); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}
