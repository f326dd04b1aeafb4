package service

import (
	"context"
	"fmt"

	"kampuskitap/internal/model"
	"kampuskitap/internal/repository"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories from repo: %w", err)
	}
	return categories, nil
}
