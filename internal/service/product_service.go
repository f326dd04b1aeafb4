package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"kampuskitap/internal/logging"
	"kampuskitap/internal/model"
	"kampuskitap/internal/repository"
)

// ProductService defines operations for product listings.
// Callers pass the owner/requesting user id taken from a verified token;
// the service itself does not authenticate.
type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int) (*model.Product, error)
	CreateProduct(ctx context.Context, ownerID int, req model.ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id, requestingUserID int, req model.ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id, requestingUserID int) (*model.Product, error)
}

type productService struct {
	repo repository.ProductRepository
	log  logging.Logger
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository, log logging.Logger) ProductService {
	return &productService{repo: repo, log: log}
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products from repo: %w", err)
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, ownerID int, req model.ProductRequest) (*model.Product, error) {
	in, err := validateProduct(req)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.Create(ctx, ownerID, in)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, invalid("unknown category")
		}
		if errors.Is(err, repository.ErrValueOutOfRange) {
			return nil, invalid("price out of range")
		}
		return nil, fmt.Errorf("failed to create product in repo: %w", err)
	}

	s.log.Info(ctx, "product created", "product_id", product.ID, "user_id", ownerID)
	return product, nil
}

// UpdateProduct replaces the product's fields if requestingUserID owns it.
// A missing product and a foreign product both yield ErrForbidden.
func (s *productService) UpdateProduct(ctx context.Context, id, requestingUserID int, req model.ProductRequest) (*model.Product, error) {
	in, err := validateProduct(req)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.Update(ctx, id, requestingUserID, in)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, invalid("unknown category")
		}
		if errors.Is(err, repository.ErrValueOutOfRange) {
			return nil, invalid("price out of range")
		}
		return nil, fmt.Errorf("failed to update product in repo: %w", err)
	}
	if product == nil {
		s.log.Warn(ctx, "product update refused", "product_id", id, "user_id", requestingUserID)
		return nil, ErrForbidden
	}

	s.log.Info(ctx, "product updated", "product_id", id, "user_id", requestingUserID)
	return product, nil
}

// DeleteProduct removes the product if requestingUserID owns it and returns the removed record
func (s *productService) DeleteProduct(ctx context.Context, id, requestingUserID int) (*model.Product, error) {
	product, err := s.repo.Delete(ctx, id, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product in repo: %w", err)
	}
	if product == nil {
		s.log.Warn(ctx, "product delete refused", "product_id", id, "user_id", requestingUserID)
		return nil, ErrForbidden
	}

	s.log.Info(ctx, "product deleted", "product_id", id, "user_id", requestingUserID)
	return product, nil
}

func validateProduct(req model.ProductRequest) (model.ProductInput, error) {
	in := model.ProductInput{
		Title:       strings.TrimSpace(req.Title),
		Description: emptyToNil(req.Description),
		ImageURL:    emptyToNil(req.ImageURL),
	}
	if in.Title == "" {
		return in, invalid("title is required")
	}

	priceStr := strings.TrimSpace(req.Price.String())
	if priceStr == "" {
		return in, invalid("price is required")
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return in, invalid("price must be a number")
	}
	if price < 0 {
		return in, invalid("price must not be negative")
	}
	if price > model.MaxPrice {
		return in, invalid(fmt.Sprintf("price must be at most %.2f", model.MaxPrice))
	}
	if math.Round(price*100)/100 != price {
		return in, invalid("price must have at most 2 decimal places")
	}
	in.Price = price

	categoryStr := strings.TrimSpace(req.CategoryID.String())
	if categoryStr == "" {
		return in, invalid("category_id is required")
	}
	categoryID, err := strconv.Atoi(categoryStr)
	if err != nil || categoryID <= 0 {
		return in, invalid("category_id must be a positive integer")
	}
	in.CategoryID = categoryID

	return in, nil
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
