package repository

import (
	"context"
	"errors"
	"fmt"

	"kampuskitap/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines operations for product data.
// Update and Delete only touch rows owned by ownerID; a product that does not
// exist and a product owned by someone else both come back as (nil, nil).
type ProductRepository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int) (*model.Product, error)
	Create(ctx context.Context, ownerID int, in model.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id, ownerID int, in model.ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id, ownerID int) (*model.Product, error)
}

type productRepository struct {
	db DBTX
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

const productSelect = `SELECT p.id, p.title, p.price, p.description, p.image_url, p.category_id, p.user_id,
       p.created_at, p.updated_at, u.username, c.name`

// Mutations run in a CTE so the written row comes back joined with its
// owner and category from the same statement.
const productJoins = `
  JOIN users u ON p.user_id = u.id
  JOIN categories c ON p.category_id = c.id`

func scanProduct(row pgx.Row, p *model.Product, extra ...any) error {
	dest := []any{
		&p.ID, &p.Title, &p.Price, &p.Description, &p.ImageURL, &p.CategoryID, &p.UserID,
		&p.CreatedAt, &p.UpdatedAt, &p.Username, &p.Category,
	}
	return row.Scan(append(dest, extra...)...)
}

// FindAll returns every product, newest first
func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	sql := productSelect + ` FROM products p` + productJoins + `
  ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product with its owner's username and email
func (r *productRepository) FindByID(ctx context.Context, id int) (*model.Product, error) {
	sql := productSelect + `, u.email FROM products p` + productJoins + `
  WHERE p.id = $1`

	p := &model.Product{}
	if err := scanProduct(r.db.QueryRow(ctx, sql, id), p, &p.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// Create inserts a product owned by ownerID
func (r *productRepository) Create(ctx context.Context, ownerID int, in model.ProductInput) (*model.Product, error) {
	sql := `WITH p AS (
    INSERT INTO products (title, price, description, image_url, category_id, user_id)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING *
)
` + productSelect + ` FROM p` + productJoins

	p := &model.Product{}
	err := scanProduct(r.db.QueryRow(ctx, sql,
		in.Title, in.Price, in.Description, in.ImageURL, in.CategoryID, ownerID), p)
	if err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			return nil, ErrInvalidReference
		case pgNumericOutOfRange:
			return nil, ErrValueOutOfRange
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// Update replaces the editable fields of a product in a single statement
// guarded by both id and owner
func (r *productRepository) Update(ctx context.Context, id, ownerID int, in model.ProductInput) (*model.Product, error) {
	sql := `WITH p AS (
    UPDATE products
    SET title = $1, price = $2, description = $3, image_url = $4, category_id = $5, updated_at = NOW()
    WHERE id = $6 AND user_id = $7
    RETURNING *
)
` + productSelect + ` FROM p` + productJoins

	p := &model.Product{}
	err := scanProduct(r.db.QueryRow(ctx, sql,
		in.Title, in.Price, in.Description, in.ImageURL, in.CategoryID, id, ownerID), p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // missing or not owned by ownerID
		}
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			return nil, ErrInvalidReference
		case pgNumericOutOfRange:
			return nil, ErrValueOutOfRange
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// Delete removes a product owned by ownerID and returns the removed row
func (r *productRepository) Delete(ctx context.Context, id, ownerID int) (*model.Product, error) {
	sql := `WITH p AS (
    DELETE FROM products
    WHERE id = $1 AND user_id = $2
    RETURNING *
)
` + productSelect + ` FROM p` + productJoins

	p := &model.Product{}
	if err := scanProduct(r.db.QueryRow(ctx, sql, id, ownerID), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // missing or not owned by ownerID
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	return p, nil
}
