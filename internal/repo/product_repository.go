package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/product-inventory-cli/internal/models"
)

// ProductRepository defines the interface for product data operations.
// Mutating methods report the number of rows the statement affected; zero
// means the id did not match any product and is not an error.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (int64, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	Update(ctx context.Context, id int, pu ProductUpdate) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
	LowStock(ctx context.Context, threshold int) ([]models.Product, error)
	AdjustQuantity(ctx context.Context, productID int, delta int) (int64, error)
}

// Opener acquires a repository backed by its own storage connection. The
// returned release func must be called once the operation is done.
type Opener func(ctx context.Context) (ProductRepository, func() error, error)

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicatedValueUnique is returned when an insert collides with an existing id.
	ErrDuplicatedValueUnique = errors.New("unique constraint violation: product id already exists")
	// ErrInvalidQuantityChange is returned when the stock floor rejects an adjustment.
	ErrInvalidQuantityChange = errors.New("quantity cannot go below zero")
	// ErrEmptyUpdate is returned when an update names no field to change.
	ErrEmptyUpdate = errors.New("update has no fields to set")
	// ErrNameTooLong is returned by the in-memory repository for names the column would reject.
	ErrNameTooLong = errors.New("value too long for name")
)
