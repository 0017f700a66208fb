package repo

import (
	"cmp"
	"context"
	"slices"
	"unicode/utf8"

	"github.com/rogerio-castellano/product-inventory-cli/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// It follows the same ordering and row-count rules as the Postgres one.
type InMemoryProductRepository struct {
	products     []models.Product
	enforceFloor bool
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

// EnforceFloor toggles the non-negative quantity rule for AdjustQuantity.
func (r *InMemoryProductRepository) EnforceFloor(enabled bool) {
	r.enforceFloor = enabled
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (int64, error) {
	if utf8.RuneCountInString(product.Name) > models.NameMaxLen {
		return 0, ErrNameTooLong
	}
	if r.indexOf(product.ID) >= 0 {
		return 0, ErrDuplicatedValueUnique
	}
	product.Price = product.Price.Round(2)
	r.products = append(r.products, product)
	return 1, nil
}

// GetAll retrieves all products ordered by id.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	products := slices.Clone(r.products)
	slices.SortFunc(products, byID)
	return products, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	if i := r.indexOf(id); i >= 0 {
		return r.products[i], nil
	}
	return models.Product{}, ErrProductNotFound
}

// Update sets the selected fields of the product with the given id.
func (r *InMemoryProductRepository) Update(_ context.Context, id int, pu ProductUpdate) (int64, error) {
	if pu.IsEmpty() {
		return 0, ErrEmptyUpdate
	}
	if pu.Name != nil && utf8.RuneCountInString(*pu.Name) > models.NameMaxLen {
		return 0, ErrNameTooLong
	}

	i := r.indexOf(id)
	if i < 0 {
		return 0, nil
	}

	p := &r.products[i]
	if pu.Name != nil {
		p.Name = *pu.Name
	}
	if pu.Quantity != nil {
		p.Quantity = *pu.Quantity
	}
	if pu.Price != nil {
		p.Price = pu.Price.Round(2)
	}
	return 1, nil
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id int) (int64, error) {
	i := r.indexOf(id)
	if i < 0 {
		return 0, nil
	}
	r.products = slices.Delete(r.products, i, i+1)
	return 1, nil
}

// LowStock returns products with quantity at or below threshold, lowest quantity first.
func (r *InMemoryProductRepository) LowStock(_ context.Context, threshold int) ([]models.Product, error) {
	var low []models.Product
	for _, p := range r.products {
		if p.IsLowStock(threshold) {
			low = append(low, p)
		}
	}
	slices.SortFunc(low, func(a, b models.Product) int {
		if c := cmp.Compare(a.Quantity, b.Quantity); c != 0 {
			return c
		}
		return byID(a, b)
	})
	return low, nil
}

// AdjustQuantity implements ProductRepository.
func (r *InMemoryProductRepository) AdjustQuantity(_ context.Context, productID int, delta int) (int64, error) {
	i := r.indexOf(productID)
	if i < 0 {
		return 0, nil
	}

	if r.enforceFloor && r.products[i].Quantity+delta < 0 {
		return 0, ErrInvalidQuantityChange
	}

	r.products[i].Quantity += delta
	return 1, nil
}

func (r *InMemoryProductRepository) indexOf(id int) int {
	return slices.IndexFunc(r.products, func(p models.Product) bool { return p.ID == id })
}

func byID(a, b models.Product) int {
	return cmp.Compare(a.ID, b.ID)
}
