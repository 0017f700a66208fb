package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/product-inventory-cli/internal/models"
	"github.com/rogerio-castellano/product-inventory-cli/internal/repo"
)

// Every operation reads all of its inputs first and only then touches storage.

func (s *Shell) insertProduct(ctx context.Context) error {
	f := s.in.form()
	p := models.Product{
		ID:       f.integer("Enter Product ID (int): "),
		Name:     f.text("Enter Product Name: "),
		Quantity: f.integer("Enter Quantity (int): "),
		Price:    f.amount("Enter Price (decimal): "),
	}
	if f.err != nil {
		return f.err
	}

	return s.withRepository(ctx, func(r repo.ProductRepository) error {
		rows, err := r.Create(ctx, p)
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			fmt.Fprintln(s.out, "Insert failed: ID already exists.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%d record(s) inserted.\n", rows)
		return nil
	})
}

func (s *Shell) listProducts(ctx context.Context) error {
	return s.withRepository(ctx, func(r repo.ProductRepository) error {
		products, err := r.GetAll(ctx)
		if err != nil {
			return err
		}
		writeTable(s.out, products, "(no products found)")
		return nil
	})
}

func (s *Shell) findProductByID(ctx context.Context) error {
	id, err := s.in.readInt("Enter Product ID to find: ")
	if err != nil {
		return err
	}

	return s.withRepository(ctx, func(r repo.ProductRepository) error {
		product, err := r.GetByID(ctx, id)
		if errors.Is(err, repo.ErrProductNotFound) {
			fmt.Fprintf(s.out, "No product found with ID %d\n", id)
			return nil
		}
		if err != nil {
			return err
		}
		writeProduct(s.out, product)
		return nil
	})
}

func (s *Shell) updateProduct(ctx context.Context) error {
	id, err := s.in.readInt("Enter Product ID to update: ")
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "What would you like to update?")
	fmt.Fprintln(s.out, "1) Name  2) Quantity  3) Price  4) Name+Quantity+Price")
	opt, err := s.in.readInt("Choose option: ")
	if err != nil {
		return err
	}

	field := UpdateField(opt)
	if !field.Valid() {
		fmt.Fprintln(s.out, "Invalid option.")
		return nil
	}

	f := s.in.form()
	var pu repo.ProductUpdate
	if field.setsName() {
		name := f.text("New Name: ")
		pu.Name = &name
	}
	if field.setsQuantity() {
		qty := f.integer("New Quantity: ")
		pu.Quantity = &qty
	}
	if field.setsPrice() {
		price := f.amount("New Price: ")
		pu.Price = &price
	}
	if f.err != nil {
		return f.err
	}

	return s.withRepository(ctx, func(r repo.ProductRepository) error {
		rows, err := r.Update(ctx, id, pu)
		if err != nil {
			return err
		}
		writeRowsAffected(s.out, rows)
		return nil
	})
}

func (s *Shell) deleteProduct(ctx context.Context) error {
	id, err := s.in.readInt("Enter Product ID to delete: ")
	if err != nil {
		return err
	}

	return s.withRepository(ctx, func(r repo.ProductRepository) error {
		rows, err := r.Delete(ctx, id)
		if err != nil {
			return err
		}
		writeRowsAffected(s.out, rows)
		return nil
	})
}

func (s *Shell) listLowStock(ctx context.Context) error {
	threshold, err := s.in.readInt("Show products with quantity <= threshold. Enter threshold: ")
	if err != nil {
		return err
	}

	return s.withRepository(ctx, func(r repo.ProductRepository) error {
		products, err := r.LowStock(ctx, threshold)
		if err != nil {
			return err
		}
		writeTable(s.out, products, "(no products meet the threshold)")
		return nil
	})
}

func (s *Shell) adjustStock(ctx context.Context) error {
	f := s.in.form()
	id := f.integer("Enter Product ID to adjust: ")
	delta := f.integer("Enter quantity change (+ to add, - to remove): ")
	if f.err != nil {
		return f.err
	}

	return s.withRepository(ctx, func(r repo.ProductRepository) error {
		rows, err := r.AdjustQuantity(ctx, id, delta)
		if errors.Is(err, repo.ErrInvalidQuantityChange) {
			fmt.Fprintln(s.out, "Adjustment rejected: quantity cannot go below zero.")
			return nil
		}
		if err != nil {
			return err
		}
		writeRowsAffected(s.out, rows)
		return nil
	})
}
