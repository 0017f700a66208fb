package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rogerio-castellano/product-inventory-cli/internal/repo"
	"go.uber.org/zap"
)

const banner = "=== Product Inventory System ==="

const menu = `
====== MENU ======
1. Add Product
2. Display All Products
3. Find Product by ID
4. Update Product (name/quantity/price)
5. Delete Product
6. List Low-Stock Products (<= threshold)
7. Adjust Stock (+/- quantity)
8. Exit
`

type operation func(ctx context.Context) error

// Shell is the interactive menu loop. It owns no storage state: every
// operation acquires a repository through the Opener and releases it before
// the next prompt.
type Shell struct {
	in     *prompter
	out    io.Writer
	open   repo.Opener
	logger *zap.Logger
	ops    map[Choice]operation
}

// New returns a Shell reading from in and writing to out. A nil logger discards logs.
func New(in io.Reader, out io.Writer, open repo.Opener, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Shell{
		in:     newPrompter(in, out),
		out:    out,
		open:   open,
		logger: logger,
	}
	s.ops = map[Choice]operation{
		ChoiceAdd:      s.insertProduct,
		ChoiceList:     s.listProducts,
		ChoiceFind:     s.findProductByID,
		ChoiceUpdate:   s.updateProduct,
		ChoiceDelete:   s.deleteProduct,
		ChoiceLowStock: s.listLowStock,
		ChoiceAdjust:   s.adjustStock,
	}
	return s
}

// Run loops over the menu until Exit is chosen or the input ends. Storage
// failures are reported and never end the loop; only a failing reader does.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, banner)

	for {
		fmt.Fprint(s.out, menu)

		n, err := s.in.readInt("Enter your choice: ")
		if err != nil {
			return s.endOfInput(err)
		}

		choice := Choice(n)
		if choice == ChoiceExit {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}

		op, ok := s.ops[choice]
		if !ok {
			fmt.Fprintln(s.out, "Invalid choice. Try again.")
			continue
		}

		start := time.Now()
		s.logger.Debug("operation started", zap.Stringer("op", choice))

		err = op(ctx)
		switch {
		case errors.Is(err, ErrInputClosed):
			return s.endOfInput(err)
		case err != nil:
			s.logger.Error("operation failed", zap.Stringer("op", choice), zap.Error(err))
			fmt.Fprintf(s.out, "Database error: %v\n", err)
		default:
			s.logger.Debug("operation finished", zap.Stringer("op", choice), zap.Duration("duration", time.Since(start)))
		}
	}
}

func (s *Shell) endOfInput(err error) error {
	if !errors.Is(err, ErrInputClosed) {
		return err
	}
	if readErr := s.in.err(); readErr != nil {
		return fmt.Errorf("failed to read input: %w", readErr)
	}
	s.logger.Info("input closed, leaving")
	return nil
}

// withRepository scopes one storage connection to fn.
func (s *Shell) withRepository(ctx context.Context, fn func(repo.ProductRepository) error) error {
	r, release, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			s.logger.Warn("failed to release storage connection", zap.Error(err))
		}
	}()

	return fn(r)
}
