package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	models "github.com/rogerio-castellano/product-inventory-cli/internal/models"
)

const defaultQueryTimeout = 3 * time.Second

// PostgresOptions tunes the statements issued by PostgresProductRepository.
type PostgresOptions struct {
	// QueryTimeout bounds every statement. Zero means three seconds.
	QueryTimeout time.Duration
	// EnforceFloor makes AdjustQuantity refuse changes that would leave a negative quantity.
	EnforceFloor bool
}

// PostgresProductRepository implements ProductRepository on the product table.
type PostgresProductRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
	enforceFloor bool
}

// NewPostgresProductRepository returns a repository that issues every statement on db.
func NewPostgresProductRepository(db *sql.DB, opts PostgresOptions) *PostgresProductRepository {
	timeout := opts.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &PostgresProductRepository{
		db:           db,
		queryTimeout: timeout,
		enforceFloor: opts.EnforceFloor,
	}
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (int64, error) {
	query := `INSERT INTO product (id, name, quantity, price) VALUES ($1, $2, $3, $4)`
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Quantity, p.Price)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicatedValueUnique
		}
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, quantity, price FROM product ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	query := `SELECT id, name, quantity, price FROM product WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(ctx context.Context, id int, pu ProductUpdate) (int64, error) {
	if pu.IsEmpty() {
		return 0, ErrEmptyUpdate
	}

	sets, args, argIdx := pu.setClause()
	query := fmt.Sprintf("UPDATE product SET %s WHERE id = $%d", sets, argIdx)
	args = append(args, id)

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id int) (int64, error) {
	query := `DELETE FROM product WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresProductRepository) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	query := `SELECT id, name, quantity, price FROM product WHERE quantity <= $1 ORDER BY quantity ASC, id ASC`
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// AdjustQuantity applies delta in a single statement so concurrent clients
// cannot lose each other's changes.
func (r *PostgresProductRepository) AdjustQuantity(ctx context.Context, productID int, delta int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	if !r.enforceFloor {
		query := `UPDATE product SET quantity = quantity + $1 WHERE id = $2`
		res, err := r.db.ExecContext(ctx, query, delta, productID)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	// found and adjusted come from the same snapshot, so a rejected change
	// can be told apart from a missing id without a second round trip.
	query := `
		WITH target AS (
			SELECT id FROM product WHERE id = $2
		), adjusted AS (
			UPDATE product
			SET quantity = quantity + $1
			WHERE id = $2 AND quantity + $1 >= 0
			RETURNING id
		)
		SELECT (SELECT COUNT(*) FROM target), (SELECT COUNT(*) FROM adjusted)
	`
	var found, adjusted int64
	if err := r.db.QueryRowContext(ctx, query, delta, productID).Scan(&found, &adjusted); err != nil {
		return 0, err
	}
	if found > 0 && adjusted == 0 {
		return 0, ErrInvalidQuantityChange
	}
	return adjusted, nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one product row. The table allows NULL in every column
// but id; a NULL reads as the zero value.
func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p        models.Product
		name     sql.NullString
		quantity sql.NullInt64
		price    decimal.NullDecimal
	)
	if err := row.Scan(&p.ID, &name, &quantity, &price); err != nil {
		return models.Product{}, err
	}
	p.Name = name.String
	p.Quantity = int(quantity.Int64)
	p.Price = price.Decimal
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}
