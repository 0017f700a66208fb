//go:build integration

package repo_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rogerio-castellano/product-inventory-cli/internal/db"
	"github.com/rogerio-castellano/product-inventory-cli/internal/models"
	"github.com/rogerio-castellano/product-inventory-cli/internal/repo"
)

// startPostgres runs a throwaway PostgreSQL, applies the product schema and
// returns its DSN.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("inventorydb"),
		postgres.WithUsername("inventory"),
		postgres.WithPassword("inventory"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer database.Close()

	var pingErr error
	for i := 0; i < 10; i++ {
		if pingErr = database.PingContext(ctx); pingErr == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, pingErr, "database never became reachable")

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	migrationsDir := filepath.Join(filepath.Dir(filename), "..", "..", "migrations")

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.UpContext(ctx, database, migrationsDir))

	return dsn
}

func product(id int, name string, qty int, price string) models.Product {
	return models.Product{ID: id, Name: name, Quantity: qty, Price: decimal.RequireFromString(price)}
}

func TestPostgresProductRepository_Integration(t *testing.T) {
	ctx := context.Background()
	dsn := startPostgres(t)
	connector := db.NewConnector(dsn, 5*time.Second)

	open := func(t *testing.T, opts repo.PostgresOptions) repo.ProductRepository {
		t.Helper()
		r, release, err := connector.ProductOpener(opts)(ctx)
		require.NoError(t, err)
		t.Cleanup(func() { require.NoError(t, release()) })
		return r
	}

	r := open(t, repo.PostgresOptions{})

	t.Run("Empty listing", func(t *testing.T) {
		all, err := r.GetAll(ctx)
		require.NoError(t, err)
		require.Empty(t, all)
	})

	t.Run("Create and GetByID round trip", func(t *testing.T) {
		rows, err := r.Create(ctx, product(1, "Widget", 10, "2.50"))
		require.NoError(t, err)
		require.EqualValues(t, 1, rows)

		got, err := r.GetByID(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, "Widget", got.Name)
		require.Equal(t, 10, got.Quantity)
		require.Equal(t, "2.50", got.Price.StringFixed(2))
	})

	t.Run("Duplicate id", func(t *testing.T) {
		_, err := r.Create(ctx, product(1, "Gadget", 3, "9.99"))
		require.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)

		got, err := r.GetByID(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, "Widget", got.Name)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := r.GetByID(ctx, 404)
		require.ErrorIs(t, err, repo.ErrProductNotFound)
	})

	t.Run("Update name only", func(t *testing.T) {
		name := "Sprocket"
		rows, err := r.Update(ctx, 1, repo.ProductUpdate{Name: &name})
		require.NoError(t, err)
		require.EqualValues(t, 1, rows)

		got, err := r.GetByID(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, "Sprocket", got.Name)
		require.Equal(t, 10, got.Quantity)
		require.Equal(t, "2.50", got.Price.StringFixed(2))
	})

	t.Run("Update all fields and missing id", func(t *testing.T) {
		name := "Widget"
		qty := 12
		price := decimal.RequireFromString("3.10")
		rows, err := r.Update(ctx, 1, repo.ProductUpdate{Name: &name, Quantity: &qty, Price: &price})
		require.NoError(t, err)
		require.EqualValues(t, 1, rows)

		rows, err = r.Update(ctx, 999, repo.ProductUpdate{Quantity: &qty})
		require.NoError(t, err)
		require.EqualValues(t, 0, rows)
	})

	t.Run("Adjust round trip", func(t *testing.T) {
		before, err := r.GetByID(ctx, 1)
		require.NoError(t, err)

		_, err = r.AdjustQuantity(ctx, 1, 5)
		require.NoError(t, err)
		_, err = r.AdjustQuantity(ctx, 1, -5)
		require.NoError(t, err)

		after, err := r.GetByID(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, before.Quantity, after.Quantity)

		rows, err := r.AdjustQuantity(ctx, 999, 1)
		require.NoError(t, err)
		require.EqualValues(t, 0, rows)
	})

	t.Run("Low stock ordered by quantity", func(t *testing.T) {
		for _, p := range []models.Product{
			product(2, "Gadget", 1, "19.99"),
			product(3, "Bolt", 100, "0.10"),
			product(4, "Nut", 3, "0.05"),
		} {
			_, err := r.Create(ctx, p)
			require.NoError(t, err)
		}

		low, err := r.LowStock(ctx, 12)
		require.NoError(t, err)
		ids := make([]int, len(low))
		for i, p := range low {
			require.LessOrEqual(t, p.Quantity, 12)
			ids[i] = p.ID
		}
		require.Equal(t, []int{2, 4, 1}, ids)

		none, err := r.LowStock(ctx, 0)
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("GetAll ordered by id", func(t *testing.T) {
		all, err := r.GetAll(ctx)
		require.NoError(t, err)
		ids := make([]int, len(all))
		for i, p := range all {
			ids[i] = p.ID
		}
		require.Equal(t, []int{1, 2, 3, 4}, ids)
	})

	t.Run("Name longer than the column is a storage error", func(t *testing.T) {
		_, err := r.Create(ctx, product(50, strings.Repeat("x", models.NameMaxLen+1), 1, "1.00"))
		require.Error(t, err)
		require.NotErrorIs(t, err, repo.ErrDuplicatedValueUnique)
	})

	t.Run("Delete", func(t *testing.T) {
		rows, err := r.Delete(ctx, 999)
		require.NoError(t, err)
		require.EqualValues(t, 0, rows)

		rows, err = r.Delete(ctx, 3)
		require.NoError(t, err)
		require.EqualValues(t, 1, rows)

		_, err = r.GetByID(ctx, 3)
		require.ErrorIs(t, err, repo.ErrProductNotFound)
	})

	t.Run("Negative stock allowed without floor", func(t *testing.T) {
		rows, err := r.AdjustQuantity(ctx, 2, -5)
		require.NoError(t, err)
		require.EqualValues(t, 1, rows)

		got, err := r.GetByID(ctx, 2)
		require.NoError(t, err)
		require.Equal(t, -4, got.Quantity)
	})

	t.Run("Floor rejects negative stock", func(t *testing.T) {
		floored := open(t, repo.PostgresOptions{EnforceFloor: true})

		_, err := floored.AdjustQuantity(ctx, 4, -10)
		require.ErrorIs(t, err, repo.ErrInvalidQuantityChange)

		rows, err := floored.AdjustQuantity(ctx, 999, -1)
		require.NoError(t, err)
		require.EqualValues(t, 0, rows)

		rows, err = floored.AdjustQuantity(ctx, 4, -3)
		require.NoError(t, err)
		require.EqualValues(t, 1, rows)

		got, err := floored.GetByID(ctx, 4)
		require.NoError(t, err)
		require.Equal(t, 0, got.Quantity)
	})

	t.Run("NULL columns read as zero values", func(t *testing.T) {
		raw, err := sql.Open("pgx", dsn)
		require.NoError(t, err)
		defer raw.Close()

		_, err = raw.ExecContext(ctx, `INSERT INTO product (id) VALUES (70)`)
		require.NoError(t, err)

		got, err := r.GetByID(ctx, 70)
		require.NoError(t, err)
		require.Equal(t, models.Product{ID: 70}, got)

		all, err := r.GetAll(ctx)
		require.NoError(t, err)
		require.Equal(t, 70, all[len(all)-1].ID)
		require.True(t, all[len(all)-1].Price.IsZero())
	})
}
