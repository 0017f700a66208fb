package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/rogerio-castellano/product-inventory-cli/internal/models"
)

const (
	tableHeader = "%-6s %-30s %-10s %-10s\n"
	tableRow    = "%-6d %-30s %-10d %-10s\n"
)

var tableRule = strings.Repeat("-", 62)

// writeTable renders products as a fixed-width table, or emptyMsg alone when
// there is nothing to show.
func writeTable(w io.Writer, products []models.Product, emptyMsg string) {
	if len(products) == 0 {
		fmt.Fprintln(w, emptyMsg)
		return
	}

	fmt.Fprintf(w, tableHeader, "ID", "Name", "Quantity", "Price")
	fmt.Fprintln(w, tableRule)
	for _, p := range products {
		fmt.Fprintf(w, tableRow, p.ID, p.Name, p.Quantity, p.Price.StringFixed(2))
	}
}

func writeProduct(w io.Writer, p models.Product) {
	fmt.Fprintf(w, "ID: %d\nName: %s\nQuantity: %d\nPrice: %s\n", p.ID, p.Name, p.Quantity, p.Price.StringFixed(2))
}

// writeRowsAffected acknowledges a mutating statement. Zero rows means the id
// did not match, which is reported but is not a failure.
func writeRowsAffected(w io.Writer, rows int64) {
	if rows == 0 {
		fmt.Fprintln(w, "No rows affected (ID may not exist).")
		return
	}
	fmt.Fprintf(w, "Success! Rows affected: %d\n", rows)
}
