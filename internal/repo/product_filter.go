package repo

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductUpdate names the columns an update should set. Nil fields are left untouched.
type ProductUpdate struct {
	Name     *string
	Quantity *int
	Price    *decimal.Decimal
}

// IsEmpty reports whether no field is selected.
func (pu ProductUpdate) IsEmpty() bool {
	return pu.Name == nil && pu.Quantity == nil && pu.Price == nil
}

// setClause builds the SET list and its arguments. The returned index is the
// next free placeholder number.
func (pu ProductUpdate) setClause() (string, []any, int) {
	var sets []string
	args := []any{}
	argIdx := 1

	if pu.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *pu.Name)
		argIdx++
	}
	if pu.Quantity != nil {
		sets = append(sets, fmt.Sprintf("quantity = $%d", argIdx))
		args = append(args, *pu.Quantity)
		argIdx++
	}
	if pu.Price != nil {
		sets = append(sets, fmt.Sprintf("price = $%d", argIdx))
		args = append(args, *pu.Price)
		argIdx++
	}

	return strings.Join(sets, ", "), args, argIdx
}
