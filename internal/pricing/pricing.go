// Package pricing turns a cart into the amount quartet an order
// submission carries. All arithmetic is decimal; rounding happens only
// at the tax boundary, never mid-computation.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/mtz196822-maker/digistore-araby/internal/domain"
)

// TaxRate is applied to every order subtotal.
var TaxRate = decimal.NewFromFloat(0.15)

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Final    decimal.Decimal
}

// Compute derives order totals from a cart and an externally validated
// discount. A discount larger than subtotal+tax clamps the final amount
// to zero; a negative charge is never a valid order.
func Compute(cart domain.Cart, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tax := subtotal.Mul(TaxRate).Round(2)

	final := subtotal.Add(tax).Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Final:    final,
	}
}
