package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// DefaultTaxRate is the fixed tax policy applied when none is configured.
var DefaultTaxRate = decimal.NewFromFloat(0.22)

// Totals holds the derived money fields of an invoice.
type Totals struct {
	Subtotal decimal.Decimal
	TaxTotal decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal derives the total of one line: quantity times unit price,
// exact decimal arithmetic.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ComputeTotals derives subtotal, tax total and grand total from priced
// lines. The tax total is rounded to 2 fractional digits; the subtotal is
// exact. An empty line set yields all zeros.
func ComputeTotals(lines []InvoiceLine, taxRate decimal.Decimal) (Totals, error) {
	if taxRate.IsNegative() {
		return Totals{}, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 0 {
			return Totals{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
		}
		if line.UnitPrice.IsNegative() {
			return Totals{}, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
		}
		subtotal = subtotal.Add(LineTotal(line.Quantity, line.UnitPrice))
	}

	taxTotal := subtotal.Mul(taxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		TaxTotal: taxTotal,
		Total:    subtotal.Add(taxTotal),
	}, nil
}
