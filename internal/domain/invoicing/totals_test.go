package invoicing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, quantity int, unitPrice string) InvoiceLine {
	t.Helper()
	price, err := decimal.NewFromString(unitPrice)
	require.NoError(t, err)
	line, err := NewInvoiceLine(uuid.New(), "test product", quantity, price)
	require.NoError(t, err)
	return *line
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice string
		expected  string
	}{
		{"whole units", 3, "10.00", "30.00"},
		{"single unit", 1, "5.00", "5.00"},
		{"fractional price", 7, "0.33", "2.31"},
		{"zero price", 4, "0", "0"},
		{"large quantity keeps exactness", 100000, "0.01", "1000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := decimal.NewFromString(tt.unitPrice)
			require.NoError(t, err)
			expected, err := decimal.NewFromString(tt.expected)
			require.NoError(t, err)
			assert.True(t, expected.Equal(LineTotal(tt.quantity, price)))
		})
	}
}

func TestComputeTotals(t *testing.T) {
	taxRate := decimal.NewFromFloat(0.22)

	t.Run("two lines at 22 percent", func(t *testing.T) {
		lines := []InvoiceLine{
			mustLine(t, 3, "10.00"),
			mustLine(t, 1, "5.00"),
		}

		totals, err := ComputeTotals(lines, taxRate)
		require.NoError(t, err)

		assert.Equal(t, "35.00", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "7.70", totals.TaxTotal.StringFixed(2))
		assert.Equal(t, "42.70", totals.Total.StringFixed(2))
	})

	t.Run("tax total rounds to currency minor unit", func(t *testing.T) {
		// 3 x 0.33 = 0.99; 0.99 * 0.22 = 0.2178 -> 0.22
		lines := []InvoiceLine{mustLine(t, 3, "0.33")}

		totals, err := ComputeTotals(lines, taxRate)
		require.NoError(t, err)

		assert.Equal(t, "0.99", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "0.22", totals.TaxTotal.StringFixed(2))
		assert.Equal(t, "1.21", totals.Total.StringFixed(2))
	})

	t.Run("empty line set yields zeros", func(t *testing.T) {
		totals, err := ComputeTotals(nil, taxRate)
		require.NoError(t, err)

		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.TaxTotal.IsZero())
		assert.True(t, totals.Total.IsZero())
	})

	t.Run("zero tax rate", func(t *testing.T) {
		lines := []InvoiceLine{mustLine(t, 2, "9.99")}

		totals, err := ComputeTotals(lines, decimal.Zero)
		require.NoError(t, err)

		assert.Equal(t, "19.98", totals.Subtotal.StringFixed(2))
		assert.True(t, totals.TaxTotal.IsZero())
		assert.Equal(t, "19.98", totals.Total.StringFixed(2))
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		lines := []InvoiceLine{{Quantity: -1, UnitPrice: decimal.NewFromInt(1)}}

		_, err := ComputeTotals(lines, taxRate)
		assert.Error(t, err)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		lines := []InvoiceLine{{Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}}

		_, err := ComputeTotals(lines, taxRate)
		assert.Error(t, err)
	})

	t.Run("rejects negative tax rate", func(t *testing.T) {
		_, err := ComputeTotals(nil, decimal.NewFromFloat(-0.1))
		assert.Error(t, err)
	})

	t.Run("no float drift on many fractional lines", func(t *testing.T) {
		lines := make([]InvoiceLine, 0, 10)
		for i := 0; i < 10; i++ {
			lines = append(lines, mustLine(t, 1, "0.10"))
		}

		totals, err := ComputeTotals(lines, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "1.00", totals.Subtotal.StringFixed(2))
	})
}
