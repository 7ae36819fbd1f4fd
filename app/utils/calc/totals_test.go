package calc

import (
	"testing"

	"github.com/shopspring/decimal"
)

func line(qty int, price, taxRate float64) Line {
	return Line{
		Qty:       qty,
		UnitPrice: decimal.NewFromFloat(price),
		TaxRate:   decimal.NewFromFloat(taxRate),
	}
}

func mustEqual(t *testing.T, name string, got decimal.Decimal, want float64) {
	t.Helper()
	if !got.Equal(decimal.NewFromFloat(want)) {
		t.Errorf("%s = %s, want %v", name, got.String(), want)
	}
}

func TestCartTotalsPercentageDiscount(t *testing.T) {
	lines := []Line{line(2, 100, 10)}

	totals := CartTotals(lines, DiscountPercentage, decimal.NewFromInt(10))

	mustEqual(t, "Subtotal", totals.Subtotal, 200)
	mustEqual(t, "DiscountTotal", totals.DiscountTotal, 20)
	mustEqual(t, "TaxTotal", totals.TaxTotal, 18)
	mustEqual(t, "GrandTotal", totals.GrandTotal, 198)
}

func TestCartTotalsZeroPercentIdempotent(t *testing.T) {
	lines := []Line{line(1, 50, 20), line(3, 10, 0)}

	first := CartTotals(lines, DiscountPercentage, decimal.Zero)
	second := CartTotals(lines, DiscountPercentage, decimal.Zero)

	mustEqual(t, "DiscountTotal", first.DiscountTotal, 0)
	if !first.GrandTotal.Equal(second.GrandTotal) {
		t.Errorf("reapplying a 0%% discount changed the total: %s vs %s", first.GrandTotal, second.GrandTotal)
	}
}

func TestFixedDiscountProportionalShares(t *testing.T) {
	lines := []Line{line(1, 100, 0), line(1, 300, 0)}

	shares := DistributeDiscount(lines, DiscountFixed, decimal.NewFromInt(40))

	mustEqual(t, "shares[0]", shares[0], 10)
	mustEqual(t, "shares[1]", shares[1], 30)
}

func TestFixedDiscountSumsExactly(t *testing.T) {
	// Three-way split of 10 over equal lines does not divide evenly; the last
	// line must absorb the remainder.
	lines := []Line{line(1, 10, 0), line(1, 10, 0), line(1, 10, 0)}
	fixed := decimal.NewFromInt(10)

	shares := DistributeDiscount(lines, DiscountFixed, fixed)

	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}
	if !sum.Equal(fixed) {
		t.Errorf("distributed shares sum to %s, want %s", sum, fixed)
	}
}

func TestFixedDiscountZeroSubtotal(t *testing.T) {
	lines := []Line{line(2, 0, 10), line(1, 0, 0)}

	shares := DistributeDiscount(lines, DiscountFixed, decimal.NewFromInt(15))

	for i, s := range shares {
		if !s.IsZero() {
			t.Errorf("shares[%d] = %s, want 0 when cart subtotal is 0", i, s)
		}
	}

	totals := CartTotals(lines, DiscountFixed, decimal.NewFromInt(15))
	mustEqual(t, "DiscountTotal", totals.DiscountTotal, 0)
	mustEqual(t, "GrandTotal", totals.GrandTotal, 0)
}

func TestCartTotalsTaxOnPostDiscountAmount(t *testing.T) {
	// 100 with a 20 fixed discount and 10% tax: tax is 8, not 10.
	lines := []Line{line(1, 100, 10)}

	totals := CartTotals(lines, DiscountFixed, decimal.NewFromInt(20))

	mustEqual(t, "TaxTotal", totals.TaxTotal, 8)
	mustEqual(t, "GrandTotal", totals.GrandTotal, 88)
}

func TestCartTotalsEmptyCart(t *testing.T) {
	totals := CartTotals(nil, DiscountPercentage, decimal.NewFromInt(50))

	mustEqual(t, "Subtotal", totals.Subtotal, 0)
	mustEqual(t, "GrandTotal", totals.GrandTotal, 0)
	if len(totals.LineDiscounts) != 0 {
		t.Errorf("expected no line discounts, got %d", len(totals.LineDiscounts))
	}
}

func TestCartTotalsRoundsTaxToPennies(t *testing.T) {
	// 0.99 at 20% is 0.198 of tax; the sale stores pennies.
	lines := []Line{line(1, 0.99, 20)}

	totals := CartTotals(lines, DiscountPercentage, decimal.Zero)

	mustEqual(t, "TaxTotal", totals.TaxTotal, 0.20)
	mustEqual(t, "GrandTotal", totals.GrandTotal, 1.19)
}
