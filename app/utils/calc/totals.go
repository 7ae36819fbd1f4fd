package calc

import "github.com/shopspring/decimal"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Line struct {
	Qty       int
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
}

type Totals struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	GrandTotal    decimal.Decimal

	// Per-line discount shares, index-aligned with the input lines.
	LineDiscounts []decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

func LineSubtotal(l Line) decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

func CartSubtotal(lines []Line) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineSubtotal(l))
	}
	return subtotal
}

// DistributeDiscount resolves the cart-level discount into per-line amounts.
// A percentage discount applies uniformly per line. A fixed discount is spread
// proportionally by each line's share of the cart subtotal; the last line
// absorbs the division remainder so the shares always sum to the entered
// amount. A zero subtotal distributes zero everywhere.
func DistributeDiscount(lines []Line, discountType DiscountType, discount decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(lines))
	if len(lines) == 0 {
		return shares
	}

	if discountType == DiscountPercentage {
		for i, l := range lines {
			shares[i] = LineSubtotal(l).Mul(discount).Div(oneHundred)
		}
		return shares
	}

	subtotal := CartSubtotal(lines)
	if subtotal.IsZero() {
		for i := range shares {
			shares[i] = decimal.Zero
		}
		return shares
	}

	allocated := decimal.Zero
	for i, l := range lines {
		if i == len(lines)-1 {
			shares[i] = discount.Sub(allocated)
			break
		}
		share := LineSubtotal(l).Div(subtotal).Mul(discount)
		shares[i] = share
		allocated = allocated.Add(share)
	}
	return shares
}

// CartTotals computes subtotal, discount, tax and grand total for a cart.
// Tax is charged per line on the post-discount amount and rounded to the
// penny, the precision the sale stores.
func CartTotals(lines []Line, discountType DiscountType, discount decimal.Decimal) Totals {
	shares := DistributeDiscount(lines, discountType, discount)

	subtotal := decimal.Zero
	discountTotal := decimal.Zero
	taxTotal := decimal.Zero

	for i, l := range lines {
		lineSub := LineSubtotal(l)
		subtotal = subtotal.Add(lineSub)
		discountTotal = discountTotal.Add(shares[i])

		afterDiscount := lineSub.Sub(shares[i])
		taxTotal = taxTotal.Add(afterDiscount.Mul(l.TaxRate).Div(oneHundred))
	}

	taxTotal = taxTotal.Round(2)

	return Totals{
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		TaxTotal:      taxTotal,
		GrandTotal:    subtotal.Sub(discountTotal).Add(taxTotal),
		LineDiscounts: shares,
	}
}
