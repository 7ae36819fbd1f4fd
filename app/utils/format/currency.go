package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var gbp = accounting.Accounting{Symbol: "£", Precision: 2, Thousand: ",", Decimal: "."}

func Pounds(amount decimal.Decimal) string {
	return gbp.FormatMoneyDecimal(amount)
}

func PoundsFloat(amount float64) string {
	return gbp.FormatMoney(amount)
}
