package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/utils/format"
)

type ReceiptLine struct {
	Name      string `json:"name"`
	Sku       string `json:"sku,omitempty"`
	Qty       int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// Receipt is the confirmation artifact handed to print/email/PDF collaborators
// after a completed sale. Amounts are pre-formatted for display.
type Receipt struct {
	SaleID        string        `json:"sale_id"`
	Code          string        `json:"code"`
	SoldAt        time.Time     `json:"sold_at"`
	Lines         []ReceiptLine `json:"lines"`
	Subtotal      string        `json:"subtotal"`
	DiscountTotal string        `json:"discount_total"`
	TaxTotal      string        `json:"tax_total"`
	Total         string        `json:"total"`
	Payment       string        `json:"payment"`
	StaffMember   string        `json:"staff_member,omitempty"`
	CustomerName  string        `json:"customer_name,omitempty"`
	CustomerEmail string        `json:"customer_email,omitempty"`
	Signature     string        `json:"signature,omitempty"`
}

func BuildReceipt(sale *models.Sale, items []models.SaleItem) *Receipt {
	lines := make([]ReceiptLine, len(items))
	for i, item := range items {
		lines[i] = ReceiptLine{
			Name:      item.ProductName,
			Sku:       item.ProductSku,
			Qty:       item.Qty,
			UnitPrice: format.Pounds(item.UnitPrice),
			LineTotal: format.Pounds(item.LineTotal),
		}
	}

	return &Receipt{
		SaleID:        sale.ID,
		Code:          sale.Code,
		SoldAt:        sale.SoldAt,
		Lines:         lines,
		Subtotal:      format.Pounds(sale.Subtotal),
		DiscountTotal: format.Pounds(sale.DiscountTotal),
		TaxTotal:      format.Pounds(sale.TaxTotal),
		Total:         format.Pounds(sale.Total),
		Payment:       sale.Payment,
		StaffMember:   sale.StaffMemberName,
		CustomerName:  sale.CustomerName,
		CustomerEmail: sale.CustomerEmail,
		Signature:     sale.SignatureData,
	}
}

func BuildReceiptEmailBody(shopName string, receipt *Receipt) string {
	var rows strings.Builder
	for _, line := range receipt.Lines {
		rows.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td style="text-align:center">%d</td><td style="text-align:right">%s</td><td style="text-align:right">%s</td></tr>`,
			line.Name, line.Qty, line.UnitPrice, line.LineTotal,
		))
	}

	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head>
            <meta charset="utf-8">
            <title>Your receipt from %s</title>
            <style>
                body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
                .container { max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
                .header { background-color: #f8f8f8; padding: 10px 0; text-align: center; border-bottom: 1px solid #ddd; }
                table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
                th, td { padding: 6px 4px; border-bottom: 1px solid #eee; text-align: left; }
                .totals td { border: none; }
                .grand { font-size: 1.2em; font-weight: bold; }
                .footer { font-size: 0.8em; color: #777; text-align: center; margin-top: 20px; border-top: 1px solid #ddd; padding-top: 10px; }
            </style>
        </head>
        <body>
            <div class="container">
                <div class="header">
                    <h2>%s</h2>
                    <p>Receipt %s &mdash; %s</p>
                </div>
                <table>
                    <tr><th>Item</th><th>Qty</th><th>Price</th><th>Total</th></tr>
                    %s
                </table>
                <table class="totals">
                    <tr><td>Subtotal</td><td style="text-align:right">%s</td></tr>
                    <tr><td>Discount</td><td style="text-align:right">-%s</td></tr>
                    <tr><td>Tax</td><td style="text-align:right">%s</td></tr>
                    <tr class="grand"><td>Total</td><td style="text-align:right">%s</td></tr>
                </table>
                <p>Paid by %s.</p>
                <div class="footer">
                    <p>Thank you for shopping with %s.</p>
                </div>
            </div>
        </body>
        </html>`,
		shopName, shopName, receipt.Code, receipt.SoldAt.Format("2 Jan 2006 15:04"),
		rows.String(),
		receipt.Subtotal, receipt.DiscountTotal, receipt.TaxTotal, receipt.Total,
		receipt.Payment, shopName,
	)
}
