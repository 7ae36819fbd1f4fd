package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hwickes/restyle-pos/app/repositories"
	"github.com/hwickes/restyle-pos/app/utils/format"
	"github.com/hwickes/restyle-pos/app/utils/renderer"
)

type ReportsHandler struct {
	saleRepo       repositories.SaleRepositoryImpl
	settlementRepo repositories.SettlementRepositoryImpl
}

func NewReportsHandler(saleRepo repositories.SaleRepositoryImpl, settlementRepo repositories.SettlementRepositoryImpl) *ReportsHandler {
	return &ReportsHandler{saleRepo: saleRepo, settlementRepo: settlementRepo}
}

// Summary returns the headline figures for a date range: completed sales
// count, revenue, tax and discount given.
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	summary, err := h.saleRepo.Summary(r.Context(), parseDate(query.Get("from")), parseDate(query.Get("to")))
	if err != nil {
		log.Printf("ReportSummary: %v", err)
		renderer.Error(w, http.StatusInternalServerError, "failed to build the summary")
		return
	}

	owed, err := h.settlementRepo.OwedPayout(r.Context())
	if err != nil {
		log.Printf("ReportSummary: owed payout: %v", err)
		renderer.Error(w, http.StatusInternalServerError, "failed to build the summary")
		return
	}

	renderer.JSON(w, http.StatusOK, map[string]interface{}{
		"sales_count":      summary.SalesCount,
		"revenue":          summary.Revenue,
		"tax_total":        summary.TaxTotal,
		"discount_total":   summary.DiscountTotal,
		"revenue_display":  format.PoundsFloat(summary.Revenue),
		"tax_display":      format.PoundsFloat(summary.TaxTotal),
		"discount_display": format.PoundsFloat(summary.DiscountTotal),

		"consignment_liability":         owed,
		"consignment_liability_display": format.PoundsFloat(owed),
	})
}

const exportPageSize = 500

// ExportSales writes the sales ledger for a date range as an .xlsx download.
func (h *ReportsHandler) ExportSales(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := parseDate(query.Get("from"))
	to := parseDate(query.Get("to"))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("ExportSales: close workbook: %v", err)
		}
	}()

	const sheet = "Sales"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Code", "Date", "Staff", "Payment", "Status", "Subtotal", "Discount", "Tax", "Total", "Customer"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	row := 2
	for offset := 0; ; offset += exportPageSize {
		sales, _, err := h.saleRepo.List(r.Context(), from, to, "", exportPageSize, offset)
		if err != nil {
			log.Printf("ExportSales: %v", err)
			renderer.Error(w, http.StatusInternalServerError, "failed to build the export")
			return
		}
		if len(sales) == 0 {
			break
		}

		for _, sale := range sales {
			values := []interface{}{
				sale.Code,
				sale.SoldAt.Format("2006-01-02 15:04"),
				sale.StaffMemberName,
				sale.Payment,
				sale.Status,
				format.Pounds(sale.Subtotal),
				format.Pounds(sale.DiscountTotal),
				format.Pounds(sale.TaxTotal),
				format.Pounds(sale.Total),
				sale.CustomerName,
			}
			for i, value := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, value)
			}
			row++
		}

		if len(sales) < exportPageSize {
			break
		}
	}

	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		log.Printf("ExportSales: write response: %v", err)
	}
}
