package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/utils/calc"
)

func newSalesFixture(sale *models.Sale, items []models.SaleItem, settlements []models.ConsignmentSettlement) (*SalesService, *fakeSaleRepo, *fakeSaleItemRepo, *fakeSettlementRepo, *fakeProductRepo, *fakeStockRepo) {
	saleRepo := &fakeSaleRepo{sales: map[string]*models.Sale{}}
	itemRepo := &fakeSaleItemRepo{itemsBySale: map[string][]models.SaleItem{}}
	settlementRepo := &fakeSettlementRepo{
		settlements: map[string]*models.ConsignmentSettlement{},
		bySale:      map[string][]models.ConsignmentSettlement{},
	}
	productRepo := &fakeProductRepo{products: tillProducts()}
	stockRepo := &fakeStockRepo{}

	if sale != nil {
		saleRepo.sales[sale.ID] = sale
		itemRepo.itemsBySale[sale.ID] = items
		settlementRepo.bySale[sale.ID] = settlements
	}

	svc := NewSalesService(nil, saleRepo, itemRepo, productRepo, settlementRepo, stockRepo)
	return svc, saleRepo, itemRepo, settlementRepo, productRepo, stockRepo
}

func completedSale() (*models.Sale, []models.SaleItem) {
	sale := &models.Sale{
		ID:            "sale-1",
		Code:          "POS-20260829-abcd1234",
		Status:        models.SaleStatusCompleted,
		Subtotal:      dec("200"),
		DiscountTotal: dec("0"),
		TaxTotal:      dec("40"),
		Total:         dec("240"),
		SoldAt:        time.Now(),
	}
	items := []models.SaleItem{
		{
			ID:        "item-1",
			SaleID:    "sale-1",
			ProductID: "p1",
			Qty:       2,
			UnitPrice: dec("100"),
			TaxRate:   dec("20"),
			Discount:  dec("0"),
			LineTotal: dec("240"),
		},
	}
	return sale, items
}

func TestEditItemNoOp(t *testing.T) {
	sale, items := completedSale()
	svc, saleRepo, itemRepo, _, productRepo, _ := newSalesFixture(sale, items, nil)

	qty := 2
	price := dec("100")
	got, err := svc.EditItem(context.Background(), "sale-1", "item-1", "staff-1", EditItemInput{
		Qty:       &qty,
		UnitPrice: &price,
	})
	if err != nil {
		t.Fatalf("EditItem() error = %v", err)
	}
	if got.ID != "sale-1" {
		t.Fatalf("wrong sale returned")
	}
	if len(saleRepo.saved) != 0 || len(itemRepo.saved) != 0 {
		t.Error("unchanged values must not write")
	}
	if len(productRepo.decremented)+len(productRepo.incremented) != 0 {
		t.Error("unchanged values must not touch stock")
	}
}

func TestEditItemRejections(t *testing.T) {
	voided, voidedItems := completedSale()
	voided.Status = models.SaleStatusVoided

	qtyZero := 0

	tests := []struct {
		name    string
		sale    *models.Sale
		items   []models.SaleItem
		saleID  string
		itemID  string
		input   EditItemInput
		wantErr error
	}{
		{"missing sale", nil, nil, "nope", "item-1", EditItemInput{}, ErrSaleNotFound},
		{"voided sale", voided, voidedItems, "sale-1", "item-1", EditItemInput{}, ErrSaleVoided},
		{"missing item", nil, nil, "sale-1", "nope", EditItemInput{}, ErrSaleItemNotFound},
		{"zero quantity", nil, nil, "sale-1", "item-1", EditItemInput{Qty: &qtyZero}, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale, items := tt.sale, tt.items
			if sale == nil {
				sale, items = completedSale()
			}
			svc, _, _, _, _, _ := newSalesFixture(sale, items, nil)
			_, err := svc.EditItem(context.Background(), tt.saleID, tt.itemID, "staff-1", tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("EditItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecomputeTotals(t *testing.T) {
	sale, items := completedSale()

	// Drop the line to one unit at 90 with a 10 discount.
	items[0].Qty = 1
	items[0].UnitPrice = dec("90")
	items[0].Discount = dec("10")

	recomputeTotals(sale, items)

	if !sale.Subtotal.Equal(dec("90")) {
		t.Errorf("Subtotal = %s, want 90", sale.Subtotal)
	}
	if !sale.DiscountTotal.Equal(dec("10")) {
		t.Errorf("DiscountTotal = %s, want 10", sale.DiscountTotal)
	}
	if !sale.TaxTotal.Equal(dec("16")) {
		t.Errorf("TaxTotal = %s, want 16", sale.TaxTotal)
	}
	if !sale.Total.Equal(dec("96")) {
		t.Errorf("Total = %s, want 96", sale.Total)
	}
}

func TestVoidRequiresReason(t *testing.T) {
	sale, items := completedSale()
	svc, saleRepo, _, _, _, _ := newSalesFixture(sale, items, nil)

	for _, reason := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Void(context.Background(), "sale-1", reason, "staff-1"); !errors.Is(err, ErrVoidReasonRequired) {
			t.Fatalf("Void(%q) error = %v, want ErrVoidReasonRequired", reason, err)
		}
	}
	if len(saleRepo.saved) != 0 {
		t.Error("rejected void must not write")
	}
}

func TestVoidAlreadyVoided(t *testing.T) {
	sale, items := completedSale()
	sale.Status = models.SaleStatusVoided
	svc, _, _, _, _, _ := newSalesFixture(sale, items, nil)

	if _, err := svc.Void(context.Background(), "sale-1", "wrong size", "staff-1"); !errors.Is(err, ErrSaleAlreadyVoided) {
		t.Fatalf("Void() error = %v, want ErrSaleAlreadyVoided", err)
	}
}

func TestVoidBlockedByPaidSettlement(t *testing.T) {
	sale, items := completedSale()
	paidAt := time.Now()
	settlements := []models.ConsignmentSettlement{
		{ID: "settle-1", SaleID: "sale-1", ProductID: "c1", PaidAt: &paidAt},
	}
	svc, saleRepo, _, _, productRepo, _ := newSalesFixture(sale, items, settlements)

	if _, err := svc.Void(context.Background(), "sale-1", "customer return", "staff-1"); !errors.Is(err, ErrSettlementPaid) {
		t.Fatalf("Void() error = %v, want ErrSettlementPaid", err)
	}
	if len(saleRepo.saved) != 0 || len(productRepo.incremented) != 0 {
		t.Error("blocked void must not write")
	}
}

func TestEditTxQuantityIncrease(t *testing.T) {
	sale, items := completedSale()
	svc, saleRepo, itemRepo, _, productRepo, stockRepo := newSalesFixture(sale, items, nil)

	edited := &items[0]
	edited.Qty = 3
	edited.LineTotal = models.LineTotalFor(3, edited.UnitPrice, edited.Discount, edited.TaxRate)
	recomputeTotals(sale, items)

	if err := svc.editTx(context.Background(), nil, sale, edited, 1, "staff-1"); err != nil {
		t.Fatalf("editTx() error = %v", err)
	}

	if len(productRepo.decremented) != 1 || productRepo.decremented[0] != (stockCall{"p1", 1}) {
		t.Errorf("decrements = %+v, want one unit of p1 taken", productRepo.decremented)
	}
	if len(productRepo.incremented) != 0 {
		t.Error("an increase must not return stock")
	}
	if len(stockRepo.adjustments) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(stockRepo.adjustments))
	}
	adj := stockRepo.adjustments[0]
	if adj.Reason != models.StockReasonEdit || adj.Delta != -1 || adj.Note != sale.Code {
		t.Errorf("ledger row = %+v", adj)
	}
	if adj.UserID == nil || *adj.UserID != "staff-1" {
		t.Errorf("ledger row missing the editing user")
	}

	if len(itemRepo.saved) != 1 || itemRepo.saved[0].Qty != 3 {
		t.Errorf("edited line not saved: %+v", itemRepo.saved)
	}
	if len(saleRepo.saved) != 1 || !saleRepo.saved[0].Subtotal.Equal(dec("300")) {
		t.Errorf("sale totals not saved: %+v", saleRepo.saved)
	}
}

func TestEditTxQuantityDecrease(t *testing.T) {
	sale, items := completedSale()
	svc, _, _, _, productRepo, stockRepo := newSalesFixture(sale, items, nil)

	edited := &items[0]
	edited.Qty = 1

	if err := svc.editTx(context.Background(), nil, sale, edited, -1, "staff-1"); err != nil {
		t.Fatalf("editTx() error = %v", err)
	}

	if len(productRepo.incremented) != 1 || productRepo.incremented[0] != (stockCall{"p1", 1}) {
		t.Errorf("increments = %+v, want one unit of p1 returned", productRepo.incremented)
	}
	if len(productRepo.decremented) != 0 {
		t.Error("a decrease must not take stock")
	}
	if len(stockRepo.adjustments) != 1 || stockRepo.adjustments[0].Delta != 1 {
		t.Errorf("ledger rows = %+v, want one +1 row", stockRepo.adjustments)
	}
}

func TestEditTxPriceOnlyLeavesStockAlone(t *testing.T) {
	sale, items := completedSale()
	svc, saleRepo, itemRepo, _, productRepo, stockRepo := newSalesFixture(sale, items, nil)

	edited := &items[0]
	edited.UnitPrice = dec("90")

	if err := svc.editTx(context.Background(), nil, sale, edited, 0, "staff-1"); err != nil {
		t.Fatalf("editTx() error = %v", err)
	}

	if len(productRepo.decremented)+len(productRepo.incremented) != 0 {
		t.Error("a price edit must not touch stock")
	}
	if len(stockRepo.adjustments) != 0 {
		t.Error("a price edit must not write a ledger row")
	}
	if len(itemRepo.saved) != 1 || len(saleRepo.saved) != 1 {
		t.Error("line and sale must still be saved")
	}
}

func TestEditTxStopsWhenStockIsGone(t *testing.T) {
	sale, items := completedSale()
	svc, saleRepo, itemRepo, _, productRepo, stockRepo := newSalesFixture(sale, items, nil)
	productRepo.failDecrement = true

	err := svc.editTx(context.Background(), nil, sale, &items[0], 2, "staff-1")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("editTx() error = %v, want ErrInsufficientStock", err)
	}
	if len(stockRepo.adjustments)+len(itemRepo.saved)+len(saleRepo.saved) != 0 {
		t.Error("nothing may be written after a failed decrement")
	}
}

func TestVoidTxReturnsStockAndClearsPayouts(t *testing.T) {
	sale, items := completedSale()
	svc, saleRepo, _, settlementRepo, productRepo, stockRepo := newSalesFixture(sale, items, nil)

	now := time.Now()
	sale.Status = models.SaleStatusVoided
	sale.VoidReason = "wrong size"
	sale.VoidedAt = &now

	if err := svc.voidTx(context.Background(), nil, sale, items, "staff-1"); err != nil {
		t.Fatalf("voidTx() error = %v", err)
	}

	if len(productRepo.incremented) != 1 || productRepo.incremented[0] != (stockCall{"p1", 2}) {
		t.Errorf("increments = %+v, want the full line quantity back", productRepo.incremented)
	}
	if len(stockRepo.adjustments) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(stockRepo.adjustments))
	}
	adj := stockRepo.adjustments[0]
	if adj.Reason != models.StockReasonVoid || adj.Delta != 2 || adj.Note != sale.Code {
		t.Errorf("ledger row = %+v", adj)
	}

	if len(settlementRepo.deleted) != 1 || settlementRepo.deleted[0] != sale.ID {
		t.Errorf("unpaid settlements not removed: %v", settlementRepo.deleted)
	}

	if len(saleRepo.saved) != 1 {
		t.Fatalf("sale saves = %d, want 1", len(saleRepo.saved))
	}
	saved := saleRepo.saved[0]
	if saved.Status != models.SaleStatusVoided || saved.VoidReason != "wrong size" || saved.VoidedAt == nil {
		t.Errorf("void stamp not persisted: %+v", saved)
	}
}

func TestRecomputeTotalsRoundsLikeCheckout(t *testing.T) {
	line := calc.Line{Qty: 1, UnitPrice: dec("0.99"), TaxRate: dec("20")}
	totals := calc.CartTotals([]calc.Line{line}, calc.DiscountPercentage, decimal.Zero)

	sale := &models.Sale{}
	items := []models.SaleItem{
		{Qty: 1, UnitPrice: dec("0.99"), TaxRate: dec("20"), Discount: decimal.Zero},
	}
	recomputeTotals(sale, items)

	if !sale.TaxTotal.Equal(totals.TaxTotal) {
		t.Errorf("TaxTotal = %s, checkout computed %s", sale.TaxTotal, totals.TaxTotal)
	}
	if !sale.Total.Equal(totals.GrandTotal) {
		t.Errorf("Total = %s, checkout computed %s", sale.Total, totals.GrandTotal)
	}
	if !sale.TaxTotal.Equal(dec("0.20")) {
		t.Errorf("TaxTotal = %s, want the sub-penny amount rounded to 0.20", sale.TaxTotal)
	}
}
