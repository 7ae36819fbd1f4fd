package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/repositories"
)

func consignmentFixture() (*ConsignmentService, *fakeSettlementRepo) {
	supplierID := "supplier-1"
	soldAt := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	paidAt := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

	products := &fakeProductRepo{
		consignment: []models.Product{
			{ID: "active-1", Name: "Denim Jacket", UnitCost: dec("20"), UnitPrice: dec("55"), ConsignmentSupplierID: &supplierID},
			{ID: "sold-1", Name: "Cashmere Jumper", UnitCost: dec("30"), UnitPrice: dec("85"), ConsignmentSupplierID: &supplierID},
			{ID: "settled-1", Name: "Tweed Blazer", UnitCost: dec("45"), UnitPrice: dec("120"), ConsignmentSupplierID: &supplierID},
		},
	}
	settlements := &fakeSettlementRepo{
		settlements: map[string]*models.ConsignmentSettlement{},
		byProduct: []models.ConsignmentSettlement{
			{
				ID:           "settle-sold",
				ProductID:    "sold-1",
				SalePrice:    dec("85"),
				PayoutAmount: dec("30"),
				Sale:         &models.Sale{SoldAt: soldAt},
			},
			{
				ID:           "settle-paid",
				ProductID:    "settled-1",
				SalePrice:    dec("120"),
				PayoutAmount: dec("45"),
				PaidAt:       &paidAt,
				Sale:         &models.Sale{SoldAt: soldAt},
			},
		},
	}
	return NewConsignmentService(products, settlements), settlements
}

func TestSupplierReportStatusesAndTotals(t *testing.T) {
	svc, _ := consignmentFixture()

	report, err := svc.SupplierReport(context.Background(), "supplier-1", ConsignmentQuery{})
	if err != nil {
		t.Fatalf("SupplierReport() error = %v", err)
	}

	if len(report.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(report.Items))
	}
	if report.ActiveCount != 1 || report.SoldCount != 1 || report.SettledCount != 1 {
		t.Fatalf("counts = %d/%d/%d, want 1/1/1", report.ActiveCount, report.SoldCount, report.SettledCount)
	}

	byID := map[string]ConsignmentItem{}
	for _, item := range report.Items {
		byID[item.Product.ID] = item
	}

	active := byID["active-1"]
	if active.Status != models.ConsignmentActive {
		t.Errorf("active status = %q", active.Status)
	}
	if !active.AgreedPayout.Equal(dec("20")) {
		t.Errorf("active payout defaults to unit cost, got %s", active.AgreedPayout)
	}
	if active.SoldPrice != nil {
		t.Error("unsold item has no sold price")
	}

	sold := byID["sold-1"]
	if sold.Status != models.ConsignmentSold {
		t.Errorf("sold status = %q", sold.Status)
	}
	if sold.GrossProfit == nil || !sold.GrossProfit.Equal(dec("55")) {
		t.Errorf("gross profit = %v, want 55", sold.GrossProfit)
	}
	if sold.SoldAt == nil {
		t.Error("sold item should carry the sale date")
	}

	settled := byID["settled-1"]
	if settled.Status != models.ConsignmentSettled {
		t.Errorf("settled status = %q", settled.Status)
	}

	if !report.OwedPayout.Equal(dec("30")) {
		t.Errorf("OwedPayout = %s, want 30", report.OwedPayout)
	}
	if !report.PaidPayout.Equal(dec("45")) {
		t.Errorf("PaidPayout = %s, want 45", report.PaidPayout)
	}
}

func TestSupplierReportFilters(t *testing.T) {
	svc, _ := consignmentFixture()

	report, err := svc.SupplierReport(context.Background(), "supplier-1", ConsignmentQuery{Status: models.ConsignmentSold})
	if err != nil {
		t.Fatalf("SupplierReport() error = %v", err)
	}
	if len(report.Items) != 1 || report.Items[0].Product.ID != "sold-1" {
		t.Fatalf("status filter kept %d items", len(report.Items))
	}

	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	report, err = svc.SupplierReport(context.Background(), "supplier-1", ConsignmentQuery{From: &from})
	if err != nil {
		t.Fatalf("SupplierReport() error = %v", err)
	}
	// Both sold items fall before April; only the undated active item stays.
	if len(report.Items) != 1 || report.Items[0].Product.ID != "active-1" {
		t.Fatalf("date filter kept %d items", len(report.Items))
	}
}

func TestMarkPaid(t *testing.T) {
	svc, settlementRepo := consignmentFixture()
	settlementRepo.settlements["settle-sold"] = &settlementRepo.byProduct[0]

	settlement, err := svc.MarkPaid(context.Background(), "settle-sold")
	if err != nil {
		t.Fatalf("MarkPaid() error = %v", err)
	}
	if settlement.PaidAt == nil {
		t.Fatal("PaidAt not stamped")
	}
	if len(settlementRepo.markedPaid) != 1 {
		t.Fatal("repository MarkPaid not called")
	}

	if _, err := svc.MarkPaid(context.Background(), "settle-sold"); !errors.Is(err, ErrSettlementAlreadyPaid) {
		t.Fatalf("second MarkPaid error = %v, want ErrSettlementAlreadyPaid", err)
	}

	if _, err := svc.MarkPaid(context.Background(), "ghost"); !errors.Is(err, ErrSettlementNotFound) {
		t.Fatalf("missing settlement error = %v, want ErrSettlementNotFound", err)
	}
}

func TestMarkPaidLosesConcurrentRace(t *testing.T) {
	svc, settlementRepo := consignmentFixture()
	settlementRepo.settlements["settle-sold"] = &settlementRepo.byProduct[0]
	settlementRepo.markPaidErr = repositories.ErrSettlementAlreadyPaid

	if _, err := svc.MarkPaid(context.Background(), "settle-sold"); !errors.Is(err, ErrSettlementAlreadyPaid) {
		t.Fatalf("MarkPaid() error = %v, want ErrSettlementAlreadyPaid when the update hits zero rows", err)
	}
}
