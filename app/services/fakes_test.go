package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/repositories"
	"github.com/hwickes/restyle-pos/app/utils/filters"
)

// The fakes below ignore the tx argument; the write methods accept one only so
// the real repositories can share a transaction.

type stockCall struct {
	productID string
	qty       int
}

type fakeProductRepo struct {
	products      map[string]models.Product
	onHand        map[string]int
	consignment   []models.Product
	decremented   []stockCall
	incremented   []stockCall
	failDecrement bool
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) ListFiltered(ctx context.Context, criteria filters.Criteria, search string, limit, offset int) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) ListConsignmentBySupplier(ctx context.Context, supplierID string) ([]models.Product, error) {
	return f.consignment, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error { return nil }
func (f *fakeProductRepo) Update(ctx context.Context, product *models.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id string) error               { return nil }

func (f *fakeProductRepo) FilterOptions(ctx context.Context) (filters.Options, error) {
	return filters.Options{}, nil
}

func (f *fakeProductRepo) OnHand(ctx context.Context, ids []string) (map[string]int, error) {
	return f.onHand, nil
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	if f.failDecrement {
		return errors.New("stock taken by a concurrent sale")
	}
	f.decremented = append(f.decremented, stockCall{productID, qty})
	return nil
}

func (f *fakeProductRepo) IncrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	f.incremented = append(f.incremented, stockCall{productID, qty})
	return nil
}

func (f *fakeProductRepo) PendingTradeInStats(ctx context.Context) (*repositories.TradeInStats, error) {
	return &repositories.TradeInStats{}, nil
}

type fakeSaleRepo struct {
	sales   map[string]*models.Sale
	created []*models.Sale
	saved   []*models.Sale
}

func (f *fakeSaleRepo) Create(ctx context.Context, tx *gorm.DB, sale *models.Sale) error {
	if sale.ID == "" {
		sale.ID = "sale-" + sale.Code
	}
	f.created = append(f.created, sale)
	return nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	return f.sales[id], nil
}

func (f *fakeSaleRepo) List(ctx context.Context, from, to *time.Time, status string, limit, offset int) ([]models.Sale, int64, error) {
	return nil, 0, nil
}

func (f *fakeSaleRepo) Save(ctx context.Context, tx *gorm.DB, sale *models.Sale) error {
	f.saved = append(f.saved, sale)
	return nil
}

func (f *fakeSaleRepo) Summary(ctx context.Context, from, to *time.Time) (*repositories.SalesSummary, error) {
	return &repositories.SalesSummary{}, nil
}

type fakeSaleItemRepo struct {
	itemsBySale map[string][]models.SaleItem
	created     []models.SaleItem
	saved       []*models.SaleItem
}

func (f *fakeSaleItemRepo) BulkCreate(ctx context.Context, tx *gorm.DB, items []models.SaleItem) error {
	f.created = append(f.created, items...)
	return nil
}

func (f *fakeSaleItemRepo) ListBySale(ctx context.Context, saleID string) ([]models.SaleItem, error) {
	return f.itemsBySale[saleID], nil
}

func (f *fakeSaleItemRepo) Save(ctx context.Context, tx *gorm.DB, item *models.SaleItem) error {
	f.saved = append(f.saved, item)
	return nil
}

type fakeSettlementRepo struct {
	settlements map[string]*models.ConsignmentSettlement
	byProduct   []models.ConsignmentSettlement
	bySale      map[string][]models.ConsignmentSettlement
	created     []models.ConsignmentSettlement
	deleted     []string
	markedPaid  []string
	markPaidErr error
}

func (f *fakeSettlementRepo) BulkCreate(ctx context.Context, tx *gorm.DB, settlements []models.ConsignmentSettlement) error {
	f.created = append(f.created, settlements...)
	return nil
}

func (f *fakeSettlementRepo) GetByID(ctx context.Context, id string) (*models.ConsignmentSettlement, error) {
	return f.settlements[id], nil
}

func (f *fakeSettlementRepo) ListByProductIDs(ctx context.Context, productIDs []string) ([]models.ConsignmentSettlement, error) {
	return f.byProduct, nil
}

func (f *fakeSettlementRepo) ListBySale(ctx context.Context, saleID string) ([]models.ConsignmentSettlement, error) {
	return f.bySale[saleID], nil
}

func (f *fakeSettlementRepo) DeleteUnpaidBySale(ctx context.Context, tx *gorm.DB, saleID string) error {
	f.deleted = append(f.deleted, saleID)
	return nil
}

func (f *fakeSettlementRepo) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	if f.markPaidErr != nil {
		return f.markPaidErr
	}
	f.markedPaid = append(f.markedPaid, id)
	return nil
}

func (f *fakeSettlementRepo) OwedPayout(ctx context.Context) (float64, error) {
	return 0, nil
}

type fakeStockRepo struct {
	adjustments []models.StockAdjustment
}

func (f *fakeStockRepo) Create(ctx context.Context, tx *gorm.DB, adjustment *models.StockAdjustment) error {
	f.adjustments = append(f.adjustments, *adjustment)
	return nil
}

func (f *fakeStockRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]models.StockAdjustment, error) {
	return nil, nil
}
