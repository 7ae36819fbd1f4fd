package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/repositories"
)

var (
	ErrSaleNotFound       = errors.New("sale not found")
	ErrSaleItemNotFound   = errors.New("sale item not found")
	ErrSaleAlreadyVoided  = errors.New("sale is already voided")
	ErrSaleVoided         = errors.New("voided sales cannot be edited")
	ErrVoidReasonRequired = errors.New("a void reason is required")
	ErrSettlementPaid     = errors.New("a consignment payout on this sale has already been paid")
)

type SalesService struct {
	db             *gorm.DB
	saleRepo       repositories.SaleRepositoryImpl
	saleItemRepo   repositories.SaleItemRepositoryImpl
	productRepo    repositories.ProductRepositoryImpl
	settlementRepo repositories.SettlementRepositoryImpl
	stockRepo      repositories.StockRepositoryImpl
}

func NewSalesService(
	db *gorm.DB,
	saleRepo repositories.SaleRepositoryImpl,
	saleItemRepo repositories.SaleItemRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	settlementRepo repositories.SettlementRepositoryImpl,
	stockRepo repositories.StockRepositoryImpl,
) *SalesService {
	return &SalesService{
		db:             db,
		saleRepo:       saleRepo,
		saleItemRepo:   saleItemRepo,
		productRepo:    productRepo,
		settlementRepo: settlementRepo,
		stockRepo:      stockRepo,
	}
}

func (s *SalesService) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

func (s *SalesService) ListSales(ctx context.Context, from, to *time.Time, status string, limit, offset int) ([]models.Sale, int64, error) {
	return s.saleRepo.List(ctx, from, to, status, limit, offset)
}

// EditItemInput carries the new values for one sale line. Nil fields keep the
// stored value.
type EditItemInput struct {
	Qty       *int             `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Discount  *decimal.Decimal `json:"discount"`
}

// EditItem rewrites one line of a completed sale and recomputes the sale's
// totals from its lines. A quantity increase takes the extra stock and can
// fail the same way checkout does; a decrease returns it.
func (s *SalesService) EditItem(ctx context.Context, saleID, itemID, userID string, input EditItemInput) (*models.Sale, error) {
	sale, err := s.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.Status == models.SaleStatusVoided {
		return nil, ErrSaleVoided
	}

	items, err := s.saleItemRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	var edited *models.SaleItem
	for i := range items {
		if items[i].ID == itemID {
			edited = &items[i]
			break
		}
	}
	if edited == nil {
		return nil, ErrSaleItemNotFound
	}

	newQty := edited.Qty
	if input.Qty != nil {
		newQty = *input.Qty
	}
	newPrice := edited.UnitPrice
	if input.UnitPrice != nil {
		newPrice = *input.UnitPrice
	}
	newDiscount := edited.Discount
	if input.Discount != nil {
		newDiscount = *input.Discount
	}

	if newQty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if newPrice.IsNegative() || newDiscount.IsNegative() {
		return nil, fmt.Errorf("unit price and discount cannot be negative")
	}

	qtyDelta := newQty - edited.Qty
	if qtyDelta == 0 && newPrice.Equal(edited.UnitPrice) && newDiscount.Equal(edited.Discount) {
		// Nothing changed, nothing written.
		return sale, nil
	}

	edited.Qty = newQty
	edited.UnitPrice = newPrice
	edited.Discount = newDiscount
	edited.LineTotal = models.LineTotalFor(newQty, newPrice, newDiscount, edited.TaxRate)

	recomputeTotals(sale, items)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.editTx(ctx, tx, sale, edited, qtyDelta, userID)
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// editTx applies one line edit: the stock delta with its ledger row, then the
// line and sale saves.
func (s *SalesService) editTx(ctx context.Context, tx *gorm.DB, sale *models.Sale, edited *models.SaleItem, qtyDelta int, userID string) error {
	if qtyDelta > 0 {
		if err := s.productRepo.DecrementStock(ctx, tx, edited.ProductID, qtyDelta); err != nil {
			return fmt.Errorf("%w: %v", ErrInsufficientStock, err)
		}
	} else if qtyDelta < 0 {
		if err := s.productRepo.IncrementStock(ctx, tx, edited.ProductID, -qtyDelta); err != nil {
			return err
		}
	}
	if qtyDelta != 0 {
		adjustment := &models.StockAdjustment{
			ProductID: edited.ProductID,
			Delta:     -qtyDelta,
			Reason:    models.StockReasonEdit,
			Note:      sale.Code,
			UserID:    userIDPtr(userID),
		}
		if err := s.stockRepo.Create(ctx, tx, adjustment); err != nil {
			return err
		}
	}
	if err := s.saleItemRepo.Save(ctx, tx, edited); err != nil {
		return err
	}
	return s.saleRepo.Save(ctx, tx, sale)
}

// Void cancels a completed sale. Stock goes back, unpaid consignment payouts
// for the sale are removed, and the sale keeps its lines for the audit trail.
// There is no undo.
func (s *SalesService) Void(ctx context.Context, saleID, reason, userID string) (*models.Sale, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrVoidReasonRequired
	}

	sale, err := s.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.Status == models.SaleStatusVoided {
		return nil, ErrSaleAlreadyVoided
	}

	settlements, err := s.settlementRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	for _, settlement := range settlements {
		if settlement.PaidAt != nil {
			return nil, ErrSettlementPaid
		}
	}

	items, err := s.saleItemRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale.Status = models.SaleStatusVoided
	sale.VoidReason = reason
	sale.VoidedAt = &now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.voidTx(ctx, tx, sale, items, userID)
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// voidTx returns each line's stock with a ledger row, removes the sale's
// unpaid payouts and saves the stamped sale.
func (s *SalesService) voidTx(ctx context.Context, tx *gorm.DB, sale *models.Sale, items []models.SaleItem, userID string) error {
	for _, item := range items {
		if err := s.productRepo.IncrementStock(ctx, tx, item.ProductID, item.Qty); err != nil {
			return err
		}
		adjustment := &models.StockAdjustment{
			ProductID: item.ProductID,
			Delta:     item.Qty,
			Reason:    models.StockReasonVoid,
			Note:      sale.Code,
			UserID:    userIDPtr(userID),
		}
		if err := s.stockRepo.Create(ctx, tx, adjustment); err != nil {
			return err
		}
	}
	if err := s.settlementRepo.DeleteUnpaidBySale(ctx, tx, sale.ID); err != nil {
		return err
	}
	return s.saleRepo.Save(ctx, tx, sale)
}

// recomputeTotals rebuilds a sale's totals from its lines. Per-line discounts
// were fixed at checkout, so there is no redistribution here.
func recomputeTotals(sale *models.Sale, items []models.SaleItem) {
	subtotal := decimal.Zero
	discountTotal := decimal.Zero
	taxTotal := decimal.Zero
	for _, item := range items {
		lineSubtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Qty)))
		subtotal = subtotal.Add(lineSubtotal)
		discountTotal = discountTotal.Add(item.Discount)
		taxTotal = taxTotal.Add(lineSubtotal.Sub(item.Discount).Mul(item.TaxRate).Div(decimal.NewFromInt(100)))
	}
	sale.Subtotal = subtotal
	sale.DiscountTotal = discountTotal
	sale.TaxTotal = taxTotal.Round(2)
	sale.Total = subtotal.Sub(discountTotal).Add(sale.TaxTotal)
}

func userIDPtr(userID string) *string {
	if userID == "" {
		return nil
	}
	return &userID
}
