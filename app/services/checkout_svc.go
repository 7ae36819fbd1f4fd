package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/repositories"
	"github.com/hwickes/restyle-pos/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidPayment      = errors.New("unsupported payment method")
	ErrInvalidDiscountType = errors.New("unsupported discount type")
	ErrInsufficientStock   = errors.New("insufficient product stock")
	ErrProductNotFound     = errors.New("product not found")
)

type CheckoutItem struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"quantity"`

	// Optional till-side price override; nil keeps the catalogue price.
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type CheckoutInput struct {
	StaffID         string            `json:"-"`
	StaffMemberName string            `json:"staff_member_name"`
	Payment         string            `json:"payment"`
	Items           []CheckoutItem    `json:"items"`
	DiscountType    calc.DiscountType `json:"discount_type"`
	Discount        decimal.Decimal   `json:"discount"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	Notes           string            `json:"notes"`
	SignatureData   string            `json:"signature_data"`
}

type CheckoutService struct {
	db             *gorm.DB
	productRepo    repositories.ProductRepositoryImpl
	saleRepo       repositories.SaleRepositoryImpl
	saleItemRepo   repositories.SaleItemRepositoryImpl
	settlementRepo repositories.SettlementRepositoryImpl
	stockRepo      repositories.StockRepositoryImpl
}

func NewCheckoutService(
	db *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	saleRepo repositories.SaleRepositoryImpl,
	saleItemRepo repositories.SaleItemRepositoryImpl,
	settlementRepo repositories.SettlementRepositoryImpl,
	stockRepo repositories.StockRepositoryImpl,
) *CheckoutService {
	return &CheckoutService{
		db:             db,
		productRepo:    productRepo,
		saleRepo:       saleRepo,
		saleItemRepo:   saleItemRepo,
		settlementRepo: settlementRepo,
		stockRepo:      stockRepo,
	}
}

func validPayment(method string) bool {
	switch method {
	case models.PaymentCash, models.PaymentCard, models.PaymentTransfer, models.PaymentOther:
		return true
	}
	return false
}

// Checkout runs the sale transaction workflow: validate, stock gate, then the
// sale, its items, any consignment settlements and the stock take persisted as
// one transaction. Validation rejects before any write.
func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*Receipt, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if !validPayment(input.Payment) {
		return nil, ErrInvalidPayment
	}
	if input.Discount.IsNegative() {
		return nil, errors.New("discount cannot be negative")
	}
	switch input.DiscountType {
	case "":
		input.DiscountType = calc.DiscountPercentage
	case calc.DiscountPercentage, calc.DiscountFixed:
	default:
		return nil, ErrInvalidDiscountType
	}

	ids := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Qty <= 0 {
			return nil, ErrInvalidQuantity
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, item := range input.Items {
		if _, ok := byID[item.ProductID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
	}

	// Pre-submit gate. The conditional decrement inside the transaction
	// re-verifies, so a concurrent checkout cannot oversell.
	onHand, err := s.productRepo.OnHand(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to verify stock availability: %w", err)
	}
	if err := verifyStock(input.Items, byID, onHand); err != nil {
		return nil, err
	}

	sale, saleItems, settlements := composeSale(input, byID)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.submitTx(ctx, tx, sale, saleItems, settlements)
	})
	if err != nil {
		return nil, err
	}

	return BuildReceipt(sale, saleItems), nil
}

// verifyStock is the read-only availability gate. Products that do not track
// stock always pass.
func verifyStock(items []CheckoutItem, byID map[string]models.Product, onHand map[string]int) error {
	for _, item := range items {
		product := byID[item.ProductID]
		if !product.TrackStock {
			continue
		}
		if available := onHand[item.ProductID]; available < item.Qty {
			return fmt.Errorf("%w: %q has %d on hand, %d requested", ErrInsufficientStock, product.Name, available, item.Qty)
		}
	}
	return nil
}

// composeSale shapes the records for the insert sequence. Pure: no remote
// calls, so it can be checked without a database.
func composeSale(input CheckoutInput, byID map[string]models.Product) (*models.Sale, []models.SaleItem, []models.ConsignmentSettlement) {
	lines := make([]calc.Line, len(input.Items))
	for i, item := range input.Items {
		product := byID[item.ProductID]
		price := product.UnitPrice
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}
		lines[i] = calc.Line{Qty: item.Qty, UnitPrice: price, TaxRate: product.TaxRate}
	}
	totals := calc.CartTotals(lines, input.DiscountType, input.Discount)

	now := time.Now()
	sale := &models.Sale{
		Code:            fmt.Sprintf("POS-%s-%s", now.Format("20060102"), uuid.New().String()[:8]),
		StaffID:         input.StaffID,
		StaffMemberName: input.StaffMemberName,
		Payment:         input.Payment,
		Subtotal:        totals.Subtotal,
		TaxTotal:        totals.TaxTotal,
		DiscountTotal:   totals.DiscountTotal,
		Total:           totals.GrandTotal,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		Notes:           input.Notes,
		SignatureData:   input.SignatureData,
		Status:          models.SaleStatusCompleted,
		SoldAt:          now,
	}

	saleItems := make([]models.SaleItem, len(input.Items))
	var settlements []models.ConsignmentSettlement

	for i, item := range input.Items {
		product := byID[item.ProductID]
		line := lines[i]

		saleItems[i] = models.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSku:  product.Sku,
			Qty:         item.Qty,
			UnitPrice:   line.UnitPrice,
			UnitCost:    product.UnitCost,
			TaxRate:     product.TaxRate,
			Discount:    totals.LineDiscounts[i],
			LineTotal:   models.LineTotalFor(item.Qty, line.UnitPrice, totals.LineDiscounts[i], product.TaxRate),
		}

		if product.IsConsignment {
			qty := decimal.NewFromInt(int64(item.Qty))
			settlements = append(settlements, models.ConsignmentSettlement{
				ProductID:    product.ID,
				SupplierID:   product.ConsignmentSupplierID,
				SalePrice:    line.UnitPrice.Mul(qty),
				PayoutAmount: product.UnitCost.Mul(qty),
				PaidAt:       nil,
			})
		}
	}

	return sale, saleItems, settlements
}

// submitTx performs the dependent inserts: sale, items, settlements, stock.
func (s *CheckoutService) submitTx(ctx context.Context, tx *gorm.DB, sale *models.Sale, saleItems []models.SaleItem, settlements []models.ConsignmentSettlement) error {
	if err := s.saleRepo.Create(ctx, tx, sale); err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}

	for i := range saleItems {
		saleItems[i].SaleID = sale.ID
	}
	if err := s.saleItemRepo.BulkCreate(ctx, tx, saleItems); err != nil {
		return fmt.Errorf("failed to create sale items: %w", err)
	}

	for i := range settlements {
		settlements[i].SaleID = sale.ID
	}
	if err := s.settlementRepo.BulkCreate(ctx, tx, settlements); err != nil {
		return fmt.Errorf("failed to create consignment settlements: %w", err)
	}

	for _, item := range saleItems {
		if err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Qty); err != nil {
			return fmt.Errorf("%w: %q", ErrInsufficientStock, item.ProductName)
		}
		adjustment := &models.StockAdjustment{
			ProductID: item.ProductID,
			Delta:     -item.Qty,
			Reason:    models.StockReasonSale,
			Note:      sale.Code,
			UserID:    &sale.StaffID,
		}
		if err := s.stockRepo.Create(ctx, tx, adjustment); err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}
	}

	return nil
}
