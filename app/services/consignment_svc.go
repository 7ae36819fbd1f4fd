package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/repositories"
)

var (
	ErrSettlementNotFound    = errors.New("settlement not found")
	ErrSettlementAlreadyPaid = errors.New("settlement has already been paid")
)

// ConsignmentItem is the per-product row of a supplier's consignment report.
type ConsignmentItem struct {
	Product      models.Product   `json:"product"`
	Status       string           `json:"status"`
	AgreedPayout decimal.Decimal  `json:"agreed_payout"`
	SoldPrice    *decimal.Decimal `json:"sold_price,omitempty"`
	GrossProfit  *decimal.Decimal `json:"gross_profit,omitempty"`
	SoldAt       *time.Time       `json:"sold_at,omitempty"`
	PaidAt       *time.Time       `json:"paid_at,omitempty"`
	SettlementID string           `json:"settlement_id,omitempty"`
}

// ConsignmentReport aggregates one supplier's consignment stock with payout
// totals for what has sold but not yet been settled.
type ConsignmentReport struct {
	SupplierID   string            `json:"supplier_id"`
	Items        []ConsignmentItem `json:"items"`
	ActiveCount  int               `json:"active_count"`
	SoldCount    int               `json:"sold_count"`
	SettledCount int               `json:"settled_count"`
	OwedPayout   decimal.Decimal   `json:"owed_payout"`
	PaidPayout   decimal.Decimal   `json:"paid_payout"`
}

// ConsignmentQuery narrows the report. Zero values mean no filter.
type ConsignmentQuery struct {
	Status string
	From   *time.Time
	To     *time.Time
}

type ConsignmentService struct {
	productRepo    repositories.ProductRepositoryImpl
	settlementRepo repositories.SettlementRepositoryImpl
}

func NewConsignmentService(
	productRepo repositories.ProductRepositoryImpl,
	settlementRepo repositories.SettlementRepositoryImpl,
) *ConsignmentService {
	return &ConsignmentService{
		productRepo:    productRepo,
		settlementRepo: settlementRepo,
	}
}

// SupplierReport joins a supplier's consignment products with their settlement
// rows. Status comes off the settlement alone: no row means still on the rail.
func (c *ConsignmentService) SupplierReport(ctx context.Context, supplierID string, query ConsignmentQuery) (*ConsignmentReport, error) {
	products, err := c.productRepo.ListConsignmentBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, len(products))
	for i, product := range products {
		productIDs[i] = product.ID
	}

	settlements, err := c.settlementRepo.ListByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string]*models.ConsignmentSettlement, len(settlements))
	for i := range settlements {
		byProduct[settlements[i].ProductID] = &settlements[i]
	}

	report := &ConsignmentReport{
		SupplierID: supplierID,
		Items:      []ConsignmentItem{},
		OwedPayout: decimal.Zero,
		PaidPayout: decimal.Zero,
	}

	for _, product := range products {
		settlement := byProduct[product.ID]
		item := buildConsignmentItem(product, settlement)

		if query.Status != "" && item.Status != query.Status {
			continue
		}
		if !matchesDateRange(item.SoldAt, query.From, query.To) {
			continue
		}

		switch item.Status {
		case models.ConsignmentActive:
			report.ActiveCount++
		case models.ConsignmentSold:
			report.SoldCount++
			report.OwedPayout = report.OwedPayout.Add(item.AgreedPayout)
		case models.ConsignmentSettled:
			report.SettledCount++
			report.PaidPayout = report.PaidPayout.Add(item.AgreedPayout)
		}
		report.Items = append(report.Items, item)
	}

	return report, nil
}

// MarkPaid settles a payout, stamping paid_at once. Paying twice is an error.
func (c *ConsignmentService) MarkPaid(ctx context.Context, settlementID string) (*models.ConsignmentSettlement, error) {
	settlement, err := c.settlementRepo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, ErrSettlementNotFound
	}
	if settlement.PaidAt != nil {
		return nil, ErrSettlementAlreadyPaid
	}

	now := time.Now()
	if err := c.settlementRepo.MarkPaid(ctx, settlementID, now); err != nil {
		if errors.Is(err, repositories.ErrSettlementAlreadyPaid) {
			return nil, ErrSettlementAlreadyPaid
		}
		return nil, err
	}
	settlement.PaidAt = &now
	return settlement, nil
}

func buildConsignmentItem(product models.Product, settlement *models.ConsignmentSettlement) ConsignmentItem {
	item := ConsignmentItem{
		Product:      product,
		Status:       settlement.Status(),
		AgreedPayout: product.UnitCost,
	}
	if settlement == nil {
		return item
	}

	item.SettlementID = settlement.ID
	item.PaidAt = settlement.PaidAt
	if !settlement.PayoutAmount.IsZero() {
		item.AgreedPayout = settlement.PayoutAmount
	}
	soldPrice := settlement.SalePrice
	profit := soldPrice.Sub(item.AgreedPayout)
	item.SoldPrice = &soldPrice
	item.GrossProfit = &profit
	if settlement.Sale != nil {
		soldAt := settlement.Sale.SoldAt
		item.SoldAt = &soldAt
	}
	return item
}

func matchesDateRange(soldAt, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if soldAt == nil {
		// Unsold stock has no date to filter on; keep it visible.
		return true
	}
	if from != nil && soldAt.Before(*from) {
		return false
	}
	if to != nil && soldAt.After(*to) {
		return false
	}
	return true
}
