package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/utils/filters"
	"gorm.io/gorm"
)

var ErrProductReferenced = errors.New("product is referenced by sales and cannot be deleted")

type TradeInStats struct {
	Count      int64   `json:"count"`
	TotalValue float64 `json:"total_value"`
}

type ProductRepositoryImpl interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListFiltered(ctx context.Context, criteria filters.Criteria, search string, limit, offset int) ([]models.Product, int64, error)
	ListConsignmentBySupplier(ctx context.Context, supplierID string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	FilterOptions(ctx context.Context) (filters.Options, error)

	// OnHand returns current stock keyed by product id; the pre-submit gate.
	OnHand(ctx context.Context, ids []string) (map[string]int, error)

	// DecrementStock takes stock conditionally and fails when on-hand is short.
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error
	IncrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error

	PendingTradeInStats(ctx context.Context) (*TradeInStats, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Location").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func applyCriteria(q *gorm.DB, criteria filters.Criteria) *gorm.DB {
	if len(criteria.Categories) > 0 {
		q = q.Where("category IN ?", criteria.Categories)
	}
	if len(criteria.Fabrics) > 0 {
		q = q.Where("fabric IN ?", criteria.Fabrics)
	}
	if len(criteria.Sizes) > 0 {
		q = q.Where("size IN ?", criteria.Sizes)
	}
	if len(criteria.Colors) > 0 {
		q = q.Where("color IN ?", criteria.Colors)
	}
	if len(criteria.Suppliers) > 0 {
		q = q.Where("supplier_id IN ?", criteria.Suppliers)
	}
	if len(criteria.Locations) > 0 {
		q = q.Where("location_id IN ?", criteria.Locations)
	}

	switch criteria.StockLevel {
	case filters.StockIn:
		q = q.Where("stock > reorder_threshold")
	case filters.StockRisk:
		q = q.Where("stock > 0 AND stock <= reorder_threshold")
	case filters.StockOut:
		q = q.Where("stock <= 0")
	}

	switch criteria.TradeIn {
	case filters.TradeInOnly:
		q = q.Where("is_trade_in = ?", true)
	case filters.NonTradeIn:
		q = q.Where("is_trade_in = ?", false)
	}

	if criteria.PriceRange.Max > 0 {
		q = q.Where("unit_price BETWEEN ? AND ?", criteria.PriceRange.Min, criteria.PriceRange.Max)
	}

	if criteria.MarginRange.Min > 0 || criteria.MarginRange.Max < 100 {
		q = q.Where(
			"unit_price > 0 AND ((unit_price - unit_cost) / unit_price * 100) BETWEEN ? AND ?",
			criteria.MarginRange.Min, criteria.MarginRange.Max,
		)
	}

	if criteria.InventoryAge != filters.AgeAll && criteria.InventoryAge != "" {
		days := map[filters.InventoryAge]int{filters.Age30: 30, filters.Age60: 60, filters.Age90: 90}[criteria.InventoryAge]
		q = q.Where("created_at <= ?", time.Now().AddDate(0, 0, -days))
	}

	return q
}

func (p *productRepository) ListFiltered(ctx context.Context, criteria filters.Criteria, search string, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	base := applyCriteria(p.db.WithContext(ctx).Model(&models.Product{}), criteria)
	if search != "" {
		keyword := "%" + strings.ToLower(search) + "%"
		base = base.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR barcode = ?", keyword, keyword, search)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Preload("Supplier").
		Preload("Location").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) ListConsignmentBySupplier(ctx context.Context, supplierID string) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Where("is_consignment = ? AND consignment_supplier_id = ?", true, supplierID).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	var referenced int64
	if err := p.db.WithContext(ctx).Model(&models.SaleItem{}).Where("product_id = ?", id).Count(&referenced).Error; err != nil {
		return err
	}
	if referenced > 0 {
		return ErrProductReferenced
	}
	return p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

var defaultCategories = []string{"Shirts", "Pants", "Dresses", "Jackets", "Skirts", "Coats", "Accessories", "Shoes", "Tops", "Sweaters", "Suits", "Jeans"}
var defaultFabrics = []string{"Cotton", "Polyester", "Silk", "Wool", "Linen", "Denim", "Leather", "Cashmere", "Velvet", "Suede"}
var defaultSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "Free Size"}
var defaultColors = []string{"Black", "White", "Red", "Blue", "Green", "Navy", "Gray", "Beige", "Brown", "Pink"}

func mergeDistinct(fromDB, defaults []string) []string {
	seen := map[string]bool{}
	merged := []string{}
	for _, v := range append(append([]string{}, fromDB...), defaults...) {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		merged = append(merged, v)
	}
	return merged
}

func (p *productRepository) distinct(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct(column).
		Where(fmt.Sprintf("%s <> ''", column)).
		Order(column).
		Pluck(column, &values).Error
	return values, err
}

// FilterOptions derives the available filter values from the catalogue, merged
// with the standard clothing defaults. The price range is widened to the
// nearest £100 on either side.
func (p *productRepository) FilterOptions(ctx context.Context) (filters.Options, error) {
	opts := filters.Options{}

	for _, col := range []struct {
		column   string
		defaults []string
		dest     *[]string
	}{
		{"category", defaultCategories, &opts.Categories},
		{"fabric", defaultFabrics, &opts.Fabrics},
		{"size", defaultSizes, &opts.Sizes},
		{"color", defaultColors, &opts.Colors},
	} {
		values, err := p.distinct(ctx, col.column)
		if err != nil {
			return opts, err
		}
		*col.dest = mergeDistinct(values, col.defaults)
	}

	var bounds struct {
		Min float64
		Max float64
	}
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("COALESCE(MIN(unit_price), 0) AS min, COALESCE(MAX(unit_price), 0) AS max").
		Where("unit_price > 0").
		Scan(&bounds).Error
	if err != nil {
		return opts, err
	}

	opts.PriceRange = filters.Range{
		Min: float64(int(bounds.Min/100) * 100),
		Max: float64(int((bounds.Max+99)/100) * 100),
	}
	if opts.PriceRange.Max == 0 {
		opts.PriceRange.Max = 50000
	}
	return opts, nil
}

func (p *productRepository) OnHand(ctx context.Context, ids []string) (map[string]int, error) {
	var rows []struct {
		ID    string
		Stock int
	}
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id", "stock").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	onHand := make(map[string]int, len(rows))
	for _, row := range rows {
		onHand[row.ID] = row.Stock
	}
	return onHand, nil
}

func (p *productRepository) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	res := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND (track_stock = ? OR stock >= ?)", productID, false, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("insufficient stock for product %s", productID)
	}
	return nil
}

func (p *productRepository) IncrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	return tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}

func (p *productRepository) PendingTradeInStats(ctx context.Context) (*TradeInStats, error) {
	var stats TradeInStats
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("COUNT(*) AS count, COALESCE(SUM(unit_price), 0) AS total_value").
		Where("is_trade_in = ? AND trade_in_status = ?", true, models.TradeInPending).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
