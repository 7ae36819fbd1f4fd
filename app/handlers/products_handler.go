package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hwickes/restyle-pos/app/helpers"
	"github.com/hwickes/restyle-pos/app/middlewares"
	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/repositories"
	"github.com/hwickes/restyle-pos/app/utils/filters"
	"github.com/hwickes/restyle-pos/app/utils/renderer"
)

const defaultPageSize = 24

type ProductHandler struct {
	db          *gorm.DB
	productRepo repositories.ProductRepositoryImpl
	stockRepo   repositories.StockRepositoryImpl
}

func NewProductHandler(db *gorm.DB, productRepo repositories.ProductRepositoryImpl, stockRepo repositories.StockRepositoryImpl) *ProductHandler {
	return &ProductHandler{db: db, productRepo: productRepo, stockRepo: stockRepo}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	criteria := filters.ParseQuery(query)
	search := query.Get("search")

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(query.Get("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = defaultPageSize
	}

	products, total, err := h.productRepo.ListFiltered(r.Context(), criteria, search, perPage, (page-1)*perPage)
	if err != nil {
		log.Printf("ProductList: %v", err)
		renderer.Error(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	renderer.JSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		renderer.Error(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if product == nil {
		renderer.Error(w, http.StatusNotFound, "product not found")
		return
	}
	renderer.JSON(w, http.StatusOK, product)
}

// GetBySlug resolves the human-readable product URL used on printed labels.
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.productRepo.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		renderer.Error(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if product == nil {
		renderer.Error(w, http.StatusNotFound, "product not found")
		return
	}
	renderer.JSON(w, http.StatusOK, product)
}

type productRequest struct {
	Name        string  `json:"name" validate:"required"`
	Sku         string  `json:"sku"`
	Barcode     *string `json:"barcode"`
	Description string  `json:"description"`

	Category string `json:"category"`
	Fabric   string `json:"fabric"`
	Size     string `json:"size"`
	Color    string `json:"color"`

	SupplierID *string `json:"supplier_id"`
	LocationID *string `json:"location_id"`

	UnitCost         decimal.Decimal `json:"unit_cost"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	ReorderThreshold int             `json:"reorder_threshold"`
	Stock            int             `json:"stock"`
	TrackStock       *bool           `json:"track_stock"`

	IsTradeIn     bool   `json:"is_trade_in"`
	TradeInStatus string `json:"trade_in_status" validate:"omitempty,oneof=pending processed"`

	IsConsignment         bool       `json:"is_consignment"`
	ConsignmentSupplierID *string    `json:"consignment_supplier_id"`
	ConsignmentStartDate  *time.Time `json:"consignment_start_date"`
	ConsignmentEndDate    *time.Time `json:"consignment_end_date"`
	ConsignmentTerms      string     `json:"consignment_terms"`

	IsRegistered bool       `json:"is_registered"`
	ImageURL     string     `json:"image_url"`
	PurchaseDate *time.Time `json:"purchase_date"`
}

func (req *productRequest) apply(product *models.Product) {
	product.Name = req.Name
	product.Sku = req.Sku
	product.Barcode = req.Barcode
	product.Description = req.Description
	product.Category = req.Category
	product.Fabric = req.Fabric
	product.Size = req.Size
	product.Color = req.Color
	product.SupplierID = req.SupplierID
	product.LocationID = req.LocationID
	product.UnitCost = req.UnitCost
	product.UnitPrice = req.UnitPrice
	product.TaxRate = req.TaxRate
	product.ReorderThreshold = req.ReorderThreshold
	if req.TrackStock != nil {
		product.TrackStock = *req.TrackStock
	}
	product.IsTradeIn = req.IsTradeIn
	product.TradeInStatus = req.TradeInStatus
	product.IsConsignment = req.IsConsignment
	product.ConsignmentSupplierID = req.ConsignmentSupplierID
	product.ConsignmentStartDate = req.ConsignmentStartDate
	product.ConsignmentEndDate = req.ConsignmentEndDate
	product.ConsignmentTerms = req.ConsignmentTerms
	product.IsRegistered = req.IsRegistered
	product.ImageURL = req.ImageURL
	product.PurchaseDate = req.PurchaseDate
}

// Create is the intake path. A trade-in arrives as pending until processed,
// and a positive opening stock writes an intake ledger row.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderer.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		renderer.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}
	if req.Stock < 0 {
		renderer.Error(w, http.StatusBadRequest, "opening stock cannot be negative")
		return
	}
	if req.IsTradeIn && req.TradeInStatus == "" {
		req.TradeInStatus = models.TradeInPending
	}

	product := &models.Product{
		ID:         uuid.New().String(),
		Stock:      req.Stock,
		TrackStock: true,
	}
	req.apply(product)
	product.Slug = slug.Make(req.Name) + "-" + product.ID[:8]
	if product.Sku == "" {
		product.Sku = "SKU-" + product.ID[:8]
	}

	user := middlewares.CurrentUser(r.Context())
	err := h.db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		if product.Stock == 0 {
			return nil
		}
		adjustment := &models.StockAdjustment{
			ProductID: product.ID,
			Delta:     product.Stock,
			Reason:    models.StockReasonIntake,
			Note:      "opening stock",
		}
		if user != nil {
			adjustment.UserID = &user.ID
		}
		return h.stockRepo.Create(r.Context(), tx, adjustment)
	})
	if err != nil {
		renderer.Error(w, http.StatusConflict, helpers.TranslateDBError(err))
		return
	}

	renderer.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		renderer.Error(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if product == nil {
		renderer.Error(w, http.StatusNotFound, "product not found")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderer.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		renderer.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	req.apply(product)
	if err := h.productRepo.Update(r.Context(), product); err != nil {
		renderer.Error(w, http.StatusConflict, helpers.TranslateDBError(err))
		return
	}

	renderer.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.productRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrProductReferenced) {
			renderer.Error(w, http.StatusConflict, "product has recorded sales and cannot be deleted")
			return
		}
		renderer.Error(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.productRepo.FilterOptions(r.Context())
	if err != nil {
		log.Printf("FilterOptions: %v", err)
		renderer.Error(w, http.StatusInternalServerError, "failed to load filter options")
		return
	}
	renderer.JSON(w, http.StatusOK, opts)
}

type adjustStockRequest struct {
	Delta int    `json:"delta"`
	Note  string `json:"note"`
}

// AdjustStock is the manual correction path: shrinkage, found stock, recounts.
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		renderer.Error(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if product == nil {
		renderer.Error(w, http.StatusNotFound, "product not found")
		return
	}

	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderer.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Delta == 0 {
		renderer.Error(w, http.StatusBadRequest, "delta cannot be zero")
		return
	}

	user := middlewares.CurrentUser(r.Context())
	err = h.db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if req.Delta > 0 {
			if err := h.productRepo.IncrementStock(r.Context(), tx, id, req.Delta); err != nil {
				return err
			}
		} else {
			if err := h.productRepo.DecrementStock(r.Context(), tx, id, -req.Delta); err != nil {
				return err
			}
		}
		adjustment := &models.StockAdjustment{
			ProductID: id,
			Delta:     req.Delta,
			Reason:    models.StockReasonManual,
			Note:      req.Note,
		}
		if user != nil {
			adjustment.UserID = &user.ID
		}
		return h.stockRepo.Create(r.Context(), tx, adjustment)
	})
	if err != nil {
		renderer.Error(w, http.StatusConflict, "adjustment would take stock below zero")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) StockHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	history, err := h.stockRepo.ListByProduct(r.Context(), id, limit)
	if err != nil {
		renderer.Error(w, http.StatusInternalServerError, "failed to load stock history")
		return
	}
	renderer.JSON(w, http.StatusOK, history)
}

func (h *ProductHandler) PendingTradeIns(w http.ResponseWriter, r *http.Request) {
	stats, err := h.productRepo.PendingTradeInStats(r.Context())
	if err != nil {
		renderer.Error(w, http.StatusInternalServerError, "failed to load trade-in stats")
		return
	}
	renderer.JSON(w, http.StatusOK, stats)
}
