package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/hwickes/restyle-pos/app/middlewares"
	"github.com/hwickes/restyle-pos/app/services"
	"github.com/hwickes/restyle-pos/app/utils/renderer"
)

type SalesHandler struct {
	sales  *services.SalesService
	mailer *services.Mailer
}

func NewSalesHandler(sales *services.SalesService, mailer *services.Mailer) *SalesHandler {
	return &SalesHandler{sales: sales, mailer: mailer}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(query.Get("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}

	sales, total, err := h.sales.ListSales(
		r.Context(),
		parseDate(query.Get("from")),
		parseDate(query.Get("to")),
		query.Get("status"),
		perPage,
		(page-1)*perPage,
	)
	if err != nil {
		log.Printf("SalesList: %v", err)
		renderer.Error(w, http.StatusInternalServerError, "failed to load sales")
		return
	}

	renderer.JSON(w, http.StatusOK, map[string]interface{}{
		"sales":    sales,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *SalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	sale, err := h.sales.GetSale(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		renderer.Error(w, salesStatus(err), err.Error())
		return
	}
	renderer.JSON(w, http.StatusOK, sale)
}

func (h *SalesHandler) EditItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var input services.EditItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		renderer.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := ""
	if user := middlewares.CurrentUser(r.Context()); user != nil {
		userID = user.ID
	}

	sale, err := h.sales.EditItem(r.Context(), vars["id"], vars["itemID"], userID, input)
	if err != nil {
		renderer.Error(w, salesStatus(err), err.Error())
		return
	}
	renderer.JSON(w, http.StatusOK, sale)
}

type voidRequest struct {
	Reason string `json:"reason"`
}

func (h *SalesHandler) Void(w http.ResponseWriter, r *http.Request) {
	var req voidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderer.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := ""
	if user := middlewares.CurrentUser(r.Context()); user != nil {
		userID = user.ID
	}

	sale, err := h.sales.Void(r.Context(), mux.Vars(r)["id"], req.Reason, userID)
	if err != nil {
		renderer.Error(w, salesStatus(err), err.Error())
		return
	}
	renderer.JSON(w, http.StatusOK, sale)
}

type emailReceiptRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// EmailReceipt re-sends the receipt for an existing sale.
func (h *SalesHandler) EmailReceipt(w http.ResponseWriter, r *http.Request) {
	var req emailReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		renderer.Error(w, http.StatusBadRequest, "a destination email is required")
		return
	}

	sale, err := h.sales.GetSale(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		renderer.Error(w, salesStatus(err), err.Error())
		return
	}

	receipt := services.BuildReceipt(sale, sale.SaleItems)
	if err := h.mailer.SendReceipt(req.Email, receipt); err != nil {
		renderer.Error(w, http.StatusBadGateway, "failed to send the receipt email")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func salesStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSaleNotFound),
		errors.Is(err, services.ErrSaleItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrSaleVoided),
		errors.Is(err, services.ErrSaleAlreadyVoided),
		errors.Is(err, services.ErrSettlementPaid):
		return http.StatusConflict
	case errors.Is(err, services.ErrVoidReasonRequired),
		errors.Is(err, services.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInsufficientStock):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
