package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hwickes/restyle-pos/app/middlewares"
	"github.com/hwickes/restyle-pos/app/services"
	"github.com/hwickes/restyle-pos/app/utils/renderer"
)

var salesCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pos_sales_completed_total",
	Help: "Completed sales, by payment method.",
}, []string{"payment"})

type POSHandler struct {
	checkout *services.CheckoutService
	mailer   *services.Mailer
}

func NewPOSHandler(checkout *services.CheckoutService, mailer *services.Mailer) *POSHandler {
	return &POSHandler{checkout: checkout, mailer: mailer}
}

// Checkout submits the cart. The response is the printable receipt; a copy
// goes to the customer's email when one was captured.
func (h *POSHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var input services.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		renderer.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if user := middlewares.CurrentUser(r.Context()); user != nil {
		input.StaffID = user.ID
		if input.StaffMemberName == "" {
			input.StaffMemberName = user.Name
		}
	}

	receipt, err := h.checkout.Checkout(r.Context(), input)
	if err != nil {
		renderer.Error(w, checkoutStatus(err), err.Error())
		return
	}

	salesCompletedTotal.WithLabelValues(input.Payment).Inc()

	if receipt.CustomerEmail != "" && h.mailer != nil {
		// Email failure never unwinds a completed sale.
		go func(to string, rc *services.Receipt) {
			if err := h.mailer.SendReceipt(to, rc); err != nil {
				log.Printf("Checkout: receipt email to %s failed: %v", to, err)
			}
		}(receipt.CustomerEmail, receipt)
	}

	renderer.JSON(w, http.StatusCreated, receipt)
}

func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, services.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidPayment),
		errors.Is(err, services.ErrInvalidDiscountType):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
