package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hwickes/restyle-pos/app/services"
	"github.com/hwickes/restyle-pos/app/utils/renderer"
)

type ConsignmentHandler struct {
	consignment *services.ConsignmentService
}

func NewConsignmentHandler(consignment *services.ConsignmentService) *ConsignmentHandler {
	return &ConsignmentHandler{consignment: consignment}
}

func (h *ConsignmentHandler) SupplierReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	report, err := h.consignment.SupplierReport(r.Context(), mux.Vars(r)["supplierID"], services.ConsignmentQuery{
		Status: query.Get("status"),
		From:   parseDate(query.Get("from")),
		To:     parseDate(query.Get("to")),
	})
	if err != nil {
		renderer.Error(w, http.StatusInternalServerError, "failed to build the consignment report")
		return
	}
	renderer.JSON(w, http.StatusOK, report)
}

func (h *ConsignmentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	settlement, err := h.consignment.MarkPaid(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSettlementNotFound):
			renderer.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrSettlementAlreadyPaid):
			renderer.Error(w, http.StatusConflict, err.Error())
		default:
			renderer.Error(w, http.StatusInternalServerError, "failed to mark the payout as paid")
		}
		return
	}
	renderer.JSON(w, http.StatusOK, settlement)
}
