package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hwickes/restyle-pos/app/helpers"
	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/repositories"
	"github.com/hwickes/restyle-pos/app/utils/renderer"
)

type SupplierHandler struct {
	supplierRepo repositories.SupplierRepositoryImpl
}

func NewSupplierHandler(supplierRepo repositories.SupplierRepositoryImpl) *SupplierHandler {
	return &SupplierHandler{supplierRepo: supplierRepo}
}

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.supplierRepo.List(r.Context())
	if err != nil {
		renderer.Error(w, http.StatusInternalServerError, "failed to load suppliers")
		return
	}
	renderer.JSON(w, http.StatusOK, suppliers)
}

type supplierRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderer.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		renderer.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	supplier := &models.Supplier{Name: req.Name, Email: req.Email, Phone: req.Phone, Notes: req.Notes}
	if err := h.supplierRepo.Create(r.Context(), supplier); err != nil {
		renderer.Error(w, http.StatusConflict, helpers.TranslateDBError(err))
		return
	}
	renderer.JSON(w, http.StatusCreated, supplier)
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.supplierRepo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		renderer.Error(w, http.StatusInternalServerError, "failed to load supplier")
		return
	}
	if supplier == nil {
		renderer.Error(w, http.StatusNotFound, "supplier not found")
		return
	}

	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderer.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		renderer.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	supplier.Name = req.Name
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.Notes = req.Notes
	if err := h.supplierRepo.Update(r.Context(), supplier); err != nil {
		renderer.Error(w, http.StatusConflict, helpers.TranslateDBError(err))
		return
	}
	renderer.JSON(w, http.StatusOK, supplier)
}

type LocationHandler struct {
	locationRepo repositories.LocationRepositoryImpl
}

func NewLocationHandler(locationRepo repositories.LocationRepositoryImpl) *LocationHandler {
	return &LocationHandler{locationRepo: locationRepo}
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationRepo.List(r.Context())
	if err != nil {
		renderer.Error(w, http.StatusInternalServerError, "failed to load locations")
		return
	}
	renderer.JSON(w, http.StatusOK, locations)
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderer.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		renderer.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	location := &models.Location{Name: req.Name}
	if err := h.locationRepo.Create(r.Context(), location); err != nil {
		renderer.Error(w, http.StatusConflict, helpers.TranslateDBError(err))
		return
	}
	renderer.JSON(w, http.StatusCreated, location)
}
