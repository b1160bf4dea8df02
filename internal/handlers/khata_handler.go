package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/khatabook/backend/internal/services"
)

type KhataHandler struct {
	service   *services.KhataService
	validator *services.ValidationHelper
}

func NewKhataHandler(service *services.KhataService) *KhataHandler {
	return &KhataHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// CreateKhata opens a new khata with its initial funding amount
// @Summary Create khata
// @Tags Khata
// @Accept json
// @Produce json
// @Router /khatas [post]
func (h *KhataHandler) CreateKhata(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string          `json:"name" validate:"required,min=1,max=100"`
		Date          string          `json:"date" validate:"required,datetime=2006-01-02"`
		InitialAmount decimal.Decimal `json:"initialAmount"`
	}

	if !decodeStrict(w, r, &req) {
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	khata, err := h.service.CreateKhata(r.Context(), req.Name, req.Date, req.InitialAmount)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, khata)
}

// ListKhatas returns every khata
// @Summary List khatas
// @Tags Khata
// @Produce json
// @Router /khatas [get]
func (h *KhataHandler) ListKhatas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListKhatas())
}

// GetKhata returns one khata with its expenses and ledger
// @Summary Get khata
// @Tags Khata
// @Produce json
// @Router /khatas/{khataId} [get]
func (h *KhataHandler) GetKhata(w http.ResponseWriter, r *http.Request) {
	khata, err := h.service.GetKhata(chi.URLParam(r, "khataId"))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, khata)
}

// DeleteKhata removes a khata and all nested data
// @Summary Delete khata
// @Tags Khata
// @Router /khatas/{khataId} [delete]
func (h *KhataHandler) DeleteKhata(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteKhata(r.Context(), chi.URLParam(r, "khataId")); err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// RecordExpense debits a khata
// @Summary Record expense
// @Tags Khata
// @Accept json
// @Produce json
// @Router /khatas/{khataId}/expenses [post]
func (h *KhataHandler) RecordExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date   string          `json:"date" validate:"required,datetime=2006-01-02"`
		Source string          `json:"source" validate:"required,max=200"`
		Amount decimal.Decimal `json:"amount"`
	}

	if !decodeStrict(w, r, &req) {
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	expense, err := h.service.RecordExpense(r.Context(), chi.URLParam(r, "khataId"), req.Date, req.Source, req.Amount)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

// DeleteExpense reverses one debit
// @Summary Delete expense
// @Tags Khata
// @Router /khatas/{khataId}/expenses/{expenseId} [delete]
func (h *KhataHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteExpense(r.Context(), chi.URLParam(r, "khataId"), chi.URLParam(r, "expenseId"))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// RecordAddAmount credits a khata (negative amount = manual downward adjustment)
// @Summary Add amount
// @Tags Khata
// @Accept json
// @Produce json
// @Router /khatas/{khataId}/amounts [post]
func (h *KhataHandler) RecordAddAmount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description" validate:"required,max=200"`
		Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	}

	if !decodeStrict(w, r, &req) {
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	tx, err := h.service.RecordAddAmount(r.Context(), chi.URLParam(r, "khataId"), req.Amount, req.Description, req.Date)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

// DeleteTransaction reverses one ledger entry
// @Summary Delete transaction
// @Tags Khata
// @Router /khatas/{khataId}/transactions/{txId} [delete]
func (h *KhataHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteTransaction(r.Context(), chi.URLParam(r, "khataId"), chi.URLParam(r, "txId"))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
