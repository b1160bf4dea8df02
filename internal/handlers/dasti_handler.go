package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/khatabook/backend/internal/services"
)

type DastiHandler struct {
	service   *services.DastiService
	validator *services.ValidationHelper
}

func NewDastiHandler(service *services.DastiService) *DastiHandler {
	return &DastiHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// ListDastis returns all IOU records, newest first
// @Summary List dasti khatas
// @Tags DastiKhata
// @Produce json
// @Router /dasti-khatas [get]
func (h *DastiHandler) ListDastis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListDastis())
}

// AddDasti records a new IOU
// @Summary Add dasti khata
// @Tags DastiKhata
// @Accept json
// @Produce json
// @Router /dasti-khatas [post]
func (h *DastiHandler) AddDasti(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string          `json:"name" validate:"required,min=1,max=100"`
		Amount      decimal.Decimal `json:"amount"`
		Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
		Description string          `json:"description" validate:"max=200"`
	}

	if !decodeStrict(w, r, &req) {
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	dasti, err := h.service.AddDasti(r.Context(), req.Name, req.Amount, req.Date, req.Description)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dasti)
}

// MarkPaid flips the paid flag
// @Summary Mark dasti khata paid
// @Tags DastiKhata
// @Produce json
// @Router /dasti-khatas/{dastiId}/paid [put]
func (h *DastiHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	dasti, err := h.service.MarkPaid(r.Context(), chi.URLParam(r, "dastiId"))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dasti)
}

// DeleteDasti removes one IOU record
// @Summary Delete dasti khata
// @Tags DastiKhata
// @Router /dasti-khatas/{dastiId} [delete]
func (h *DastiHandler) DeleteDasti(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDasti(r.Context(), chi.URLParam(r, "dastiId")); err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
