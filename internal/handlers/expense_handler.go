package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/khatabook/backend/internal/services"
)

type ExpenseHandler struct {
	service   *services.ExpenseService
	validator *services.ValidationHelper
}

func NewExpenseHandler(service *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// ListExpenses returns the standalone expense log
// @Summary List expenses
// @Tags Expenses
// @Produce json
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListExpenses())
}

// AddExpense appends to the expense log
// @Summary Add expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Router /expenses [post]
func (h *ExpenseHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string          `json:"description" validate:"required,max=200"`
		Amount      decimal.Decimal `json:"amount"`
		Date        time.Time       `json:"date" validate:"required"`
	}

	if !decodeStrict(w, r, &req) {
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	expense, err := h.service.AddExpense(r.Context(), req.Description, req.Amount, req.Date)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

// DeleteExpense removes one entry from the log
// @Summary Delete expense
// @Tags Expenses
// @Router /expenses/{expenseId} [delete]
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteExpense(r.Context(), chi.URLParam(r, "expenseId")); err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Summary returns monthly grouping, per-month totals and the grand total
// @Summary Expense summary
// @Tags Expenses
// @Produce json
// @Router /expenses/summary [get]
func (h *ExpenseHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Summary())
}
