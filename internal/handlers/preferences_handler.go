package handlers

import (
	"net/http"

	"github.com/khatabook/backend/internal/services"
)

type PreferencesHandler struct {
	service   *services.PreferencesService
	validator *services.ValidationHelper
}

func NewPreferencesHandler(service *services.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// GetPreferences returns the saved theme and language
// @Summary Get preferences
// @Tags Preferences
// @Produce json
// @Router /preferences [get]
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.service.Get(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// SetPreferences saves theme and language
// @Summary Set preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Router /preferences [put]
func (h *PreferencesHandler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme    string `json:"theme" validate:"required,oneof=light dark"`
		Language string `json:"language" validate:"required,oneof=en ur"`
	}

	if !decodeStrict(w, r, &req) {
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	prefs := services.Preferences{Theme: req.Theme, Language: req.Language}
	if err := h.service.Set(r.Context(), prefs); err != nil {
		sendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}
