package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/khatabook/backend/internal/services"
)

type BackupHandler struct {
	service  *services.BackupService
	khatas   *services.KhataService
	expenses *services.ExpenseService
	log      zerolog.Logger
}

func NewBackupHandler(service *services.BackupService, khatas *services.KhataService, expenses *services.ExpenseService, log zerolog.Logger) *BackupHandler {
	return &BackupHandler{
		service:  service,
		khatas:   khatas,
		expenses: expenses,
		log:      log,
	}
}

// CreateBackup snapshots the primary collections
// @Summary Create backup
// @Tags Backup
// @Produce json
// @Router /backup [post]
func (h *BackupHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.CreateBackup(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// RestoreBackup overwrites the primary keys from the backup and reloads the
// in-memory services so the API serves the restored data immediately
// @Summary Restore backup
// @Tags Backup
// @Produce json
// @Router /backup/restore [post]
func (h *BackupHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RestoreBackup(r.Context()); err != nil {
		sendServiceError(w, err)
		return
	}

	if err := h.khatas.Reload(r.Context()); err != nil {
		sendServiceError(w, err)
		return
	}
	if err := h.expenses.Reload(r.Context()); err != nil {
		sendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// BackupInfo reports whether a backup exists and when it was taken
// @Summary Backup info
// @Tags Backup
// @Produce json
// @Router /backup [get]
func (h *BackupHandler) BackupInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Info(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// ClearBackup drops the backup keys
// @Summary Clear backup
// @Tags Backup
// @Router /backup [delete]
func (h *BackupHandler) ClearBackup(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearBackup(r.Context()); err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ImportData overwrites the primary collections with a payload exported from
// another device, then reloads the in-memory services like RestoreBackup does
// @Summary Import data
// @Tags Backup
// @Accept json
// @Produce json
// @Router /import [post]
func (h *BackupHandler) ImportData(w http.ResponseWriter, r *http.Request) {
	var payload services.ExportPayload
	if !decodeStrict(w, r, &payload) {
		return
	}

	if err := h.service.Import(r.Context(), payload); err != nil {
		sendServiceError(w, err)
		return
	}

	if err := h.khatas.Reload(r.Context()); err != nil {
		sendServiceError(w, err)
		return
	}
	if err := h.expenses.Reload(r.Context()); err != nil {
		sendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Export returns the versioned full-data payload
// @Summary Export data
// @Tags Backup
// @Produce json
// @Router /export [get]
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	payload, err := h.service.Export(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// ExportQR returns the export payload rendered as a base64 PNG QR code
// @Summary Export data as QR
// @Tags Backup
// @Produce json
// @Router /export/qr [get]
func (h *BackupHandler) ExportQR(w http.ResponseWriter, r *http.Request) {
	qr, err := h.service.ExportQR(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"qrImage": qr})
}
