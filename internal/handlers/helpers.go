package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/khatabook/backend/internal/services"
)

const maxBodyBytes = 1_048_576

// decodeStrict reads a single JSON object into dest, rejecting unknown fields
// and trailing content. It writes the error response itself and reports
// whether decoding succeeded.
func decodeStrict(w http.ResponseWriter, r *http.Request, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dest); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// sendServiceError maps typed service errors onto HTTP statuses. A persist
// failure keeps its own message so the client can tell "your change is in
// memory but not saved" from a plain server error.
func sendServiceError(w http.ResponseWriter, err error) {
	msg := err.Error()
	if errors.Is(err, services.ErrPersistFailed) {
		msg = "change applied but not persisted; retry the save"
	}
	services.SendErrorResponse(w, msg, services.StatusForError(err), err)
}
