package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"inboxd/internal/db"
)

func (a *API) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (a *API) respondError(w http.ResponseWriter, status int, message string) {
	a.respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError maps core errors onto HTTP statuses. Anything outside
// the typed results is an infrastructure failure: logged, reported as 500.
func (a *API) respondStoreError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, db.ErrNoteNotFound):
		a.respondError(w, http.StatusNotFound, "note not found")
	case errors.Is(err, db.ErrInvalidRelationType):
		a.respondError(w, http.StatusBadRequest, err.Error())
	default:
		a.logger.Error(op, zap.Error(err), zap.String("path", r.URL.Path))
		a.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
