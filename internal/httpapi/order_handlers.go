package httpapi

import (
	"net/http"

	"cafeteria.app/internal/auth"
)

// handleViewOrder returns the pending order queue for the caller's store.
func (a *API) handleViewOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		unauthorized(w, r, "unauthorized")
		return
	}

	items, err := a.svc.ListQueue(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	if len(items) == 0 {
		writeError(w, r, http.StatusNotFound, "no orders found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":    items,
		"message": "data retrieved successfully",
	})
}
