package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"cafeteria.app/internal/audit"
	"cafeteria.app/internal/auth"
	"cafeteria.app/internal/cafeteria"
)

type createStoreRequest struct {
	StoreName   string `json:"storeName"`
	StorePhone  string `json:"storePhone"`
	StoreNum    string `json:"storeNum"`
	StoreDetail string `json:"storeDetail"`
	StoreType   string `json:"storeType"`
}

func (a *API) handleStoreCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "unauthorized")
		return
	}

	var req createStoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.StoreName) == "" {
		writeError(w, r, http.StatusBadRequest, "store name is required")
		return
	}

	store, err := a.svc.CreateStore(r.Context(), userID, cafeteria.NewStore{
		Name:   strings.TrimSpace(req.StoreName),
		Phone:  strings.TrimSpace(req.StorePhone),
		Number: strings.TrimSpace(req.StoreNum),
		Detail: strings.TrimSpace(req.StoreDetail),
		Type:   strings.TrimSpace(req.StoreType),
	})
	switch {
	case err == nil:
	case errors.Is(err, cafeteria.ErrAlreadyExists):
		writeError(w, r, http.StatusBadRequest, "store already exists for this user")
		return
	case errors.Is(err, cafeteria.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, "store name is required")
		return
	default:
		a.serverError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "store.create", map[string]any{
		"store_id":   store.ID,
		"store_name": store.Name,
	})

	writeJSON(w, http.StatusOK, map[string]any{"message": "store created successfully"})
}
