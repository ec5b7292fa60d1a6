package httpapi

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cafeteria.app/internal/audit"
	"cafeteria.app/internal/auth"
	"cafeteria.app/internal/cafeteria"
)

const maxImageBytes = 5 << 20

type menuResponse struct {
	MenuID        int64   `json:"menuId"`
	CategoryName  string  `json:"categoryName"`
	MenuName      string  `json:"menuName"`
	MenuDetail    string  `json:"menuDetail"`
	MenuPrice     float64 `json:"menuPrice"`
	MenuState     bool    `json:"menuState"`
	MenuImgBase64 string  `json:"menuImgBase64,omitempty"`
}

// menuForm is the parsed multipart payload shared by create and update.
type menuForm struct {
	CategoryID int64
	Name       string
	Detail     string
	Price      float64
	State      bool
	Image      []byte // nil when no file was uploaded
}

func parseMenuForm(r *http.Request) (menuForm, error) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return menuForm{}, errors.New("request must be multipart/form-data")
	}

	f := menuForm{
		Name:   strings.TrimSpace(r.FormValue("menuName")),
		Detail: strings.TrimSpace(r.FormValue("menuDetail")),
	}
	if f.Name == "" {
		return menuForm{}, errors.New("menuName is required")
	}

	priceRaw := strings.TrimSpace(r.FormValue("menuPrice"))
	if priceRaw == "" {
		return menuForm{}, errors.New("menuPrice is required")
	}
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price < 0 {
		return menuForm{}, errors.New("menuPrice must be a non-negative number")
	}
	f.Price = price

	if raw := strings.TrimSpace(r.FormValue("categoryId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			return menuForm{}, errors.New("categoryId must be a non-negative integer")
		}
		f.CategoryID = id
	}

	if raw := strings.TrimSpace(r.FormValue("menuState")); raw != "" {
		state, err := strconv.ParseBool(raw)
		if err != nil {
			return menuForm{}, errors.New("menuState must be a boolean")
		}
		f.State = state
	}

	file, header, err := r.FormFile("menuImage")
	switch {
	case err == nil:
		defer file.Close()
		if header.Size > maxImageBytes {
			return menuForm{}, errors.New("menu image too large")
		}
		data, err := io.ReadAll(file)
		if err != nil {
			return menuForm{}, fmt.Errorf("read menu image: %w", err)
		}
		f.Image = data
	case errors.Is(err, http.ErrMissingFile):
		// no image uploaded
	default:
		return menuForm{}, fmt.Errorf("read menu image: %w", err)
	}

	return f, nil
}

func (a *API) handleMenuCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "unauthorized")
		return
	}

	form, err := parseMenuForm(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	menu, err := a.svc.CreateMenu(r.Context(), userID, cafeteria.NewMenu{
		CategoryID: form.CategoryID,
		Name:       form.Name,
		Detail:     form.Detail,
		Price:      form.Price,
		Image:      form.Image,
	})
	switch {
	case err == nil:
	case errors.Is(err, cafeteria.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "store not found for this user")
		return
	case errors.Is(err, cafeteria.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, "menuName is required")
		return
	default:
		a.serverError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "menu.create", map[string]any{
		"menu_id":   menu.ID,
		"menu_name": menu.Name,
	})

	writeJSON(w, http.StatusOK, map[string]any{"message": "menu created successfully"})
}

func (a *API) handleMenuUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, http.MethodPut)
		return
	}
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "unauthorized")
		return
	}
	menuID, ok := menuIDFromPath(r.URL.Path, "/api/menu/update-menu/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "menu not found")
		return
	}

	form, err := parseMenuForm(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err = a.svc.UpdateMenu(r.Context(), userID, menuID, cafeteria.MenuUpdate{
		CategoryID: form.CategoryID,
		Name:       form.Name,
		Detail:     form.Detail,
		Price:      form.Price,
		Active:     form.State,
		Image:      form.Image,
	})
	switch {
	case err == nil:
	case errors.Is(err, cafeteria.ErrNotFound):
		// Same response whether the menu is missing or owned by someone else.
		writeError(w, r, http.StatusNotFound, "menu not found")
		return
	case errors.Is(err, cafeteria.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, "menuName is required")
		return
	default:
		a.serverError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "menu.update", map[string]any{
		"menu_id": menuID,
	})

	writeJSON(w, http.StatusOK, map[string]any{"message": "menu updated successfully"})
}

func (a *API) handleMenuList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "unauthorized")
		return
	}

	menus, err := a.svc.ListMenus(r.Context(), userID)
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	res := make([]menuResponse, 0, len(menus))
	for _, m := range menus {
		item := menuResponse{
			MenuID:       m.ID,
			CategoryName: m.CategoryName,
			MenuName:     m.Name,
			MenuDetail:   m.Detail,
			MenuPrice:    m.Price,
			MenuState:    m.Active,
		}
		if len(m.Image) > 0 {
			item.MenuImgBase64 = base64.StdEncoding.EncodeToString(m.Image)
		}
		res = append(res, item)
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) handleMenuDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, r, http.MethodDelete)
		return
	}
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "unauthorized")
		return
	}
	menuID, ok := menuIDFromPath(r.URL.Path, "/api/menu/delete-menu/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "menu not found")
		return
	}

	err := a.svc.DeleteMenu(r.Context(), userID, menuID)
	switch {
	case err == nil:
	case errors.Is(err, cafeteria.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "menu not found")
		return
	default:
		a.serverError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "menu.delete", map[string]any{
		"menu_id": menuID,
	})

	writeJSON(w, http.StatusOK, map[string]any{"message": "menu deleted successfully"})
}

func menuIDFromPath(path, prefix string) (int64, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || raw == path || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
