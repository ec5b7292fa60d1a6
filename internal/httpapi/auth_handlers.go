package httpapi

import (
	"errors"
	"net/http"

	"cafeteria.app/internal/audit"
	"cafeteria.app/internal/auth"
	"cafeteria.app/internal/obs"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response field casing follows the established client contract.
type signinResponse struct {
	Token    string `json:"Token"`
	UserType string `json:"UserType"`
	Username string `json:"Username"`
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err := a.creds.Register(r.Context(), auth.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		UserType: req.UserType,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, "username, email, password and userType are required")
		return
	case errors.Is(err, auth.ErrAlreadyExists):
		writeError(w, r, http.StatusBadRequest, "username already taken")
		return
	default:
		a.serverError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.signup", map[string]any{
		"username":  req.Username,
		"user_type": req.UserType,
	})

	writeJSON(w, http.StatusOK, map[string]any{"message": "success"})
}

func (a *API) handleSignin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req signinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	identity, err := a.creds.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			obs.ObserveSignin("rejected")
			// One message for unknown usernames and wrong passwords.
			writeError(w, r, http.StatusUnauthorized, "invalid username or password")
			return
		}
		a.serverError(w, r, err)
		return
	}

	token, expiresAt, err := a.tokens.Issue(identity)
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	obs.ObserveSignin("ok")
	_ = audit.LogEvent(r.Context(), "auth.signin", map[string]any{
		"user_id":    identity.UserID,
		"user_type":  identity.UserType,
		"expires_at": expiresAt,
	})

	writeJSON(w, http.StatusOK, signinResponse{
		Token:    token,
		UserType: identity.UserType,
		Username: identity.Username,
	})
}
