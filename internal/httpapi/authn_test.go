package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cafeteria.app/internal/auth"
)

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	handler := RequireRole(auth.UserTypeVendor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/store/create", nil)
	req = req.WithContext(auth.ContextWithUser(req.Context(), 1, auth.UserTypeVendor))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	handler := RequireRole(auth.UserTypeVendor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/store/create", nil)
	req = req.WithContext(auth.ContextWithUser(req.Context(), 1, auth.UserTypeCustomer))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if got := rr.Header().Get("WWW-Authenticate"); got == "" {
		t.Fatal("expected WWW-Authenticate header set")
	}
}

func TestRequireRoleRejectsMissingUser(t *testing.T) {
	handler := RequireRole(auth.UserTypeVendor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/store/create", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if got := rr.Header().Get("WWW-Authenticate"); got == "" {
		t.Fatal("expected WWW-Authenticate header set")
	}
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	api := newTestAPI(t)

	cases := map[string]string{
		"missing":      "",
		"malformed":    "Bearer not-a-jwt",
		"wrong scheme": "basic abc",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, api.baseURL+"/api/menu/get-all", nil)
			if err != nil {
				t.Fatalf("new request: %v", err)
			}
			if token != "" {
				req.Header.Set("Authorization", token)
			}
			resp, err := api.client.Do(req)
			if err != nil {
				t.Fatalf("do request: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", resp.StatusCode)
			}
			if resp.Header.Get("WWW-Authenticate") == "" {
				t.Fatal("expected WWW-Authenticate header")
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	if _, err := extractBearerToken(""); err == nil {
		t.Fatal("expected error for empty header")
	}
	if _, err := extractBearerToken("Basic abc"); err == nil {
		t.Fatal("expected error for wrong scheme")
	}
	if _, err := extractBearerToken("Bearer "); err == nil {
		t.Fatal("expected error for empty token")
	}
	tok, err := extractBearerToken("Bearer abc.def.ghi")
	if err != nil || tok != "abc.def.ghi" {
		t.Fatalf("unexpected result: %q, %v", tok, err)
	}
}
