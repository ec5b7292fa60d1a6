package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"cafeteria.app/internal/auth"
	"cafeteria.app/internal/cafeteria"
	"cafeteria.app/internal/obs"
)

// ReadyProbe reports backend readiness (DB ping when a database is wired).
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string

	svc    cafeteria.Service
	creds  *auth.Service
	tokens *auth.TokenService

	rateBurst  int
	ratePerSec int
	maxBody    int64
}

func New(rp ReadyProbe, version string, svc cafeteria.Service, creds *auth.Service, tokens *auth.TokenService) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		version:    version,
		svc:        svc,
		creds:      creds,
		tokens:     tokens,
		rateBurst:  20,
		ratePerSec: 10,
		maxBody:    5 << 20, // menu images come in as multipart uploads
	}

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/api/auth/signup", a.handleSignup)
	a.mux.HandleFunc("/api/auth/signin", a.handleSignin)

	a.mux.Handle("/api/store/create", RequireRole(auth.UserTypeVendor)(http.HandlerFunc(a.handleStoreCreate)))
	a.mux.HandleFunc("/api/menu/create-menu", a.handleMenuCreate)
	a.mux.HandleFunc("/api/menu/update-menu/", a.handleMenuUpdate)
	a.mux.HandleFunc("/api/menu/get-all", a.handleMenuList)
	a.mux.HandleFunc("/api/menu/delete-menu/", a.handleMenuDelete)
	a.mux.HandleFunc("/api/vieworder", a.handleViewOrder)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// SetRateLimit overrides the default per-IP limiter knobs.
func (a *API) SetRateLimit(burst, perSec int) {
	if burst > 0 {
		a.rateBurst = burst
	}
	if perSec > 0 {
		a.ratePerSec = perSec
	}
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	h := a.withAuth(a.mux)
	h = obs.Instrument(h)
	h = LoggingJSON(h)
	h = RateLimit(h, a.rateBurst, a.ratePerSec)
	h = MaxBodyBytes(h, a.maxBody)
	h = CORS(h)
	h = SecurityHeaders(h)
	return RequestID(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "cafeteria-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "cafeteria-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
