package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafeteria.app/internal/auth"
	"cafeteria.app/internal/cafeteria"
	"cafeteria.app/internal/config"
	"cafeteria.app/internal/httpapi"
	"cafeteria.app/internal/obs"
	"cafeteria.app/internal/store/pg"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret,
		auth.WithIssuer(cfg.JWTIssuer),
		auth.WithAudience(cfg.JWTAudience),
		auth.WithTokenTTL(cfg.JWTExpiry),
	)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	// With a DSN everything lives in PostgreSQL; without one an in-memory
	// backend serves local development.
	var (
		svc     cafeteria.Service
		users   auth.UserStore
		probe   httpapi.ReadyProbe
		closeFn func() error
	)
	if cfg.PostgresDSN != "" {
		store, err := pg.Open(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		svc = store
		users = store
		probe = httpapi.ReadyProbe{DB: store.DB()}
		closeFn = store.Close
	} else {
		mem := cafeteria.NewInMemory()
		svc = mem
		users = mem
		log.Print("no CAFETERIA_PG_DSN set, using in-memory backend")
	}

	api := httpapi.New(probe, version, svc, auth.NewService(users), tokens)
	api.SetRateLimit(cfg.RateBurst, cfg.RatePerSec)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting cafeteria-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if closeFn != nil {
		_ = closeFn()
	}
	log.Println("Stopped")
}
