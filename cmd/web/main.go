package main

import (
	"log"
	"net/http"

	"github.com/AdamBeresnev/cue-stats/internal/app"
	"github.com/AdamBeresnev/cue-stats/internal/config"
	"github.com/AdamBeresnev/cue-stats/internal/db"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	backend, err := app.OpenBackend(cfg, db.MigrationsSource)
	if err != nil {
		log.Fatal("Failed to open match store:", err)
	}
	defer backend.Close()

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	if backend.SQL != nil {
		sessionManager.Store = sqlite3store.New(backend.SQL.DB)
	}

	matchService, err := backend.MatchService(cfg)
	if err != nil {
		log.Fatal("Failed to set up match service:", err)
	}

	router := newRouter(sessionManager, matchService)

	log.Printf("Server starting on %s (%s store)", cfg.Addr, cfg.StoreBackend)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatal(err)
	}
}
