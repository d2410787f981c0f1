package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"gomarketsync_api/config"
	"gomarketsync_api/internal/app"
	"gomarketsync_api/internal/app/web"
	"gomarketsync_api/internal/storage"
	"gomarketsync_api/pkg/dbconnect"
	"gomarketsync_api/pkg/dbconnect/postgres"
)

func main() {
	log.Printf("\nStarted sync app\n")
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	var repo *storage.RunRepository
	if cfg.Postgres.Configured() {
		var connector dbconnect.Database = postgres.NewPgConnector(cfg.Postgres)
		db, err := connector.Connect()
		if err != nil {
			log.Printf("Run history disabled, Postgres unavailable: %v", err)
		} else {
			defer db.Close()
			if err := app.ApplyMigrations(db); err != nil {
				log.Fatalf("Migration failed: %v", err)
			}
			repo = storage.NewRunRepository(db)
		}
	}

	statusAddr := os.Getenv("STATUS_ADDR")
	if statusAddr == "" {
		statusAddr = ":8080"
	}
	go func() {
		log.Printf("Status server listening on %s", statusAddr)
		if err := http.ListenAndServe(statusAddr, web.NewStatusServer(repo, cfg.Auth.JWTSecret)); err != nil {
			log.Printf("Status server stopped: %v", err)
		}
	}()

	server := app.NewSyncServer(cfg, repo, os.Stdout)
	if err := server.Run(context.Background()); err != nil {
		log.Fatalf("Synchronization finished with errors: %v", err)
	}
}
