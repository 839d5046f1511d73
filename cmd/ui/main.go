package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"datareport/adapters/charts"
	"datareport/adapters/postgres"
	"datareport/app"
	"datareport/internal/config"
	"datareport/ports"
	"datareport/ui"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var archive ports.ReportArchive
	if cfg.Database.Enabled {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Printf("Warning: report archive disabled, database unreachable: %v", err)
		} else {
			if err := postgres.EnsureSchema(context.Background(), db); err != nil {
				log.Fatalf("Failed to prepare report archive schema: %v", err)
			}
			archive = postgres.NewReportRepository(db)
		}
	}

	service := app.NewReportService(charts.NewRenderer())

	server, err := ui.NewServer(cfg, service, archive)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
