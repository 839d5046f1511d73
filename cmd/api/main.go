package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"datareport/adapters/charts"
	"datareport/app"
	"datareport/internal/api"
	"datareport/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	service := app.NewReportService(charts.NewRenderer())
	server := api.NewServer(service, cfg.Upload.MaxFileSizeMB)

	log.Printf("[API] Listening on :%s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, server.Handler()); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
