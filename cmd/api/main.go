package main

import (
	"log"
	"os"

	_ "buildquote/docs"
	"buildquote/internal/adapter/http/routes"
	"buildquote/internal/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           BuildQuote API
// @version         1.0
// @description     Quote requests, checkout and receipts for a construction company.

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := routes.Run(cfg); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}
