package main

import (
	"log"
	"os"

	"github.com/movetrace/homerange-backend-go/internal/api"
	"github.com/movetrace/homerange-backend-go/internal/config"
	"github.com/movetrace/homerange-backend-go/internal/database"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close()

	router, err := api.SetupRouter(cfg)
	if err != nil {
		log.Fatal("Failed to set up router: ", err)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
