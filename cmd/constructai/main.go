package main

import (
	"flag"
	"log"
	"time"

	"github.com/Yash-g2310/l-and-t-prototype/db"
	"github.com/Yash-g2310/l-and-t-prototype/internal/auth"
	"github.com/Yash-g2310/l-and-t-prototype/internal/config"
	"github.com/Yash-g2310/l-and-t-prototype/internal/handlers"
	"github.com/Yash-g2310/l-and-t-prototype/internal/logger"
	"github.com/Yash-g2310/l-and-t-prototype/internal/router"
	"github.com/Yash-g2310/l-and-t-prototype/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load(*configFile)

	logger.Init(cfg.Log)

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var responder services.Responder = services.StaticResponder{}

	if cfg.Responder.BaseURL != "" {
		responder = services.NewLLMResponder(cfg.Responder.BaseURL, cfg.Responder.APIKey, cfg.Responder.Model)
	}

	handlers.InitChatService(services.NewChatService(responder,
		time.Duration(cfg.Responder.TimeoutSeconds)*time.Second))

	r := router.NewRouter()

	logger.Info("server starting", "addr", cfg.Addr())

	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
