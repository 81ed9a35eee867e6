package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"perpus-server/internal/api"
	"perpus-server/internal/config"
	"perpus-server/internal/repository"
	"perpus-server/internal/service"
	"perpus-server/internal/store"
	"perpus-server/internal/utils"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Set up the snapshot storage
	db, err := config.SetupStorage(cfg)
	if err != nil {
		logger.Fatal("failed to set up storage", zap.Error(err))
	}
	defer db.Close()

	repo := repository.NewSQLiteSnapshotRepository(db, cfg.Storage.Slot)

	st, err := store.Open(context.Background(), repo, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}

	// Create service
	svc := service.NewDefaultService(st, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.RequestLogger(logger))
	router.Use(gin.Recovery())

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting server", zap.String("addr", serverAddr))
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
