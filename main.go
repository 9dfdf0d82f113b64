// File: signup/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signup/config"
	sessionRepo "signup/database/repository/session"
	"signup/handlers"
	"signup/middleware"
	"signup/routes"
	"signup/services/wizard"
	"signup/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Session store: an external TTL-capable store (Redis) by default, or the
	// self-managed in-memory variant with its own sweep task.
	var store sessionRepo.SessionStore
	switch config.AppConfig.SessionStore {
	case "memory":
		store = sessionRepo.NewMemorySessionStore(config.SessionTTL(), config.SessionSweepInterval())
		logger.Sugar().Info("main: using in-memory session store")
	default:
		client, err := utils.NewSessionCacheClient()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize session cache: %v", err)
		}
		store = sessionRepo.NewRedisSessionStore(client, config.SessionTTL())
		logger.Sugar().Infof("main: using redis session store at %s", config.AppConfig.RedisAddr)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	wizardService := &wizard.DefaultWizardService{
		Store: store,
	}

	wizardHandler := handlers.NewWizardHandler(wizardService)
	handlerBundle := handlers.NewHandlerBundle(wizardHandler)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	if err := store.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close session store: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
