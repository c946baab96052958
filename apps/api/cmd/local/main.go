//go:build !lambda
// +build !lambda

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opus-finance/opus-api/apps/api/server"
	"github.com/opus-finance/opus-api/libs/go/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title           OPUS Dashboard API
// @version         1.0
// @description     Token, staking lock and statistics API for the OPUS dashboard

// @host      localhost:8000
// @BasePath  /api/v1

const shutdownTimeout = 10 * time.Second

func main() {
	err := godotenv.Load("../../.env")
	if err != nil && !os.IsNotExist(err) {
		// Variables may be set directly in the environment.
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	server.InitializeHandlers()
	defer server.Shutdown()

	r := gin.Default()
	server.InitializeRoutes(r)

	srv := &http.Server{
		Addr:              ":" + server.Port(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Error starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", zap.Error(err))
	}
}
