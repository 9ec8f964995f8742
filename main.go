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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/subhub/subscription-hub/docs"
	"github.com/subhub/subscription-hub/internal/config"
	"github.com/subhub/subscription-hub/internal/logger"
	"github.com/subhub/subscription-hub/internal/middleware"
	"github.com/subhub/subscription-hub/internal/payment"
	"github.com/subhub/subscription-hub/internal/store"
	"github.com/subhub/subscription-hub/internal/subscription"
)

// @title Subscription Hub API
// @version 1.0
// @description REST API for tracking subscriptions and their payment history
// @host localhost:8080
func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	slogger := logger.New(cfg.Log.Level)

	st, err := store.Open(cfg.Store.Path, slogger)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(slogger))
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}
	if len(cfg.CORS.Origins) == 1 && cfg.CORS.Origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.Origins
	}
	router.Use(cors.New(corsCfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Subscription Hub API is running",
		})
	})

	subService := subscription.NewService(subscription.NewRepository(st))
	subHandler := subscription.NewHandler(subService, slogger)
	subHandler.RegisterRoutes(router)

	payService := payment.NewService(payment.NewRepository(st))
	payHandler := payment.NewHandler(payService, slogger)
	payHandler.RegisterRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slogger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slogger.Error("server shutdown", "error", err)
		}
	}()

	slogger.Info("starting server", "port", cfg.App.Port, "env", cfg.App.Env, "store", cfg.Store.Path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	slogger.Info("server stopped")
}
