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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/cart_service/internal/config"
	"github.com/Skotchmaster/cart_service/internal/httpserver"
	"github.com/Skotchmaster/cart_service/internal/logging"
	loggingmw "github.com/Skotchmaster/cart_service/internal/middleware/logging"
	"github.com/Skotchmaster/cart_service/internal/mykafka"
	"github.com/Skotchmaster/cart_service/internal/repo"
	"github.com/Skotchmaster/cart_service/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	cartRepo := &repo.GormRepo{DB: db}
	cartService := &service.CartService{Repo: cartRepo}
	cartHandler := &httpserver.CartHTTP{Svc: cartService, Producer: prod}

	httpserver.Register(e, &httpserver.Deps{CartHandler: cartHandler})

	srv := &http.Server{
		Addr:         ":" + configuration.SERVER_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting cart service", "port", configuration.SERVER_PORT)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
