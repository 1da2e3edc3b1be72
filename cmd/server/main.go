package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dkuznetsov/trendy_store/internal/config"
	"github.com/dkuznetsov/trendy_store/internal/httpserver"
	"github.com/dkuznetsov/trendy_store/internal/logging"
	authmw "github.com/dkuznetsov/trendy_store/internal/middleware/auth"
	loggingmw "github.com/dkuznetsov/trendy_store/internal/middleware/logging"
	"github.com/dkuznetsov/trendy_store/internal/notify"
	"github.com/dkuznetsov/trendy_store/internal/repo"
	"github.com/dkuznetsov/trendy_store/internal/search"
	"github.com/dkuznetsov/trendy_store/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		logging.New("info").Error("config error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		logger.Error("db init error", "error", err)
		os.Exit(1)
	}

	producer := notify.NewProducer([]string{configuration.KAFKA_ADDRESS}, configuration.KAFKA_TOPIC)

	esClient, err := search.NewClient(
		configuration.ES_URL,
		configuration.ES_USER,
		configuration.ES_PASSWORD,
		configuration.ES_INDEX,
	)
	if err != nil {
		logger.Error("elasticsearch init error", "error", err)
		os.Exit(1)
	}

	dispatcher := notify.NewDispatcher(logger, 256)
	dispatcher.Route(notify.KindOrderConfirmation, producer)
	dispatcher.Route(notify.KindLowStockAlert, producer)
	dispatcher.Route(notify.KindBulkEmail, producer)
	dispatcher.Route(notify.KindIndexProduct, &search.IndexSink{Client: esClient})
	dispatcher.Route(notify.KindDeindexProduct, &search.IndexSink{Client: esClient})
	dispatcher.Start()

	repository := &repo.GormRepo{DB: db}
	catalogSvc := &service.CatalogService{Repo: repository, Queue: dispatcher}
	cartSvc := &service.CartService{Repo: repository}
	orderSvc := &service.OrderService{Repo: repository, Queue: dispatcher}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		Auth:            &authmw.Middleware{JWTSecret: []byte(configuration.JWT_SECRET)},
		CategoryHandler: &httpserver.CategoryHTTP{Svc: catalogSvc},
		ProductHandler:  &httpserver.ProductHTTP{Svc: catalogSvc},
		CartHandler:     &httpserver.CartHTTP{Svc: cartSvc},
		OrderHandler:    &httpserver.OrderHTTP{Svc: orderSvc},
		EmailHandler:    &httpserver.EmailHTTP{Svc: catalogSvc},
		SearchHandler:   &httpserver.SearchHTTP{Client: esClient},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	dispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db() error", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
