package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/autoazul/store-profit/app/auth"
	"github.com/autoazul/store-profit/app/pricing"
	"github.com/autoazul/store-profit/app/reports"
	"github.com/autoazul/store-profit/config"
	"github.com/autoazul/store-profit/models"
	"github.com/autoazul/store-profit/pkg/database"
	"github.com/autoazul/store-profit/pkg/logger"
	"github.com/autoazul/store-profit/pkg/money"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Logger
	zlog, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zlog.Sync()

	// 3. Database + migrations
	db, err := database.Connect(cfg.Postgres.DSN())
	if err != nil {
		zlog.Fatalw("database connection failed", "err", err)
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatalw("migration failed", "err", err)
	}

	// 4. Repositories and services
	catalogRepo := models.NewCatalogRepository(db)
	ordersRepo := models.NewOrdersRepository(db)
	priceStore := models.NewPurchasePriceStore(db)

	format := money.Formatter{Symbol: cfg.Report.CurrencySymbol}
	verifier := auth.NewTokenVerifier(cfg.Auth.JWTSecret)
	nonces := auth.NewNonceService(cfg.Auth.NonceSecret)

	pricingHandler := pricing.NewHandler(catalogRepo, priceStore, format, zlog)
	reportsHandler := reports.NewHandler(
		reports.NewProfitAggregator(ordersRepo, catalogRepo, priceStore),
		reports.NewInventoryAggregator(catalogRepo, priceStore),
		nonces,
		format,
		zlog,
	)

	// 5. Routes: everything here is back-office, so both subtrees sit behind
	// the role gate.
	catalog := http.NewServeMux()
	catalog.HandleFunc("GET /catalog/listing", pricingHandler.HandleListing)
	catalog.HandleFunc("GET /catalog/items/{id}/purchase-price", pricingHandler.HandleGetPrice)
	catalog.HandleFunc("PUT /catalog/items/{id}/purchase-price", pricingHandler.HandleSetPrice)
	catalog.HandleFunc("PUT /catalog/products/{id}/variations/purchase-prices", pricingHandler.HandleSetVariationPrices)

	admin := http.NewServeMux()
	admin.HandleFunc("GET /admin/reports/profit", reportsHandler.HandleProfitPage)
	admin.HandleFunc("GET /admin/reports/profit/export", reportsHandler.HandleProfitExport)
	admin.HandleFunc("GET /admin/reports/inventory", reportsHandler.HandleInventoryPage)
	admin.HandleFunc("GET /admin/reports/inventory/export", reportsHandler.HandleInventoryExport)
	admin.HandleFunc("GET /admin/assets/admin.css", reportsHandler.HandleStylesheet)

	mux := http.NewServeMux()
	mux.Handle("/catalog/", verifier.RequireRole(catalog, cfg.Auth.AdminRoles...))
	mux.Handle("/admin/", verifier.RequireRole(admin, cfg.Auth.AdminRoles...))

	// 6. Serve until interrupted
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Infow("server starting", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatalw("server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	zlog.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Errorw("shutdown failed", "err", err)
	}
}
