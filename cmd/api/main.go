package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/hbarnes/penny/internal/auth"
	"github.com/hbarnes/penny/internal/budget"
	"github.com/hbarnes/penny/internal/config"
	"github.com/hbarnes/penny/internal/currency"
	"github.com/hbarnes/penny/internal/database"
	pennyHttp "github.com/hbarnes/penny/internal/http"
	authHandler "github.com/hbarnes/penny/internal/http/auth"
	budgetHandler "github.com/hbarnes/penny/internal/http/budget"
	currencyHandler "github.com/hbarnes/penny/internal/http/currency"
	exportHandler "github.com/hbarnes/penny/internal/http/export"
	importHandler "github.com/hbarnes/penny/internal/http/importcsv"
	insightHandler "github.com/hbarnes/penny/internal/http/insight"
	productivityHandler "github.com/hbarnes/penny/internal/http/productivity"
	summaryHandler "github.com/hbarnes/penny/internal/http/summary"
	txHandler "github.com/hbarnes/penny/internal/http/transaction"
	"github.com/hbarnes/penny/internal/insight"
	"github.com/hbarnes/penny/internal/productivity"
	"github.com/hbarnes/penny/internal/storage"
	"github.com/hbarnes/penny/internal/storage/fileslot"
	"github.com/hbarnes/penny/internal/storage/pgslot"
	"github.com/hbarnes/penny/internal/transaction"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	slot, cleanup, err := newSlotStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	var (
		transactionService  = transaction.NewService(slot)
		productivityService = productivity.NewService(slot)
		budgetRegistry      = budget.NewRegistry(slot)
		currencyService     = currency.NewService(slot)
		authService         = auth.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		insightService      = insight.NewService(
			transactionService,
			currencyService,
			insight.NewClient(cfg.Insight.Endpoint, cfg.Insight.Token),
		)
	)

	// Load never aborts startup: corrupt slots reset to empty and the
	// error stays visible on each service's Err flag.
	transactionService.Load(ctx)
	productivityService.Load(ctx)
	budgetRegistry.Load(ctx)
	currencyService.Load(ctx)

	var (
		authH         = authHandler.NewHandler(authService)
		transactionH  = txHandler.NewHandler(transactionService)
		budgetH       = budgetHandler.NewHandler(budgetRegistry, transactionService)
		productivityH = productivityHandler.NewHandler(productivityService)
		summaryH      = summaryHandler.NewHandler(transactionService, budgetRegistry, currencyService)
		currencyH     = currencyHandler.NewHandler(currencyService)
		insightH      = insightHandler.NewHandler(insightService)
		importH       = importHandler.NewHandler(transactionService)
		exportH       = exportHandler.NewHandler(transactionService)
	)

	router := pennyHttp.New(
		authService,
		cfg.Server.AllowedOrigins,
		authH,
		transactionH,
		budgetH,
		productivityH,
		summaryH,
		currencyH,
		insightH,
		importH,
		exportH,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "addr", addr, "storage", cfg.Storage.Backend)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newSlotStore(ctx context.Context, cfg *config.Config) (storage.Slot, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		store, err := pgslot.New(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}

		return store, func() { db.Close() }, nil
	default:
		store, err := fileslot.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}

		return store, func() {}, nil
	}
}
