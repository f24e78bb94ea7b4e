package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocketbank/internal/bootstrap"
	"github.com/MrJamesThe3rd/pocketbank/internal/config"
	"github.com/MrJamesThe3rd/pocketbank/internal/export"
	appHttp "github.com/MrJamesThe3rd/pocketbank/internal/http"
	accountHandler "github.com/MrJamesThe3rd/pocketbank/internal/http/account"
	dashboardHandler "github.com/MrJamesThe3rd/pocketbank/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/pocketbank/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/pocketbank/internal/http/importcsv"
	txHandler "github.com/MrJamesThe3rd/pocketbank/internal/http/transaction"
	transferHandler "github.com/MrJamesThe3rd/pocketbank/internal/http/transfer"
	"github.com/MrJamesThe3rd/pocketbank/internal/importer"
	"github.com/MrJamesThe3rd/pocketbank/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log, err := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := bootstrap.Session(ctx, cfg, log)
	if err != nil {
		slog.Error("failed to open ledger session", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	ledgerService, err := session.Ledger()
	if err != nil {
		slog.Error("failed to open ledger", "error", err)
		os.Exit(1)
	}

	router := appHttp.New(appHttp.Handlers{
		Accounts:     accountHandler.NewHandler(ledgerService),
		Dashboard:    dashboardHandler.NewHandler(ledgerService),
		Transfers:    transferHandler.NewHandler(ledgerService),
		Transactions: txHandler.NewHandler(ledgerService),
		Import:       importHandler.NewHandler(importer.NewParser(), ledgerService),
		Export:       exportHandler.NewHandler(export.NewService(ledgerService), cfg.App.Currency),
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
