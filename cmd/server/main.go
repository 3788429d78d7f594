// Package main initializes and starts the expense gateway server, setting
// up configuration, logging, the database connection, repositories,
// services, handlers and graceful shutdown.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spendtrack/spendtrack/internal/config"
	"github.com/spendtrack/spendtrack/internal/db"
	"github.com/spendtrack/spendtrack/internal/identity"
	"github.com/spendtrack/spendtrack/internal/logger"
	"github.com/spendtrack/spendtrack/internal/middleware"
	"github.com/spendtrack/spendtrack/internal/repository"
	"github.com/spendtrack/spendtrack/internal/server/handler/http"
	"github.com/spendtrack/spendtrack/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const identityTimeout = 10 * time.Second

func main() {
	// Parse command-line, .env and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer func() { _ = postgresDB.Close() }()

	// Identity provider client used for session verification and issuance.
	identityClient := identity.NewClient(options.IdentityURL, options.IdentityKey, identityTimeout)

	// Initialize repositories.
	categoryRepo := repository.NewPostgresCategoryRepository(postgresDB)
	paymentMethodRepo := repository.NewPostgresPaymentMethodRepository(postgresDB)
	expenseRepo := repository.NewPostgresExpenseRepository(postgresDB)

	// Initialize business-logic services.
	categoryService := service.NewCategoryService(categoryRepo)
	paymentMethodService := service.NewPaymentMethodService(paymentMethodRepo)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo, paymentMethodRepo)
	analyticsService := service.NewAnalyticsService(expenseRepo, categoryRepo, paymentMethodRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{Identity: identityClient, Log: zapLogger}
	categoryHandler := &http.CategoryHandler{Service: categoryService, Log: zapLogger}
	paymentMethodHandler := &http.PaymentMethodHandler{Service: paymentMethodService, Log: zapLogger}
	expenseHandler := &http.ExpenseHandler{Service: expenseService, Log: zapLogger}
	analyticsHandler := &http.AnalyticsHandler{Service: analyticsService, Log: zapLogger}

	// Credential resolution mode: cookie sessions by default, bearer
	// headers for API clients.
	resolver := &middleware.CredentialResolver{
		Verifier: identityClient,
		Mode:     middleware.Mode(options.AuthMode),
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		authHandler,
		categoryHandler,
		paymentMethodHandler,
		expenseHandler,
		analyticsHandler,
		resolver,
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zapLogger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
	zapLogger.Info("server stopped")
}
