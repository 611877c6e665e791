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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	// Platform packages
	"github.com/aradsms/contact_fetcher/internal/platform/config"
	"github.com/aradsms/contact_fetcher/internal/platform/logger"

	// Stub packages
	stubhttp "github.com/aradsms/contact_fetcher/internal/phonebook_stub/transport/http"
)

const (
	serviceName     = "phonebook_stub"
	shutdownTimeout = 15 * time.Second
)

func main() {
	mainCtx, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel, os.Stderr).With("service", serviceName)
	appLogger.Info("Starting service...")

	contacts, err := stubhttp.LoadContacts(cfg.StubContactsFile)
	if err != nil {
		appLogger.Error("Failed to load contacts fixture", "path", cfg.StubContactsFile, "error", err)
		os.Exit(1)
	}
	appLogger.Info("Contacts fixture loaded", "path", cfg.StubContactsFile, "count", len(contacts))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := stubhttp.NewRouter(stubhttp.NewHandler(contacts, appLogger), reg)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.StubServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, groupCtx := errgroup.WithContext(mainCtx)

	g.Go(func() error {
		appLogger.Info("HTTP server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed", "error", err)
			return fmt.Errorf("failed to serve on %s: %w", httpServer.Addr, err)
		}
		appLogger.Info("HTTP server stopped.")
		return nil
	})

	g.Go(func() error {
		stopSignal := make(chan os.Signal, 1)
		signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-stopSignal:
			appLogger.Info("Received termination signal", "signal", sig.String())
			mainCancel()
			return nil
		case <-groupCtx.Done():
			return nil
		}
	})

	g.Go(func() error {
		<-groupCtx.Done()
		appLogger.Info("Initiating graceful shutdown of HTTP server...")
		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := httpServer.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("HTTP server shutdown failed", "error", err)
			return err
		}
		return nil
	})

	appLogger.Info("Service is ready and running.", "contacts_url", fmt.Sprintf("http://localhost:%d/contacts", cfg.StubServerPort))

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Service group encountered an error", "error", err)
		os.Exit(1)
	}

	appLogger.Info("Service shutdown complete.")
}
