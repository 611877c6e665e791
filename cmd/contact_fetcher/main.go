package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	// Platform packages
	"github.com/aradsms/contact_fetcher/internal/platform/config"
	"github.com/aradsms/contact_fetcher/internal/platform/logger"

	// Contact fetcher packages
	"github.com/aradsms/contact_fetcher/internal/contact_fetcher/adapters/phonebooksource"
	contactApp "github.com/aradsms/contact_fetcher/internal/contact_fetcher/app"
	"github.com/aradsms/contact_fetcher/internal/contact_fetcher/cli"
	"github.com/aradsms/contact_fetcher/internal/contact_fetcher/domain"
)

const serviceName = "contact_fetcher"

func main() {
	// SIGINT/SIGTERM cancel the in-flight request.
	mainCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		domain.ExitWithMessage(os.Stdout, domain.SystemError, "A system error occurred with message: "+err.Error())
		return
	}

	appLogger := logger.New(cfg.LogLevel, os.Stderr).With(
		"service", serviceName,
		"run_id", uuid.NewString(),
	)
	appLogger.Debug("Configuration loaded",
		"log_level", cfg.LogLevel,
		"source_url", cfg.SourceURL,
		"http_timeout", cfg.HTTPTimeout().String(),
		"metrics_textfile", cfg.MetricsTextfile,
	)

	source := phonebooksource.NewHTTPSource(appLogger, cfg.SourceURL, cfg.HTTPTimeout(), nil)
	decoder := contactApp.NewDecoder(validator.New())
	application := contactApp.NewApplication(source, decoder, contactApp.NewMetrics(), appLogger)

	cmd := cli.NewCommand(application, os.Stdout, os.Stderr, appLogger, cfg.MetricsTextfile)
	cmd.Main(mainCtx, os.Args)
}
