package main

import (
	"context"
	"fmt"
	"greeter-proxy/conversation"
	"greeter-proxy/delivery"
	"greeter-proxy/internal"
	"greeter-proxy/observability"
	"greeter-proxy/repositories"
	"greeter-proxy/routing"
	"greeter-proxy/runtime/workers"
	"greeter-proxy/server"
	"greeter-proxy/services"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes reported to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const inspectEndpoint = "/inspect"

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Relay terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a termination signal.
// Deferred cleanups run before the exit code is handed back to main.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(ctx, config, logger))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	stats := observability.NewRelayStats()
	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Info("Debug Badger inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, inspectEndpoint))
		debugServer := internal.StartDebugServer(db, config.DebugPort, inspectEndpoint, internal.DefaultMapper, stats.AsMap)
		defer func() { _ = debugServer.Close() }()
	}

	// 3. Domain wiring
	directory := repositories.NewUserRepository(db)
	store := conversation.NewStore(repositories.NewStateRepository(db))
	engine := routing.NewEngine(logger, directory, store)
	sender := delivery.NewTwilioSender(logger, delivery.TwilioConfig{
		AccountSID: config.TwilioAccountSID,
		AuthToken:  config.TwilioAuthToken,
		BaseURL:    config.TwilioBaseURL,
		Timeout:    config.TwilioTimeout,
	})
	executor := delivery.NewExecutor(logger, sender, config.TwilioPhoneNumber)
	relay := services.NewRelayService(logger, directory, engine, executor, stats)
	admin := services.NewAdminService(logger, directory, store, config.DefaultRegion)

	// 4. Transports under supervision
	gin.SetMode(gin.ReleaseMode)
	webhook := server.NewServer(logger, relay, stats, server.Config{
		Host:            config.Host,
		Port:            config.Port,
		MaxBodyLength:   config.MaxBodyLength,
		ShutdownTimeout: config.ShutdownTimeout,
	})
	adminServer := server.NewAdminServer(logger, admin,
		fmt.Sprintf("127.0.0.1:%d", config.AdminPort), config.ShutdownTimeout)

	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(webhook, adminServer)

	logger.Info("Greeter proxy started", "proxy_number", config.TwilioPhoneNumber)
	sup.Run(ctx)

	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func buildBadgerOpts(ctx context.Context, config internal.Config, logger *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}
