package main

import (
	"fmt"
	"greeter-proxy/client"
	"greeter-proxy/conversation"
	"greeter-proxy/internal"
	"greeter-proxy/repositories"
	"greeter-proxy/services"
	"log/slog"
	"os"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	root := newRootCmd(
		func() (services.IAdminService, func(), error) {
			return openAdmin(config, logger)
		},
		func(prefix string) ([]internal.InspectRow, error) {
			return inspectDB(config.BadgerFilepath, prefix)
		})
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}

// openAdmin returns the remote client when ADMIN_URL is set. Otherwise the
// database is opened directly, which fails while the relay holds its lock.
func openAdmin(config Config, logger *slog.Logger) (services.IAdminService, func(), error) {
	if config.AdminURL != "" {
		logger.Debug("Using admin API", "url", config.AdminURL)
		return client.NewAdminClient(config.AdminURL, config.AdminTimeout), func() {}, nil
	}

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, nil, fmt.Errorf("database opening failed (set ADMIN_URL if the relay is running): %w", err)
	}
	closeDB := func() { _ = db.Close() }

	directory := repositories.NewUserRepository(db)
	store := conversation.NewStore(repositories.NewStateRepository(db))
	return services.NewAdminService(logger, directory, store, config.DefaultRegion), closeDB, nil
}

// inspectDB reads the key space without taking the lock, so it also works
// while the relay is running.
func inspectDB(path, prefix string) ([]internal.InspectRow, error) {
	db, err := badger.Open(badger.DefaultOptions(path).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() { _ = db.Close() }()
	return internal.Scan(db, prefix, internal.DefaultMapper)
}
