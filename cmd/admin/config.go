package main

import (
	"fmt"
	"time"
)

// Config is read from the environment. When AdminURL is set the CLI talks
// to the running relay, otherwise it opens the database itself.
type Config struct {
	BadgerFilepath string        `env:"BADGER_FILEPATH,default=./database.badger"`
	LogLevel       string        `env:"LOG_LEVEL,default=WARN"`
	DefaultRegion  string        `env:"DEFAULT_REGION,default=US"`
	AdminURL       string        `env:"ADMIN_URL"`
	AdminTimeout   time.Duration `env:"ADMIN_TIMEOUT,default=5s"`
}

func (c Config) Validate() error {
	if c.AdminURL == "" && c.BadgerFilepath == "" {
		return fmt.Errorf("either ADMIN_URL or BADGER_FILEPATH must be set")
	}
	if c.AdminTimeout <= 0 {
		return fmt.Errorf("ADMIN_TIMEOUT must be positive, got %s", c.AdminTimeout)
	}
	return nil
}
