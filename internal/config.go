package internal

import (
	"fmt"
	"greeter-proxy/errors"
	"strings"
	"time"
)

type Config struct {
	TwilioAccountSID  string        `env:"TWILIO_ACCOUNT_SID,required=true"`
	TwilioAuthToken   string        `env:"TWILIO_AUTH_TOKEN,required=true"`
	TwilioPhoneNumber string        `env:"TWILIO_PHONE_NUMBER"`
	TwilioBaseURL     string        `env:"TWILIO_BASE_URL,default=https://api.twilio.com"`
	TwilioTimeout     time.Duration `env:"TWILIO_TIMEOUT,default=10s"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,default=./database.badger"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=3000"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=1s"`
	MaxBodyLength     int           `env:"MAX_BODY_LENGTH,default=1600"`
	DebugPort         int           `env:"DEBUG_PORT,default=8081"`
	AdminPort         int           `env:"ADMIN_PORT,default=8082"`
	DefaultRegion     string        `env:"DEFAULT_REGION,default=US"`
}

// Validate checks what the env tags cannot express.
// The proxy phone number is checked here to report it by name.
func (c Config) Validate() error {
	if strings.TrimSpace(c.TwilioPhoneNumber) == "" {
		return fmt.Errorf("%w: TWILIO_PHONE_NUMBER", errors.ErrMissingConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.AdminPort <= 0 || c.AdminPort > 65535 {
		return fmt.Errorf("ADMIN_PORT must be between 1 and 65535, got %d", c.AdminPort)
	}
	if c.MaxBodyLength < 0 {
		return fmt.Errorf("MAX_BODY_LENGTH must not be negative, got %d", c.MaxBodyLength)
	}
	return nil
}
