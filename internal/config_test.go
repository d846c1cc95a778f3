package internal

import (
	"greeter-proxy/errors"
	"testing"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults_From_Environment(t *testing.T) {
	req := require.New(t)
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "secret")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15550000000")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)
	req.NoError(config.Validate())

	req.Equal("AC123", config.TwilioAccountSID)
	req.Equal("https://api.twilio.com", config.TwilioBaseURL)
	req.Equal(1600, config.MaxBodyLength)
}

func TestConfig_Missing_Proxy_Phone(t *testing.T) {
	req := require.New(t)
	config := Config{Port: 3000}

	req.ErrorIs(config.Validate(), errors.ErrMissingConfig)
}

func TestConfig_Invalid_Port(t *testing.T) {
	req := require.New(t)
	config := Config{TwilioPhoneNumber: "+15550000000", Port: 70000}

	req.Error(config.Validate())
}

func TestConfig_Invalid_Admin_Port(t *testing.T) {
	req := require.New(t)
	config := Config{TwilioPhoneNumber: "+15550000000", Port: 3000, AdminPort: -1}

	req.Error(config.Validate())
}
