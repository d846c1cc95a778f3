package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTwilioBaseURL = "https://api.twilio.com"
	messagesPath         = "/2010-04-01/Accounts/{accountSid}/Messages.json"
)

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	BaseURL    string
	Timeout    time.Duration
}

// TwilioSender posts messages to the Twilio Messages API.
// It never retries: a failed send is reported once to the caller.
type TwilioSender struct {
	log        *slog.Logger
	client     *resty.Client
	accountSID string
}

var _ Sender = (*TwilioSender)(nil)

func NewTwilioSender(log *slog.Logger, cfg TwilioConfig) *TwilioSender {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultTwilioBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	return &TwilioSender{log: log, client: client, accountSID: cfg.AccountSID}
}

type twilioMessage struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// TwilioError is the error body returned by the Twilio REST API.
type TwilioError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	MoreInfo string `json:"more_info"`
}

func (e *TwilioError) Error() string {
	return fmt.Sprintf("twilio error %d: %s (status %d)", e.Code, e.Message, e.Status)
}

func (s *TwilioSender) Send(ctx context.Context, to, from, body string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("accountSid", s.accountSID).
		SetFormData(map[string]string{
			"To":   to,
			"From": from,
			"Body": body,
		}).
		SetResult(&twilioMessage{}).
		SetError(&TwilioError{}).
		Post(messagesPath)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}

	if resp.IsError() {
		if apiErr, ok := resp.Error().(*TwilioError); ok && apiErr.Code != 0 {
			return apiErr
		}
		return fmt.Errorf("twilio error: %s (status %d)", resp.String(), resp.StatusCode())
	}

	if msg, ok := resp.Result().(*twilioMessage); ok {
		s.log.Debug("Message accepted by Twilio", "to", to, "sid", msg.SID, "status", msg.Status)
	}
	return nil
}
