package delivery

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestTwilioSender_Send(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodPost || r.URL.Path != "/2010-04-01/Accounts/AC123/Messages.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := r.ParseForm(); err != nil ||
			r.PostForm.Get("To") != "+15552222222" ||
			r.PostForm.Get("From") != "+15550000000" ||
			r.PostForm.Get("Body") != "[Alice] Ready?" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1","status":"queued"}`))
	}))
	defer server.Close()

	sender := NewTwilioSender(testLogger(), TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		BaseURL:    server.URL,
		Timeout:    time.Second,
	})

	err := sender.Send(context.Background(), "+15552222222", "+15550000000", "[Alice] Ready?")
	req.NoError(err)
}

func TestTwilioSender_Api_Error_Is_Not_Retried(t *testing.T) {
	req := require.New(t)
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"Invalid 'To' Phone Number","status":400,"more_info":"https://www.twilio.com/docs/errors/21211"}`))
	}))
	defer server.Close()

	sender := NewTwilioSender(testLogger(), TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		BaseURL:    server.URL,
		Timeout:    time.Second,
	})

	err := sender.Send(context.Background(), "+1", "+15550000000", "hi")
	req.Error(err)
	var apiErr *TwilioError
	req.ErrorAs(err, &apiErr)
	req.Equal(21211, apiErr.Code)
	req.Equal(int32(1), calls.Load())
}

func TestTwilioSender_Server_Error_Without_Body(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	sender := NewTwilioSender(testLogger(), TwilioConfig{AccountSID: "AC123", BaseURL: server.URL, Timeout: time.Second})

	err := sender.Send(context.Background(), "+15552222222", "+15550000000", "hi")
	req.Error(err)
	req.Contains(err.Error(), "503")
}

func testLogger() *slog.Logger {
	return logs.GetLoggerFromLevel(slog.LevelDebug)
}
