package delivery

import (
	"context"
	"fmt"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"greeter-proxy/mocks"
	"log/slog"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const proxyPhone = "+15550000000"

func TestExecutor_Broadcast_Sends_Once_Per_Recipient(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sender := mocks.NewMockSender(ctrl)

	recipients := []string{"+15552222222", "+15553333333"}
	for _, to := range recipients {
		sender.EXPECT().Send(gomock.Any(), to, proxyPhone, "[Alice] Ready?").Return(nil).Times(1)
	}

	executor := NewExecutor(logs.GetLoggerFromLevel(slog.LevelDebug), sender, proxyPhone)
	report := executor.Execute(context.Background(), domain.Broadcast(recipients, "[Alice] Ready?"))

	req.Len(report.Results, 2)
	req.Equal(2, report.Delivered())
	req.NoError(report.Err())
}

func TestExecutor_Broadcast_Is_Concurrent(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sender := mocks.NewMockSender(ctrl)

	// More recipients than schedulable threads
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))
	recipients := make([]string, 10)
	for i := range recipients {
		recipients[i] = fmt.Sprintf("+1555000%04d", i)
	}
	var started sync.WaitGroup
	started.Add(len(recipients))
	allStarted := make(chan struct{})
	go func() {
		started.Wait()
		close(allStarted)
	}()

	// Given each send blocks until every send has been issued
	sender.EXPECT().Send(gomock.Any(), gomock.Any(), proxyPhone, gomock.Any()).
		DoAndReturn(func(ctx context.Context, to, from, body string) error {
			started.Done()
			select {
			case <-allStarted:
				return nil
			case <-time.After(time.Second):
				return fmt.Errorf("sends were serialized")
			}
		}).
		Times(len(recipients))

	executor := NewExecutor(slog.Default(), sender, proxyPhone)
	report := executor.Execute(context.Background(), domain.Broadcast(recipients, "[Alice] go"))

	req.NoError(report.Err())
	req.Len(report.Results, len(recipients))
}

func TestExecutor_Broadcast_Partial_Failure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sender := mocks.NewMockSender(ctrl)
	boom := fmt.Errorf("unreachable handset")

	sender.EXPECT().Send(gomock.Any(), "+15552222222", proxyPhone, gomock.Any()).Return(boom).Times(1)
	sender.EXPECT().Send(gomock.Any(), "+15553333333", proxyPhone, gomock.Any()).Return(nil).Times(1)

	executor := NewExecutor(slog.Default(), sender, proxyPhone)
	report := executor.Execute(context.Background(),
		domain.Broadcast([]string{"+15552222222", "+15553333333"}, "[Alice] Ready?"))

	// The other recipient was still served
	req.Equal(1, report.Delivered())
	failed := report.Failed()
	req.Len(failed, 1)
	req.Equal("+15552222222", failed[0].To)

	err := report.Err()
	req.ErrorIs(err, errors.ErrDeliveryFailed)
	req.ErrorIs(err, boom)
}

func TestExecutor_Directed_Single_Send(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sender := mocks.NewMockSender(ctrl)

	sender.EXPECT().Send(gomock.Any(), "+15551111111", proxyPhone, "[Bob] Yes").Return(nil).Times(1)

	executor := NewExecutor(slog.Default(), sender, proxyPhone)
	report := executor.Execute(context.Background(), domain.Directed("+15551111111", "[Bob] Yes"))

	req.Len(report.Results, 1)
	req.NoError(report.Err())
}

func TestExecutor_Drop_Sends_Nothing(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sender := mocks.NewMockSender(ctrl)

	sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	executor := NewExecutor(slog.Default(), sender, proxyPhone)
	report := executor.Execute(context.Background(), domain.Drop(errors.ErrNoActiveEvaluator))

	req.Empty(report.Results)
	req.NoError(report.Err())
}
