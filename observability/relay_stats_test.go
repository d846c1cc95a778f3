package observability

import (
	"fmt"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelayStats_Record(t *testing.T) {
	req := require.New(t)
	stats := NewRelayStats()

	stats.IncrReceived()
	stats.Record(domain.Outcome{Plan: domain.Drop(errors.ErrUnknownSender)})
	stats.IncrReceived()
	stats.Record(domain.Outcome{Plan: domain.Drop(errors.ErrNoActiveEvaluator)})

	broadcast := domain.Broadcast([]string{"+15552222222", "+15553333333"}, "[Alice] hi")
	report := domain.DeliveryReport{Plan: broadcast, Results: []domain.DeliveryResult{
		{To: "+15552222222"},
		{To: "+15553333333", Err: fmt.Errorf("boom")},
	}}
	stats.IncrReceived()
	stats.Record(domain.Outcome{Plan: broadcast, Report: report, Err: report.Err()})

	snap := stats.Snapshot()
	req.Equal(uint64(3), snap.Received)
	req.Equal(uint64(1), snap.UnknownSenders)
	req.Equal(uint64(1), snap.NoActiveEvaluator)
	req.Equal(uint64(1), snap.Broadcasts)
	req.Equal(uint64(1), snap.Delivered)
	req.Equal(uint64(1), snap.DeliveryFailures)
	// Delivery failures are not counted as processing errors
	req.Equal(uint64(0), snap.Errors)

	req.Equal(uint64(3), stats.AsMap()["Received"])
}
