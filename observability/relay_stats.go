package observability

import (
	stderrors "errors"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"sync/atomic"
	"time"
)

// RelayStatsSnapshot is a point-in-time copy of the relay counters.
type RelayStatsSnapshot struct {
	Received          uint64 `json:"received"`
	UnknownSenders    uint64 `json:"unknown_senders"`
	NoActiveEvaluator uint64 `json:"no_active_evaluator"`
	Broadcasts        uint64 `json:"broadcasts"`
	Directed          uint64 `json:"directed"`
	Delivered         uint64 `json:"delivered"`
	DeliveryFailures  uint64 `json:"delivery_failures"`
	Errors            uint64 `json:"errors"`
	UptimeSeconds     int64  `json:"uptime_seconds"`
}

// RelayStats counts inbound outcomes. Safe for concurrent use.
type RelayStats struct {
	startedAt         time.Time
	received          atomic.Uint64
	unknownSenders    atomic.Uint64
	noActiveEvaluator atomic.Uint64
	broadcasts        atomic.Uint64
	directed          atomic.Uint64
	delivered         atomic.Uint64
	deliveryFailures  atomic.Uint64
	errors            atomic.Uint64
}

func NewRelayStats() *RelayStats {
	return &RelayStats{startedAt: time.Now()}
}

func (s *RelayStats) IncrReceived() {
	s.received.Add(1)
}

// Record accounts for a finished inbound message.
func (s *RelayStats) Record(outcome domain.Outcome) {
	switch outcome.Plan.Kind {
	case domain.PlanBroadcast:
		s.broadcasts.Add(1)
	case domain.PlanDirected:
		s.directed.Add(1)
	case domain.PlanDrop:
		switch {
		case stderrors.Is(outcome.Plan.Reason, errors.ErrUnknownSender):
			s.unknownSenders.Add(1)
		case stderrors.Is(outcome.Plan.Reason, errors.ErrNoActiveEvaluator):
			s.noActiveEvaluator.Add(1)
		}
	}
	s.delivered.Add(uint64(outcome.Report.Delivered()))
	s.deliveryFailures.Add(uint64(len(outcome.Report.Failed())))
	if outcome.Err != nil && !stderrors.Is(outcome.Err, errors.ErrDeliveryFailed) {
		s.errors.Add(1)
	}
}

func (s *RelayStats) Snapshot() RelayStatsSnapshot {
	return RelayStatsSnapshot{
		Received:          s.received.Load(),
		UnknownSenders:    s.unknownSenders.Load(),
		NoActiveEvaluator: s.noActiveEvaluator.Load(),
		Broadcasts:        s.broadcasts.Load(),
		Directed:          s.directed.Load(),
		Delivered:         s.delivered.Load(),
		DeliveryFailures:  s.deliveryFailures.Load(),
		Errors:            s.errors.Load(),
		UptimeSeconds:     int64(time.Since(s.startedAt).Seconds()),
	}
}

// AsMap feeds the debug inspector dashboard.
func (s *RelayStats) AsMap() map[string]any {
	snap := s.Snapshot()
	return map[string]any{
		"Received":            snap.Received,
		"Unknown senders":     snap.UnknownSenders,
		"No active evaluator": snap.NoActiveEvaluator,
		"Broadcasts":          snap.Broadcasts,
		"Directed":            snap.Directed,
		"Delivered":           snap.Delivered,
		"Delivery failures":   snap.DeliveryFailures,
		"Errors":              snap.Errors,
		"Uptime (s)":          snap.UptimeSeconds,
	}
}
