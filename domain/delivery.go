package domain

import (
	stderrors "errors"
	"fmt"
	"greeter-proxy/errors"

	"github.com/samber/lo"
)

// DeliveryResult is the outcome of one outbound send.
type DeliveryResult struct {
	To  string
	Err error
}

func (r DeliveryResult) Succeeded() bool { return r.Err == nil }

// DeliveryReport keeps the per-recipient outcome of a plan execution.
type DeliveryReport struct {
	Plan    RoutingPlan
	Results []DeliveryResult
}

func (r DeliveryReport) Failed() []DeliveryResult {
	return lo.Filter(r.Results, func(res DeliveryResult, _ int) bool {
		return !res.Succeeded()
	})
}

func (r DeliveryReport) Delivered() int {
	return len(r.Results) - len(r.Failed())
}

// Err collapses the report into a single error.
// A batch counts as failed as soon as one recipient failed.
func (r DeliveryReport) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	causes := lo.Map(failed, func(res DeliveryResult, _ int) error {
		return fmt.Errorf("to %s: %w", res.To, res.Err)
	})
	return fmt.Errorf("%w: %d of %d recipients: %w",
		errors.ErrDeliveryFailed, len(failed), len(r.Results), stderrors.Join(causes...))
}

// Outcome reports what happened to an inbound message from end to end.
type Outcome struct {
	Message InboundMessage
	Sender  *User
	Plan    RoutingPlan
	Report  DeliveryReport
	Err     error
}
