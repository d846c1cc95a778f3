//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=../mocks/mock_executor.go -package=mocks
package delivery

import (
	"context"
	"greeter-proxy/domain"
	"log/slog"

	"github.com/sourcegraph/conc/iter"
)

type IExecutor interface {
	Execute(ctx context.Context, plan domain.RoutingPlan) domain.DeliveryReport
}

// Executor carries out a routing plan against a Sender.
//
// Broadcast sends are issued concurrently and joined. Each recipient gets its
// own result: one failure neither cancels nor undoes the others, and nothing
// is retried.
type Executor struct {
	log    *slog.Logger
	sender Sender
	from   string
}

func NewExecutor(log *slog.Logger, sender Sender, from string) *Executor {
	return &Executor{log: log, sender: sender, from: from}
}

func (e *Executor) Execute(ctx context.Context, plan domain.RoutingPlan) domain.DeliveryReport {
	report := domain.DeliveryReport{Plan: plan}
	switch plan.Kind {
	case domain.PlanBroadcast:
		if len(plan.Recipients) == 0 {
			break
		}
		// One goroutine per recipient so every send is in flight at once.
		mapper := iter.Mapper[string, domain.DeliveryResult]{MaxGoroutines: len(plan.Recipients)}
		report.Results = mapper.Map(plan.Recipients, func(to *string) domain.DeliveryResult {
			return e.send(ctx, *to, plan.Body)
		})
	case domain.PlanDirected:
		for _, to := range plan.Recipients {
			report.Results = append(report.Results, e.send(ctx, to, plan.Body))
		}
	}
	return report
}

func (e *Executor) send(ctx context.Context, to, body string) domain.DeliveryResult {
	err := e.sender.Send(ctx, to, e.from, body)
	if err != nil {
		e.log.Debug("Send failed", "to", to, "error", err)
	}
	return domain.DeliveryResult{To: to, Err: err}
}
