//go:generate go run go.uber.org/mock/mockgen -source=relay_service.go -destination=../mocks/mock_relay_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"greeter-proxy/delivery"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"greeter-proxy/observability"
	"greeter-proxy/repositories"
	"greeter-proxy/routing"
	"log/slog"
)

type IRelayService interface {
	HandleInbound(ctx context.Context, msg domain.InboundMessage) domain.Outcome
}

// RelayService is the inbound dispatcher.
// It resolves the sender, asks the routing engine for a plan and executes it.
// Nothing it does is reported back to the transport: every failure ends up
// in the logs and in the returned Outcome.
type RelayService struct {
	log       *slog.Logger
	directory repositories.IUserRepository
	engine    routing.IEngine
	executor  delivery.IExecutor
	stats     *observability.RelayStats
}

func NewRelayService(
	log *slog.Logger,
	directory repositories.IUserRepository,
	engine routing.IEngine,
	executor delivery.IExecutor,
	stats *observability.RelayStats) *RelayService {
	if stats == nil {
		stats = observability.NewRelayStats()
	}
	return &RelayService{log: log, directory: directory, engine: engine, executor: executor, stats: stats}
}

func (s *RelayService) HandleInbound(ctx context.Context, msg domain.InboundMessage) domain.Outcome {
	outcome := s.handle(ctx, msg)
	s.stats.Record(outcome)
	return outcome
}

func (s *RelayService) handle(ctx context.Context, msg domain.InboundMessage) domain.Outcome {
	s.stats.IncrReceived()
	outcome := domain.Outcome{Message: msg}
	s.log.Info(fmt.Sprintf("Incoming from %s: %s", msg.From, msg.Body))

	sender, err := s.directory.FindByPhone(msg.From)
	if stderrors.Is(err, errors.ErrUserNotFound) {
		s.log.Warn("Unknown number, message dropped", "from", msg.From)
		outcome.Plan = domain.Drop(errors.ErrUnknownSender)
		return outcome
	}
	if err != nil {
		s.log.Error("Error processing SMS", "from", msg.From, "error", err)
		outcome.Err = err
		return outcome
	}
	outcome.Sender = &sender

	plan, err := s.engine.Route(ctx, sender, msg.Body)
	if err != nil {
		s.log.Error("Error processing SMS", "from", msg.From, "role", sender.Role, "error", err)
		outcome.Err = err
		return outcome
	}
	outcome.Plan = plan

	if plan.IsDrop() {
		if stderrors.Is(plan.Reason, errors.ErrNoActiveEvaluator) {
			s.log.Info("No active evaluator, greeter reply dropped", "from", msg.From)
		} else {
			s.log.Warn("Message dropped", "from", msg.From, "reason", plan.Reason)
		}
		return outcome
	}

	// Sends already issued must outlive a transport that hangs up early.
	report := s.executor.Execute(context.WithoutCancel(ctx), plan)
	outcome.Report = report
	if err = report.Err(); err != nil {
		s.log.Error("Error processing SMS",
			"from", msg.From,
			"plan", plan.Kind,
			"delivered", report.Delivered(),
			"failed", len(report.Failed()),
			"error", err)
		outcome.Err = err
		return outcome
	}

	s.log.Debug("Message relayed", "from", msg.From, "plan", plan.Kind, "recipients", len(plan.Recipients))
	return outcome
}
