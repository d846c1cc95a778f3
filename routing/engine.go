//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=../mocks/mock_routing_engine.go -package=mocks
package routing

import (
	"context"
	"fmt"
	"greeter-proxy/conversation"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"greeter-proxy/repositories"
	"log/slog"

	"github.com/samber/lo"
)

type IEngine interface {
	Route(ctx context.Context, sender domain.User, text string) (domain.RoutingPlan, error)
}

// Engine decides who receives a message from a registered user.
// It is the only writer of the conversation state.
type Engine struct {
	log       *slog.Logger
	directory repositories.IUserRepository
	store     conversation.IStore
}

func NewEngine(log *slog.Logger, directory repositories.IUserRepository, store conversation.IStore) *Engine {
	return &Engine{log: log, directory: directory, store: store}
}

// Route returns the plan for a message from sender.
//
// An Evaluator becomes the active Evaluator before anything is sent, so the
// state change stands even if every delivery fails later on. A Greeter is
// routed to whichever phone number is active, registered or not.
func (e *Engine) Route(ctx context.Context, sender domain.User, text string) (domain.RoutingPlan, error) {
	switch sender.Role {
	case domain.RoleEvaluator:
		return e.routeEvaluator(ctx, sender, text)
	case domain.RoleGreeter:
		return e.routeGreeter(ctx, sender, text)
	default:
		return domain.RoutingPlan{}, fmt.Errorf("%w: %q", errors.ErrInvalidRole, sender.Role)
	}
}

func (e *Engine) routeEvaluator(ctx context.Context, sender domain.User, text string) (domain.RoutingPlan, error) {
	if err := e.store.SetActiveEvaluator(sender.PhoneNumber); err != nil {
		return domain.RoutingPlan{}, err
	}

	greeters, err := e.directory.ListByRole(domain.RoleGreeter)
	if err != nil {
		return domain.RoutingPlan{}, fmt.Errorf("list greeters: %w", err)
	}
	recipients := lo.Map(greeters, func(g domain.User, _ int) string { return g.PhoneNumber })

	e.log.DebugContext(ctx, "Evaluator is now active",
		"evaluator", sender.PhoneNumber, "greeters", len(recipients))
	return domain.Broadcast(recipients, domain.FormatBody(sender.Name, text)), nil
}

func (e *Engine) routeGreeter(ctx context.Context, sender domain.User, text string) (domain.RoutingPlan, error) {
	target, ok, err := e.store.GetActiveEvaluator()
	if err != nil {
		return domain.RoutingPlan{}, err
	}
	if !ok {
		return domain.Drop(errors.ErrNoActiveEvaluator), nil
	}

	e.log.DebugContext(ctx, "Routing greeter reply", "greeter", sender.PhoneNumber, "evaluator", target)
	return domain.Directed(target, domain.FormatBody(sender.Name, text)), nil
}
