//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_conversation_store.go -package=mocks
package conversation

import (
	"fmt"
	"greeter-proxy/repositories"
)

// ActiveEvaluatorKey is the system state cell holding the active Evaluator phone.
const ActiveEvaluatorKey = "last_active_evaluator"

// IStore is the single mutable cell of the relay.
// Idle when no Evaluator has spoken since the last reset, Active(phone) otherwise.
type IStore interface {
	SetActiveEvaluator(phone string) error
	GetActiveEvaluator() (string, bool, error)
	Reset() error
}

// Store keeps the active Evaluator in the system state table.
// The phone number is a weak reference: it is never checked against the
// user directory once written.
type Store struct {
	state repositories.IStateRepository
}

func NewStore(state repositories.IStateRepository) *Store {
	return &Store{state: state}
}

// SetActiveEvaluator overwrites the cell unconditionally.
func (s *Store) SetActiveEvaluator(phone string) error {
	if err := s.state.Set(ActiveEvaluatorKey, phone); err != nil {
		return fmt.Errorf("set active evaluator: %w", err)
	}
	return nil
}

// GetActiveEvaluator returns false when Idle. An empty stored value counts as Idle.
func (s *Store) GetActiveEvaluator() (string, bool, error) {
	phone, ok, err := s.state.Get(ActiveEvaluatorKey)
	if err != nil {
		return "", false, fmt.Errorf("get active evaluator: %w", err)
	}
	if !ok || phone == "" {
		return "", false, nil
	}
	return phone, true, nil
}

// Reset returns the relay to Idle.
func (s *Store) Reset() error {
	if err := s.state.Delete(ActiveEvaluatorKey); err != nil {
		return fmt.Errorf("reset conversation: %w", err)
	}
	return nil
}
