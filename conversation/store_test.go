package conversation

import (
	"fmt"
	"greeter-proxy/mocks"
	"greeter-proxy/repositories"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newBadgerStore(t *testing.T) *Store {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(repositories.NewStateRepository(db))
}

func TestStore_Idle_At_Start(t *testing.T) {
	req := require.New(t)
	store := newBadgerStore(t)

	phone, ok, err := store.GetActiveEvaluator()
	req.NoError(err)
	req.False(ok)
	req.Empty(phone)
}

func TestStore_Last_Write_Wins(t *testing.T) {
	req := require.New(t)
	store := newBadgerStore(t)

	req.NoError(store.SetActiveEvaluator("+15551111111"))
	req.NoError(store.SetActiveEvaluator("+15554444444"))

	phone, ok, err := store.GetActiveEvaluator()
	req.NoError(err)
	req.True(ok)
	req.Equal("+15554444444", phone)
}

func TestStore_Same_Evaluator_Again(t *testing.T) {
	req := require.New(t)
	store := newBadgerStore(t)

	req.NoError(store.SetActiveEvaluator("+15551111111"))
	req.NoError(store.SetActiveEvaluator("+15551111111"))

	phone, ok, err := store.GetActiveEvaluator()
	req.NoError(err)
	req.True(ok)
	req.Equal("+15551111111", phone)
}

func TestStore_Reset(t *testing.T) {
	req := require.New(t)
	store := newBadgerStore(t)

	req.NoError(store.SetActiveEvaluator("+15551111111"))
	req.NoError(store.Reset())

	_, ok, err := store.GetActiveEvaluator()
	req.NoError(err)
	req.False(ok)

	// Reset while Idle stays Idle
	req.NoError(store.Reset())
	_, ok, err = store.GetActiveEvaluator()
	req.NoError(err)
	req.False(ok)
}

func TestStore_Isolated_Instances(t *testing.T) {
	req := require.New(t)
	first := newBadgerStore(t)
	second := newBadgerStore(t)

	req.NoError(first.SetActiveEvaluator("+15551111111"))

	_, ok, err := second.GetActiveEvaluator()
	req.NoError(err)
	req.False(ok)
}

func TestStore_Empty_Value_Is_Idle(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	state := mocks.NewMockIStateRepository(ctrl)

	state.EXPECT().Get(ActiveEvaluatorKey).Return("", true, nil).Times(1)

	_, ok, err := NewStore(state).GetActiveEvaluator()
	req.NoError(err)
	req.False(ok)
}

func TestStore_Propagates_Storage_Errors(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	state := mocks.NewMockIStateRepository(ctrl)
	boom := fmt.Errorf("disk full")

	state.EXPECT().Set(ActiveEvaluatorKey, "+15551111111").Return(boom).Times(1)
	state.EXPECT().Get(ActiveEvaluatorKey).Return("", false, boom).Times(1)
	state.EXPECT().Delete(ActiveEvaluatorKey).Return(boom).Times(1)

	store := NewStore(state)
	req.ErrorIs(store.SetActiveEvaluator("+15551111111"), boom)
	_, _, err := store.GetActiveEvaluator()
	req.ErrorIs(err, boom)
	req.ErrorIs(store.Reset(), boom)
}
