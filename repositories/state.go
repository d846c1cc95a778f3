//go:generate go run go.uber.org/mock/mockgen -source=state.go -destination=../mocks/mock_state_repository.go -package=mocks
package repositories

import (
	stderrors "errors"

	"github.com/dgraph-io/badger/v4"
)

const statePrefix = "state:"

// IStateRepository is the generic system state table.
// Each key is a single cell; writes are last-write-wins.
type IStateRepository interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type StateRepository struct {
	db *badger.DB
}

func NewStateRepository(db *badger.DB) IStateRepository {
	return &StateRepository{db: db}
}

func (s StateRepository) Get(key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stateKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(value), true, nil
}

// Set overwrites the cell. Blind writes never conflict in Badger,
// so concurrent writers simply resolve to the last commit.
func (s StateRepository) Set(key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(stateKey(key), []byte(value))
	})
}

// Delete removes the cell. Deleting a missing key is not an error.
func (s StateRepository) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(stateKey(key))
	})
}

func stateKey(key string) []byte {
	return []byte(statePrefix + key)
}
