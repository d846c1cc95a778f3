//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	userPrefix   = "user:"
	userIDPrefix = "user_id:"

	// Two adds racing on the same phone number conflict at commit time.
	// The retry observes the winner's row and becomes a no-op.
	maxConflictRetries = 3
)

type IUserRepository interface {
	AddUser(phone string, role domain.Role, name string) (bool, error)
	FindByPhone(phone string) (domain.User, error)
	FindByIdentifier(identifier string) ([]domain.User, error)
	ListByRole(role domain.Role) ([]domain.User, error)
	List() ([]domain.User, error)
	Remove(id uuid.UUID) error
}

// UserRepository stores the user directory in BadgerDB.
// Rows live under "user:{phone}" which enforces one user per phone number,
// and "user_id:{uuid}" points back to the phone for deletion by id.
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// DiskUser is the persisted form of domain.User.
type DiskUser struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	CreatedAt   int64  `json:"created_at"`
}

// AddUser inserts a new user unless the phone number is already registered.
// It reports whether a row was created; a duplicate is not an error.
func (u UserRepository) AddUser(phone string, role domain.Role, name string) (bool, error) {
	user := domain.User{
		ID:          uuid.New(),
		PhoneNumber: phone,
		Role:        role,
		Name:        name,
		CreatedAt:   time.Now().UTC(),
	}
	data, err := json.Marshal(fromUser(user))
	if err != nil {
		return false, fmt.Errorf("marshal failed: %w", err)
	}

	for attempt := 0; ; attempt++ {
		created := false
		err = u.db.Update(func(txn *badger.Txn) error {
			key := userKey(phone)
			_, err := txn.Get(key)
			switch {
			case err == nil:
				return nil
			case !stderrors.Is(err, badger.ErrKeyNotFound):
				return err
			}
			if err = txn.Set(key, data); err != nil {
				return err
			}
			if err = txn.Set(userIDKey(user.ID), []byte(phone)); err != nil {
				return err
			}
			created = true
			return nil
		})
		if stderrors.Is(err, badger.ErrConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("add user %s: %w", phone, err)
		}
		return created, nil
	}
}

// FindByPhone is an exact match on the canonical phone number.
func (u UserRepository) FindByPhone(phone string) (domain.User, error) {
	var user domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(phone))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var decodeErr error
			user, decodeErr = decodeUser(val)
			return decodeErr
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// FindByIdentifier returns every user whose phone number equals identifier
// or whose name matches it case-insensitively.
func (u UserRepository) FindByIdentifier(identifier string) ([]domain.User, error) {
	users, err := u.scan()
	if err != nil {
		return nil, err
	}
	var matches []domain.User
	for _, user := range users {
		if user.PhoneNumber == identifier || strings.EqualFold(user.Name, identifier) {
			matches = append(matches, user)
		}
	}
	return matches, nil
}

// ListByRole returns users of a role in insertion order.
func (u UserRepository) ListByRole(role domain.Role) ([]domain.User, error) {
	users, err := u.scan()
	if err != nil {
		return nil, err
	}
	var byRole []domain.User
	for _, user := range users {
		if user.Role == role {
			byRole = append(byRole, user)
		}
	}
	sort.SliceStable(byRole, func(i, j int) bool {
		return byRole[i].CreatedAt.Before(byRole[j].CreatedAt)
	})
	return byRole, nil
}

// List returns every user ordered by role, then name.
func (u UserRepository) List() ([]domain.User, error) {
	users, err := u.scan()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Role != users[j].Role {
			return users[i].Role < users[j].Role
		}
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// Remove hard-deletes a user and its id index.
func (u UserRepository) Remove(id uuid.UUID) error {
	err := u.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(userIDKey(id))
		if err != nil {
			return err
		}
		phone, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err = txn.Delete(userKey(string(phone))); err != nil {
			return err
		}
		return txn.Delete(userIDKey(id))
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrUserNotFound
	}
	return err
}

// scan reads every user row with a prefix iteration.
// "user_id:" keys are not matched since '_' differs from ':' at the prefix boundary.
func (u UserRepository) scan() ([]domain.User, error) {
	var users []domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		prefix := []byte(userPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				user, err := decodeUser(val)
				if err != nil {
					return err
				}
				users = append(users, user)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return users, err
}

func userKey(phone string) []byte {
	return []byte(userPrefix + phone)
}

func userIDKey(id uuid.UUID) []byte {
	return []byte(userIDPrefix + id.String())
}

func fromUser(user domain.User) DiskUser {
	return DiskUser{
		ID:          user.ID.String(),
		PhoneNumber: user.PhoneNumber,
		Role:        string(user.Role),
		Name:        user.Name,
		CreatedAt:   user.CreatedAt.UnixNano(),
	}
}

func decodeUser(val []byte) (domain.User, error) {
	var disk DiskUser
	if err := json.Unmarshal(val, &disk); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal failed: %w", err)
	}
	return ToUser(disk)
}

// ToUser converts a persisted row back into the domain type.
func ToUser(disk DiskUser) (domain.User, error) {
	id, err := uuid.Parse(disk.ID)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:          id,
		PhoneNumber: disk.PhoneNumber,
		Role:        domain.Role(disk.Role),
		Name:        disk.Name,
		CreatedAt:   time.Unix(0, disk.CreatedAt).UTC(),
	}, nil
}
