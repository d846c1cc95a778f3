//go:generate go run go.uber.org/mock/mockgen -source=admin_service.go -destination=../mocks/mock_admin_service.go -package=mocks
package services

import (
	stderrors "errors"
	"fmt"
	"greeter-proxy/conversation"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"greeter-proxy/repositories"
	"log/slog"
	"strings"

	"github.com/samber/lo"
)

// UnknownUserName is shown when the active phone number is no longer registered.
const UnknownUserName = "Unknown User"

type IAdminService interface {
	AddUser(phone, role, name string) (string, error)
	ListUsers() ([]domain.User, error)
	RemoveUser(identifier string) (domain.User, []domain.User, error)
	Status() (domain.ConversationStatus, error)
	ResetConversation() error
}

type AdminService struct {
	log       *slog.Logger
	directory repositories.IUserRepository
	store     conversation.IStore
	region    string
}

func NewAdminService(
	log *slog.Logger,
	directory repositories.IUserRepository,
	store conversation.IStore,
	region string) *AdminService {
	return &AdminService{log: log, directory: directory, store: store, region: region}
}

// AddUser registers a phone number and returns its canonical form.
// Adding a phone number that is already registered changes nothing.
func (s *AdminService) AddUser(phone, role, name string) (string, error) {
	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return "", err
	}

	cleanPhone, err := NormalizePhone(phone, s.region)
	if err != nil {
		return "", err
	}

	valReq := AddUserRequest{
		PhoneNumber: cleanPhone,
		Role:        parsedRole.String(),
		Name:        strings.TrimSpace(name),
	}
	if err = ValidateAddUser(valReq); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidUser, err)
	}

	created, err := s.directory.AddUser(valReq.PhoneNumber, parsedRole, valReq.Name)
	if err != nil {
		return "", err
	}
	if !created {
		s.log.Debug("Phone number already registered, nothing changed", "phone", cleanPhone)
	}
	return cleanPhone, nil
}

func (s *AdminService) ListUsers() ([]domain.User, error) {
	return s.directory.List()
}

// RemoveUser deletes the single user matching identifier, by exact phone
// number or case-insensitive name. When several users match nothing is
// deleted and every candidate is returned alongside ErrAmbiguousIdentifier.
func (s *AdminService) RemoveUser(identifier string) (domain.User, []domain.User, error) {
	matches, err := s.findCandidates(identifier)
	if err != nil {
		return domain.User{}, nil, err
	}

	switch len(matches) {
	case 0:
		return domain.User{}, nil, fmt.Errorf("%w: %q", errors.ErrUserNotFound, identifier)
	case 1:
	default:
		return domain.User{}, matches, fmt.Errorf("%w: %d users match %q", errors.ErrAmbiguousIdentifier, len(matches), identifier)
	}

	user := matches[0]
	if err = s.directory.Remove(user.ID); err != nil {
		return domain.User{}, nil, err
	}
	s.log.Debug("User removed", "id", user.ID, "phone", user.PhoneNumber)
	return user, nil, nil
}

// findCandidates also tries the E.164 form so "(201) 555-0123" finds "+12015550123".
func (s *AdminService) findCandidates(identifier string) ([]domain.User, error) {
	matches, err := s.directory.FindByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if canonical, err := NormalizePhone(identifier, s.region); err == nil && canonical != identifier {
		byPhone, err := s.directory.FindByIdentifier(canonical)
		if err != nil {
			return nil, err
		}
		matches = append(matches, byPhone...)
	}
	return lo.UniqBy(matches, func(u domain.User) string { return u.ID.String() }), nil
}

// Status reports Idle or the active Evaluator. The stored phone number is
// shown even when it no longer belongs to a registered user.
func (s *AdminService) Status() (domain.ConversationStatus, error) {
	phone, ok, err := s.store.GetActiveEvaluator()
	if err != nil {
		return domain.ConversationStatus{}, err
	}
	if !ok {
		return domain.ConversationStatus{}, nil
	}

	status := domain.ConversationStatus{Active: true, PhoneNumber: phone, DisplayName: UnknownUserName}
	user, err := s.directory.FindByPhone(phone)
	switch {
	case err == nil:
		status.DisplayName = user.Name
	case !stderrors.Is(err, errors.ErrUserNotFound):
		return domain.ConversationStatus{}, err
	}
	return status, nil
}

func (s *AdminService) ResetConversation() error {
	return s.store.Reset()
}
