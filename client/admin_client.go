package client

import (
	"fmt"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"greeter-proxy/server"
	"greeter-proxy/services"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

var _ services.IAdminService = (*AdminClient)(nil)

var codeToErr = map[string]error{
	server.CodeUserNotFound:        errors.ErrUserNotFound,
	server.CodeAmbiguousIdentifier: errors.ErrAmbiguousIdentifier,
	server.CodeInvalidRole:         errors.ErrInvalidRole,
	server.CodeInvalidPhoneNumber:  errors.ErrInvalidPhoneNumber,
	server.CodeInvalidUser:         errors.ErrInvalidUser,
}

// AdminClient talks to the admin API of a running relay.
// Sentinel errors are restored from the response code so callers
// handle them the same way as with a local AdminService.
type AdminClient struct {
	client *resty.Client
}

func NewAdminClient(baseURL string, timeout time.Duration) *AdminClient {
	return &AdminClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

func (c *AdminClient) AddUser(phone, role, name string) (string, error) {
	var result server.AddUserResponse
	resp, err := c.client.R().
		SetBody(server.AddUserDTO{PhoneNumber: phone, Role: role, Name: name}).
		SetResult(&result).
		SetError(&server.ErrorDTO{}).
		Post("/users")
	if _, err = c.check(resp, err); err != nil {
		return "", err
	}
	return result.PhoneNumber, nil
}

func (c *AdminClient) ListUsers() ([]domain.User, error) {
	var result []server.UserDTO
	resp, err := c.client.R().
		SetResult(&result).
		SetError(&server.ErrorDTO{}).
		Get("/users")
	if _, err = c.check(resp, err); err != nil {
		return nil, err
	}
	return fromDTOs(result)
}

func (c *AdminClient) RemoveUser(identifier string) (domain.User, []domain.User, error) {
	var result server.UserDTO
	resp, err := c.client.R().
		SetResult(&result).
		SetError(&server.ErrorDTO{}).
		Delete("/users/" + url.PathEscape(identifier))
	apiErr, err := c.check(resp, err)
	if err != nil {
		if apiErr == nil || len(apiErr.Candidates) == 0 {
			return domain.User{}, nil, err
		}
		candidates, convErr := fromDTOs(apiErr.Candidates)
		if convErr != nil {
			return domain.User{}, nil, convErr
		}
		return domain.User{}, candidates, err
	}
	user, err := server.FromUserDTO(result)
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("invalid user in response: %w", err)
	}
	return user, nil, nil
}

func (c *AdminClient) Status() (domain.ConversationStatus, error) {
	var result server.StatusDTO
	resp, err := c.client.R().
		SetResult(&result).
		SetError(&server.ErrorDTO{}).
		Get("/status")
	if _, err = c.check(resp, err); err != nil {
		return domain.ConversationStatus{}, err
	}
	return domain.ConversationStatus{
		Active:      result.Active,
		PhoneNumber: result.PhoneNumber,
		DisplayName: result.DisplayName,
	}, nil
}

func (c *AdminClient) ResetConversation() error {
	resp, err := c.client.R().
		SetError(&server.ErrorDTO{}).
		Post("/reset")
	_, err = c.check(resp, err)
	return err
}

// check turns a transport failure or an error response into an error.
// The decoded error body is returned when there is one.
func (c *AdminClient) check(resp *resty.Response, err error) (*server.ErrorDTO, error) {
	if err != nil {
		return nil, fmt.Errorf("admin API unreachable: %w", err)
	}
	if !resp.IsError() {
		return nil, nil
	}
	apiErr, ok := resp.Error().(*server.ErrorDTO)
	if !ok || apiErr.Code == "" {
		return nil, fmt.Errorf("admin API error: %s (status %d)", http.StatusText(resp.StatusCode()), resp.StatusCode())
	}
	if sentinel, found := codeToErr[apiErr.Code]; found {
		return apiErr, &remoteError{sentinel: sentinel, message: apiErr.Message}
	}
	return apiErr, fmt.Errorf("admin API error %s: %s", apiErr.Code, apiErr.Message)
}

// remoteError keeps the server's wording and matches the sentinel with errors.Is.
type remoteError struct {
	sentinel error
	message  string
}

func (e *remoteError) Error() string { return e.message }

func (e *remoteError) Unwrap() error { return e.sentinel }

func fromDTOs(dtos []server.UserDTO) ([]domain.User, error) {
	users := make([]domain.User, 0, len(dtos))
	for _, dto := range dtos {
		user, err := server.FromUserDTO(dto)
		if err != nil {
			return nil, fmt.Errorf("invalid user in response: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}
