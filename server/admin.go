package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"greeter-proxy/contract"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"greeter-proxy/services"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var _ contract.Worker = (*AdminServer)(nil)

// Error codes carried by admin API error bodies.
const (
	CodeUserNotFound        = "user_not_found"
	CodeAmbiguousIdentifier = "ambiguous_identifier"
	CodeInvalidRole         = "invalid_role"
	CodeInvalidPhoneNumber  = "invalid_phone_number"
	CodeInvalidUser         = "invalid_user"
	CodeInvalidRequest      = "invalid_request"
	CodeInternal            = "internal"
)

type UserDTO struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

type AddUserDTO struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Role        string `json:"role" binding:"required"`
	Name        string `json:"name" binding:"required"`
}

type AddUserResponse struct {
	PhoneNumber string `json:"phone_number"`
}

type StatusDTO struct {
	Active      bool   `json:"active"`
	PhoneNumber string `json:"phone_number,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

type ErrorDTO struct {
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Candidates []UserDTO `json:"candidates,omitempty"`
}

func ToUserDTO(user domain.User) UserDTO {
	return UserDTO{
		ID:          user.ID.String(),
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role.String(),
		Name:        user.Name,
		CreatedAt:   user.CreatedAt,
	}
}

func FromUserDTO(dto UserDTO) (domain.User, error) {
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:          id,
		PhoneNumber: dto.PhoneNumber,
		Role:        domain.Role(dto.Role),
		Name:        dto.Name,
		CreatedAt:   dto.CreatedAt,
	}, nil
}

func toUserDTOs(users []domain.User) []UserDTO {
	return lo.Map(users, func(u domain.User, _ int) UserDTO { return ToUserDTO(u) })
}

// AdminServer exposes the administrative operations to the CLI while the
// relay owns the database. It is meant to listen on loopback only.
type AdminServer struct {
	log     *slog.Logger
	admin   services.IAdminService
	address string
	timeout time.Duration
	router  *gin.Engine
}

func NewAdminServer(log *slog.Logger, admin services.IAdminService, address string, shutdownTimeout time.Duration) *AdminServer {
	s := &AdminServer{log: log, admin: admin, address: address, timeout: shutdownTimeout}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	router.GET("/users", s.listUsers)
	router.POST("/users", s.addUser)
	router.DELETE("/users/:identifier", s.removeUser)
	router.GET("/status", s.status)
	router.POST("/reset", s.reset)
	s.router = router
	return s
}

func (s *AdminServer) Handler() http.Handler {
	return s.router
}

func (s *AdminServer) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.address, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	errChan := make(chan error, 1)
	go func() {
		s.log.Info("Starting admin server", "address", s.address)
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("admin server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	return nil
}

func (s *AdminServer) listUsers(c *gin.Context) {
	users, err := s.admin.ListUsers()
	if err != nil {
		s.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, toUserDTOs(users))
}

func (s *AdminServer) addUser(c *gin.Context) {
	var dto AddUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, ErrorDTO{Code: CodeInvalidRequest, Message: err.Error()})
		return
	}
	phone, err := s.admin.AddUser(dto.PhoneNumber, dto.Role, dto.Name)
	if err != nil {
		s.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, AddUserResponse{PhoneNumber: phone})
}

func (s *AdminServer) removeUser(c *gin.Context) {
	removed, candidates, err := s.admin.RemoveUser(c.Param("identifier"))
	if err != nil {
		s.fail(c, err, candidates)
		return
	}
	c.JSON(http.StatusOK, ToUserDTO(removed))
}

func (s *AdminServer) status(c *gin.Context) {
	status, err := s.admin.Status()
	if err != nil {
		s.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, StatusDTO{Active: status.Active, PhoneNumber: status.PhoneNumber, DisplayName: status.DisplayName})
}

func (s *AdminServer) reset(c *gin.Context) {
	if err := s.admin.ResetConversation(); err != nil {
		s.fail(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *AdminServer) fail(c *gin.Context, err error, candidates []domain.User) {
	body := ErrorDTO{Message: err.Error()}
	status := http.StatusInternalServerError
	switch {
	case stderrors.Is(err, errors.ErrUserNotFound):
		status, body.Code = http.StatusNotFound, CodeUserNotFound
	case stderrors.Is(err, errors.ErrAmbiguousIdentifier):
		status, body.Code = http.StatusConflict, CodeAmbiguousIdentifier
		body.Candidates = toUserDTOs(candidates)
	case stderrors.Is(err, errors.ErrInvalidRole):
		status, body.Code = http.StatusBadRequest, CodeInvalidRole
	case stderrors.Is(err, errors.ErrInvalidPhoneNumber):
		status, body.Code = http.StatusBadRequest, CodeInvalidPhoneNumber
	case stderrors.Is(err, errors.ErrInvalidUser):
		status, body.Code = http.StatusBadRequest, CodeInvalidUser
	default:
		body.Code = CodeInternal
		s.log.Error("Admin operation failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, body)
}
