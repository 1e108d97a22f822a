package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nova-hris/internal/session"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/contextutil"
	"nova-hris/internal/shared/counter"
	usererrors "nova-hris/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, actor session.Actor, search string) ([]UserResponse, error)
	GetByID(ctx context.Context, actor session.Actor, id string) (UserResponse, error)
	Create(ctx context.Context, actor session.Actor, req CreateEmployeeRequest) (UserResponse, error)
	Update(ctx context.Context, actor session.Actor, id string, req UpdateEmployeeRequest) (UserResponse, error)
	Delete(ctx context.Context, actor session.Actor, id string) error
}

// EmployeeIDCounter names the sequence used for generated employee ids.
const EmployeeIDCounter = "employee_id"

type service struct {
	repo     Repository
	counters counter.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithCounter(repo, nil, logger...)
}

// NewServiceWithCounter generates an EMPnnn employee id when Create is called
// without one.
func NewServiceWithCounter(repo Repository, counters counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, counters: counters, logger: l}
}

func (s *service) employeeID(ctx context.Context, requested string) (string, error) {
	if id := strings.TrimSpace(requested); id != "" {
		return id, nil
	}
	if s.counters == nil {
		return "", usererrors.ErrEmployeeIDRequired
	}
	n, err := s.counters.Next(ctx, EmployeeIDCounter)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("EMP%03d", n), nil
}

func (s *service) List(ctx context.Context, actor session.Actor, search string) ([]UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	users, err := s.repo.List(ctx, search)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list users failed", zap.Error(err))
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor session.Actor, id string) (UserResponse, error) {
	if !actor.IsAdmin() && actor.UID != id {
		return UserResponse{}, apperror.ErrForbidden
	}
	if strings.TrimSpace(id) == "" {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, MapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

// Create registers an employee together with the credentials used to sign in.
func (s *service) Create(ctx context.Context, actor session.Actor, req CreateEmployeeRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	if !actor.IsAdmin() {
		return UserResponse{}, apperror.ErrForbidden
	}

	role, err := normalizeRole(req.Role)
	if err != nil {
		return UserResponse{}, err
	}

	employeeID, err := s.employeeID(ctx, req.EmployeeID)
	if err != nil {
		l.Error("failed to allocate employee id", zap.Error(err))
		return UserResponse{}, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		EmployeeID:   employeeID,
		Department:   strings.TrimSpace(req.Department),
		Position:     strings.TrimSpace(req.Position),
		Role:         role,
		PasswordHash: hashed,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.String("email", u.Email), zap.Error(err))
		return UserResponse{}, MapRepositoryError(err)
	}

	l.Info("user created", zap.String("user_id", u.ID), zap.String("created_by", actor.UID))
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, actor session.Actor, id string, req UpdateEmployeeRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	if !actor.IsAdmin() {
		return UserResponse{}, apperror.ErrForbidden
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, MapRepositoryError(err)
	}

	if req.Role != "" {
		role, err := normalizeRole(req.Role)
		if err != nil {
			return UserResponse{}, err
		}
		u.Role = role
	}
	u.Name = strings.TrimSpace(req.Name)
	u.EmployeeID = strings.TrimSpace(req.EmployeeID)
	u.Department = strings.TrimSpace(req.Department)
	u.Position = strings.TrimSpace(req.Position)

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, MapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, actor session.Actor, id string) error {
	if !actor.IsAdmin() {
		return apperror.ErrForbidden
	}
	if actor.UID == id {
		return usererrors.ErrCannotDeleteSelf
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			contextutil.GetLogger(ctx, s.logger).Error("failed to delete user", zap.String("user_id", id), zap.Error(err))
		}
		return MapRepositoryError(err)
	}
	return nil
}

func normalizeRole(role string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", RoleEmployee:
		return RoleEmployee, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", usererrors.ErrInvalidRole
	}
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		EmployeeID: u.EmployeeID,
		Department: u.Department,
		Position:   u.Position,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
}
