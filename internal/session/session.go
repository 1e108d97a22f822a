package session

import (
	"context"
	"errors"
	"strings"

	"nova-hris/internal/shared/apperror"

	"go.uber.org/zap"
)

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Identity is what a verified access token proves about the caller.
type Identity struct {
	UID   string
	Email string
	Role  string
	JTI   string
}

// Actor is the caller every service operation receives explicitly.
type Actor struct {
	UID        string `json:"uid"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Role       string `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Profile is the stored part of a user the resolver merges into the actor.
type Profile struct {
	UID        string
	Email      string
	Name       string
	EmployeeID string
	Department string
	Position   string
	Role       string
}

var ErrProfileNotFound = errors.New("session: profile not found")

// ProfileLoader returns ErrProfileNotFound when the uid has no stored profile.
type ProfileLoader interface {
	LoadProfile(ctx context.Context, uid string) (*Profile, error)
}

type Resolver interface {
	Resolve(ctx context.Context, id Identity) (Actor, error)
}

type resolver struct {
	profiles ProfileLoader
	logger   *zap.Logger
}

func NewResolver(profiles ProfileLoader, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("session.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.resolver")
	}
	return &resolver{profiles: profiles, logger: l}
}

// Resolve merges the token identity with the stored profile. Profile fields
// win, email falls back to the token and a missing role means employee.
// A token whose user no longer exists is rejected: the role claim alone
// never grants access.
func (r *resolver) Resolve(ctx context.Context, id Identity) (Actor, error) {
	actor := Actor{UID: id.UID, Email: id.Email, Role: id.Role}

	p, err := r.profiles.LoadProfile(ctx, id.UID)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		r.logger.Warn("resolve actor rejected, profile gone", zap.String("uid", id.UID))
		return Actor{}, apperror.ErrUnauthorized
	case err != nil:
		r.logger.Error("resolve actor load profile failed", zap.String("uid", id.UID), zap.Error(err))
		return Actor{}, err
	default:
		actor = merge(actor, *p)
	}

	actor.Role = normalizeRole(actor.Role)
	return actor, nil
}

func merge(a Actor, p Profile) Actor {
	if p.Email != "" {
		a.Email = p.Email
	}
	a.Name = p.Name
	a.EmployeeID = p.EmployeeID
	a.Department = p.Department
	a.Position = p.Position
	if p.Role != "" {
		a.Role = p.Role
	}
	return a
}

func normalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != RoleAdmin {
		return RoleEmployee
	}
	return role
}

type ctxKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok && a.UID != ""
}
