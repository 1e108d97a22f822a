package session_test

import (
	"context"
	"errors"
	"testing"

	"nova-hris/internal/session"
	"nova-hris/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

type fakeProfileLoader struct {
	loadFn func(ctx context.Context, uid string) (*session.Profile, error)
}

func (f *fakeProfileLoader) LoadProfile(ctx context.Context, uid string) (*session.Profile, error) {
	return f.loadFn(ctx, uid)
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("profile fields win over token", func(t *testing.T) {
		r := session.NewResolver(&fakeProfileLoader{
			loadFn: func(ctx context.Context, uid string) (*session.Profile, error) {
				assert.Equal(t, "u-1", uid)
				return &session.Profile{
					UID:        uid,
					Email:      "maria@nova.ph",
					Name:       "Maria Santos",
					EmployeeID: "EMP001",
					Department: "Finance",
					Position:   "Analyst",
					Role:       "admin",
				}, nil
			},
		})

		actor, err := r.Resolve(ctx, session.Identity{UID: "u-1", Email: "old@nova.ph", Role: "employee"})
		assert.NoError(t, err)
		assert.Equal(t, "maria@nova.ph", actor.Email)
		assert.Equal(t, "Maria Santos", actor.Name)
		assert.Equal(t, "EMP001", actor.EmployeeID)
		assert.True(t, actor.IsAdmin())
	})

	t.Run("email falls back to token and role defaults to employee", func(t *testing.T) {
		r := session.NewResolver(&fakeProfileLoader{
			loadFn: func(ctx context.Context, uid string) (*session.Profile, error) {
				return &session.Profile{UID: uid, Name: "Juan"}, nil
			},
		})

		actor, err := r.Resolve(ctx, session.Identity{UID: "u-2", Email: "juan@nova.ph"})
		assert.NoError(t, err)
		assert.Equal(t, "juan@nova.ph", actor.Email)
		assert.Equal(t, session.RoleEmployee, actor.Role)
		assert.False(t, actor.IsAdmin())
	})

	t.Run("deleted user is rejected despite admin claim", func(t *testing.T) {
		r := session.NewResolver(&fakeProfileLoader{
			loadFn: func(ctx context.Context, uid string) (*session.Profile, error) {
				return nil, session.ErrProfileNotFound
			},
		})

		actor, err := r.Resolve(ctx, session.Identity{UID: "u-3", Email: "x@nova.ph", Role: "ADMIN"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		assert.False(t, actor.IsAdmin())
		assert.Empty(t, actor.UID)
	})

	t.Run("store failure", func(t *testing.T) {
		r := session.NewResolver(&fakeProfileLoader{
			loadFn: func(ctx context.Context, uid string) (*session.Profile, error) {
				return nil, errors.New("db down")
			},
		})

		_, err := r.Resolve(ctx, session.Identity{UID: "u-4"})
		assert.Error(t, err)
	})
}

func TestActorContext(t *testing.T) {
	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)

	ctx := session.WithActor(context.Background(), session.Actor{UID: "u-1", Role: session.RoleEmployee})
	a, ok := session.FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u-1", a.UID)
}
