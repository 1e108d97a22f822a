package user

import (
	"context"
	"errors"

	"nova-hris/internal/session"

	"gorm.io/gorm"
)

type profileLoader struct {
	repo Repository
}

// NewProfileLoader exposes stored users to the session resolver.
func NewProfileLoader(repo Repository) session.ProfileLoader {
	return &profileLoader{repo: repo}
}

func (p *profileLoader) LoadProfile(ctx context.Context, uid string) (*session.Profile, error) {
	u, err := p.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrProfileNotFound
		}
		return nil, err
	}
	return &session.Profile{
		UID:        u.ID,
		Email:      u.Email,
		Name:       u.Name,
		EmployeeID: u.EmployeeID,
		Department: u.Department,
		Position:   u.Position,
		Role:       u.Role,
	}, nil
}
