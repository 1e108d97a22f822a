package counter

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Counter is a named monotonically increasing sequence.
type Counter struct {
	Name      string    `gorm:"type:varchar(64);primaryKey"`
	LastValue int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Counter) TableName() string {
	return "counters"
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	// Next increments the named counter and returns the new value, starting
	// at 1.
	Next(ctx context.Context, name string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Next(ctx context.Context, name string) (int64, error) {
	var nextValue int64

	// single statement upsert so concurrent callers never share a value
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (name, last_value, updated_at)
		VALUES (?, 1, ?)
		ON CONFLICT (name) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = excluded.updated_at
		RETURNING last_value
	`, name, time.Now().UTC()).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
