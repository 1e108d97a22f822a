package activity

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=activity_repo.go -destination=mock/activity_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Append(ctx context.Context, a *Activity) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Activity, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Append(ctx context.Context, a *Activity) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) ListByUser(ctx context.Context, userID string, limit int) ([]Activity, error) {
	var items []Activity
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
