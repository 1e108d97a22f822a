package workflow

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository[E any] interface {
	WithTx(tx *sql.Tx) Repository[E]
	Create(ctx context.Context, e *E) error
	FindByID(ctx context.Context, id string) (*E, error)
	// FindByIDForUpdate row-locks the request for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id string) (*E, error)
	Update(ctx context.Context, e *E) error
	ListByUser(ctx context.Context, userID string) ([]E, error)
	List(ctx context.Context, status string) ([]E, error)
}

type repository[E any] struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository[E any](db *gorm.DB) Repository[E] {
	return &repository[E]{db: db}
}

func (r *repository[E]) WithTx(tx *sql.Tx) Repository[E] {
	return &repository[E]{db: r.db, tx: tx}
}

func (r *repository[E]) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository[E]) Create(ctx context.Context, e *E) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository[E]) FindByID(ctx context.Context, id string) (*E, error) {
	var e E
	if err := r.conn(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository[E]) FindByIDForUpdate(ctx context.Context, id string) (*E, error) {
	db := r.conn(ctx)
	// sqlite has no row locks; its writer lock already serialises the tx
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var e E
	if err := db.First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository[E]) Update(ctx context.Context, e *E) error {
	return r.conn(ctx).Save(e).Error
}

func (r *repository[E]) ListByUser(ctx context.Context, userID string) ([]E, error) {
	var items []E
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	return items, err
}

func (r *repository[E]) List(ctx context.Context, status string) ([]E, error) {
	db := r.conn(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var items []E
	err := db.Order("created_at DESC").Order("id DESC").Find(&items).Error
	return items, err
}
