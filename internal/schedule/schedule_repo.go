package schedule

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Schedule) error
	Update(ctx context.Context, s *Schedule) error
	FindByID(ctx context.Context, id string) (*Schedule, error)
	ListByUserMonth(ctx context.Context, userID string, year, month int) ([]Schedule, error)
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, s *Schedule) error {
	return r.conn(ctx).Create(s).Error
}

func (r *repository) Update(ctx context.Context, s *Schedule) error {
	return r.conn(ctx).Save(s).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Schedule, error) {
	var s Schedule
	if err := r.conn(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListByUserMonth(ctx context.Context, userID string, year, month int) ([]Schedule, error) {
	var rows []Schedule
	err := r.conn(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Schedule{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
