package attendance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByID(ctx context.Context, id string) (*TimeLog, error)
	// Upsert inserts the log or overwrites times, status and source of the
	// existing row with the same id.
	Upsert(ctx context.Context, log *TimeLog) error
	// ListByUserRange returns logs with from <= date <= to, oldest first.
	// limit <= 0 means no limit.
	ListByUserRange(ctx context.Context, userID, from, to string, limit int) ([]TimeLog, error)
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

func (r *repository) FindByID(ctx context.Context, id string) (*TimeLog, error) {
	var log TimeLog
	if err := r.conn(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *repository) Upsert(ctx context.Context, log *TimeLog) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"time_in", "time_out", "status", "source", "updated_at"}),
		}).
		Create(log).Error
}

func (r *repository) ListByUserRange(ctx context.Context, userID, from, to string, limit int) ([]TimeLog, error) {
	db := r.conn(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	var rows []TimeLog
	err := db.Find(&rows).Error
	return rows, err
}
