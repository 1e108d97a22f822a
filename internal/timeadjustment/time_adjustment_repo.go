package timeadjustment

import (
	"context"

	"nova-hris/internal/workflow"

	"gorm.io/gorm"
)

//go:generate mockgen -source=time_adjustment_repo.go -destination=mock/time_adjustment_repo_mock.go -package=mock
type Repository interface {
	workflow.Repository[TimeAdjustment]
	// ListApproved returns approved adjustments with from <= date <= to,
	// most recently decided last.
	ListApproved(ctx context.Context, userID, from, to string) ([]TimeAdjustment, error)
}

type repository struct {
	workflow.Repository[TimeAdjustment]
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{Repository: workflow.NewRepository[TimeAdjustment](db), db: db}
}

func (r *repository) ListApproved(ctx context.Context, userID, from, to string) ([]TimeAdjustment, error) {
	var items []TimeAdjustment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", workflow.StatusApproved).
		Where("date >= ? AND date <= ?", from, to).
		Order("processed_at ASC").
		Order("id ASC").
		Find(&items).Error
	return items, err
}
