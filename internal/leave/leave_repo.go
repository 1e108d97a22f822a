package leave

import (
	"nova-hris/internal/workflow"

	"gorm.io/gorm"
)

type Repository = workflow.Repository[Leave]

func NewRepository(db *gorm.DB) Repository {
	return workflow.NewRepository[Leave](db)
}
