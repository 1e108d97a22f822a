package overtime

import (
	"nova-hris/internal/workflow"

	"gorm.io/gorm"
)

type Repository = workflow.Repository[Overtime]

func NewRepository(db *gorm.DB) Repository {
	return workflow.NewRepository[Overtime](db)
}
