package overtime_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"nova-hris/internal/overtime"
	"nova-hris/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "overtime.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&overtime.Overtime{}))
	return db
}

func seed(id, userID, status string, createdAt time.Time) *overtime.Overtime {
	return &overtime.Overtime{
		Envelope: workflow.Envelope{
			ID:        id,
			UserID:    userID,
			Status:    status,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		Date:   "2024-01-08",
		Hours:  1.5,
		Reason: "support",
	}
}

func TestRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := overtime.NewRepository(openSQLite(t))
	base := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, seed("01A", "u-1", workflow.StatusPending, base)))
	require.NoError(t, repo.Create(ctx, seed("01B", "u-1", workflow.StatusApproved, base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, seed("01C", "u-2", workflow.StatusPending, base.Add(2*time.Hour))))

	mine, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "01B", mine[0].ID, "newest first")
	assert.Equal(t, 1.5, mine[0].Hours)

	pending, err := repo.List(ctx, workflow.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "01C", pending[0].ID)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := repo.FindByIDForUpdate(ctx, "01A")
	require.NoError(t, err)
	found.Status = workflow.StatusRejected
	found.AdminNote = "no"
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByID(ctx, "01A")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusRejected, reloaded.Status)
	assert.Equal(t, "no", reloaded.AdminNote)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
