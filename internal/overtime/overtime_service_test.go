package overtime_test

import (
	"context"
	"testing"
	"time"

	"nova-hris/internal/activity"
	"nova-hris/internal/overtime"
	overtimeerrors "nova-hris/internal/overtime/errors"
	"nova-hris/internal/session"
	"nova-hris/internal/shared/timeutil"
	"nova-hris/internal/workflow"
	"nova-hris/internal/workflow/workflowtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2024, 1, 8, 18, 30, 0, 0, time.UTC)
	employee = session.Actor{UID: "u-1", Name: "Juan Dela Cruz", EmployeeID: "EMP001", Role: session.RoleEmployee}
	admin    = session.Actor{UID: "a-1", Name: "Admin", Role: session.RoleAdmin}
)

func newService(t *testing.T) (overtime.Service, sqlmock.Sqlmock, *workflowtest.ActivityRecorder, *workflowtest.MemoryRepository[overtime.Overtime, *overtime.Overtime]) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := workflowtest.NewMemoryRepository[overtime.Overtime, *overtime.Overtime]()
	activities := &workflowtest.ActivityRecorder{}
	svc := overtime.NewService(db, repo, activities, &workflowtest.OutboxRecorder{}, timeutil.FixedClock{T: now}, workflow.Config{})
	return svc, mock, activities, repo
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, mock, activities, _ := newService(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		got, err := svc.Submit(ctx, employee, &overtime.Overtime{Date: "2024-01-08", Hours: 2.5, Reason: "release night"})

		require.NoError(t, err)
		assert.Equal(t, 2.5, got.Hours)
		assert.Equal(t, workflow.StatusPending, got.Status)
		require.Len(t, activities.Entries, 1)
		assert.Equal(t, activity.TypeOvertimeRequest, activities.Entries[0].Type)
		assert.Equal(t, "2.5", activities.Entries[0].Data["Hours"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hours rounded to two places", func(t *testing.T) {
		svc, mock, _, _ := newService(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		got, err := svc.Submit(ctx, employee, &overtime.Overtime{Date: "2024-01-08", Hours: 1.333333, Reason: "x"})

		require.NoError(t, err)
		assert.Equal(t, 1.33, got.Hours)
	})

	tests := []struct {
		name string
		req  overtime.Overtime
		want error
	}{
		{"missing date", overtime.Overtime{Hours: 2, Reason: "x"}, overtimeerrors.ErrDateRequired},
		{"bad date", overtime.Overtime{Date: "2024-13-01", Hours: 2, Reason: "x"}, overtimeerrors.ErrInvalidDate},
		{"zero hours", overtime.Overtime{Date: "2024-01-08", Reason: "x"}, overtimeerrors.ErrInvalidHours},
		{"negative hours", overtime.Overtime{Date: "2024-01-08", Hours: -1, Reason: "x"}, overtimeerrors.ErrInvalidHours},
		{"hours that round to zero", overtime.Overtime{Date: "2024-01-08", Hours: 0.001, Reason: "x"}, overtimeerrors.ErrInvalidHours},
		{"hours that round past a day", overtime.Overtime{Date: "2024-01-08", Hours: 24.006, Reason: "x"}, overtimeerrors.ErrInvalidHours},
		{"more than a day", overtime.Overtime{Date: "2024-01-08", Hours: 25, Reason: "x"}, overtimeerrors.ErrInvalidHours},
		{"missing reason", overtime.Overtime{Date: "2024-01-08", Hours: 2}, overtimeerrors.ErrReasonRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock, activities, _ := newService(t)
			req := tt.req

			_, err := svc.Submit(ctx, employee, &req)

			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, activities.Entries)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestService_Decide_Reject(t *testing.T) {
	ctx := context.Background()
	svc, mock, activities, repo := newService(t)
	repo.Put(overtime.Overtime{
		Envelope: workflow.Envelope{ID: "01OT", UserID: "u-1", Status: workflow.StatusPending, CreatedAt: now},
		Date:     "2024-01-08",
		Hours:    3,
		Reason:   "deploy",
	})
	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := svc.Decide(ctx, admin, "01OT", "rejected", "not pre-approved")

	require.NoError(t, err)
	assert.Equal(t, workflow.StatusRejected, got.Status)
	require.Len(t, activities.Entries, 1)
	assert.Equal(t, activity.TypeOvertimeDecision, activities.Entries[0].Type)
	assert.Equal(t, "2024-01-08", activities.Entries[0].Data["Date"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
