package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"nova-hris/internal/activity"
	attendanceerrors "nova-hris/internal/attendance/errors"
	"nova-hris/internal/events"
	"nova-hris/internal/messaging/kafka"
	"nova-hris/internal/metrics"
	"nova-hris/internal/session"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/contextutil"
	"nova-hris/internal/shared/timeutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultHistoryDays = 10
	MaxHistoryDays     = 90
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, actor session.Actor) (*TimeLogResponse, error)
	ClockOut(ctx context.Context, actor session.Actor) (*TimeLogResponse, error)
	Today(ctx context.Context, actor session.Actor) (TodayResponse, error)
	TodaySchedule(ctx context.Context, actor session.Actor) (*ScheduleResponse, error)
	History(ctx context.Context, actor session.Actor, days int) ([]HistoryEntry, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	activities activity.Service
	outbox     kafka.OutboxRepository
	sources    Sources
	clock      timeutil.Clock
	loc        *time.Location
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	activities activity.Service,
	outbox kafka.OutboxRepository,
	sources Sources,
	clock timeutil.Clock,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		db:         db,
		repo:       repo,
		activities: activities,
		outbox:     outbox,
		sources:    sources,
		clock:      clock,
		loc:        loc,
		logger:     l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) findToday(ctx context.Context, repo Repository, userID, date string) (*TimeLog, error) {
	row, err := repo.FindByID(ctx, LogID(userID, date))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return row, err
}

func (s *service) ClockIn(ctx context.Context, actor session.Actor) (*TimeLogResponse, error) {
	log := s.log(ctx)
	if actor.UID == "" {
		return nil, apperror.ErrUnauthorized
	}

	now := s.clock.Now()
	today := timeutil.DateKey(now, s.loc)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("clock in begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := s.findToday(ctx, qtx, actor.UID, today)
	if err != nil {
		log.Error("clock in load time log failed", zap.String("user_id", actor.UID), zap.Error(err))
		return nil, err
	}
	if existing != nil && existing.TimeIn != nil {
		return nil, attendanceerrors.ErrAlreadyClockedIn
	}

	row := &TimeLog{
		ID:        LogID(actor.UID, today),
		UserID:    actor.UID,
		Date:      today,
		TimeIn:    &now,
		Status:    StatusActive,
		Source:    SourceClock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing != nil {
		row.TimeOut = existing.TimeOut
		row.CreatedAt = existing.CreatedAt
	}
	if err := qtx.Upsert(ctx, row); err != nil {
		log.Error("clock in upsert failed", zap.String("id", row.ID), zap.Error(err))
		return nil, err
	}

	if err := s.recordClock(ctx, tx, row, activity.TypeClockIn, "activity.clock_in", events.EventClockedIn, now); err != nil {
		log.Error("clock in record failed", zap.String("id", row.ID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("clock in commit failed", zap.Error(err))
		return nil, err
	}

	metrics.ClockEvents.WithLabelValues("clock_in").Inc()
	log.Info("clock in success", zap.String("user_id", actor.UID), zap.String("date", today))
	return mapToResponse(row, s.loc), nil
}

func (s *service) ClockOut(ctx context.Context, actor session.Actor) (*TimeLogResponse, error) {
	log := s.log(ctx)
	if actor.UID == "" {
		return nil, apperror.ErrUnauthorized
	}

	now := s.clock.Now()
	today := timeutil.DateKey(now, s.loc)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("clock out begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := s.findToday(ctx, qtx, actor.UID, today)
	if err != nil {
		log.Error("clock out load time log failed", zap.String("user_id", actor.UID), zap.Error(err))
		return nil, err
	}
	if row == nil || row.TimeIn == nil {
		return nil, attendanceerrors.ErrNotClockedIn
	}
	if row.TimeOut != nil {
		return nil, attendanceerrors.ErrAlreadyClockedOut
	}

	row.TimeOut = &now
	row.Status = StatusCompleted
	row.UpdatedAt = now
	if err := qtx.Upsert(ctx, row); err != nil {
		log.Error("clock out upsert failed", zap.String("id", row.ID), zap.Error(err))
		return nil, err
	}

	if err := s.recordClock(ctx, tx, row, activity.TypeClockOut, "activity.clock_out", events.EventClockedOut, now); err != nil {
		log.Error("clock out record failed", zap.String("id", row.ID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("clock out commit failed", zap.Error(err))
		return nil, err
	}

	metrics.ClockEvents.WithLabelValues("clock_out").Inc()
	log.Info("clock out success", zap.String("user_id", actor.UID), zap.String("date", today))
	return mapToResponse(row, s.loc), nil
}

// recordClock appends the activity and, when an outbox is configured, the
// attendance event inside tx.
func (s *service) recordClock(ctx context.Context, tx *sql.Tx, row *TimeLog, activityType, messageID, eventType string, now time.Time) error {
	act, err := s.activities.Record(ctx, tx, activity.Entry{
		UserID:    row.UserID,
		Type:      activityType,
		MessageID: messageID,
		Snapshot:  row,
		At:        now,
	})
	if err != nil {
		return err
	}
	if s.outbox == nil {
		return nil
	}

	body, err := json.Marshal(events.AttendanceClockedEvent{
		EventType:  eventType,
		TimeLogID:  row.ID,
		UserID:     row.UserID,
		Date:       row.Date,
		Activity:   activity.Snapshot(act),
		OccurredAt: now,
	})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "time_log",
		AggregateID:   row.ID,
		EventType:     eventType,
		Topic:         events.AttendanceTopic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Today(ctx context.Context, actor session.Actor) (TodayResponse, error) {
	if actor.UID == "" {
		return TodayResponse{}, apperror.ErrUnauthorized
	}

	now := s.clock.Now()
	today := timeutil.DateKey(now, s.loc)
	row, err := s.findToday(ctx, s.repo, actor.UID, today)
	if err != nil {
		s.log(ctx).Error("load today failed", zap.String("user_id", actor.UID), zap.Error(err))
		return TodayResponse{}, err
	}

	resp := TodayResponse{
		Date:       today,
		Log:        mapToResponse(row, s.loc),
		RolloverAt: timeutil.NextMidnight(now, s.loc),
	}
	if row != nil && row.TimeIn != nil {
		until := row.TimeOut
		if until == nil {
			until = &now
		}
		resp.HoursWorked = timeutil.HoursWorked(row.TimeIn, until)
	}
	return resp, nil
}

func (s *service) TodaySchedule(ctx context.Context, actor session.Actor) (*ScheduleResponse, error) {
	if actor.UID == "" {
		return nil, apperror.ErrUnauthorized
	}
	if s.sources.Schedules == nil {
		return nil, nil
	}

	now := s.clock.Now().In(s.loc)
	today := timeutil.DateKey(now, s.loc)
	slots, err := s.sources.Schedules.MonthSchedules(ctx, actor.UID, now.Year(), int(now.Month()))
	if err != nil {
		s.log(ctx).Error("load month schedules failed", zap.String("user_id", actor.UID), zap.Error(err))
		return nil, err
	}
	for i := range slots {
		if slots[i].Date == today {
			return mapSchedule(&slots[i]), nil
		}
	}
	return nil, nil
}

func (s *service) History(ctx context.Context, actor session.Actor, days int) ([]HistoryEntry, error) {
	log := s.log(ctx)
	if actor.UID == "" {
		return nil, apperror.ErrUnauthorized
	}
	if days < 0 {
		return nil, attendanceerrors.ErrInvalidDays
	}
	if days == 0 {
		days = DefaultHistoryDays
	}
	if days > MaxHistoryDays {
		days = MaxHistoryDays
	}

	now := s.clock.Now().In(s.loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	from := timeutil.DateKey(todayStart.AddDate(0, 0, -(days - 1)), s.loc)
	to := timeutil.DateKey(todayStart, s.loc)

	logs, err := s.repo.ListByUserRange(ctx, actor.UID, from, to, 0)
	if err != nil {
		log.Error("history load time logs failed", zap.String("user_id", actor.UID), zap.Error(err))
		return nil, err
	}
	byDate := make(map[string]*TimeLog, len(logs))
	for i := range logs {
		byDate[logs[i].Date] = &logs[i]
	}

	adjusted := map[string]Adjustment{}
	if s.sources.Adjustments != nil {
		adjustments, err := s.sources.Adjustments.ApprovedAdjustments(ctx, actor.UID, from, to)
		if err != nil {
			log.Error("history load adjustments failed", zap.String("user_id", actor.UID), zap.Error(err))
			return nil, err
		}
		for _, a := range adjustments {
			adjusted[a.Date] = a
		}
	}

	entries := make([]HistoryEntry, 0, days)
	for i := 0; i < days; i++ {
		date := timeutil.DateKey(todayStart.AddDate(0, 0, -i), s.loc)
		row := byDate[date]

		if adj, ok := adjusted[date]; ok {
			in, out := s.adjustedTimes(adj, row)
			entries = append(entries, newHistoryEntry(date, in, out, StatusCompleted, SourceAdjustment, s.loc))
			continue
		}
		if row != nil {
			entries = append(entries, newHistoryEntry(date, row.TimeIn, row.TimeOut, row.Status, row.Source, s.loc))
			continue
		}
		entries = append(entries, newHistoryEntry(date, nil, nil, StatusAbsent, "", s.loc))
	}
	return entries, nil
}

// adjustedTimes applies the requested HH:MM values; an empty side falls back
// to the logged time.
func (s *service) adjustedTimes(adj Adjustment, row *TimeLog) (*time.Time, *time.Time) {
	var in, out *time.Time
	if row != nil {
		in, out = row.TimeIn, row.TimeOut
	}
	if adj.TimeIn != "" {
		if t, err := timeutil.At(adj.Date, adj.TimeIn, s.loc); err == nil {
			in = &t
		}
	}
	if adj.TimeOut != "" {
		if t, err := timeutil.At(adj.Date, adj.TimeOut, s.loc); err == nil {
			out = &t
		}
	}
	return in, out
}
