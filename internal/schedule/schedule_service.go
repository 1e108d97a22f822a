package schedule

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	scheduleerrors "nova-hris/internal/schedule/errors"
	"nova-hris/internal/session"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/contextutil"
	"nova-hris/internal/shared/ids"
	"nova-hris/internal/shared/timeutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, admin session.Actor, req UpsertScheduleRequest) (ScheduleResponse, error)
	ListMonth(ctx context.Context, actor session.Actor, userID string, year, month int) ([]ScheduleResponse, error)
	Delete(ctx context.Context, admin session.Actor, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	profiles session.ProfileLoader
	clock    timeutil.Clock
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, profiles session.ProfileLoader, clock timeutil.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &service{db: db, repo: repo, profiles: profiles, clock: clock, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

// resolveTimes applies the shift presets. Custom shifts keep the caller's
// times and need both.
func resolveTimes(req UpsertScheduleRequest) (string, string, string, error) {
	shift := strings.ToLower(strings.TrimSpace(req.ShiftType))
	if p, ok := presets[shift]; ok {
		return shift, p.timeIn, p.timeOut, nil
	}
	if shift != ShiftCustom {
		return "", "", "", scheduleerrors.ErrInvalidShift
	}

	in := strings.TrimSpace(req.TimeIn)
	out := strings.TrimSpace(req.TimeOut)
	if !timeutil.ValidClock(in) || !timeutil.ValidClock(out) {
		return "", "", "", scheduleerrors.ErrCustomTimesRequired
	}
	return shift, in, out, nil
}

func (s *service) Upsert(ctx context.Context, admin session.Actor, req UpsertScheduleRequest) (ScheduleResponse, error) {
	log := s.log(ctx)
	if !admin.IsAdmin() {
		return ScheduleResponse{}, scheduleerrors.ErrForbidden
	}

	date := strings.TrimSpace(req.Date)
	day, err := timeutil.ParseDate(date, nil)
	if err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrInvalidDate
	}
	shift, timeIn, timeOut, err := resolveTimes(req)
	if err != nil {
		return ScheduleResponse{}, err
	}

	profile, err := s.profiles.LoadProfile(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, session.ErrProfileNotFound) {
			return ScheduleResponse{}, scheduleerrors.ErrEmployeeNotFound
		}
		log.Error("upsert schedule load profile failed", zap.String("user_id", req.UserID), zap.Error(err))
		return ScheduleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("upsert schedule begin tx failed", zap.Error(err))
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	year, month := day.Year(), int(day.Month())
	rows, err := qtx.ListByUserMonth(ctx, req.UserID, year, month)
	if err != nil {
		log.Error("upsert schedule list month failed", zap.String("user_id", req.UserID), zap.Error(err))
		return ScheduleResponse{}, err
	}

	var existing *Schedule
	for i := range rows {
		if rows[i].Date == date {
			existing = &rows[i]
			break
		}
	}

	now := s.clock.Now()
	row := existing
	if row == nil {
		row = &Schedule{
			ID:        ids.NewAt(now),
			UserID:    req.UserID,
			Date:      date,
			Year:      year,
			Month:     month,
			CreatedAt: now,
		}
	}
	row.UserName = profile.Name
	row.EmployeeID = profile.EmployeeID
	row.ShiftType = shift
	row.TimeIn = timeIn
	row.TimeOut = timeOut
	row.UpdatedAt = now

	if existing == nil {
		err = qtx.Create(ctx, row)
	} else {
		err = qtx.Update(ctx, row)
	}
	if err != nil {
		log.Error("upsert schedule persist failed", zap.String("user_id", req.UserID), zap.String("date", date), zap.Error(err))
		return ScheduleResponse{}, MapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("upsert schedule commit failed", zap.Error(err))
		return ScheduleResponse{}, err
	}

	log.Info("upsert schedule success",
		zap.String("user_id", req.UserID),
		zap.String("date", date),
		zap.String("shift_type", shift),
		zap.Bool("created", existing == nil),
	)
	return mapToResponse(row), nil
}

func (s *service) ListMonth(ctx context.Context, actor session.Actor, userID string, year, month int) ([]ScheduleResponse, error) {
	if actor.UID == "" {
		return nil, apperror.ErrUnauthorized
	}
	if userID == "" {
		userID = actor.UID
	}
	if userID != actor.UID && !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	if month < 1 || month > 12 {
		return nil, scheduleerrors.ErrInvalidMonth
	}

	rows, err := s.repo.ListByUserMonth(ctx, userID, year, month)
	if err != nil {
		s.log(ctx).Error("list month schedules failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	out := make([]ScheduleResponse, 0, len(rows))
	for i := range rows {
		out = append(out, mapToResponse(&rows[i]))
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, admin session.Actor, id string) error {
	if !admin.IsAdmin() {
		return scheduleerrors.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		mapped := MapRepositoryError(err)
		if !errors.Is(mapped, scheduleerrors.ErrScheduleNotFound) {
			s.log(ctx).Error("delete schedule failed", zap.String("id", id), zap.Error(err))
		}
		return mapped
	}
	s.log(ctx).Info("delete schedule success", zap.String("id", id))
	return nil
}
