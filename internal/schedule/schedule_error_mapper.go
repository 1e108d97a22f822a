package schedule

import (
	"errors"
	"strings"

	scheduleerrors "nova-hris/internal/schedule/errors"
	"nova-hris/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scheduleerrors.ErrScheduleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_schedules_user_date" {
		return apperror.Wrap(err, scheduleerrors.ErrScheduleConflict)
	}

	// sqlite reports unique violations as plain text
	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
		return apperror.Wrap(err, scheduleerrors.ErrScheduleConflict)
	}

	return err
}
