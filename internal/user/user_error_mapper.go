package user

import (
	"errors"
	"strings"

	"nova-hris/internal/shared/apperror"
	usererrors "nova-hris/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapRepositoryError turns gorm and postgres errors on the users table into
// directory errors.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_users_email":
			return apperror.Wrap(err, usererrors.ErrUserAlreadyExists)
		case "uq_users_employee_id":
			return apperror.Wrap(err, usererrors.ErrEmployeeIDAlreadyExists)
		}
	}

	// sqlite reports unique violations as plain text
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unique constraint failed") {
		if strings.Contains(errMsg, "employee_id") {
			return apperror.Wrap(err, usererrors.ErrEmployeeIDAlreadyExists)
		}
		if strings.Contains(errMsg, "email") {
			return apperror.Wrap(err, usererrors.ErrUserAlreadyExists)
		}
	}

	return err
}
