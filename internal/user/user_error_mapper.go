package user

import (
	"errors"
	"strings"

	usererrors "github.com/Qoxxoraliyev/employee-management/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return usererrors.ErrEmailTaken
		}
		return usererrors.ErrUsernameTaken
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "email") {
			return usererrors.ErrEmailTaken
		}
		return usererrors.ErrUsernameTaken
	}

	return err
}
