package employee

import (
	"errors"
	"net/http"
	"strings"

	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"
	"github.com/Qoxxoraliyev/employee-management/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23503" {
			return apperror.New(
				apperror.CodeInvalidInput,
				"Department does not exist",
				http.StatusBadRequest,
			)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "violates foreign key constraint") {
		return apperror.New(
			apperror.CodeInvalidInput,
			"Department does not exist",
			http.StatusBadRequest,
		)
	}

	return err
}
