package salary

import (
	"errors"
	"strings"

	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"
	salaryerrors "github.com/Qoxxoraliyev/employee-management/internal/salary/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23503" {
			return employeeerrors.ErrEmployeeNotFound
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "violates foreign key constraint") {
		return employeeerrors.ErrEmployeeNotFound
	}

	return err
}
