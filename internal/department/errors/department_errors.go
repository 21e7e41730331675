package departmenterrors

import (
	"net/http"

	"github.com/Qoxxoraliyev/employee-management/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"Department with the same name already exists",
		http.StatusConflict,
	)
	ErrDepartmentHasEmployees = apperror.New(
		apperror.CodeConflict,
		"Cannot delete department with existing employees",
		http.StatusConflict,
	)
	ErrManagerIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Manager ID must not be null",
		http.StatusBadRequest,
	)
	ErrSearchTextTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"Search text must contain at least 2 characters",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
