package salaryerrors

import (
	"net/http"

	"github.com/Qoxxoraliyev/employee-management/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary record not found",
		http.StatusNotFound,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidBonus = apperror.New(
		apperror.CodeInvalidInput,
		"Bonus must not be negative",
		http.StatusBadRequest,
	)
	ErrCurrencyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Currency is required",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"'from' date must be before or equal to 'to' date",
		http.StatusBadRequest,
	)
	ErrInvalidAmountRange = apperror.New(
		apperror.CodeInvalidInput,
		"Amount range is invalid: bounds must be non-negative and min must not exceed max",
		http.StatusBadRequest,
	)
	ErrNoSalariesInDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"No salary records exist for this department",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"Year must be a positive number",
		http.StatusBadRequest,
	)
)
