package salary

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/employee"
	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"
	salaryerrors "github.com/Qoxxoraliyev/employee-management/internal/salary/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const topListLimit = 10

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error)
	GetAll(ctx context.Context) ([]SalaryResponse, error)
	GetByID(ctx context.Context, id int64) (SalaryResponse, error)
	Update(ctx context.Context, id int64, req UpdateSalaryRequest) (SalaryResponse, error)
	Delete(ctx context.Context, id int64) error

	GetHistoryByEmployee(ctx context.Context, employeeID int64) ([]SalaryResponse, error)
	GetByDepartment(ctx context.Context, departmentID int64) ([]SalaryResponse, error)
	GetByAmountRange(ctx context.Context, min, max float64) ([]SalaryResponse, error)
	GetByPaymentDateRange(ctx context.Context, from, to string) ([]SalaryResponse, error)
	GetWithBonus(ctx context.Context) ([]SalaryResponse, error)
	GetWithoutBonus(ctx context.Context) ([]SalaryResponse, error)
	GetTopByAmount(ctx context.Context) ([]SalaryResponse, error)
	GetTopByBonus(ctx context.Context) ([]SalaryResponse, error)

	GetMinAmount(ctx context.Context) (float64, error)
	GetMaxAmount(ctx context.Context) (float64, error)
	GetMaxForEmployee(ctx context.Context, employeeID int64) (float64, error)
	GetMaxForDepartment(ctx context.Context, departmentID int64) (float64, error)
	GetAvgForEmployee(ctx context.Context, employeeID int64) (float64, error)
	GetMonthlyStats(ctx context.Context, year int) ([]MonthlyStat, error)

	GenerateReportPDF(ctx context.Context, employeeID int64) ([]byte, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	emplRepo employee.Repository
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	emplRepo employee.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		emplRepo: emplRepo,
		logger:   l,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error) {
	s.logger.Debug("create salary requested",
		zap.Int64("employee_id", req.EmployeeID),
		zap.Float64("amount", req.Amount),
	)

	paymentDate, err := validatePayment(req.Amount, req.Currency, req.PaymentDate, req.Bonus)
	if err != nil {
		return SalaryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	empl, err := s.emplRepo.WithTx(tx).FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create salary employee lookup failed", zap.Error(err))
		return SalaryResponse{}, err
	}

	sal := &Salary{
		EmployeeID:  empl.ID,
		Employee:    empl,
		Amount:      req.Amount,
		Currency:    strings.TrimSpace(req.Currency),
		PaymentDate: paymentDate,
		Bonus:       req.Bonus,
	}

	if err := s.repo.WithTx(tx).Create(ctx, sal); err != nil {
		s.logger.Error("create salary persist failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create salary commit failed", zap.Error(err))
		return SalaryResponse{}, err
	}

	s.logger.Info("create salary success",
		zap.Int64("salary_id", sal.ID),
		zap.Int64("employee_id", sal.EmployeeID),
	)
	return mapToResponse(*sal), nil
}

func (s *service) GetAll(ctx context.Context) ([]SalaryResponse, error) {
	sals, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all salaries failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(sals), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (SalaryResponse, error) {
	sal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*sal), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateSalaryRequest) (SalaryResponse, error) {
	s.logger.Debug("update salary requested", zap.Int64("salary_id", id))

	paymentDate, err := validatePayment(req.Amount, req.Currency, req.PaymentDate, req.Bonus)
	if err != nil {
		return SalaryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update salary begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	sal, err := qtx.FindByID(ctx, id)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	sal.Amount = req.Amount
	sal.Currency = strings.TrimSpace(req.Currency)
	sal.PaymentDate = paymentDate
	sal.Bonus = req.Bonus

	if err := qtx.Update(ctx, sal); err != nil {
		s.logger.Error("update salary persist failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update salary commit failed", zap.Error(err))
		return SalaryResponse{}, err
	}

	s.logger.Info("update salary success", zap.Int64("salary_id", id))
	return mapToResponse(*sal), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	s.logger.Debug("delete salary requested", zap.Int64("salary_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete salary begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete salary failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete salary commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete salary success", zap.Int64("salary_id", id))
	return nil
}

func (s *service) GetHistoryByEmployee(ctx context.Context, employeeID int64) ([]SalaryResponse, error) {
	if _, err := s.emplRepo.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	sals, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(sals), nil
}

// GetByDepartment mirrors the source behavior: a department with no
// salary rows is a validation error, not an empty list.
func (s *service) GetByDepartment(ctx context.Context, departmentID int64) ([]SalaryResponse, error) {
	sals, err := s.repo.FindByDepartment(ctx, departmentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if len(sals) == 0 {
		return nil, salaryerrors.ErrNoSalariesInDepartment
	}
	return mapToListResponse(sals), nil
}

func (s *service) GetByAmountRange(ctx context.Context, min, max float64) ([]SalaryResponse, error) {
	if min < 0 || max < 0 || min > max {
		return nil, salaryerrors.ErrInvalidAmountRange
	}
	sals, err := s.repo.FindByAmountBetween(ctx, min, max)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(sals), nil
}

func (s *service) GetByPaymentDateRange(ctx context.Context, from, to string) ([]SalaryResponse, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, salaryerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, salaryerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return nil, salaryerrors.ErrInvalidDateRange
	}

	sals, err := s.repo.FindByPaymentDateBetween(ctx, start, end)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(sals), nil
}

func (s *service) GetWithBonus(ctx context.Context) ([]SalaryResponse, error) {
	sals, err := s.repo.FindWithBonus(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(sals), nil
}

func (s *service) GetWithoutBonus(ctx context.Context) ([]SalaryResponse, error) {
	sals, err := s.repo.FindWithoutBonus(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(sals), nil
}

func (s *service) GetTopByAmount(ctx context.Context) ([]SalaryResponse, error) {
	sals, err := s.repo.TopByAmount(ctx, topListLimit)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(sals), nil
}

func (s *service) GetTopByBonus(ctx context.Context) ([]SalaryResponse, error) {
	sals, err := s.repo.TopByBonus(ctx, topListLimit)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(sals), nil
}

func (s *service) GetMinAmount(ctx context.Context) (float64, error) {
	v, err := s.repo.MinAmount(ctx)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return safeValue(v), nil
}

func (s *service) GetMaxAmount(ctx context.Context) (float64, error) {
	v, err := s.repo.MaxAmount(ctx)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return safeValue(v), nil
}

func (s *service) GetMaxForEmployee(ctx context.Context, employeeID int64) (float64, error) {
	v, err := s.repo.MaxAmountByEmployee(ctx, employeeID)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return safeValue(v), nil
}

func (s *service) GetMaxForDepartment(ctx context.Context, departmentID int64) (float64, error) {
	v, err := s.repo.MaxAmountByDepartment(ctx, departmentID)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return safeValue(v), nil
}

func (s *service) GetAvgForEmployee(ctx context.Context, employeeID int64) (float64, error) {
	v, err := s.repo.AvgAmountByEmployee(ctx, employeeID)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return safeValue(v), nil
}

func (s *service) GetMonthlyStats(ctx context.Context, year int) ([]MonthlyStat, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < 0 {
		return nil, salaryerrors.ErrInvalidYear
	}

	stats, err := s.repo.MonthlyStats(ctx, year)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return stats, nil
}

func (s *service) GenerateReportPDF(ctx context.Context, employeeID int64) ([]byte, error) {
	empl, err := s.emplRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	sals, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return buildSalaryReportPDF(empl, sals, s.now()), nil
}

// safeValue normalizes a missing aggregate to 0.0.
func safeValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func validatePayment(amount float64, currency, paymentDate string, bonus *float64) (time.Time, error) {
	if amount <= 0 {
		return time.Time{}, salaryerrors.ErrInvalidAmount
	}
	if strings.TrimSpace(currency) == "" {
		return time.Time{}, salaryerrors.ErrCurrencyRequired
	}
	if bonus != nil && *bonus < 0 {
		return time.Time{}, salaryerrors.ErrInvalidBonus
	}
	parsed, err := time.Parse(dateLayout, paymentDate)
	if err != nil {
		return time.Time{}, salaryerrors.ErrInvalidDateFormat
	}
	return parsed, nil
}
