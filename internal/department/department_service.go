package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	departmenterrors "github.com/Qoxxoraliyev/employee-management/internal/department/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const departmentListCacheKey = "departments:all"

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id int64) (DepartmentResponse, error)
	Update(ctx context.Context, id int64, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id int64) error

	SearchByName(ctx context.Context, name string) ([]DepartmentResponse, error)
	GetByManager(ctx context.Context, managerID *int) ([]DepartmentResponse, error)
	GetByCreationDateRange(ctx context.Context, from, to string) ([]DepartmentResponse, error)

	GetAverageSalary(ctx context.Context, departmentID int64) (float64, error)
	GetMaxSalary(ctx context.Context, departmentID int64) (float64, error)
	GetMinSalary(ctx context.Context, departmentID int64) (float64, error)
	GetEmployeeCount(ctx context.Context, departmentID int64) (int64, error)
	GetPositionCount(ctx context.Context, departmentID int64) (int64, error)
	GetEmployeeCounts(ctx context.Context) ([]EmployeeCount, error)
	GetYearlyStats(ctx context.Context) ([]YearlyHireStat, error)
	GetYearlyStatsByDepartment(ctx context.Context, departmentID int64) ([]YearlyHireStat, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	s.logger.Debug("create department requested", zap.String("name", req.Name))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		Name:      req.Name,
		ManagerID: req.ManagerID,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("create department success", zap.Int64("department_id", dept.ID))

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, departmentListCacheKey).Result(); err == nil {
			var resp []DepartmentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// singleflight keeps a cache miss from stampeding the database
	v, err, _ := s.sf.Do(departmentListCacheKey, func() (interface{}, error) {
		depts, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(depts)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, departmentListCacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	s.logger.Debug("update department requested", zap.Int64("department_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	dept.Name = req.Name
	dept.ManagerID = req.ManagerID

	if err := qtx.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("update department success", zap.Int64("department_id", id))

	return mapToResponse(*dept), nil
}

// Delete refuses to remove a department that still has employees.
func (s *service) Delete(ctx context.Context, id int64) error {
	s.logger.Debug("delete department requested", zap.Int64("department_id", id))

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	employees, err := s.repo.CountEmployees(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if employees > 0 {
		s.logger.Warn("delete department blocked, employees exist",
			zap.Int64("department_id", id),
			zap.Int64("employees", employees),
		)
		return departmenterrors.ErrDepartmentHasEmployees
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete department begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete department failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete department commit failed", zap.Error(err))
		return err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("delete department success", zap.Int64("department_id", id))
	return nil
}

// SearchByName is a case-insensitive substring search. The advanced
// employee search matches department names exactly; this one does not.
func (s *service) SearchByName(ctx context.Context, name string) ([]DepartmentResponse, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return s.GetAll(ctx)
	}
	if len(trimmed) < 2 {
		return nil, departmenterrors.ErrSearchTextTooShort
	}

	depts, err := s.repo.FindByNameContains(ctx, trimmed)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(depts), nil
}

func (s *service) GetByManager(ctx context.Context, managerID *int) ([]DepartmentResponse, error) {
	if managerID == nil {
		return nil, departmenterrors.ErrManagerIDRequired
	}

	depts, err := s.repo.FindByManagerID(ctx, *managerID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(depts), nil
}

// GetByCreationDateRange filters by created_at. Either side may be empty;
// a date-only bound covers the whole day on its side.
func (s *service) GetByCreationDateRange(ctx context.Context, from, to string) ([]DepartmentResponse, error) {
	start, err := parseDayBound(from, true)
	if err != nil {
		return nil, err
	}
	end, err := parseDayBound(to, false)
	if err != nil {
		return nil, err
	}

	depts, err := s.repo.FindByCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(depts), nil
}

func parseDayBound(raw string, isStart bool) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	day, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return nil, departmenterrors.ErrInvalidDateFormat
	}

	if isStart {
		return &day, nil
	}
	end := day.Add(24*time.Hour - time.Nanosecond)
	return &end, nil
}

func (s *service) GetAverageSalary(ctx context.Context, departmentID int64) (float64, error) {
	value, err := s.repo.AverageSalary(ctx, departmentID)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return safeValue(value), nil
}

func (s *service) GetMaxSalary(ctx context.Context, departmentID int64) (float64, error) {
	value, err := s.repo.MaxSalary(ctx, departmentID)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return safeValue(value), nil
}

func (s *service) GetMinSalary(ctx context.Context, departmentID int64) (float64, error) {
	value, err := s.repo.MinSalary(ctx, departmentID)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return safeValue(value), nil
}

func (s *service) GetEmployeeCount(ctx context.Context, departmentID int64) (int64, error) {
	if _, err := s.repo.FindByID(ctx, departmentID); err != nil {
		return 0, mapRepositoryError(err)
	}
	count, err := s.repo.CountEmployees(ctx, departmentID)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return count, nil
}

func (s *service) GetPositionCount(ctx context.Context, departmentID int64) (int64, error) {
	if _, err := s.repo.FindByID(ctx, departmentID); err != nil {
		return 0, mapRepositoryError(err)
	}
	count, err := s.repo.CountDistinctPositions(ctx, departmentID)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return count, nil
}

func (s *service) GetEmployeeCounts(ctx context.Context) ([]EmployeeCount, error) {
	counts, err := s.repo.EmployeeCounts(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return counts, nil
}

func (s *service) GetYearlyStats(ctx context.Context) ([]YearlyHireStat, error) {
	stats, err := s.repo.YearlyHires(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return stats, nil
}

func (s *service) GetYearlyStatsByDepartment(ctx context.Context, departmentID int64) ([]YearlyHireStat, error) {
	if _, err := s.repo.FindByID(ctx, departmentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	stats, err := s.repo.YearlyHiresByDepartment(ctx, departmentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return stats, nil
}

// safeValue normalizes an aggregate over zero rows to 0.0 so callers
// never see null statistics.
func safeValue(v *float64) float64 {
	if v == nil {
		return 0.0
	}
	return *v
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, departmentListCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department list cache",
			zap.Error(err),
			zap.String("key", departmentListCacheKey),
		)
	}
}
