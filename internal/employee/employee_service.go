package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/department"
	departmenterrors "github.com/Qoxxoraliyev/employee-management/internal/department/errors"
	"github.com/Qoxxoraliyev/employee-management/internal/domain"
	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"
	"github.com/Qoxxoraliyev/employee-management/internal/events"
	"github.com/Qoxxoraliyev/employee-management/internal/messaging/kafka"
	"github.com/Qoxxoraliyev/employee-management/internal/shared/contextutil"
	"github.com/Qoxxoraliyev/employee-management/internal/shared/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const topPaidLimit = 5

// sortableFields whitelists page sort keys against the employees table.
var sortableFields = map[string]bool{
	"id":         true,
	"first_name": true,
	"last_name":  true,
	"birth_date": true,
	"hire_date":  true,
	"position":   true,
	"status":     true,
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id int64) (EmployeeResponse, error)
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id int64) error

	Search(ctx context.Context, criteria FilterCriteria) ([]EmployeeResponse, error)
	GetPage(ctx context.Context, page, size int, sortBy, direction string) (pagination.Page[EmployeeResponse], error)

	GetByStatus(ctx context.Context, status string) ([]EmployeeResponse, error)
	GetByGender(ctx context.Context, gender string) ([]EmployeeResponse, error)
	GetByDepartmentName(ctx context.Context, name string) ([]EmployeeResponse, error)
	GetByStatusAndDepartmentName(ctx context.Context, status, name string) ([]EmployeeResponse, error)
	GetByDepartmentNameAndPosition(ctx context.Context, name, position string) ([]EmployeeResponse, error)
	SearchByName(ctx context.Context, term string) ([]EmployeeResponse, error)
	SearchByPhone(ctx context.Context, term string) ([]EmployeeResponse, error)
	GetByHireDateRange(ctx context.Context, from, to string) ([]EmployeeResponse, error)
	GetByBirthDateRange(ctx context.Context, from, to string) ([]EmployeeResponse, error)
	GetBySalaryRange(ctx context.Context, min, max float64) ([]EmployeeResponse, error)
	GetTopPaid(ctx context.Context) ([]EmployeeResponse, error)

	AgeOf(ctx context.Context, id int64) (int, error)
	CountAll(ctx context.Context) (int64, error)
	ActivePercentage(ctx context.Context) (float64, error)
	CountNewLast30Days(ctx context.Context) (int64, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	deptRepo department.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	deptRepo department.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		deptRepo: deptRepo,
		outbox:   outboxRepo,
		logger:   l,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("first_name", req.FirstName),
		zap.Int64("department_id", req.DepartmentID),
	)

	birthDate, err := s.parseBirthDate(req.BirthDate)
	if err != nil {
		return EmployeeResponse{}, err
	}
	hireDate, err := parseOptionalDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}
	status, err := parseStatusOrDefault(req.Status)
	if err != nil {
		return EmployeeResponse{}, err
	}
	gender, err := parseOptionalGender(req.Gender)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	dept, err := s.deptRepo.WithTx(tx).FindByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		s.logger.Error("create employee department lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	qtx := s.repo.WithTx(tx)
	empl := &Employee{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        req.Phone,
		Gender:       gender,
		BirthDate:    birthDate,
		HireDate:     hireDate,
		Position:     req.Position,
		DepartmentID: dept.ID,
		Department:   dept,
		ImagePath:    req.ImagePath,
		Status:       status,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID,
			FullName:   empl.FullName(),
			OccurredAt: s.now().UTC(),
		}
		if req.InitialSalary != nil {
			event.InitialSalary = *req.InitialSalary
			event.Currency = req.Currency
			if event.Currency == "" {
				event.Currency = "USD"
			}
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   strconv.FormatInt(empl.ID, 10),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.Int64("employee_id", empl.ID),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Int64("employee_id", empl.ID),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Int64("employee_id", id))
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.Int64("employee_id", id))

	birthDate, err := s.parseBirthDate(req.BirthDate)
	if err != nil {
		return EmployeeResponse{}, err
	}
	hireDate, err := parseOptionalDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}
	status, err := parseStatusOrDefault(req.Status)
	if err != nil {
		return EmployeeResponse{}, err
	}
	gender, err := parseOptionalGender(req.Gender)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	dept, err := s.deptRepo.WithTx(tx).FindByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		s.logger.Error("update employee department lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl.FirstName = strings.TrimSpace(req.FirstName)
	empl.LastName = strings.TrimSpace(req.LastName)
	empl.Phone = req.Phone
	empl.Gender = gender
	empl.BirthDate = birthDate
	empl.HireDate = hireDate
	empl.Position = req.Position
	empl.DepartmentID = dept.ID
	empl.Department = dept
	empl.ImagePath = req.ImagePath
	empl.Status = status

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.Int64("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	s.logger.Debug("delete employee requested", zap.Int64("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete employee success", zap.Int64("employee_id", id))
	return nil
}

// Search loads the full roster and applies the composed in-memory
// predicate, preserving storage order.
func (s *service) Search(ctx context.Context, criteria FilterCriteria) ([]EmployeeResponse, error) {
	pred, err := criteria.Predicate(s.now())
	if err != nil {
		return nil, err
	}

	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("search employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(Filter(empls, pred)), nil
}

func (s *service) GetPage(ctx context.Context, page, size int, sortBy, direction string) (pagination.Page[EmployeeResponse], error) {
	req, err := pagination.NewRequest(page, size, sortBy, direction, sortableFields)
	if err != nil {
		return pagination.Page[EmployeeResponse]{}, err
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		s.logger.Error("page employees count failed", zap.Error(err))
		return pagination.Page[EmployeeResponse]{}, mapRepositoryError(err)
	}

	empls, err := s.repo.FindPage(ctx, req)
	if err != nil {
		s.logger.Error("page employees fetch failed", zap.Error(err))
		return pagination.Page[EmployeeResponse]{}, mapRepositoryError(err)
	}

	return pagination.NewPage(mapToListResponse(empls), req, total), nil
}

func (s *service) GetByStatus(ctx context.Context, status string) ([]EmployeeResponse, error) {
	parsed, ok := domain.ParseStatus(status)
	if !ok {
		return nil, employeeerrors.ErrInvalidStatus
	}
	empls, err := s.repo.FindByStatus(ctx, parsed)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByGender(ctx context.Context, gender string) ([]EmployeeResponse, error) {
	parsed, ok := domain.ParseGender(gender)
	if !ok {
		return nil, employeeerrors.ErrInvalidGender
	}
	empls, err := s.repo.FindByGender(ctx, parsed)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByDepartmentName(ctx context.Context, name string) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindByDepartmentName(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByStatusAndDepartmentName(ctx context.Context, status, name string) ([]EmployeeResponse, error) {
	parsed, ok := domain.ParseStatus(status)
	if !ok {
		return nil, employeeerrors.ErrInvalidStatus
	}
	empls, err := s.repo.FindByStatusAndDepartmentName(ctx, parsed, name)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByDepartmentNameAndPosition(ctx context.Context, name, position string) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindByDepartmentNameAndPosition(ctx, name, position)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) SearchByName(ctx context.Context, term string) ([]EmployeeResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.GetAll(ctx)
	}
	empls, err := s.repo.FindByNameContains(ctx, term)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) SearchByPhone(ctx context.Context, term string) ([]EmployeeResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.GetAll(ctx)
	}
	empls, err := s.repo.FindByPhoneContains(ctx, term)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByHireDateRange(ctx context.Context, from, to string) ([]EmployeeResponse, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	empls, err := s.repo.FindByHireDateBetween(ctx, start, end)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByBirthDateRange(ctx context.Context, from, to string) ([]EmployeeResponse, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	empls, err := s.repo.FindByBirthDateBetween(ctx, start, end)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetBySalaryRange(ctx context.Context, min, max float64) ([]EmployeeResponse, error) {
	if min < 0 || max < 0 || min > max {
		return nil, employeeerrors.ErrInvalidSalaryRange
	}
	empls, err := s.repo.FindBySalaryBetween(ctx, min, max)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetTopPaid(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindTopBySalary(ctx, topPaidLimit)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) AgeOf(ctx context.Context, id int64) (int, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return AgeAt(empl.BirthDate, s.now())
}

func (s *service) CountAll(ctx context.Context) (int64, error) {
	count, err := s.repo.CountAll(ctx)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return count, nil
}

// ActivePercentage reports the active share of the roster rounded to two
// decimals. An empty roster yields 0.
func (s *service) ActivePercentage(ctx context.Context) (float64, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	if total == 0 {
		return 0, nil
	}
	active, err := s.repo.CountByStatus(ctx, domain.StatusActive)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	pct := float64(active) / float64(total) * 100
	return math.Round(pct*100) / 100, nil
}

func (s *service) CountNewLast30Days(ctx context.Context) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -30)
	count, err := s.repo.CountHiredAfter(ctx, cutoff)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return count, nil
}

func (s *service) parseBirthDate(raw string) (*time.Time, error) {
	bd, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDateFormat
	}
	if _, err := AgeAt(&bd, s.now()); err != nil {
		return nil, err
	}
	return &bd, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDateFormat
	}
	return &d, nil
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return time.Time{}, time.Time{}, employeeerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return time.Time{}, time.Time{}, employeeerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, employeeerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func parseStatusOrDefault(raw string) (domain.Status, error) {
	if raw == "" {
		return domain.StatusActive, nil
	}
	status, ok := domain.ParseStatus(raw)
	if !ok {
		return "", employeeerrors.ErrInvalidStatus
	}
	return status, nil
}

func parseOptionalGender(raw string) (domain.Gender, error) {
	if raw == "" {
		return "", nil
	}
	gender, ok := domain.ParseGender(raw)
	if !ok {
		return "", employeeerrors.ErrInvalidGender
	}
	return gender, nil
}
