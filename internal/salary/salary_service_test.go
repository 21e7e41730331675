package salary_test

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/employee"
	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"
	"github.com/Qoxxoraliyev/employee-management/internal/salary"
	salaryerrors "github.com/Qoxxoraliyev/employee-management/internal/salary/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSalaryRepo struct {
	salary.Repository

	create              func(ctx context.Context, sal *salary.Salary) error
	findByID            func(ctx context.Context, id int64) (*salary.Salary, error)
	findByEmployee      func(ctx context.Context, employeeID int64) ([]salary.Salary, error)
	findByDepartment    func(ctx context.Context, departmentID int64) ([]salary.Salary, error)
	minAmount           func(ctx context.Context) (*float64, error)
	maxAmountByEmployee func(ctx context.Context, employeeID int64) (*float64, error)
	monthlyStats        func(ctx context.Context, year int) ([]salary.MonthlyStat, error)
}

func (f *fakeSalaryRepo) WithTx(tx *sql.Tx) salary.Repository { return f }
func (f *fakeSalaryRepo) Create(ctx context.Context, sal *salary.Salary) error {
	return f.create(ctx, sal)
}
func (f *fakeSalaryRepo) FindByID(ctx context.Context, id int64) (*salary.Salary, error) {
	return f.findByID(ctx, id)
}
func (f *fakeSalaryRepo) FindByEmployee(ctx context.Context, employeeID int64) ([]salary.Salary, error) {
	return f.findByEmployee(ctx, employeeID)
}
func (f *fakeSalaryRepo) FindByDepartment(ctx context.Context, departmentID int64) ([]salary.Salary, error) {
	return f.findByDepartment(ctx, departmentID)
}
func (f *fakeSalaryRepo) MinAmount(ctx context.Context) (*float64, error) { return f.minAmount(ctx) }
func (f *fakeSalaryRepo) MaxAmountByEmployee(ctx context.Context, employeeID int64) (*float64, error) {
	return f.maxAmountByEmployee(ctx, employeeID)
}
func (f *fakeSalaryRepo) MonthlyStats(ctx context.Context, year int) ([]salary.MonthlyStat, error) {
	return f.monthlyStats(ctx, year)
}

type fakeEmplRepo struct {
	employee.Repository

	findByID func(ctx context.Context, id int64) (*employee.Employee, error)
}

func (f *fakeEmplRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmplRepo) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	return f.findByID(ctx, id)
}

func knownEmployee() *fakeEmplRepo {
	return &fakeEmplRepo{
		findByID: func(ctx context.Context, id int64) (*employee.Employee, error) {
			return &employee.Employee{ID: id, FirstName: "John", LastName: "Doe", Position: "Engineer"}, nil
		},
	}
}

func newSalaryService(t *testing.T, repo *fakeSalaryRepo, emplRepo *fakeEmplRepo) (salary.Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return salary.NewService(db, repo, emplRepo), mock
}

func TestSalaryService_Create(t *testing.T) {
	req := salary.CreateSalaryRequest{
		EmployeeID:  1,
		Amount:      4200,
		Currency:    " USD ",
		PaymentDate: "2024-03-01",
	}

	t.Run("success trims currency", func(t *testing.T) {
		repo := &fakeSalaryRepo{
			create: func(ctx context.Context, sal *salary.Salary) error {
				sal.ID = 9
				return nil
			},
		}
		svc, mock := newSalaryService(t, repo, knownEmployee())

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(9), resp.ID)
		assert.Equal(t, "USD", resp.Currency)
		assert.Equal(t, 4200.0, resp.Total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown employee", func(t *testing.T) {
		emplRepo := &fakeEmplRepo{
			findByID: func(ctx context.Context, id int64) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc, mock := newSalaryService(t, &fakeSalaryRepo{}, emplRepo)

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("validation rejects bad payments", func(t *testing.T) {
		svc, _ := newSalaryService(t, &fakeSalaryRepo{}, knownEmployee())

		cases := []struct {
			name string
			req  salary.CreateSalaryRequest
			want error
		}{
			{"zero amount", salary.CreateSalaryRequest{EmployeeID: 1, Amount: 0, Currency: "USD", PaymentDate: "2024-03-01"}, salaryerrors.ErrInvalidAmount},
			{"blank currency", salary.CreateSalaryRequest{EmployeeID: 1, Amount: 100, Currency: "  ", PaymentDate: "2024-03-01"}, salaryerrors.ErrCurrencyRequired},
			{"negative bonus", salary.CreateSalaryRequest{EmployeeID: 1, Amount: 100, Currency: "USD", PaymentDate: "2024-03-01", Bonus: ptr(-5.0)}, salaryerrors.ErrInvalidBonus},
			{"bad date", salary.CreateSalaryRequest{EmployeeID: 1, Amount: 100, Currency: "USD", PaymentDate: "01.03.2024"}, salaryerrors.ErrInvalidDateFormat},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(context.Background(), tc.req)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func ptr(v float64) *float64 { return &v }

func TestSalaryService_GetByDepartment_EmptyIsError(t *testing.T) {
	repo := &fakeSalaryRepo{
		findByDepartment: func(ctx context.Context, departmentID int64) ([]salary.Salary, error) {
			return nil, nil
		},
	}
	svc, _ := newSalaryService(t, repo, knownEmployee())

	_, err := svc.GetByDepartment(context.Background(), 1)
	assert.ErrorIs(t, err, salaryerrors.ErrNoSalariesInDepartment)
}

func TestSalaryService_GetByAmountRange_Invalid(t *testing.T) {
	svc, _ := newSalaryService(t, &fakeSalaryRepo{}, knownEmployee())

	_, err := svc.GetByAmountRange(context.Background(), 900, 100)
	assert.ErrorIs(t, err, salaryerrors.ErrInvalidAmountRange)
}

func TestSalaryService_Aggregates_NullToZero(t *testing.T) {
	repo := &fakeSalaryRepo{
		minAmount: func(ctx context.Context) (*float64, error) { return nil, nil },
		maxAmountByEmployee: func(ctx context.Context, employeeID int64) (*float64, error) {
			v := 7700.50
			return &v, nil
		},
	}
	svc, _ := newSalaryService(t, repo, knownEmployee())

	min, err := svc.GetMinAmount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, min)

	max, err := svc.GetMaxForEmployee(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7700.50, max)
}

func TestSalaryService_GetMonthlyStats(t *testing.T) {
	t.Run("zero year defaults to current", func(t *testing.T) {
		var gotYear int
		repo := &fakeSalaryRepo{
			monthlyStats: func(ctx context.Context, year int) ([]salary.MonthlyStat, error) {
				gotYear = year
				return []salary.MonthlyStat{{Month: 1, Count: 2, Total: 8400, Average: 4200}}, nil
			},
		}
		svc, _ := newSalaryService(t, repo, knownEmployee())

		stats, err := svc.GetMonthlyStats(context.Background(), 0)
		require.NoError(t, err)
		assert.Equal(t, time.Now().Year(), gotYear)
		require.Len(t, stats, 1)
		assert.Equal(t, 4200.0, stats[0].Average)
	})

	t.Run("negative year is rejected", func(t *testing.T) {
		svc, _ := newSalaryService(t, &fakeSalaryRepo{}, knownEmployee())

		_, err := svc.GetMonthlyStats(context.Background(), -2024)
		assert.ErrorIs(t, err, salaryerrors.ErrInvalidYear)
	})
}

func TestSalaryService_GenerateReportPDF(t *testing.T) {
	bonus := 300.0
	repo := &fakeSalaryRepo{
		findByEmployee: func(ctx context.Context, employeeID int64) ([]salary.Salary, error) {
			return []salary.Salary{
				{ID: 1, EmployeeID: employeeID, Amount: 4200, Currency: "USD", PaymentDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
				{ID: 2, EmployeeID: employeeID, Amount: 4200, Currency: "USD", Bonus: &bonus, PaymentDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}
	svc, _ := newSalaryService(t, repo, knownEmployee())

	pdf, err := svc.GenerateReportPDF(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Contains(t, string(pdf), "John Doe")

	t.Run("unknown employee", func(t *testing.T) {
		emplRepo := &fakeEmplRepo{
			findByID: func(ctx context.Context, id int64) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc, _ := newSalaryService(t, &fakeSalaryRepo{}, emplRepo)

		_, err := svc.GenerateReportPDF(context.Background(), 99)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
