package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/department"
	departmenterrors "github.com/Qoxxoraliyev/employee-management/internal/department/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepo implements the subset of department.Repository a test stubs;
// any call without a stub panics through the embedded nil interface.
type fakeRepo struct {
	department.Repository

	create             func(ctx context.Context, dept *department.Department) error
	findAll            func(ctx context.Context) ([]department.Department, error)
	findByID           func(ctx context.Context, id int64) (*department.Department, error)
	delete             func(ctx context.Context, id int64) error
	findByNameContains func(ctx context.Context, term string) ([]department.Department, error)
	findByManagerID    func(ctx context.Context, managerID int) ([]department.Department, error)
	countEmployees     func(ctx context.Context, departmentID int64) (int64, error)
	averageSalary      func(ctx context.Context, departmentID int64) (*float64, error)
	maxSalary          func(ctx context.Context, departmentID int64) (*float64, error)
	minSalary          func(ctx context.Context, departmentID int64) (*float64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) department.Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, dept *department.Department) error {
	return f.create(ctx, dept)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]department.Department, error) {
	return f.findAll(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*department.Department, error) {
	return f.findByID(ctx, id)
}
func (f *fakeRepo) Delete(ctx context.Context, id int64) error { return f.delete(ctx, id) }
func (f *fakeRepo) FindByNameContains(ctx context.Context, term string) ([]department.Department, error) {
	return f.findByNameContains(ctx, term)
}
func (f *fakeRepo) FindByManagerID(ctx context.Context, managerID int) ([]department.Department, error) {
	return f.findByManagerID(ctx, managerID)
}
func (f *fakeRepo) CountEmployees(ctx context.Context, departmentID int64) (int64, error) {
	return f.countEmployees(ctx, departmentID)
}
func (f *fakeRepo) AverageSalary(ctx context.Context, departmentID int64) (*float64, error) {
	return f.averageSalary(ctx, departmentID)
}
func (f *fakeRepo) MaxSalary(ctx context.Context, departmentID int64) (*float64, error) {
	return f.maxSalary(ctx, departmentID)
}
func (f *fakeRepo) MinSalary(ctx context.Context, departmentID int64) (*float64, error) {
	return f.minSalary(ctx, departmentID)
}

func newServiceTest(t *testing.T, repo *fakeRepo) (department.Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return department.NewService(db, repo, nil), mock
}

func TestDepartmentService_Create(t *testing.T) {
	repo := &fakeRepo{
		create: func(ctx context.Context, dept *department.Department) error {
			dept.ID = 7
			return nil
		},
	}
	svc, mock := newServiceTest(t, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	managerID := 3
	resp, err := svc.Create(context.Background(), department.CreateDepartmentRequest{
		Name:      "Engineering",
		ManagerID: &managerID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Engineering", resp.Name)
	require.NotNil(t, resp.ManagerID)
	assert.Equal(t, 3, *resp.ManagerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentService_GetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{
		findByID: func(ctx context.Context, id int64) (*department.Department, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc, _ := newServiceTest(t, repo)

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
}

func TestDepartmentService_GetAll_CachesThroughRedis(t *testing.T) {
	depts := []department.Department{{ID: 1, Name: "Engineering"}}
	repo := &fakeRepo{
		findAll: func(ctx context.Context) ([]department.Department, error) {
			return depts, nil
		},
	}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	svc := department.NewService(db, repo, rdb)

	expected, err := json.Marshal([]department.DepartmentResponse{
		{ID: 1, Name: "Engineering", CreatedAt: "0001-01-01T00:00:00Z", UpdatedAt: "0001-01-01T00:00:00Z"},
	})
	require.NoError(t, err)

	redisMock.ExpectGet("departments:all").RedisNil()
	redisMock.ExpectSet("departments:all", expected, 1*time.Hour).SetVal("OK")

	resp, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Engineering", resp[0].Name)

	assert.NoError(t, redisMock.ExpectationsWereMet())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentService_Delete(t *testing.T) {
	t.Run("blocked while employees remain", func(t *testing.T) {
		repo := &fakeRepo{
			findByID: func(ctx context.Context, id int64) (*department.Department, error) {
				return &department.Department{ID: id, Name: "HR"}, nil
			},
			countEmployees: func(ctx context.Context, departmentID int64) (int64, error) {
				return 3, nil
			},
		}
		svc, mock := newServiceTest(t, repo)

		err := svc.Delete(context.Background(), 1)
		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentHasEmployees)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("succeeds once empty", func(t *testing.T) {
		deleted := false
		repo := &fakeRepo{
			findByID: func(ctx context.Context, id int64) (*department.Department, error) {
				return &department.Department{ID: id, Name: "HR"}, nil
			},
			countEmployees: func(ctx context.Context, departmentID int64) (int64, error) {
				return 0, nil
			},
			delete: func(ctx context.Context, id int64) error {
				deleted = true
				return nil
			},
		}
		svc, mock := newServiceTest(t, repo)

		mock.ExpectBegin()
		mock.ExpectCommit()

		require.NoError(t, svc.Delete(context.Background(), 1))
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDepartmentService_SearchByName(t *testing.T) {
	t.Run("blank falls back to full listing", func(t *testing.T) {
		repo := &fakeRepo{
			findAll: func(ctx context.Context) ([]department.Department, error) {
				return []department.Department{{ID: 1, Name: "HR"}}, nil
			},
		}
		svc, _ := newServiceTest(t, repo)

		resp, err := svc.SearchByName(context.Background(), "   ")
		require.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("single character is rejected", func(t *testing.T) {
		svc, _ := newServiceTest(t, &fakeRepo{})

		_, err := svc.SearchByName(context.Background(), " e ")
		assert.ErrorIs(t, err, departmenterrors.ErrSearchTextTooShort)
	})

	t.Run("trimmed term is forwarded", func(t *testing.T) {
		var got string
		repo := &fakeRepo{
			findByNameContains: func(ctx context.Context, term string) ([]department.Department, error) {
				got = term
				return nil, nil
			},
		}
		svc, _ := newServiceTest(t, repo)

		_, err := svc.SearchByName(context.Background(), "  eng  ")
		require.NoError(t, err)
		assert.Equal(t, "eng", got)
	})
}

func TestDepartmentService_GetByManager_RequiresID(t *testing.T) {
	svc, _ := newServiceTest(t, &fakeRepo{})

	_, err := svc.GetByManager(context.Background(), nil)
	assert.ErrorIs(t, err, departmenterrors.ErrManagerIDRequired)
}

func TestDepartmentService_GetByCreationDateRange_BadDate(t *testing.T) {
	svc, _ := newServiceTest(t, &fakeRepo{})

	_, err := svc.GetByCreationDateRange(context.Background(), "15-06-2024", "")
	assert.ErrorIs(t, err, departmenterrors.ErrInvalidDateFormat)
}

func TestDepartmentService_SalaryAggregates(t *testing.T) {
	t.Run("empty department reports zero, not null", func(t *testing.T) {
		repo := &fakeRepo{
			averageSalary: func(ctx context.Context, departmentID int64) (*float64, error) { return nil, nil },
			maxSalary:     func(ctx context.Context, departmentID int64) (*float64, error) { return nil, nil },
			minSalary:     func(ctx context.Context, departmentID int64) (*float64, error) { return nil, nil },
		}
		svc, _ := newServiceTest(t, repo)

		avg, err := svc.GetAverageSalary(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 0.0, avg)

		max, err := svc.GetMaxSalary(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 0.0, max)

		min, err := svc.GetMinSalary(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 0.0, min)
	})

	t.Run("present aggregate passes through", func(t *testing.T) {
		avg := 5250.75
		repo := &fakeRepo{
			averageSalary: func(ctx context.Context, departmentID int64) (*float64, error) { return &avg, nil },
		}
		svc, _ := newServiceTest(t, repo)

		got, err := svc.GetAverageSalary(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 5250.75, got)
	})
}
