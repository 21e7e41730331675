package department

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id int64) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id int64) error

	FindByManagerID(ctx context.Context, managerID int) ([]Department, error)
	FindByNameContains(ctx context.Context, term string) ([]Department, error)
	FindByCreatedBetween(ctx context.Context, from, to *time.Time) ([]Department, error)

	CountEmployees(ctx context.Context, departmentID int64) (int64, error)
	CountDistinctPositions(ctx context.Context, departmentID int64) (int64, error)
	EmployeeCounts(ctx context.Context) ([]EmployeeCount, error)
	YearlyHires(ctx context.Context) ([]YearlyHireStat, error)
	YearlyHiresByDepartment(ctx context.Context, departmentID int64) ([]YearlyHireStat, error)

	AverageSalary(ctx context.Context, departmentID int64) (*float64, error)
	MaxSalary(ctx context.Context, departmentID int64) (*float64, error)
	MinSalary(ctx context.Context, departmentID int64) (*float64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).Order("id").Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id).Error
}

func (r *repository) FindByManagerID(ctx context.Context, managerID int) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("id").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByNameContains(ctx context.Context, term string) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+term+"%").
		Order("id").
		Find(&depts).Error
	return depts, err
}

// FindByCreatedBetween supports open-ended sides: a nil bound leaves that
// side unconstrained.
func (r *repository) FindByCreatedBetween(ctx context.Context, from, to *time.Time) ([]Department, error) {
	q := r.db.WithContext(ctx).Model(&Department{})
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}

	var depts []Department
	err := q.Order("id").Find(&depts).Error
	return depts, err
}

func (r *repository) CountEmployees(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountDistinctPositions(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("department_id = ? AND position IS NOT NULL AND position <> ''", departmentID).
		Distinct("position").
		Count(&count).Error
	return count, err
}

func (r *repository) EmployeeCounts(ctx context.Context) ([]EmployeeCount, error) {
	var counts []EmployeeCount
	err := r.db.WithContext(ctx).
		Table("departments").
		Select("departments.id AS department_id, departments.name AS department_name, COUNT(employees.id) AS employees").
		Joins("LEFT JOIN employees ON employees.department_id = departments.id").
		Group("departments.id, departments.name").
		Order("departments.id").
		Scan(&counts).Error
	return counts, err
}

const yearlyHiresSelect = `
departments.id   AS department_id,
departments.name AS department_name,
EXTRACT(YEAR FROM employees.hire_date)::int AS year,
COUNT(employees.id) AS hires
`

func (r *repository) YearlyHires(ctx context.Context) ([]YearlyHireStat, error) {
	var stats []YearlyHireStat
	err := r.db.WithContext(ctx).
		Table("employees").
		Select(yearlyHiresSelect).
		Joins("JOIN departments ON departments.id = employees.department_id").
		Where("employees.hire_date IS NOT NULL").
		Group("departments.id, departments.name, year").
		Order("departments.id, year").
		Scan(&stats).Error
	return stats, err
}

func (r *repository) YearlyHiresByDepartment(ctx context.Context, departmentID int64) ([]YearlyHireStat, error) {
	var stats []YearlyHireStat
	err := r.db.WithContext(ctx).
		Table("employees").
		Select(yearlyHiresSelect).
		Joins("JOIN departments ON departments.id = employees.department_id").
		Where("employees.hire_date IS NOT NULL AND employees.department_id = ?", departmentID).
		Group("departments.id, departments.name, year").
		Order("year").
		Scan(&stats).Error
	return stats, err
}

func (r *repository) salaryAggregate(ctx context.Context, departmentID int64, expr string) (*float64, error) {
	var value sql.NullFloat64
	err := r.db.WithContext(ctx).
		Table("salaries").
		Select(expr).
		Joins("JOIN employees ON employees.id = salaries.employee_id").
		Where("employees.department_id = ?", departmentID).
		Scan(&value).Error
	if err != nil {
		return nil, err
	}
	if !value.Valid {
		return nil, nil
	}
	return &value.Float64, nil
}

func (r *repository) AverageSalary(ctx context.Context, departmentID int64) (*float64, error) {
	return r.salaryAggregate(ctx, departmentID, "AVG(salaries.amount)")
}

func (r *repository) MaxSalary(ctx context.Context, departmentID int64) (*float64, error) {
	return r.salaryAggregate(ctx, departmentID, "MAX(salaries.amount)")
}

func (r *repository) MinSalary(ctx context.Context, departmentID int64) (*float64, error) {
	return r.salaryAggregate(ctx, departmentID, "MIN(salaries.amount)")
}
