package employee

import (
	"context"
	"database/sql"
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/domain"
	"github.com/Qoxxoraliyev/employee-management/internal/shared/pagination"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id int64) error

	FindPage(ctx context.Context, req pagination.Request) ([]Employee, error)
	FindByStatus(ctx context.Context, status domain.Status) ([]Employee, error)
	FindByGender(ctx context.Context, gender domain.Gender) ([]Employee, error)
	FindByDepartmentName(ctx context.Context, name string) ([]Employee, error)
	FindByStatusAndDepartmentName(ctx context.Context, status domain.Status, name string) ([]Employee, error)
	FindByDepartmentNameAndPosition(ctx context.Context, name, position string) ([]Employee, error)
	FindByNameContains(ctx context.Context, term string) ([]Employee, error)
	FindByPhoneContains(ctx context.Context, term string) ([]Employee, error)
	FindByHireDateBetween(ctx context.Context, from, to time.Time) ([]Employee, error)
	FindByBirthDateBetween(ctx context.Context, from, to time.Time) ([]Employee, error)
	FindBySalaryBetween(ctx context.Context, min, max float64) ([]Employee, error)
	FindTopBySalary(ctx context.Context, limit int) ([]Employee, error)

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.Status) (int64, error)
	CountHiredAfter(ctx context.Context, date time.Time) (int64, error)
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

func (r *repository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Department")
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).Order("id").Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var empl Employee
	err := r.scoped(ctx).First(&empl, "employees.id = ?", id).Error
	return &empl, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) FindPage(ctx context.Context, req pagination.Request) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).Scopes(req.Scope()).Find(&empls).Error
	return empls, err
}

func (r *repository) FindByStatus(ctx context.Context, status domain.Status) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).Where("status = ?", status).Order("id").Find(&empls).Error
	return empls, err
}

func (r *repository) FindByGender(ctx context.Context, gender domain.Gender) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).Where("gender = ?", gender).Order("id").Find(&empls).Error
	return empls, err
}

func (r *repository) FindByDepartmentName(ctx context.Context, name string) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).
		Joins("JOIN departments ON departments.id = employees.department_id").
		Where("departments.name = ?", name).
		Order("employees.id").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByStatusAndDepartmentName(ctx context.Context, status domain.Status, name string) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).
		Joins("JOIN departments ON departments.id = employees.department_id").
		Where("employees.status = ? AND departments.name = ?", status, name).
		Order("employees.id").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByDepartmentNameAndPosition(ctx context.Context, name, position string) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).
		Joins("JOIN departments ON departments.id = employees.department_id").
		Where("departments.name = ? AND LOWER(employees.position) = LOWER(?)", name, position).
		Order("employees.id").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByNameContains(ctx context.Context, term string) ([]Employee, error) {
	var empls []Employee
	pattern := "%" + term + "%"
	err := r.scoped(ctx).
		Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern).
		Order("id").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByPhoneContains(ctx context.Context, term string) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).
		Where("phone ILIKE ?", "%"+term+"%").
		Order("id").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByHireDateBetween(ctx context.Context, from, to time.Time) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).
		Where("hire_date BETWEEN ? AND ?", from, to).
		Order("id").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByBirthDateBetween(ctx context.Context, from, to time.Time) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).
		Where("birth_date BETWEEN ? AND ?", from, to).
		Order("id").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindBySalaryBetween(ctx context.Context, min, max float64) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).
		Where("employees.id IN (?)",
			r.db.Table("salaries").
				Select("employee_id").
				Where("amount BETWEEN ? AND ?", min, max),
		).
		Order("employees.id").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindTopBySalary(ctx context.Context, limit int) ([]Employee, error) {
	var empls []Employee
	err := r.scoped(ctx).
		Joins("JOIN salaries ON salaries.employee_id = employees.id").
		Group("employees.id").
		Order("MAX(salaries.amount) DESC").
		Limit(limit).
		Find(&empls).Error
	return empls, err
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Employee{}).Count(&count).Error
	return count, err
}

func (r *repository) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Employee{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repository) CountHiredAfter(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Employee{}).
		Where("hire_date > ?", date).
		Count(&count).Error
	return count, err
}
