package salary

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sal *Salary) error
	FindAll(ctx context.Context) ([]Salary, error)
	FindByID(ctx context.Context, id int64) (*Salary, error)
	Update(ctx context.Context, sal *Salary) error
	Delete(ctx context.Context, id int64) error

	FindByEmployee(ctx context.Context, employeeID int64) ([]Salary, error)
	FindByDepartment(ctx context.Context, departmentID int64) ([]Salary, error)
	FindByAmountBetween(ctx context.Context, min, max float64) ([]Salary, error)
	FindByPaymentDateBetween(ctx context.Context, from, to time.Time) ([]Salary, error)
	FindWithBonus(ctx context.Context) ([]Salary, error)
	FindWithoutBonus(ctx context.Context) ([]Salary, error)
	TopByAmount(ctx context.Context, limit int) ([]Salary, error)
	TopByBonus(ctx context.Context, limit int) ([]Salary, error)

	MinAmount(ctx context.Context) (*float64, error)
	MaxAmount(ctx context.Context) (*float64, error)
	MaxAmountByEmployee(ctx context.Context, employeeID int64) (*float64, error)
	MaxAmountByDepartment(ctx context.Context, departmentID int64) (*float64, error)
	AvgAmountByEmployee(ctx context.Context, employeeID int64) (*float64, error)
	MonthlyStats(ctx context.Context, year int) ([]MonthlyStat, error)
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
	return r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Department")
}

func (r *repository) Create(ctx context.Context, sal *Salary) error {
	return r.db.WithContext(ctx).Create(sal).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Salary, error) {
	var sals []Salary
	err := r.scoped(ctx).Order("id").Find(&sals).Error
	return sals, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Salary, error) {
	var sal Salary
	err := r.scoped(ctx).First(&sal, "salaries.id = ?", id).Error
	return &sal, err
}

func (r *repository) Update(ctx context.Context, sal *Salary) error {
	return r.db.WithContext(ctx).Save(sal).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Salary{}, "id = ?", id).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID int64) ([]Salary, error) {
	var sals []Salary
	err := r.scoped(ctx).
		Where("employee_id = ?", employeeID).
		Order("payment_date").
		Find(&sals).Error
	return sals, err
}

func (r *repository) FindByDepartment(ctx context.Context, departmentID int64) ([]Salary, error) {
	var sals []Salary
	err := r.scoped(ctx).
		Joins("JOIN employees ON employees.id = salaries.employee_id").
		Where("employees.department_id = ?", departmentID).
		Order("salaries.payment_date DESC").
		Find(&sals).Error
	return sals, err
}

func (r *repository) FindByAmountBetween(ctx context.Context, min, max float64) ([]Salary, error) {
	var sals []Salary
	err := r.scoped(ctx).
		Where("amount BETWEEN ? AND ?", min, max).
		Order("id").
		Find(&sals).Error
	return sals, err
}

func (r *repository) FindByPaymentDateBetween(ctx context.Context, from, to time.Time) ([]Salary, error) {
	var sals []Salary
	err := r.scoped(ctx).
		Where("payment_date BETWEEN ? AND ?", from, to).
		Order("payment_date").
		Find(&sals).Error
	return sals, err
}

func (r *repository) FindWithBonus(ctx context.Context) ([]Salary, error) {
	var sals []Salary
	err := r.scoped(ctx).
		Where("bonus IS NOT NULL AND bonus > 0").
		Order("id").
		Find(&sals).Error
	return sals, err
}

func (r *repository) FindWithoutBonus(ctx context.Context) ([]Salary, error) {
	var sals []Salary
	err := r.scoped(ctx).
		Where("bonus IS NULL OR bonus = 0").
		Order("id").
		Find(&sals).Error
	return sals, err
}

func (r *repository) TopByAmount(ctx context.Context, limit int) ([]Salary, error) {
	var sals []Salary
	err := r.scoped(ctx).
		Order("amount DESC").
		Limit(limit).
		Find(&sals).Error
	return sals, err
}

func (r *repository) TopByBonus(ctx context.Context, limit int) ([]Salary, error) {
	var sals []Salary
	err := r.scoped(ctx).
		Where("bonus IS NOT NULL").
		Order("bonus DESC").
		Limit(limit).
		Find(&sals).Error
	return sals, err
}

func (r *repository) MinAmount(ctx context.Context) (*float64, error) {
	return r.aggregate(ctx, "MIN(amount)", nil)
}

func (r *repository) MaxAmount(ctx context.Context) (*float64, error) {
	return r.aggregate(ctx, "MAX(amount)", nil)
}

func (r *repository) MaxAmountByEmployee(ctx context.Context, employeeID int64) (*float64, error) {
	return r.aggregate(ctx, "MAX(amount)", func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	})
}

func (r *repository) MaxAmountByDepartment(ctx context.Context, departmentID int64) (*float64, error) {
	return r.aggregate(ctx, "MAX(salaries.amount)", func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN employees ON employees.id = salaries.employee_id").
			Where("employees.department_id = ?", departmentID)
	})
}

func (r *repository) AvgAmountByEmployee(ctx context.Context, employeeID int64) (*float64, error) {
	return r.aggregate(ctx, "AVG(amount)", func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	})
}

// aggregate runs a single-value aggregate over the salaries table. Zero
// matching rows come back as nil, not as an error.
func (r *repository) aggregate(ctx context.Context, expr string, scope func(*gorm.DB) *gorm.DB) (*float64, error) {
	q := r.db.WithContext(ctx).Model(&Salary{}).Select(expr)
	if scope != nil {
		q = scope(q)
	}

	var value sql.NullFloat64
	if err := q.Scan(&value).Error; err != nil {
		return nil, err
	}
	if !value.Valid {
		return nil, nil
	}
	return &value.Float64, nil
}

func (r *repository) MonthlyStats(ctx context.Context, year int) ([]MonthlyStat, error) {
	var stats []MonthlyStat
	err := r.db.WithContext(ctx).
		Table("salaries").
		Select(
			"EXTRACT(MONTH FROM payment_date)::int AS month, "+
				"COUNT(*) AS count, "+
				"COALESCE(SUM(amount), 0) AS total, "+
				"COALESCE(AVG(amount), 0) AS average",
		).
		Where("EXTRACT(YEAR FROM payment_date)::int = ?", year).
		Group("month").
		Order("month").
		Scan(&stats).Error
	return stats, err
}
