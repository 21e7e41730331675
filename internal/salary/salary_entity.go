package salary

import (
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/employee"
)

type Salary struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	EmployeeID  int64   `gorm:"column:employee_id;not null"`
	Employee    *employee.Employee
	Amount      float64   `gorm:"column:amount;not null"`
	Currency    string    `gorm:"column:currency;not null"`
	PaymentDate time.Time `gorm:"column:payment_date;type:date;not null"`
	Bonus       *float64  `gorm:"column:bonus"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Total is the payment amount plus bonus when one is present.
func (s *Salary) Total() float64 {
	if s.Bonus == nil {
		return s.Amount
	}
	return s.Amount + *s.Bonus
}

// EmployeeName returns the preloaded employee's full name, or "" when the
// relation was not loaded.
func (s *Salary) EmployeeName() string {
	if s.Employee == nil {
		return ""
	}
	return s.Employee.FullName()
}
