package employee

import (
	"strings"
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/department"
	"github.com/Qoxxoraliyev/employee-management/internal/domain"
)

type Employee struct {
	ID           int64         `gorm:"primaryKey;autoIncrement"`
	FirstName    string        `gorm:"column:first_name;not null"`
	LastName     string        `gorm:"column:last_name"`
	Phone        string        `gorm:"column:phone"`
	Gender       domain.Gender `gorm:"column:gender"`
	BirthDate    *time.Time    `gorm:"column:birth_date;type:date"`
	HireDate     *time.Time    `gorm:"column:hire_date;type:date"`
	Position     string        `gorm:"column:position"`
	DepartmentID int64         `gorm:"column:department_id;not null"`
	Department   *department.Department
	ImagePath    string        `gorm:"column:image_path"`
	Status       domain.Status `gorm:"column:status"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name, tolerating a missing last name.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// DepartmentName returns the preloaded department name, or "" when the
// relation was not loaded.
func (e *Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return e.Department.Name
}
