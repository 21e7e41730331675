package user

import (
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/domain"
)

type Role struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (Role) TableName() string { return "roles" }

type User struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Username   string `gorm:"column:username;uniqueIndex;not null"`
	Email      string `gorm:"column:email;uniqueIndex;not null"`
	Password   string `gorm:"column:password;not null"`
	RoleID     int64  `gorm:"column:role_id;not null"`
	Role       *Role
	EmployeeID *int64        `gorm:"column:employee_id"`
	Status     domain.Status `gorm:"column:status"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (User) TableName() string { return "users" }

// RoleName returns the preloaded role name, or "" when the relation was
// not loaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
