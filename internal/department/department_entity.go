package department

import (
	"time"
)

type Department struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"uniqueIndex;not null"`
	ManagerID *int   `gorm:"column:manager_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
