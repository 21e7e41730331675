package document

import "time"

type EmployeeDocument struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	EmployeeID   int64  `gorm:"column:employee_id;not null"`
	FileName     string `gorm:"column:file_name;not null"`
	FileType     string `gorm:"column:file_type"`
	FileCategory string `gorm:"column:file_category"`
	FilePath     string `gorm:"column:file_path;not null"`
	UploadedAt   time.Time
}

func (EmployeeDocument) TableName() string { return "employee_documents" }
