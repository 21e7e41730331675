package document

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, doc *EmployeeDocument) error
	FindByID(ctx context.Context, id int64) (*EmployeeDocument, error)
	FindByEmployee(ctx context.Context, employeeID int64) ([]EmployeeDocument, error)
	FindByEmployeeAndCategory(ctx context.Context, employeeID int64, category string) ([]EmployeeDocument, error)
	Delete(ctx context.Context, id int64) error
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

func (r *repository) Create(ctx context.Context, doc *EmployeeDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*EmployeeDocument, error) {
	var doc EmployeeDocument
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	return &doc, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID int64) ([]EmployeeDocument, error) {
	var docs []EmployeeDocument
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *repository) FindByEmployeeAndCategory(ctx context.Context, employeeID int64, category string) ([]EmployeeDocument, error) {
	var docs []EmployeeDocument
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND file_category = ?", employeeID, category).
		Order("uploaded_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&EmployeeDocument{}, "id = ?", id).Error
}
