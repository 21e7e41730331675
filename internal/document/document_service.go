package document

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	documenterrors "github.com/Qoxxoraliyev/employee-management/internal/document/errors"
	"github.com/Qoxxoraliyev/employee-management/internal/employee"
	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxFileSize = 10 << 20 // 10 MB

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, employeeID int64, category string, file *multipart.FileHeader) (DocumentResponse, error)
	ListByEmployee(ctx context.Context, employeeID int64, category string) ([]DocumentResponse, error)
	Download(ctx context.Context, id int64) (string, string, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo      Repository
	emplRepo  employee.Repository
	uploadDir string
	logger    *zap.Logger
}

// NewService resolves the upload root once; every stored path must stay
// inside it.
func NewService(repo Repository, emplRepo employee.Repository, uploadDir string, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}

	root, err := filepath.Abs(uploadDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}

	return &service{
		repo:      repo,
		emplRepo:  emplRepo,
		uploadDir: root,
		logger:    l,
	}, nil
}

func (s *service) Upload(ctx context.Context, employeeID int64, category string, file *multipart.FileHeader) (DocumentResponse, error) {
	if file == nil {
		return DocumentResponse{}, documenterrors.ErrFileRequired
	}
	if file.Size > maxFileSize {
		return DocumentResponse{}, documenterrors.ErrFileTooLarge
	}

	if _, err := s.emplRepo.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return DocumentResponse{}, err
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	dst, err := s.resolve(storedName)
	if err != nil {
		return DocumentResponse{}, err
	}

	if err := s.saveFile(file, dst); err != nil {
		s.logger.Error("store uploaded file failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	doc := &EmployeeDocument{
		EmployeeID:   employeeID,
		FileName:     filepath.Base(file.Filename),
		FileType:     file.Header.Get("Content-Type"),
		FileCategory: category,
		FilePath:     dst,
		UploadedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		// Undo the orphaned file.
		_ = os.Remove(dst)
		s.logger.Error("persist document failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	s.logger.Info("document uploaded",
		zap.Int64("document_id", doc.ID),
		zap.Int64("employee_id", employeeID),
		zap.String("category", category),
	)
	return mapToResponse(*doc), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID int64, category string) ([]DocumentResponse, error) {
	if _, err := s.emplRepo.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	var (
		docs []EmployeeDocument
		err  error
	)
	if strings.TrimSpace(category) == "" {
		docs, err = s.repo.FindByEmployee(ctx, employeeID)
	} else {
		docs, err = s.repo.FindByEmployeeAndCategory(ctx, employeeID, category)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(docs), nil
}

// Download returns the on-disk path and the original file name.
func (s *service) Download(ctx context.Context, id int64) (string, string, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", documenterrors.ErrDocumentNotFound
		}
		return "", "", err
	}

	path, err := s.resolve(filepath.Base(doc.FilePath))
	if err != nil {
		return "", "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", "", documenterrors.ErrFileMissing
	}

	return path, doc.FileName, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return documenterrors.ErrDocumentNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Removing the file is best effort; the row is already gone.
	if path, err := s.resolve(filepath.Base(doc.FilePath)); err == nil {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("remove stored file failed",
				zap.Int64("document_id", id),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("document deleted", zap.Int64("document_id", id))
	return nil
}

// resolve joins name onto the upload root and rejects any path that
// escapes it.
func (s *service) resolve(name string) (string, error) {
	path := filepath.Join(s.uploadDir, name)
	if !strings.HasPrefix(path, s.uploadDir+string(filepath.Separator)) {
		return "", documenterrors.ErrInvalidFilePath
	}
	return path, nil
}

func (s *service) saveFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
