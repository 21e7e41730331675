package document_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Qoxxoraliyev/employee-management/internal/document"
	documenterrors "github.com/Qoxxoraliyev/employee-management/internal/document/errors"
	"github.com/Qoxxoraliyev/employee-management/internal/employee"
	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDocRepo struct {
	document.Repository

	create                    func(ctx context.Context, doc *document.EmployeeDocument) error
	findByID                  func(ctx context.Context, id int64) (*document.EmployeeDocument, error)
	findByEmployee            func(ctx context.Context, employeeID int64) ([]document.EmployeeDocument, error)
	findByEmployeeAndCategory func(ctx context.Context, employeeID int64, category string) ([]document.EmployeeDocument, error)
	delete                    func(ctx context.Context, id int64) error
}

func (f *fakeDocRepo) Create(ctx context.Context, doc *document.EmployeeDocument) error {
	return f.create(ctx, doc)
}
func (f *fakeDocRepo) FindByID(ctx context.Context, id int64) (*document.EmployeeDocument, error) {
	return f.findByID(ctx, id)
}
func (f *fakeDocRepo) FindByEmployee(ctx context.Context, employeeID int64) ([]document.EmployeeDocument, error) {
	return f.findByEmployee(ctx, employeeID)
}
func (f *fakeDocRepo) FindByEmployeeAndCategory(ctx context.Context, employeeID int64, category string) ([]document.EmployeeDocument, error) {
	return f.findByEmployeeAndCategory(ctx, employeeID, category)
}
func (f *fakeDocRepo) Delete(ctx context.Context, id int64) error { return f.delete(ctx, id) }

type fakeEmplRepo struct {
	employee.Repository

	findByID func(ctx context.Context, id int64) (*employee.Employee, error)
}

func (f *fakeEmplRepo) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	return f.findByID(ctx, id)
}

func knownEmployee() *fakeEmplRepo {
	return &fakeEmplRepo{
		findByID: func(ctx context.Context, id int64) (*employee.Employee, error) {
			return &employee.Employee{ID: id, FirstName: "John"}, nil
		},
	}
}

// multipartFile builds a real multipart.FileHeader the way gin would
// hand it to the handler.
func multipartFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func newDocService(t *testing.T, repo *fakeDocRepo, emplRepo *fakeEmplRepo) (document.Service, string) {
	t.Helper()
	dir := t.TempDir()

	svc, err := document.NewService(repo, emplRepo, dir)
	require.NoError(t, err)
	return svc, dir
}

func TestDocumentService_Upload(t *testing.T) {
	t.Run("stores file and row", func(t *testing.T) {
		var stored *document.EmployeeDocument
		repo := &fakeDocRepo{
			create: func(ctx context.Context, doc *document.EmployeeDocument) error {
				doc.ID = 3
				stored = doc
				return nil
			},
		}
		svc, dir := newDocService(t, repo, knownEmployee())

		file := multipartFile(t, "contract.pdf", []byte("%PDF-1.4 fake"))
		resp, err := svc.Upload(context.Background(), 1, "contract", file)
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.Equal(t, "contract.pdf", resp.FileName)

		require.NotNil(t, stored)
		assert.Equal(t, ".pdf", filepath.Ext(stored.FilePath))
		assert.True(t, filepath.IsAbs(stored.FilePath))

		data, err := os.ReadFile(stored.FilePath)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 fake"), data)
		assert.Equal(t, dir, filepath.Dir(stored.FilePath))
	})

	t.Run("nil file", func(t *testing.T) {
		svc, _ := newDocService(t, &fakeDocRepo{}, knownEmployee())

		_, err := svc.Upload(context.Background(), 1, "contract", nil)
		assert.ErrorIs(t, err, documenterrors.ErrFileRequired)
	})

	t.Run("oversized file", func(t *testing.T) {
		svc, _ := newDocService(t, &fakeDocRepo{}, knownEmployee())

		file := multipartFile(t, "big.bin", []byte("x"))
		file.Size = 11 << 20
		_, err := svc.Upload(context.Background(), 1, "contract", file)
		assert.ErrorIs(t, err, documenterrors.ErrFileTooLarge)
	})

	t.Run("unknown employee", func(t *testing.T) {
		emplRepo := &fakeEmplRepo{
			findByID: func(ctx context.Context, id int64) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc, _ := newDocService(t, &fakeDocRepo{}, emplRepo)

		file := multipartFile(t, "contract.pdf", []byte("data"))
		_, err := svc.Upload(context.Background(), 99, "contract", file)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("failed insert removes the orphaned file", func(t *testing.T) {
		repo := &fakeDocRepo{
			create: func(ctx context.Context, doc *document.EmployeeDocument) error {
				return assert.AnError
			},
		}
		svc, dir := newDocService(t, repo, knownEmployee())

		file := multipartFile(t, "contract.pdf", []byte("data"))
		_, err := svc.Upload(context.Background(), 1, "contract", file)
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestDocumentService_Download(t *testing.T) {
	t.Run("missing row", func(t *testing.T) {
		repo := &fakeDocRepo{
			findByID: func(ctx context.Context, id int64) (*document.EmployeeDocument, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc, _ := newDocService(t, repo, knownEmployee())

		_, _, err := svc.Download(context.Background(), 5)
		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
	})

	t.Run("row without file on disk", func(t *testing.T) {
		repo := &fakeDocRepo{
			findByID: func(ctx context.Context, id int64) (*document.EmployeeDocument, error) {
				return &document.EmployeeDocument{ID: id, FileName: "contract.pdf", FilePath: "/uploads/gone.pdf"}, nil
			},
		}
		svc, _ := newDocService(t, repo, knownEmployee())

		_, _, err := svc.Download(context.Background(), 5)
		assert.ErrorIs(t, err, documenterrors.ErrFileMissing)
	})

	t.Run("returns original name", func(t *testing.T) {
		var svcDir string
		repo := &fakeDocRepo{
			findByID: func(ctx context.Context, id int64) (*document.EmployeeDocument, error) {
				return &document.EmployeeDocument{ID: id, FileName: "contract.pdf", FilePath: filepath.Join(svcDir, "stored.pdf")}, nil
			},
		}
		svc, dir := newDocService(t, repo, knownEmployee())
		svcDir = dir

		path := filepath.Join(dir, "stored.pdf")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

		gotPath, name, err := svc.Download(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, path, gotPath)
		assert.Equal(t, "contract.pdf", name)
	})
}

func TestDocumentService_ListByEmployee_FiltersByCategory(t *testing.T) {
	var categoryUsed string
	repo := &fakeDocRepo{
		findByEmployee: func(ctx context.Context, employeeID int64) ([]document.EmployeeDocument, error) {
			categoryUsed = ""
			return nil, nil
		},
		findByEmployeeAndCategory: func(ctx context.Context, employeeID int64, category string) ([]document.EmployeeDocument, error) {
			categoryUsed = category
			return nil, nil
		},
	}
	svc, _ := newDocService(t, repo, knownEmployee())

	_, err := svc.ListByEmployee(context.Background(), 1, "contract")
	require.NoError(t, err)
	assert.Equal(t, "contract", categoryUsed)

	_, err = svc.ListByEmployee(context.Background(), 1, "  ")
	require.NoError(t, err)
	assert.Equal(t, "", categoryUsed)
}

func TestDocumentService_Delete_RemovesRowAndFile(t *testing.T) {
	deleted := false
	var svcDir string
	repo := &fakeDocRepo{
		findByID: func(ctx context.Context, id int64) (*document.EmployeeDocument, error) {
			return &document.EmployeeDocument{ID: id, FilePath: filepath.Join(svcDir, "stored.pdf")}, nil
		},
		delete: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	svc, dir := newDocService(t, repo, knownEmployee())
	svcDir = dir

	path := filepath.Join(dir, "stored.pdf")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	require.NoError(t, svc.Delete(context.Background(), 4))
	assert.True(t, deleted)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
