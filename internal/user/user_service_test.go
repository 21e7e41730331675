package user_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Qoxxoraliyev/employee-management/internal/user"
	usererrors "github.com/Qoxxoraliyev/employee-management/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	user.Repository

	create           func(ctx context.Context, u *user.User) error
	findAll          func(ctx context.Context) ([]user.User, error)
	findByID         func(ctx context.Context, id int64) (*user.User, error)
	update           func(ctx context.Context, u *user.User) error
	existsByUsername func(ctx context.Context, username string, excludeID int64) (bool, error)
	existsByEmail    func(ctx context.Context, email string, excludeID int64) (bool, error)
	findRoleByName   func(ctx context.Context, name string) (*user.Role, error)
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	return f.create(ctx, u)
}
func (f *fakeUserRepo) FindAll(ctx context.Context) ([]user.User, error) { return f.findAll(ctx) }
func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	return f.findByID(ctx, id)
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return f.update(ctx, u) }
func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	return f.existsByUsername(ctx, username, excludeID)
}
func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return f.existsByEmail(ctx, email, excludeID)
}
func (f *fakeUserRepo) FindRoleByName(ctx context.Context, name string) (*user.Role, error) {
	return f.findRoleByName(ctx, name)
}

func nothingTaken(f *fakeUserRepo) *fakeUserRepo {
	f.existsByUsername = func(ctx context.Context, username string, excludeID int64) (bool, error) {
		return false, nil
	}
	f.existsByEmail = func(ctx context.Context, email string, excludeID int64) (bool, error) {
		return false, nil
	}
	f.findRoleByName = func(ctx context.Context, name string) (*user.Role, error) {
		return &user.Role{ID: 2, Name: "HR"}, nil
	}
	return f
}

func newUserService(t *testing.T, repo *fakeUserRepo) (user.Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return user.NewService(db, repo), mock
}

func TestUserService_Create(t *testing.T) {
	req := user.CreateUserRequest{
		Username: " jdoe ",
		Email:    "jdoe@example.com",
		Password: "s3cret99",
		Role:     "HR",
	}

	t.Run("success hashes the password", func(t *testing.T) {
		var stored *user.User
		repo := nothingTaken(&fakeUserRepo{
			create: func(ctx context.Context, u *user.User) error {
				u.ID = 4
				stored = u
				return nil
			},
		})
		svc, mock := newUserService(t, repo)

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.ID)
		assert.Equal(t, "jdoe", resp.Username)
		assert.Equal(t, "HR", resp.Role)

		require.NotNil(t, stored)
		assert.NotEqual(t, req.Password, stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(req.Password)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := nothingTaken(&fakeUserRepo{})
		repo.existsByUsername = func(ctx context.Context, username string, excludeID int64) (bool, error) {
			return true, nil
		}
		svc, mock := newUserService(t, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, usererrors.ErrUsernameTaken)
	})

	t.Run("unknown role", func(t *testing.T) {
		repo := nothingTaken(&fakeUserRepo{})
		repo.findRoleByName = func(ctx context.Context, name string) (*user.Role, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc, mock := newUserService(t, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, usererrors.ErrRoleNotFound)
	})
}

func TestUserService_Update_BlankPasswordKeepsCurrent(t *testing.T) {
	currentHash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	var stored *user.User
	repo := nothingTaken(&fakeUserRepo{
		findByID: func(ctx context.Context, id int64) (*user.User, error) {
			return &user.User{ID: id, Username: "jdoe", Email: "jdoe@example.com", Password: string(currentHash), RoleID: 2}, nil
		},
		update: func(ctx context.Context, u *user.User) error {
			stored = u
			return nil
		},
	})
	svc, mock := newUserService(t, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err = svc.Update(context.Background(), 4, user.UpdateUserRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Role:     "HR",
	})
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, string(currentHash), stored.Password)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Create_UnknownStatus(t *testing.T) {
	svc, _ := newUserService(t, &fakeUserRepo{})

	req := user.CreateUserRequest{Username: "jdoe", Email: "j@e.com", Password: "s3cret99", Role: "HR", Status: "BANNED"}
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, usererrors.ErrInvalidStatus)
}

func TestUserService_SearchByUsername_BlankListsAll(t *testing.T) {
	called := false
	repo := &fakeUserRepo{
		findAll: func(ctx context.Context) ([]user.User, error) {
			called = true
			return []user.User{{ID: 1, Username: "jdoe"}}, nil
		},
	}
	svc, _ := newUserService(t, repo)

	resp, err := svc.SearchByUsername(context.Background(), "  ")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Len(t, resp, 1)
}
