package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Qoxxoraliyev/employee-management/internal/domain"
	usererrors "github.com/Qoxxoraliyev/employee-management/internal/user/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id int64) (UserResponse, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id int64) error

	GetByUsername(ctx context.Context, username string) (UserResponse, error)
	SearchByUsername(ctx context.Context, term string) ([]UserResponse, error)
	GetByRole(ctx context.Context, roleName string) ([]UserResponse, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested", zap.String("username", req.Username))

	status, err := parseStatusOrDefault(req.Status)
	if err != nil {
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.checkUniqueness(ctx, qtx, req.Username, req.Email, 0); err != nil {
		return UserResponse{}, err
	}

	role, err := qtx.FindRoleByName(ctx, req.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrRoleNotFound
		}
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		Username:   strings.TrimSpace(req.Username),
		Email:      strings.TrimSpace(req.Email),
		Password:   string(hashed),
		RoleID:     role.ID,
		Role:       role,
		EmployeeID: req.EmployeeID,
		Status:     status,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("create user success",
		zap.Int64("user_id", u.ID),
		zap.String("username", u.Username),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateUserRequest) (UserResponse, error) {
	s.logger.Debug("update user requested", zap.Int64("user_id", id))

	status, err := parseStatusOrDefault(req.Status)
	if err != nil {
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := s.checkUniqueness(ctx, qtx, req.Username, req.Email, id); err != nil {
		return UserResponse{}, err
	}

	role, err := qtx.FindRoleByName(ctx, req.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrRoleNotFound
		}
		return UserResponse{}, err
	}

	u.Username = strings.TrimSpace(req.Username)
	u.Email = strings.TrimSpace(req.Email)
	u.RoleID = role.ID
	u.Role = role
	u.EmployeeID = req.EmployeeID
	u.Status = status

	// Blank password means keep the current one.
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("hash password failed", zap.Error(err))
			return UserResponse{}, err
		}
		u.Password = string(hashed)
	}

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("update user success", zap.Int64("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	s.logger.Debug("delete user requested", zap.Int64("user_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete user begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete user failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete user commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete user success", zap.Int64("user_id", id))
	return nil
}

func (s *service) GetByUsername(ctx context.Context, username string) (UserResponse, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) SearchByUsername(ctx context.Context, term string) ([]UserResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.GetAll(ctx)
	}
	users, err := s.repo.FindByUsernameContains(ctx, term)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByRole(ctx context.Context, roleName string) ([]UserResponse, error) {
	users, err := s.repo.FindByRoleName(ctx, roleName)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(users), nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return count, nil
}

func (s *service) checkUniqueness(ctx context.Context, repo Repository, username, email string, excludeID int64) error {
	taken, err := repo.ExistsByUsername(ctx, strings.TrimSpace(username), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return usererrors.ErrUsernameTaken
	}

	taken, err = repo.ExistsByEmail(ctx, strings.TrimSpace(email), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return usererrors.ErrEmailTaken
	}
	return nil
}

func parseStatusOrDefault(raw string) (domain.Status, error) {
	if raw == "" {
		return domain.StatusActive, nil
	}
	status, ok := domain.ParseStatus(raw)
	if !ok {
		return "", usererrors.ErrInvalidStatus
	}
	return status, nil
}
