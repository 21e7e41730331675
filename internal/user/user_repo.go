package user

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error

	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByUsernameContains(ctx context.Context, term string) ([]User, error)
	FindByRoleName(ctx context.Context, roleName string) ([]User, error)
	ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int64, error)

	FindRoleByName(ctx context.Context, name string) (*Role, error)
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

func (r *repository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Role")
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.scoped(ctx).Order("id").Find(&users).Error
	return users, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.scoped(ctx).First(&u, "users.id = ?", id).Error
	return &u, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.scoped(ctx).First(&u, "username = ?", username).Error
	return &u, err
}

func (r *repository) FindByUsernameContains(ctx context.Context, term string) ([]User, error) {
	var users []User
	err := r.scoped(ctx).
		Where("username ILIKE ?", "%"+term+"%").
		Order("id").
		Find(&users).Error
	return users, err
}

func (r *repository) FindByRoleName(ctx context.Context, roleName string) ([]User, error) {
	var users []User
	err := r.scoped(ctx).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("LOWER(roles.name) = LOWER(?)", roleName).
		Order("users.id").
		Find(&users).Error
	return users, err
}

func (r *repository) ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Count(&count).Error
	return count, err
}

func (r *repository) FindRoleByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	err := r.db.WithContext(ctx).
		First(&role, "LOWER(name) = LOWER(?)", name).Error
	return &role, err
}
