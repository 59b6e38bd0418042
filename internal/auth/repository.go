package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked")
)

type Repository interface {
	CreateUser(user *User) error
	GetUserByEmail(email string) (*User, error)
	GetUserByID(id string) (*User, error)
	DeleteUser(userID string) error
	EnsureRole(name string) error
	AssignRole(userID string, roleName string) error
	UpdateLoginAttempts(userID string, failed bool) error
	LockAccount(userID string, duration time.Duration) error
	UnlockAccount(userID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(user *User) error {
	return r.db.Create(user).Error
}

func (r *repository) GetUserByEmail(email string) (*User, error) {
	var user User
	if err := r.db.Preload("Roles").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetUserByID(id string) (*User, error) {
	var user User
	if err := r.db.Preload("Roles").Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) DeleteUser(userID string) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&userRole{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", userID).Delete(&User{}).Error
}

func (r *repository) EnsureRole(name string) error {
	return r.db.Where(Role{Name: name}).FirstOrCreate(&Role{Name: name}).Error
}

func (r *repository) AssignRole(userID string, roleName string) error {
	var role Role
	if err := r.db.Where("name = ?", roleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}
	return r.db.Create(&userRole{UserID: userID, RoleID: role.ID}).Error
}

func (r *repository) UpdateLoginAttempts(userID string, failed bool) error {
	if failed {
		return r.db.Model(&User{}).Where("id = ?", userID).
			UpdateColumn("failed_login_count", gorm.Expr("failed_login_count + 1")).Error
	}
	return r.db.Model(&User{}).Where("id = ?", userID).
		UpdateColumn("failed_login_count", 0).Error
}

func (r *repository) LockAccount(userID string, duration time.Duration) error {
	until := time.Now().Add(duration)
	return r.db.Model(&User{}).Where("id = ?", userID).
		Update("locked_until", until).Error
}

func (r *repository) UnlockAccount(userID string) error {
	return r.db.Model(&User{}).Where("id = ?", userID).
		Updates(map[string]any{"locked_until": nil, "failed_login_count": 0}).Error
}

// userRole is the join row behind the many2many Roles association.
type userRole struct {
	UserID string `gorm:"primaryKey"`
	RoleID uint   `gorm:"primaryKey"`
}

func (userRole) TableName() string {
	return "user_roles"
}
