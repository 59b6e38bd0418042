package auth

import (
	"time"
)

// Role names known to the system. Every registration currently receives
// RoleAdmin; see the seeding notes in bootstrap.go.
const (
	RoleAdmin     = "Admin"
	RoleRecruiter = "Recruiter"
	RoleCandidate = "Candidate"
)

// DefaultRegistrationRole is assigned to every self-registered account.
const DefaultRegistrationRole = RoleAdmin

type User struct {
	ID               string `gorm:"primaryKey"`
	Email            string `gorm:"uniqueIndex;not null"`
	FullName         string `gorm:"not null"`
	PasswordHash     string `gorm:"not null"`
	FailedLoginCount int    `gorm:"default:0"`
	LockedUntil      *time.Time
	Roles            []Role `gorm:"many2many:user_roles"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (User) TableName() string {
	return "users"
}

// IsLockedOut reports whether the account's lockout window is still active.
func (u *User) IsLockedOut(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// RoleNames returns the names of the user's assigned roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

func (Role) TableName() string {
	return "roles"
}
