package auth

import (
	"sync"
	"time"
)

type mockRepository struct {
	usersByEmail map[string]*User
	roles        map[string]bool
	mu           sync.RWMutex
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		usersByEmail: make(map[string]*User),
		roles: map[string]bool{
			RoleAdmin:     true,
			RoleRecruiter: true,
			RoleCandidate: true,
		},
	}
}

func (r *mockRepository) CreateUser(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.usersByEmail[user.Email]; exists {
		return ErrUserExists
	}

	// Clone the user to prevent external modifications
	newUser := &User{
		ID:           user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		PasswordHash: user.PasswordHash,
	}

	r.usersByEmail[user.Email] = newUser
	return nil
}

func (r *mockRepository) GetUserByEmail(email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.usersByEmail[email]
	if !exists {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *mockRepository) GetUserByID(id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user := r.findByID(id)
	if user == nil {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *mockRepository) DeleteUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for email, u := range r.usersByEmail {
		if u.ID == userID {
			delete(r.usersByEmail, email)
			return nil
		}
	}
	return ErrUserNotFound
}

func (r *mockRepository) EnsureRole(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.roles[name] = true
	return nil
}

func (r *mockRepository) AssignRole(userID string, roleName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.roles[roleName] {
		return ErrRoleNotFound
	}
	user := r.findByID(userID)
	if user == nil {
		return ErrUserNotFound
	}
	user.Roles = append(user.Roles, Role{Name: roleName})
	return nil
}

func (r *mockRepository) UpdateLoginAttempts(userID string, failed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByID(userID)
	if user == nil {
		return ErrUserNotFound
	}

	if failed {
		user.FailedLoginCount++
	} else {
		user.FailedLoginCount = 0
	}
	return nil
}

func (r *mockRepository) LockAccount(userID string, duration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByID(userID)
	if user == nil {
		return ErrUserNotFound
	}

	lockedUntil := time.Now().Add(duration)
	user.LockedUntil = &lockedUntil
	return nil
}

func (r *mockRepository) UnlockAccount(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByID(userID)
	if user == nil {
		return ErrUserNotFound
	}

	user.LockedUntil = nil
	user.FailedLoginCount = 0
	return nil
}

// findByID must be called with the lock held.
func (r *mockRepository) findByID(userID string) *User {
	for _, u := range r.usersByEmail {
		if u.ID == userID {
			return u
		}
	}
	return nil
}
