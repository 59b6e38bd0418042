package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_HashPassword(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "Testpass123!",
			wantErr:  false,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  false, // bcrypt handles empty passwords
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := svc.HashPassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			valid := svc.CheckPasswordHash(tt.password, hash)
			assert.True(t, valid)
		})
	}
}

func TestService_GenerateToken(t *testing.T) {
	svc := newTestService(t)

	user := &User{
		ID:       "11111111-2222-3333-4444-555555555555",
		Email:    "test@example.com",
		FullName: "Test User",
		Roles:    []Role{{Name: RoleAdmin}},
	}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID())
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.FullName, claims.FullName)
	assert.Equal(t, []string{RoleAdmin}, claims.Roles)
}

func TestService_ValidateToken(t *testing.T) {
	svc := newTestService(t)
	user := &User{ID: "user-1", Email: "test@example.com", FullName: "Test User"}

	tests := []struct {
		name       string
		setupToken func() string
		wantErr    bool
		wantUserID string
	}{
		{
			name: "valid token",
			setupToken: func() string {
				token, _ := svc.GenerateToken(user)
				return token
			},
			wantErr:    false,
			wantUserID: "user-1",
		},
		{
			name: "expired token",
			setupToken: func() string {
				expiredConfig := newTestConfig()
				expiredConfig.TokenExpiration = -time.Hour
				expiredSvc := NewService(
					expiredConfig,
					newTestLogger(t),
					newMockRepository(),
				)
				token, _ := expiredSvc.GenerateToken(user)
				return token
			},
			wantErr: true,
		},
		{
			name: "invalid token",
			setupToken: func() string {
				return "invalid.token.here"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.setupToken()
			claims, err := svc.ValidateToken(token)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUserID, claims.UserID())
		})
	}
}

func TestService_RegisterUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		fullName string
		password string
		setup    func(*Service)
		wantErr  error
	}{
		{
			name:     "successful registration",
			email:    "test@example.com",
			fullName: "Test User",
			password: "Testpass123!",
			wantErr:  nil,
		},
		{
			name:     "duplicate email",
			email:    "existing@example.com",
			fullName: "New User",
			password: "Testpass123!",
			setup: func(s *Service) {
				_ = s.RegisterUser("existing@example.com", "Existing User", "Testpass123!")
			},
			wantErr: ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			err := svc.RegisterUser(tt.email, tt.fullName, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)

			user, err := svc.repository.GetUserByEmail(tt.email)
			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tt.fullName, user.FullName)
			assert.True(t, svc.CheckPasswordHash(tt.password, user.PasswordHash))
			assert.Contains(t, user.RoleNames(), DefaultRegistrationRole)
		})
	}
}

type failingRoleRepository struct {
	Repository
}

func (f *failingRoleRepository) AssignRole(string, string) error {
	return errors.New("role store unavailable")
}

func TestService_RegisterUser_RollbackOnRoleFailure(t *testing.T) {
	repo := &failingRoleRepository{Repository: newMockRepository()}
	svc := newTestServiceWithRepo(t, repo)

	err := svc.RegisterUser("rollback@example.com", "Rollback User", "Testpass123!")
	require.Error(t, err)

	// The half-created account must not survive the failed role assignment.
	_, err = repo.GetUserByEmail("rollback@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_ValidateLogin(t *testing.T) {
	const (
		email    = "login@example.com"
		password = "Testpass123!"
	)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid credentials",
			email:    email,
			password: password,
		},
		{
			name:     "unknown user",
			email:    "nobody@example.com",
			password: password,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    email,
			password: "Wrongpass123!",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			require.NoError(t, svc.RegisterUser(email, "Login User", password))

			token, err := svc.ValidateLogin(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := svc.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, email, claims.Email)
		})
	}
}

func TestService_ValidateLogin_Lockout(t *testing.T) {
	const (
		email    = "lockout@example.com"
		password = "Testpass123!"
	)

	svc := newTestService(t)
	require.NoError(t, svc.RegisterUser(email, "Lockout User", password))

	// Failures below the threshold keep returning the uniform credential error.
	for i := 0; i < svc.config.MaxLoginAttempts; i++ {
		_, err := svc.ValidateLogin(email, "Wrongpass123!")
		assert.ErrorIs(t, err, ErrInvalidCredentials, "attempt %d", i+1)
	}

	// The account is now locked; even the correct password is rejected.
	_, err := svc.ValidateLogin(email, password)
	assert.ErrorIs(t, err, ErrAccountLocked)

	user, err := svc.repository.GetUserByEmail(email)
	require.NoError(t, err)
	require.NotNil(t, user.LockedUntil)
	assert.True(t, user.LockedUntil.After(time.Now()))
}

func TestService_ValidateLogin_LockoutExpiry(t *testing.T) {
	const (
		email    = "expired-lock@example.com"
		password = "Testpass123!"
	)

	svc := newTestService(t)
	require.NoError(t, svc.RegisterUser(email, "Expired Lock User", password))

	user, err := svc.repository.GetUserByEmail(email)
	require.NoError(t, err)

	// Simulate a lock whose window has already elapsed.
	require.NoError(t, svc.repository.LockAccount(user.ID, -time.Minute))

	token, err := svc.ValidateLogin(email, password)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	user, err = svc.repository.GetUserByEmail(email)
	require.NoError(t, err)
	assert.Nil(t, user.LockedUntil)
	assert.Zero(t, user.FailedLoginCount)
}

func TestService_ValidateLogin_ResetsFailureCount(t *testing.T) {
	const (
		email    = "reset@example.com"
		password = "Testpass123!"
	)

	svc := newTestService(t)
	require.NoError(t, svc.RegisterUser(email, "Reset User", password))

	_, err := svc.ValidateLogin(email, "Wrongpass123!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.ValidateLogin(email, password)
	require.NoError(t, err)

	user, err := svc.repository.GetUserByEmail(email)
	require.NoError(t, err)
	assert.Zero(t, user.FailedLoginCount)
}
