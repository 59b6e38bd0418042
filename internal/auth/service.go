package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmartinez/todo-api/internal/config"
)

type Service struct {
	config     *config.AuthConfig
	log        *zap.Logger
	repository Repository
}

type Claims struct {
	Email    string   `json:"email"`
	FullName string   `json:"name"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// UserID returns the caller identity carried in the token subject.
func (c *Claims) UserID() string {
	return c.Subject
}

func NewService(config *config.AuthConfig, log *zap.Logger, repo Repository) *Service {
	return &Service{
		config:     config,
		log:        log,
		repository: repo,
	}
}

func (s *Service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (s *Service) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (s *Service) GenerateToken(user *User) (string, error) {
	expirationTime := time.Now().Add(s.config.TokenExpiration)
	claims := &Claims{
		Email:    user.Email,
		FullName: user.FullName,
		Roles:    user.RoleNames(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// RegisterUser creates the account and assigns the default registration role.
// If the role assignment fails the freshly created user is deleted again so no
// role-less account is left behind.
func (s *Service) RegisterUser(email, fullName, password string) error {
	if _, err := s.repository.GetUserByEmail(email); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return err
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashedPassword,
	}

	if err := s.repository.CreateUser(user); err != nil {
		return err
	}

	if err := s.repository.AssignRole(user.ID, DefaultRegistrationRole); err != nil {
		s.log.Warn("role assignment failed, rolling back user",
			zap.String("email", email),
			zap.Error(err))
		if delErr := s.repository.DeleteUser(user.ID); delErr != nil {
			s.log.Error("failed to roll back user after role assignment failure",
				zap.String("user_id", user.ID),
				zap.Error(delErr))
		}
		return err
	}

	return nil
}

// ValidateLogin checks the credentials and, on success, issues a signed token.
// Unknown users and wrong passwords both surface as ErrInvalidCredentials so
// callers cannot enumerate accounts.
func (s *Service) ValidateLogin(email, password string) (string, error) {
	user, err := s.repository.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_, _ = s.HashPassword("dummy") // Prevent timing attacks
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if user.LockedUntil != nil {
		if user.IsLockedOut(time.Now()) {
			return "", ErrAccountLocked
		}
		// Lock window has elapsed
		if err := s.repository.UnlockAccount(user.ID); err != nil {
			return "", err
		}
		user.LockedUntil = nil
		user.FailedLoginCount = 0
	}

	if !s.CheckPasswordHash(password, user.PasswordHash) {
		if err := s.repository.UpdateLoginAttempts(user.ID, true); err != nil {
			s.log.Error("failed to update login attempts", zap.Error(err))
		}

		if user.FailedLoginCount+1 >= s.config.MaxLoginAttempts {
			if err := s.repository.LockAccount(user.ID, s.config.LockoutDuration); err != nil {
				s.log.Error("failed to lock account", zap.Error(err))
			}
		}

		return "", ErrInvalidCredentials
	}

	// Reset failed login attempts on successful login
	if user.FailedLoginCount > 0 {
		if err := s.repository.UpdateLoginAttempts(user.ID, false); err != nil {
			s.log.Error("failed to reset login attempts", zap.Error(err))
		}
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", err
	}

	return token, nil
}
