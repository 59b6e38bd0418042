package auth

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dmartinez/todo-api/internal/config"
)

// Bootstrap seeds the role catalogue and the initial admin account. It runs
// on startup and is idempotent.
//
// Note: self-registration currently also grants RoleAdmin (see
// DefaultRegistrationRole). That mirrors the existing product behaviour and
// is tracked as an open access-control question rather than changed here.
func Bootstrap(repo Repository, svc *Service, cfg *config.AuthConfig, log *zap.Logger) error {
	for _, role := range []string{RoleAdmin, RoleRecruiter, RoleCandidate} {
		if err := repo.EnsureRole(role); err != nil {
			return fmt.Errorf("failed to ensure role %s: %w", role, err)
		}
	}

	admin := cfg.InitialAdmin
	if admin.Email == "" {
		return nil
	}

	if _, err := repo.GetUserByEmail(admin.Email); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	log.Info("seeding initial admin account", zap.String("email", admin.Email))
	if err := svc.RegisterUser(admin.Email, admin.FullName, admin.Password); err != nil {
		return fmt.Errorf("failed to seed initial admin: %w", err)
	}
	return nil
}
