package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/auth"
	"backoffice/internal/domain"
	"backoffice/internal/repository"

	"go.uber.org/zap"
)

// EnsureDefaultAdmin creates the configured admin on first start. An empty
// username disables it.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}
	if err := s.store.SetDefaultAdmin(ctx, username, hash); err != nil {
		return err
	}
	s.log.Info("default admin ensured", zap.String("username", username))
	return nil
}

// AuthenticateAdmin returns ErrInvalidCredentials for an unknown user or a
// wrong password alike.
func (s *Service) AuthenticateAdmin(ctx context.Context, username, password string) (domain.AdminUser, error) {
	admin, hash, err := s.store.GetAdminCredentials(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.AdminUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.AdminUser{}, err
	}
	ok, err := auth.VerifyPassword(password, hash)
	if err != nil {
		s.log.Warn("stored admin hash unreadable", zap.Int64("admin_id", admin.AdminID), zap.Error(err))
		return domain.AdminUser{}, ErrInvalidCredentials
	}
	if !ok {
		return domain.AdminUser{}, ErrInvalidCredentials
	}
	return admin, nil
}

func (s *Service) ListAdmins(ctx context.Context) ([]domain.AdminUser, error) {
	return s.store.ListAdmins(ctx)
}

func (s *Service) GetAdminByID(ctx context.Context, adminID int64) (domain.AdminUser, error) {
	return s.store.GetAdminByID(ctx, adminID)
}

func (s *Service) CreateAdmin(ctx context.Context, username, password string, roleID int64) (domain.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.AdminUser{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.store.CreateAdmin(ctx, username, hash, roleID)
}

func (s *Service) UpdateAdminPassword(ctx context.Context, adminID int64, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.store.UpdateAdminPassword(ctx, adminID, hash)
}

func (s *Service) UpdateAdminRole(ctx context.Context, adminID, roleID int64) error {
	return s.store.UpdateAdminRole(ctx, adminID, roleID)
}

func (s *Service) DeleteAdmin(ctx context.Context, adminID int64) error {
	return s.store.DeleteAdmin(ctx, adminID)
}

func (s *Service) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.store.ListRoles(ctx)
}

func (s *Service) GetRole(ctx context.Context, id int64) (domain.Role, error) {
	return s.store.GetRole(ctx, id)
}

func (s *Service) CreateRole(ctx context.Context, input domain.Role) (domain.Role, error) {
	input, err := normalizeRole(input)
	if err != nil {
		return domain.Role{}, err
	}
	return s.store.CreateRole(ctx, input)
}

func (s *Service) UpdateRole(ctx context.Context, id int64, input domain.Role) (domain.Role, error) {
	input, err := normalizeRole(input)
	if err != nil {
		return domain.Role{}, err
	}
	return s.store.UpdateRole(ctx, id, input)
}

func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	return s.store.DeleteRole(ctx, id)
}

func normalizeRole(input domain.Role) (domain.Role, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return domain.Role{}, err
	}
	input.Name = name
	permissions := make([]string, 0, len(input.Permissions))
	seen := make(map[string]struct{}, len(input.Permissions))
	for _, permission := range input.Permissions {
		permission = strings.TrimSpace(permission)
		if permission == "" {
			continue
		}
		if _, ok := seen[permission]; ok {
			continue
		}
		seen[permission] = struct{}{}
		permissions = append(permissions, permission)
	}
	input.Permissions = permissions
	return input, nil
}
