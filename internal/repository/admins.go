package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/domain"

	"github.com/jackc/pgx/v5"
)

const DefaultRoleName = "superadmin"

// SetDefaultAdmin creates the default role and admin when they do not exist
// yet. An existing admin keeps its password.
func (r *Repository) SetDefaultAdmin(ctx context.Context, username, passwordHash string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin default admin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var roleID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO roles (name, permissions)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, DefaultRoleName, []string{"*"}).Scan(&roleID); err != nil {
		return fmt.Errorf("ensure default role: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO admins (username, password_hash, role_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`, strings.TrimSpace(username), passwordHash, roleID); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit default admin tx: %w", err)
	}
	return nil
}

// GetAdminCredentials returns the admin and its stored password hash.
func (r *Repository) GetAdminCredentials(ctx context.Context, username string) (domain.AdminUser, string, error) {
	var (
		admin domain.AdminUser
		hash  string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT a.id, a.username, a.role_id, ro.name, a.created_at, a.password_hash
		FROM admins a
		JOIN roles ro ON ro.id = a.role_id
		WHERE lower(a.username) = lower($1)
	`, strings.TrimSpace(username)).Scan(
		&admin.AdminID,
		&admin.Username,
		&admin.RoleID,
		&admin.RoleName,
		&admin.CreatedAt,
		&hash,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AdminUser{}, "", ErrNotFound
	}
	if err != nil {
		return domain.AdminUser{}, "", fmt.Errorf("admin credentials query: %w", err)
	}
	return admin, hash, nil
}

func (r *Repository) ListAdmins(ctx context.Context) ([]domain.AdminUser, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.username, a.role_id, ro.name, a.created_at
		FROM admins a
		JOIN roles ro ON ro.id = a.role_id
		ORDER BY a.username ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()
	items := make([]domain.AdminUser, 0)
	for rows.Next() {
		var row domain.AdminUser
		if err := rows.Scan(&row.AdminID, &row.Username, &row.RoleID, &row.RoleName, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admins: %w", err)
	}
	return items, nil
}

func (r *Repository) GetAdminByID(ctx context.Context, adminID int64) (domain.AdminUser, error) {
	var admin domain.AdminUser
	err := r.pool.QueryRow(ctx, `
		SELECT a.id, a.username, a.role_id, ro.name, a.created_at
		FROM admins a
		JOIN roles ro ON ro.id = a.role_id
		WHERE a.id = $1
	`, adminID).Scan(&admin.AdminID, &admin.Username, &admin.RoleID, &admin.RoleName, &admin.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AdminUser{}, ErrNotFound
	}
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("get admin %d: %w", adminID, err)
	}
	return admin, nil
}

func (r *Repository) CreateAdmin(ctx context.Context, username, passwordHash string, roleID int64) (domain.AdminUser, error) {
	var created domain.AdminUser
	err := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO admins (username, password_hash, role_id)
			VALUES ($1, $2, $3)
			RETURNING id, username, role_id, created_at
		)
		SELECT i.id, i.username, i.role_id, ro.name, i.created_at
		FROM inserted i
		JOIN roles ro ON ro.id = i.role_id
	`, strings.TrimSpace(username), passwordHash, roleID).Scan(
		&created.AdminID,
		&created.Username,
		&created.RoleID,
		&created.RoleName,
		&created.CreatedAt,
	)
	if err != nil {
		return domain.AdminUser{}, translateError(err, "create admin")
	}
	return created, nil
}

func (r *Repository) UpdateAdminPassword(ctx context.Context, adminID int64, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx,
		"UPDATE admins SET password_hash = $2, updated_at = NOW() WHERE id = $1",
		adminID,
		passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateAdminRole(ctx context.Context, adminID, roleID int64) error {
	cmd, err := r.pool.Exec(ctx,
		"UPDATE admins SET role_id = $2, updated_at = NOW() WHERE id = $1",
		adminID,
		roleID,
	)
	if err != nil {
		return translateError(err, "update admin role")
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteAdmin(ctx context.Context, adminID int64) error {
	return r.deleteByID(ctx, "admins", adminID)
}

func (r *Repository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, permissions, created_at
		FROM roles
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	items := make([]domain.Role, 0)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Permissions, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		items = append(items, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return items, nil
}

func (r *Repository) GetRole(ctx context.Context, id int64) (domain.Role, error) {
	var role domain.Role
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, permissions, created_at
		FROM roles
		WHERE id = $1
	`, id).Scan(&role.ID, &role.Name, &role.Permissions, &role.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Role{}, ErrNotFound
	}
	if err != nil {
		return domain.Role{}, fmt.Errorf("get role %d: %w", id, err)
	}
	return role, nil
}

func (r *Repository) CreateRole(ctx context.Context, input domain.Role) (domain.Role, error) {
	var role domain.Role
	err := r.pool.QueryRow(ctx, `
		INSERT INTO roles (name, permissions)
		VALUES ($1, $2)
		RETURNING id, name, permissions, created_at
	`, input.Name, input.Permissions).Scan(&role.ID, &role.Name, &role.Permissions, &role.CreatedAt)
	if err != nil {
		return domain.Role{}, translateError(err, "create role")
	}
	return role, nil
}

func (r *Repository) UpdateRole(ctx context.Context, id int64, input domain.Role) (domain.Role, error) {
	var role domain.Role
	err := r.pool.QueryRow(ctx, `
		UPDATE roles
		SET name = $2, permissions = $3
		WHERE id = $1
		RETURNING id, name, permissions, created_at
	`, id, input.Name, input.Permissions).Scan(&role.ID, &role.Name, &role.Permissions, &role.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Role{}, ErrNotFound
	}
	if err != nil {
		return domain.Role{}, translateError(err, fmt.Sprintf("update role %d", id))
	}
	return role, nil
}

func (r *Repository) DeleteRole(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "roles", id)
}
