package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/domain"

	"github.com/jackc/pgx/v5"
)

// NamedTable is one of the lookup tables that only carry a unique name.
type NamedTable string

const (
	SportsTable  NamedTable = "sports"
	MarketsTable NamedTable = "markets"
)

func (r *Repository) ListWhitelabels(ctx context.Context, search string) ([]domain.Whitelabel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, logo_url, primary_color, url, created_at, updated_at
		FROM whitelabels
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
	`, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("list whitelabels: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Whitelabel, 0)
	for rows.Next() {
		item, err := scanWhitelabel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan whitelabel: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate whitelabels: %w", err)
	}
	return items, nil
}

func (r *Repository) GetWhitelabel(ctx context.Context, id int64) (domain.Whitelabel, error) {
	item, err := scanWhitelabel(r.pool.QueryRow(ctx, `
		SELECT id, name, logo_url, primary_color, url, created_at, updated_at
		FROM whitelabels
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Whitelabel{}, ErrNotFound
		}
		return domain.Whitelabel{}, fmt.Errorf("get whitelabel %d: %w", id, err)
	}
	return item, nil
}

func (r *Repository) CreateWhitelabel(ctx context.Context, input domain.Whitelabel) (domain.Whitelabel, error) {
	item, err := scanWhitelabel(r.pool.QueryRow(ctx, `
		INSERT INTO whitelabels (name, logo_url, primary_color, url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, logo_url, primary_color, url, created_at, updated_at
	`, input.Name, input.LogoURL, input.PrimaryColor, input.URL))
	if err != nil {
		return domain.Whitelabel{}, translateError(err, "create whitelabel")
	}
	return item, nil
}

func (r *Repository) UpdateWhitelabel(ctx context.Context, id int64, input domain.Whitelabel) (domain.Whitelabel, error) {
	item, err := scanWhitelabel(r.pool.QueryRow(ctx, `
		UPDATE whitelabels
		SET name = $2, logo_url = $3, primary_color = $4, url = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, logo_url, primary_color, url, created_at, updated_at
	`, id, input.Name, input.LogoURL, input.PrimaryColor, input.URL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Whitelabel{}, ErrNotFound
		}
		return domain.Whitelabel{}, translateError(err, fmt.Sprintf("update whitelabel %d", id))
	}
	return item, nil
}

func (r *Repository) DeleteWhitelabel(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "whitelabels", id)
}

func (r *Repository) ListProofTypes(ctx context.Context) ([]domain.ProofType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, content, created_at, updated_at
		FROM proof_types
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list proof types: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ProofType, 0)
	for rows.Next() {
		var item domain.ProofType
		if err := rows.Scan(&item.ID, &item.Name, &item.Content, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proof type: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proof types: %w", err)
	}
	return items, nil
}

func (r *Repository) GetProofType(ctx context.Context, id int64) (domain.ProofType, error) {
	var item domain.ProofType
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, content, created_at, updated_at
		FROM proof_types
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.Content, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ProofType{}, ErrNotFound
		}
		return domain.ProofType{}, fmt.Errorf("get proof type %d: %w", id, err)
	}
	return item, nil
}

func (r *Repository) CreateProofType(ctx context.Context, input domain.ProofType) (domain.ProofType, error) {
	var item domain.ProofType
	err := r.pool.QueryRow(ctx, `
		INSERT INTO proof_types (name, content)
		VALUES ($1, $2)
		RETURNING id, name, content, created_at, updated_at
	`, input.Name, input.Content).Scan(&item.ID, &item.Name, &item.Content, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return domain.ProofType{}, translateError(err, "create proof type")
	}
	return item, nil
}

func (r *Repository) UpdateProofType(ctx context.Context, id int64, input domain.ProofType) (domain.ProofType, error) {
	var item domain.ProofType
	err := r.pool.QueryRow(ctx, `
		UPDATE proof_types
		SET name = $2, content = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, content, created_at, updated_at
	`, id, input.Name, input.Content).Scan(&item.ID, &item.Name, &item.Content, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ProofType{}, ErrNotFound
		}
		return domain.ProofType{}, translateError(err, fmt.Sprintf("update proof type %d", id))
	}
	return item, nil
}

func (r *Repository) DeleteProofType(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "proof_types", id)
}

func (r *Repository) ListNamed(ctx context.Context, table NamedTable) ([]domain.NamedRecord, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, name, created_at, updated_at
		FROM %s
		ORDER BY name ASC
	`, table))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	items := make([]domain.NamedRecord, 0)
	for rows.Next() {
		var item domain.NamedRecord
		if err := rows.Scan(&item.ID, &item.Name, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return items, nil
}

func (r *Repository) GetNamed(ctx context.Context, table NamedTable, id int64) (domain.NamedRecord, error) {
	var item domain.NamedRecord
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, name, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, table), id).Scan(&item.ID, &item.Name, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NamedRecord{}, ErrNotFound
		}
		return domain.NamedRecord{}, fmt.Errorf("get %s %d: %w", table, id, err)
	}
	return item, nil
}

func (r *Repository) CreateNamed(ctx context.Context, table NamedTable, name string) (domain.NamedRecord, error) {
	var item domain.NamedRecord
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`, table), name).Scan(&item.ID, &item.Name, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return domain.NamedRecord{}, translateError(err, fmt.Sprintf("create %s", table))
	}
	return item, nil
}

func (r *Repository) UpdateNamed(ctx context.Context, table NamedTable, id int64, name string) (domain.NamedRecord, error) {
	var item domain.NamedRecord
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE %s
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at
	`, table), id, name).Scan(&item.ID, &item.Name, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NamedRecord{}, ErrNotFound
		}
		return domain.NamedRecord{}, translateError(err, fmt.Sprintf("update %s %d", table, id))
	}
	return item, nil
}

func (r *Repository) DeleteNamed(ctx context.Context, table NamedTable, id int64) error {
	return r.deleteByID(ctx, string(table), id)
}

func (r *Repository) deleteByID(ctx context.Context, table string, id int64) error {
	cmd, err := r.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return translateError(err, fmt.Sprintf("delete %s %d", table, id))
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanWhitelabel(row pgx.Row) (domain.Whitelabel, error) {
	var item domain.Whitelabel
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.LogoURL,
		&item.PrimaryColor,
		&item.URL,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return domain.Whitelabel{}, err
	}
	return item, nil
}
