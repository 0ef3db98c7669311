package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/domain"

	"github.com/jackc/pgx/v5"
)

type ClientListFilter struct {
	Search       string
	WhitelabelID *int64
	Limit        int
	Offset       int
}

const clientColumns = `
	id,
	name,
	whitelabel_id,
	proof_type_id,
	sport_id,
	market_id,
	event_name,
	notes,
	created_at,
	updated_at
`

func (r *Repository) ListClients(ctx context.Context, filter ClientListFilter) ([]domain.Client, error) {
	base := "SELECT " + clientColumns + `
		FROM clients
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR event_name ILIKE '%' || $1 || '%')
	`
	args := []any{strings.TrimSpace(filter.Search)}
	argIndex := 2
	if filter.WhitelabelID != nil {
		base += fmt.Sprintf(" AND whitelabel_id = $%d", argIndex)
		args = append(args, *filter.WhitelabelID)
		argIndex++
	}
	base += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, normalizeLimit(filter.Limit), normalizeOffset(filter.Offset))

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Client, 0)
	for rows.Next() {
		item, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return items, nil
}

func (r *Repository) GetClient(ctx context.Context, id int64) (domain.Client, error) {
	item, err := scanClient(r.pool.QueryRow(ctx, "SELECT "+clientColumns+" FROM clients WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, ErrNotFound
		}
		return domain.Client{}, fmt.Errorf("get client %d: %w", id, err)
	}
	return item, nil
}

func (r *Repository) CreateClient(ctx context.Context, input domain.Client) (domain.Client, error) {
	item, err := scanClient(r.pool.QueryRow(ctx, `
		INSERT INTO clients (name, whitelabel_id, proof_type_id, sport_id, market_id, event_name, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+clientColumns,
		input.Name,
		input.WhitelabelID,
		input.ProofTypeID,
		input.SportID,
		input.MarketID,
		input.EventName,
		input.Notes,
	))
	if err != nil {
		return domain.Client{}, translateError(err, "create client")
	}
	return item, nil
}

func (r *Repository) UpdateClient(ctx context.Context, id int64, input domain.Client) (domain.Client, error) {
	item, err := scanClient(r.pool.QueryRow(ctx, `
		UPDATE clients SET
			name = $2,
			whitelabel_id = $3,
			proof_type_id = $4,
			sport_id = $5,
			market_id = $6,
			event_name = $7,
			notes = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+clientColumns,
		id,
		input.Name,
		input.WhitelabelID,
		input.ProofTypeID,
		input.SportID,
		input.MarketID,
		input.EventName,
		input.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, ErrNotFound
		}
		return domain.Client{}, translateError(err, fmt.Sprintf("update client %d", id))
	}
	return item, nil
}

func (r *Repository) DeleteClient(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "clients", id)
}

func scanClient(row pgx.Row) (domain.Client, error) {
	var item domain.Client
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.WhitelabelID,
		&item.ProofTypeID,
		&item.SportID,
		&item.MarketID,
		&item.EventName,
		&item.Notes,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return domain.Client{}, err
	}
	return item, nil
}
