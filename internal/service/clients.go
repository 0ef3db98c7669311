package service

import (
	"context"
	"fmt"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/repository"
)

func (s *Service) ListClients(ctx context.Context, filter repository.ClientListFilter) ([]domain.Client, error) {
	return s.store.ListClients(ctx, filter)
}

func (s *Service) GetClient(ctx context.Context, id int64) (domain.Client, error) {
	return s.store.GetClient(ctx, id)
}

func (s *Service) CreateClient(ctx context.Context, input domain.Client) (domain.Client, error) {
	input, err := normalizeClient(input)
	if err != nil {
		return domain.Client{}, err
	}
	return s.store.CreateClient(ctx, input)
}

func (s *Service) UpdateClient(ctx context.Context, id int64, input domain.Client) (domain.Client, error) {
	input, err := normalizeClient(input)
	if err != nil {
		return domain.Client{}, err
	}
	return s.store.UpdateClient(ctx, id, input)
}

func (s *Service) DeleteClient(ctx context.Context, id int64) error {
	return s.store.DeleteClient(ctx, id)
}

func normalizeClient(input domain.Client) (domain.Client, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return domain.Client{}, err
	}
	input.Name = name
	input.EventName = strings.TrimSpace(input.EventName)
	input.Notes = strings.TrimSpace(input.Notes)
	for _, ref := range []struct {
		field string
		id    int64
	}{
		{"whitelabelId", input.WhitelabelID},
		{"proofTypeId", input.ProofTypeID},
		{"sportId", input.SportID},
		{"marketId", input.MarketID},
	} {
		if ref.id <= 0 {
			return domain.Client{}, fmt.Errorf("%w: %s is required", ErrInvalidInput, ref.field)
		}
	}
	return input, nil
}
