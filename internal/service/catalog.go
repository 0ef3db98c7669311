package service

import (
	"context"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/repository"
)

func (s *Service) ListWhitelabels(ctx context.Context, search string) ([]domain.Whitelabel, error) {
	return s.store.ListWhitelabels(ctx, search)
}

func (s *Service) GetWhitelabel(ctx context.Context, id int64) (domain.Whitelabel, error) {
	return s.store.GetWhitelabel(ctx, id)
}

func (s *Service) CreateWhitelabel(ctx context.Context, input domain.Whitelabel) (domain.Whitelabel, error) {
	input, err := normalizeWhitelabel(input)
	if err != nil {
		return domain.Whitelabel{}, err
	}
	return s.store.CreateWhitelabel(ctx, input)
}

func (s *Service) UpdateWhitelabel(ctx context.Context, id int64, input domain.Whitelabel) (domain.Whitelabel, error) {
	input, err := normalizeWhitelabel(input)
	if err != nil {
		return domain.Whitelabel{}, err
	}
	return s.store.UpdateWhitelabel(ctx, id, input)
}

func (s *Service) DeleteWhitelabel(ctx context.Context, id int64) error {
	return s.store.DeleteWhitelabel(ctx, id)
}

func normalizeWhitelabel(input domain.Whitelabel) (domain.Whitelabel, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return domain.Whitelabel{}, err
	}
	input.Name = name
	input.LogoURL = strings.TrimSpace(input.LogoURL)
	input.PrimaryColor = strings.TrimSpace(input.PrimaryColor)
	input.URL = strings.TrimSpace(input.URL)
	return input, nil
}

func (s *Service) ListProofTypes(ctx context.Context) ([]domain.ProofType, error) {
	return s.store.ListProofTypes(ctx)
}

func (s *Service) GetProofType(ctx context.Context, id int64) (domain.ProofType, error) {
	return s.store.GetProofType(ctx, id)
}

func (s *Service) CreateProofType(ctx context.Context, input domain.ProofType) (domain.ProofType, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return domain.ProofType{}, err
	}
	input.Name = name
	return s.store.CreateProofType(ctx, input)
}

func (s *Service) UpdateProofType(ctx context.Context, id int64, input domain.ProofType) (domain.ProofType, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return domain.ProofType{}, err
	}
	input.Name = name
	return s.store.UpdateProofType(ctx, id, input)
}

func (s *Service) DeleteProofType(ctx context.Context, id int64) error {
	return s.store.DeleteProofType(ctx, id)
}

// Sports and markets share one code path keyed by table.

func (s *Service) ListNamed(ctx context.Context, table repository.NamedTable) ([]domain.NamedRecord, error) {
	return s.store.ListNamed(ctx, table)
}

func (s *Service) GetNamed(ctx context.Context, table repository.NamedTable, id int64) (domain.NamedRecord, error) {
	return s.store.GetNamed(ctx, table, id)
}

func (s *Service) CreateNamed(ctx context.Context, table repository.NamedTable, name string) (domain.NamedRecord, error) {
	name, err := requireName(name)
	if err != nil {
		return domain.NamedRecord{}, err
	}
	return s.store.CreateNamed(ctx, table, name)
}

func (s *Service) UpdateNamed(ctx context.Context, table repository.NamedTable, id int64, name string) (domain.NamedRecord, error) {
	name, err := requireName(name)
	if err != nil {
		return domain.NamedRecord{}, err
	}
	return s.store.UpdateNamed(ctx, table, id, name)
}

func (s *Service) DeleteNamed(ctx context.Context, table repository.NamedTable, id int64) error {
	return s.store.DeleteNamed(ctx, table, id)
}
