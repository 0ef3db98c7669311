package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoReports          = errors.New("no reports found matching the criteria")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type ReportStore interface {
	CreateReport(ctx context.Context, report domain.Report) (domain.Report, error)
	UpdateReport(ctx context.Context, id int64, report domain.Report) (domain.Report, error)
	DeleteReport(ctx context.Context, id int64) error
	GetReport(ctx context.Context, id int64) (domain.Report, error)
	FindDuplicateReport(ctx context.Context, key domain.NaturalKey, excludeID int64) (bool, error)
	ListReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, int, error)
}

type CatalogStore interface {
	ListWhitelabels(ctx context.Context, search string) ([]domain.Whitelabel, error)
	GetWhitelabel(ctx context.Context, id int64) (domain.Whitelabel, error)
	CreateWhitelabel(ctx context.Context, input domain.Whitelabel) (domain.Whitelabel, error)
	UpdateWhitelabel(ctx context.Context, id int64, input domain.Whitelabel) (domain.Whitelabel, error)
	DeleteWhitelabel(ctx context.Context, id int64) error

	ListProofTypes(ctx context.Context) ([]domain.ProofType, error)
	GetProofType(ctx context.Context, id int64) (domain.ProofType, error)
	CreateProofType(ctx context.Context, input domain.ProofType) (domain.ProofType, error)
	UpdateProofType(ctx context.Context, id int64, input domain.ProofType) (domain.ProofType, error)
	DeleteProofType(ctx context.Context, id int64) error

	ListNamed(ctx context.Context, table repository.NamedTable) ([]domain.NamedRecord, error)
	GetNamed(ctx context.Context, table repository.NamedTable, id int64) (domain.NamedRecord, error)
	CreateNamed(ctx context.Context, table repository.NamedTable, name string) (domain.NamedRecord, error)
	UpdateNamed(ctx context.Context, table repository.NamedTable, id int64, name string) (domain.NamedRecord, error)
	DeleteNamed(ctx context.Context, table repository.NamedTable, id int64) error
}

type ClientStore interface {
	ListClients(ctx context.Context, filter repository.ClientListFilter) ([]domain.Client, error)
	GetClient(ctx context.Context, id int64) (domain.Client, error)
	CreateClient(ctx context.Context, input domain.Client) (domain.Client, error)
	UpdateClient(ctx context.Context, id int64, input domain.Client) (domain.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

type AdminStore interface {
	SetDefaultAdmin(ctx context.Context, username, passwordHash string) error
	GetAdminCredentials(ctx context.Context, username string) (domain.AdminUser, string, error)
	ListAdmins(ctx context.Context) ([]domain.AdminUser, error)
	GetAdminByID(ctx context.Context, adminID int64) (domain.AdminUser, error)
	CreateAdmin(ctx context.Context, username, passwordHash string, roleID int64) (domain.AdminUser, error)
	UpdateAdminPassword(ctx context.Context, adminID int64, passwordHash string) error
	UpdateAdminRole(ctx context.Context, adminID, roleID int64) error
	DeleteAdmin(ctx context.Context, adminID int64) error

	ListRoles(ctx context.Context) ([]domain.Role, error)
	GetRole(ctx context.Context, id int64) (domain.Role, error)
	CreateRole(ctx context.Context, input domain.Role) (domain.Role, error)
	UpdateRole(ctx context.Context, id int64, input domain.Role) (domain.Role, error)
	DeleteRole(ctx context.Context, id int64) error
}

// Store is satisfied by *repository.Repository and by the in-memory store
// used in tests.
type Store interface {
	ReportStore
	CatalogStore
	ClientStore
	AdminStore
}

type Options struct {
	MaxImportRows int
	Logger        *zap.Logger
}

type Service struct {
	store         Store
	maxImportRows int
	log           *zap.Logger
}

func New(store Store, opts Options) *Service {
	if opts.MaxImportRows <= 0 {
		opts.MaxImportRows = DefaultMaxImportRows
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		store:         store,
		maxImportRows: opts.MaxImportRows,
		log:           opts.Logger,
	}
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return name, nil
}
