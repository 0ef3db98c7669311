// Package memstore is an in-memory implementation of the service store. It
// mirrors the constraint behavior of the Postgres schema closely enough for
// service and handler tests.
package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/repository"
)

type adminRow struct {
	domain.AdminUser
	passwordHash string
}

type Store struct {
	mu     sync.Mutex
	nextID int64

	reports     map[int64]domain.Report
	whitelabels map[int64]domain.Whitelabel
	proofTypes  map[int64]domain.ProofType
	named       map[repository.NamedTable]map[int64]domain.NamedRecord
	clients     map[int64]domain.Client
	roles       map[int64]domain.Role
	admins      map[int64]adminRow

	// FailCreate, when set, is returned by CreateReport.
	FailCreate error
}

func New() *Store {
	return &Store{
		reports:     map[int64]domain.Report{},
		whitelabels: map[int64]domain.Whitelabel{},
		proofTypes:  map[int64]domain.ProofType{},
		named: map[repository.NamedTable]map[int64]domain.NamedRecord{
			repository.SportsTable:  {},
			repository.MarketsTable: {},
		},
		clients: map[int64]domain.Client{},
		roles:   map[int64]domain.Role{},
		admins:  map[int64]adminRow{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func now() time.Time {
	return time.Now().UTC()
}

func sameKey(a, b domain.NaturalKey) bool {
	return a.Date.Equal(b.Date) &&
		strings.EqualFold(strings.TrimSpace(a.UserName), strings.TrimSpace(b.UserName)) &&
		strings.EqualFold(strings.TrimSpace(a.Agent), strings.TrimSpace(b.Agent)) &&
		strings.EqualFold(strings.TrimSpace(a.SportName), strings.TrimSpace(b.SportName)) &&
		strings.EqualFold(strings.TrimSpace(a.EventName), strings.TrimSpace(b.EventName)) &&
		strings.EqualFold(strings.TrimSpace(a.MarketName), strings.TrimSpace(b.MarketName))
}

func (s *Store) duplicateLocked(key domain.NaturalKey, excludeID int64) bool {
	for id, existing := range s.reports {
		if id != excludeID && sameKey(existing.NaturalKey(), key) {
			return true
		}
	}
	return false
}

func (s *Store) CreateReport(_ context.Context, report domain.Report) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailCreate != nil {
		return domain.Report{}, s.FailCreate
	}
	if s.duplicateLocked(report.NaturalKey(), 0) {
		return domain.Report{}, repository.ErrDuplicateReport
	}
	report.ID = s.id()
	report.CreatedAt = now()
	report.UpdatedAt = report.CreatedAt
	report.BetDetails = slices.Clone(report.BetDetails)
	s.reports[report.ID] = report
	return report, nil
}

func (s *Store) UpdateReport(_ context.Context, id int64, report domain.Report) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.reports[id]
	if !ok {
		return domain.Report{}, repository.ErrNotFound
	}
	if s.duplicateLocked(report.NaturalKey(), id) {
		return domain.Report{}, repository.ErrDuplicateReport
	}
	report.ID = id
	report.CreatedAt = existing.CreatedAt
	report.UpdatedAt = now()
	report.BetDetails = slices.Clone(report.BetDetails)
	s.reports[id] = report
	return report, nil
}

func (s *Store) DeleteReport(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.reports, id)
	return nil
}

func (s *Store) GetReport(_ context.Context, id int64) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[id]
	if !ok {
		return domain.Report{}, repository.ErrNotFound
	}
	return report, nil
}

func (s *Store) FindDuplicateReport(_ context.Context, key domain.NaturalKey, excludeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duplicateLocked(key, excludeID), nil
}

func (s *Store) ListReports(_ context.Context, filter domain.ReportFilter) ([]domain.Report, int, error) {
	s.mu.Lock()
	matched := make([]domain.Report, 0, len(s.reports))
	for _, report := range s.reports {
		if MatchReport(report, filter) {
			matched = append(matched, report)
		}
	}
	s.mu.Unlock()

	SortReports(matched, filter.SortKey, filter.SortOrder)
	total := len(matched)
	if filter.Limit > 0 {
		offset := min(max(filter.Offset, 0), total)
		end := min(offset+filter.Limit, total)
		matched = matched[offset:end]
	}
	return matched, total, nil
}

// Whitelabels

func (s *Store) ListWhitelabels(_ context.Context, search string) ([]domain.Whitelabel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.Whitelabel, 0, len(s.whitelabels))
	for _, item := range s.whitelabels {
		if containsFold(item.Name, search) {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, func(a, b domain.Whitelabel) int { return strings.Compare(a.Name, b.Name) })
	return items, nil
}

func (s *Store) GetWhitelabel(_ context.Context, id int64) (domain.Whitelabel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.whitelabels[id]
	if !ok {
		return domain.Whitelabel{}, repository.ErrNotFound
	}
	return item, nil
}

func (s *Store) CreateWhitelabel(_ context.Context, input domain.Whitelabel) (domain.Whitelabel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.whitelabels {
		if strings.EqualFold(existing.Name, input.Name) {
			return domain.Whitelabel{}, conflict("whitelabels")
		}
	}
	input.ID = s.id()
	input.CreatedAt = now()
	input.UpdatedAt = input.CreatedAt
	s.whitelabels[input.ID] = input
	return input, nil
}

func (s *Store) UpdateWhitelabel(_ context.Context, id int64, input domain.Whitelabel) (domain.Whitelabel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.whitelabels[id]
	if !ok {
		return domain.Whitelabel{}, repository.ErrNotFound
	}
	for otherID, other := range s.whitelabels {
		if otherID != id && strings.EqualFold(other.Name, input.Name) {
			return domain.Whitelabel{}, conflict("whitelabels")
		}
	}
	input.ID = id
	input.CreatedAt = existing.CreatedAt
	input.UpdatedAt = now()
	s.whitelabels[id] = input
	return input, nil
}

func (s *Store) DeleteWhitelabel(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.whitelabels[id]; !ok {
		return repository.ErrNotFound
	}
	for _, client := range s.clients {
		if client.WhitelabelID == id {
			return restricted("whitelabels")
		}
	}
	delete(s.whitelabels, id)
	return nil
}

// Proof types

func (s *Store) ListProofTypes(_ context.Context) ([]domain.ProofType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.ProofType, 0, len(s.proofTypes))
	for _, item := range s.proofTypes {
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b domain.ProofType) int { return strings.Compare(a.Name, b.Name) })
	return items, nil
}

func (s *Store) GetProofType(_ context.Context, id int64) (domain.ProofType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.proofTypes[id]
	if !ok {
		return domain.ProofType{}, repository.ErrNotFound
	}
	return item, nil
}

func (s *Store) CreateProofType(_ context.Context, input domain.ProofType) (domain.ProofType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.proofTypes {
		if strings.EqualFold(existing.Name, input.Name) {
			return domain.ProofType{}, conflict("proof_types")
		}
	}
	input.ID = s.id()
	input.CreatedAt = now()
	input.UpdatedAt = input.CreatedAt
	s.proofTypes[input.ID] = input
	return input, nil
}

func (s *Store) UpdateProofType(_ context.Context, id int64, input domain.ProofType) (domain.ProofType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.proofTypes[id]
	if !ok {
		return domain.ProofType{}, repository.ErrNotFound
	}
	for otherID, other := range s.proofTypes {
		if otherID != id && strings.EqualFold(other.Name, input.Name) {
			return domain.ProofType{}, conflict("proof_types")
		}
	}
	input.ID = id
	input.CreatedAt = existing.CreatedAt
	input.UpdatedAt = now()
	s.proofTypes[id] = input
	return input, nil
}

func (s *Store) DeleteProofType(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.proofTypes[id]; !ok {
		return repository.ErrNotFound
	}
	for _, client := range s.clients {
		if client.ProofTypeID == id {
			return restricted("proof_types")
		}
	}
	delete(s.proofTypes, id)
	return nil
}

// Sports and markets

func (s *Store) ListNamed(_ context.Context, table repository.NamedTable) ([]domain.NamedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.namedTable(table)
	if err != nil {
		return nil, err
	}
	items := make([]domain.NamedRecord, 0, len(rows))
	for _, item := range rows {
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b domain.NamedRecord) int { return strings.Compare(a.Name, b.Name) })
	return items, nil
}

func (s *Store) GetNamed(_ context.Context, table repository.NamedTable, id int64) (domain.NamedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.namedTable(table)
	if err != nil {
		return domain.NamedRecord{}, err
	}
	item, ok := rows[id]
	if !ok {
		return domain.NamedRecord{}, repository.ErrNotFound
	}
	return item, nil
}

func (s *Store) CreateNamed(_ context.Context, table repository.NamedTable, name string) (domain.NamedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.namedTable(table)
	if err != nil {
		return domain.NamedRecord{}, err
	}
	for _, existing := range rows {
		if strings.EqualFold(existing.Name, name) {
			return domain.NamedRecord{}, conflict(string(table))
		}
	}
	item := domain.NamedRecord{ID: s.id(), Name: name, CreatedAt: now()}
	item.UpdatedAt = item.CreatedAt
	rows[item.ID] = item
	return item, nil
}

func (s *Store) UpdateNamed(_ context.Context, table repository.NamedTable, id int64, name string) (domain.NamedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.namedTable(table)
	if err != nil {
		return domain.NamedRecord{}, err
	}
	item, ok := rows[id]
	if !ok {
		return domain.NamedRecord{}, repository.ErrNotFound
	}
	for otherID, other := range rows {
		if otherID != id && strings.EqualFold(other.Name, name) {
			return domain.NamedRecord{}, conflict(string(table))
		}
	}
	item.Name = name
	item.UpdatedAt = now()
	rows[id] = item
	return item, nil
}

func (s *Store) DeleteNamed(_ context.Context, table repository.NamedTable, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.namedTable(table)
	if err != nil {
		return err
	}
	if _, ok := rows[id]; !ok {
		return repository.ErrNotFound
	}
	for _, client := range s.clients {
		if (table == repository.SportsTable && client.SportID == id) ||
			(table == repository.MarketsTable && client.MarketID == id) {
			return restricted(string(table))
		}
	}
	delete(rows, id)
	return nil
}

func (s *Store) namedTable(table repository.NamedTable) (map[int64]domain.NamedRecord, error) {
	rows, ok := s.named[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return rows, nil
}

// Clients

func (s *Store) ListClients(_ context.Context, filter repository.ClientListFilter) ([]domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.Client, 0, len(s.clients))
	for _, item := range s.clients {
		if filter.WhitelabelID != nil && item.WhitelabelID != *filter.WhitelabelID {
			continue
		}
		if !containsFold(item.Name, filter.Search) && !containsFold(item.EventName, filter.Search) {
			continue
		}
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b domain.Client) int { return cmp.Compare(b.ID, a.ID) })
	return items, nil
}

func (s *Store) GetClient(_ context.Context, id int64) (domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.clients[id]
	if !ok {
		return domain.Client{}, repository.ErrNotFound
	}
	return item, nil
}

func (s *Store) CreateClient(_ context.Context, input domain.Client) (domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkClientLocked(0, input); err != nil {
		return domain.Client{}, err
	}
	input.ID = s.id()
	input.CreatedAt = now()
	input.UpdatedAt = input.CreatedAt
	s.clients[input.ID] = input
	return input, nil
}

func (s *Store) UpdateClient(_ context.Context, id int64, input domain.Client) (domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.clients[id]
	if !ok {
		return domain.Client{}, repository.ErrNotFound
	}
	if err := s.checkClientLocked(id, input); err != nil {
		return domain.Client{}, err
	}
	input.ID = id
	input.CreatedAt = existing.CreatedAt
	input.UpdatedAt = now()
	s.clients[id] = input
	return input, nil
}

func (s *Store) DeleteClient(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.clients, id)
	return nil
}

func (s *Store) checkClientLocked(id int64, input domain.Client) error {
	if _, ok := s.whitelabels[input.WhitelabelID]; !ok {
		return missingReference("whitelabel_id")
	}
	if _, ok := s.proofTypes[input.ProofTypeID]; !ok {
		return missingReference("proof_type_id")
	}
	if _, ok := s.named[repository.SportsTable][input.SportID]; !ok {
		return missingReference("sport_id")
	}
	if _, ok := s.named[repository.MarketsTable][input.MarketID]; !ok {
		return missingReference("market_id")
	}
	for otherID, other := range s.clients {
		if otherID != id && strings.EqualFold(other.Name, input.Name) {
			return conflict("clients")
		}
	}
	return nil
}

// Admins and roles

func (s *Store) SetDefaultAdmin(_ context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var role domain.Role
	for _, existing := range s.roles {
		if existing.Name == repository.DefaultRoleName {
			role = existing
		}
	}
	if role.ID == 0 {
		role = domain.Role{ID: s.id(), Name: repository.DefaultRoleName, Permissions: []string{"*"}, CreatedAt: now()}
		s.roles[role.ID] = role
	}
	for _, admin := range s.admins {
		if admin.Username == username {
			return nil
		}
	}
	admin := adminRow{
		AdminUser:    domain.AdminUser{AdminID: s.id(), Username: username, RoleID: role.ID, RoleName: role.Name, CreatedAt: now()},
		passwordHash: passwordHash,
	}
	s.admins[admin.AdminID] = admin
	return nil
}

func (s *Store) GetAdminCredentials(_ context.Context, username string) (domain.AdminUser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, admin := range s.admins {
		if strings.EqualFold(admin.Username, strings.TrimSpace(username)) {
			return s.withRoleLocked(admin.AdminUser), admin.passwordHash, nil
		}
	}
	return domain.AdminUser{}, "", repository.ErrNotFound
}

func (s *Store) ListAdmins(_ context.Context) ([]domain.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.AdminUser, 0, len(s.admins))
	for _, admin := range s.admins {
		items = append(items, s.withRoleLocked(admin.AdminUser))
	}
	slices.SortFunc(items, func(a, b domain.AdminUser) int { return strings.Compare(a.Username, b.Username) })
	return items, nil
}

func (s *Store) GetAdminByID(_ context.Context, adminID int64) (domain.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, ok := s.admins[adminID]
	if !ok {
		return domain.AdminUser{}, repository.ErrNotFound
	}
	return s.withRoleLocked(admin.AdminUser), nil
}

func (s *Store) CreateAdmin(_ context.Context, username, passwordHash string, roleID int64) (domain.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[roleID]; !ok {
		return domain.AdminUser{}, missingReference("role_id")
	}
	for _, admin := range s.admins {
		if admin.Username == username {
			return domain.AdminUser{}, conflict("admins")
		}
	}
	admin := adminRow{
		AdminUser:    domain.AdminUser{AdminID: s.id(), Username: username, RoleID: roleID, CreatedAt: now()},
		passwordHash: passwordHash,
	}
	s.admins[admin.AdminID] = admin
	return s.withRoleLocked(admin.AdminUser), nil
}

func (s *Store) UpdateAdminPassword(_ context.Context, adminID int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, ok := s.admins[adminID]
	if !ok {
		return repository.ErrNotFound
	}
	admin.passwordHash = passwordHash
	s.admins[adminID] = admin
	return nil
}

func (s *Store) UpdateAdminRole(_ context.Context, adminID, roleID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, ok := s.admins[adminID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := s.roles[roleID]; !ok {
		return missingReference("role_id")
	}
	admin.RoleID = roleID
	s.admins[adminID] = admin
	return nil
}

func (s *Store) DeleteAdmin(_ context.Context, adminID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.admins[adminID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.admins, adminID)
	return nil
}

func (s *Store) ListRoles(_ context.Context) ([]domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.Role, 0, len(s.roles))
	for _, role := range s.roles {
		items = append(items, role)
	}
	slices.SortFunc(items, func(a, b domain.Role) int { return strings.Compare(a.Name, b.Name) })
	return items, nil
}

func (s *Store) GetRole(_ context.Context, id int64) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	role, ok := s.roles[id]
	if !ok {
		return domain.Role{}, repository.ErrNotFound
	}
	return role, nil
}

func (s *Store) CreateRole(_ context.Context, input domain.Role) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.roles {
		if existing.Name == input.Name {
			return domain.Role{}, conflict("roles")
		}
	}
	input.ID = s.id()
	input.CreatedAt = now()
	s.roles[input.ID] = input
	return input, nil
}

func (s *Store) UpdateRole(_ context.Context, id int64, input domain.Role) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.roles[id]
	if !ok {
		return domain.Role{}, repository.ErrNotFound
	}
	for otherID, other := range s.roles {
		if otherID != id && other.Name == input.Name {
			return domain.Role{}, conflict("roles")
		}
	}
	input.ID = id
	input.CreatedAt = existing.CreatedAt
	s.roles[id] = input
	return input, nil
}

func (s *Store) DeleteRole(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[id]; !ok {
		return repository.ErrNotFound
	}
	for _, admin := range s.admins {
		if admin.RoleID == id {
			return restricted("roles")
		}
	}
	delete(s.roles, id)
	return nil
}

func (s *Store) withRoleLocked(admin domain.AdminUser) domain.AdminUser {
	admin.RoleName = s.roles[admin.RoleID].Name
	return admin
}

func conflict(table string) error {
	return fmt.Errorf("memstore %s: %w", table, repository.ErrConflict)
}

func missingReference(column string) error {
	return fmt.Errorf("memstore %s: %w", column, repository.ErrInvalidReference)
}

func restricted(table string) error {
	return fmt.Errorf("memstore %s still referenced: %w", table, repository.ErrInvalidReference)
}

func containsFold(value, search string) bool {
	search = strings.TrimSpace(search)
	return search == "" || strings.Contains(strings.ToLower(value), strings.ToLower(search))
}
