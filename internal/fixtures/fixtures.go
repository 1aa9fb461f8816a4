// Package fixtures provides an in-memory UnitOfWork so service tests run
// without a database. Semantics mirror the GORM layer: user scoping on every
// read, ErrNotFound on missing rows, filter/sort/paginate on transaction
// lists.
package fixtures

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/repository"
)

// Store is the shared in-memory state behind a fixture UnitOfWork.
type Store struct {
	mu sync.Mutex

	Users        []*domain.User
	Accounts     []*domain.Account
	Categories   []*domain.Category
	Transactions []*domain.Transaction
	Tags         []*domain.Tag
	Budgets      []*domain.Budget
	Goals        []*domain.Goal
	Alerts       []*domain.Alert
	Schedules    []*domain.Schedule
	Wallets      []*domain.CryptoWallet
	Assets       []*domain.CryptoAsset
}

// UoW is an in-memory repository.UnitOfWork over a Store.
type UoW struct {
	store *Store
}

// NewUoW creates an empty in-memory unit of work.
func NewUoW() *UoW {
	return &UoW{store: &Store{}}
}

// Seed exposes the backing store so tests can arrange state directly.
func (u *UoW) Seed() *Store { return u.store }

// Do runs fn under the store lock. There is no rollback; tests asserting
// atomicity rely on validation happening before any write, which is exactly
// the contract the services guarantee.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(&lockedUoW{store: u.store})
}

func (u *UoW) Accounts() (repository.AccountRepository, error) {
	return &accountRepo{store: u.store}, nil
}
func (u *UoW) Categories() (repository.CategoryRepository, error) {
	return &categoryRepo{store: u.store}, nil
}
func (u *UoW) Transactions() (repository.TransactionRepository, error) {
	return &transactionRepo{store: u.store}, nil
}
func (u *UoW) Tags() (repository.TagRepository, error)       { return &tagRepo{store: u.store}, nil }
func (u *UoW) Budgets() (repository.BudgetRepository, error) { return &budgetRepo{store: u.store}, nil }
func (u *UoW) Goals() (repository.GoalRepository, error)     { return &goalRepo{store: u.store}, nil }
func (u *UoW) Alerts() (repository.AlertRepository, error)   { return &alertRepo{store: u.store}, nil }
func (u *UoW) Schedules() (repository.ScheduleRepository, error) {
	return &scheduleRepo{store: u.store}, nil
}
func (u *UoW) Wallets() (repository.WalletRepository, error) { return &walletRepo{store: u.store}, nil }
func (u *UoW) Assets() (repository.AssetRepository, error)   { return &assetRepo{store: u.store}, nil }
func (u *UoW) Users() (repository.UserRepository, error)     { return &userRepo{store: u.store}, nil }

// lockedUoW is the UnitOfWork handed to Do callbacks; the outer Do already
// holds the lock.
type lockedUoW struct {
	store *Store
}

func (u *lockedUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(u)
}

func (u *lockedUoW) Accounts() (repository.AccountRepository, error) {
	return &accountRepo{store: u.store}, nil
}
func (u *lockedUoW) Categories() (repository.CategoryRepository, error) {
	return &categoryRepo{store: u.store}, nil
}
func (u *lockedUoW) Transactions() (repository.TransactionRepository, error) {
	return &transactionRepo{store: u.store}, nil
}
func (u *lockedUoW) Tags() (repository.TagRepository, error) {
	return &tagRepo{store: u.store}, nil
}
func (u *lockedUoW) Budgets() (repository.BudgetRepository, error) {
	return &budgetRepo{store: u.store}, nil
}
func (u *lockedUoW) Goals() (repository.GoalRepository, error) {
	return &goalRepo{store: u.store}, nil
}
func (u *lockedUoW) Alerts() (repository.AlertRepository, error) {
	return &alertRepo{store: u.store}, nil
}
func (u *lockedUoW) Schedules() (repository.ScheduleRepository, error) {
	return &scheduleRepo{store: u.store}, nil
}
func (u *lockedUoW) Wallets() (repository.WalletRepository, error) {
	return &walletRepo{store: u.store}, nil
}
func (u *lockedUoW) Assets() (repository.AssetRepository, error) {
	return &assetRepo{store: u.store}, nil
}
func (u *lockedUoW) Users() (repository.UserRepository, error) {
	return &userRepo{store: u.store}, nil
}

var (
	_ repository.UnitOfWork = (*UoW)(nil)
	_ repository.UnitOfWork = (*lockedUoW)(nil)
)

// ---- accounts ----

type accountRepo struct{ store *Store }

func (r *accountRepo) Create(_ context.Context, a *domain.Account) error {
	cp := *a
	r.store.Accounts = append(r.store.Accounts, &cp)
	return nil
}

func (r *accountRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.Account, error) {
	for _, a := range r.store.Accounts {
		if a.ID == id && a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *accountRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, a := range r.store.Accounts {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *accountRepo) Update(_ context.Context, a *domain.Account) error {
	for i, existing := range r.store.Accounts {
		if existing.ID == a.ID && existing.UserID == a.UserID {
			cp := *a
			r.store.Accounts[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *accountRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, a := range r.store.Accounts {
		if a.ID == id && a.UserID == userID {
			r.store.Accounts = append(r.store.Accounts[:i], r.store.Accounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *accountRepo) ListActiveAll(_ context.Context) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, a := range r.store.Accounts {
		if a.IsActive {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- categories ----

type categoryRepo struct{ store *Store }

func (r *categoryRepo) Create(_ context.Context, c *domain.Category) error {
	cp := *c
	r.store.Categories = append(r.store.Categories, &cp)
	return nil
}

func (r *categoryRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	for _, c := range r.store.Categories {
		if c.ID == id && c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *categoryRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.store.Categories {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *categoryRepo) Update(_ context.Context, c *domain.Category) error {
	for i, existing := range r.store.Categories {
		if existing.ID == c.ID && existing.UserID == c.UserID {
			cp := *c
			r.store.Categories[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *categoryRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, c := range r.store.Categories {
		if c.ID == id && c.UserID == userID {
			r.store.Categories = append(r.store.Categories[:i], r.store.Categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ---- transactions ----

type transactionRepo struct{ store *Store }

func (r *transactionRepo) Create(_ context.Context, t *domain.Transaction) error {
	cp := *t
	cp.TagIDs = append([]uuid.UUID(nil), t.TagIDs...)
	r.store.Transactions = append(r.store.Transactions, &cp)
	return nil
}

func (r *transactionRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.Transaction, error) {
	for _, t := range r.store.Transactions {
		if t.ID == id && t.UserID == userID {
			cp := *t
			cp.TagIDs = append([]uuid.UUID(nil), t.TagIDs...)
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func matches(t *domain.Transaction, f repository.TransactionFilter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Description), needle) &&
			!strings.Contains(strings.ToLower(t.Notes), needle) {
			return false
		}
	}
	if f.AccountID != nil && t.AccountID != *f.AccountID {
		return false
	}
	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}
	if f.TagID != nil {
		found := false
		for _, id := range t.TagIDs {
			if id == *f.TagID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}
	if f.MinAmount != nil && t.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && t.Amount > *f.MaxAmount {
		return false
	}
	if f.IsReviewed != nil && t.IsReviewed != *f.IsReviewed {
		return false
	}
	return true
}

func (r *transactionRepo) List(_ context.Context, userID uuid.UUID, f repository.TransactionFilter) ([]*domain.Transaction, int64, error) {
	var all []*domain.Transaction
	for _, t := range r.store.Transactions {
		if t.UserID == userID && matches(t, f) {
			cp := *t
			cp.TagIDs = append([]uuid.UUID(nil), t.TagIDs...)
			all = append(all, &cp)
		}
	}
	key := func(a, b *domain.Transaction) (less, equal bool) {
		switch f.SortBy {
		case "amount":
			return a.Amount < b.Amount, a.Amount == b.Amount
		case "description":
			return a.Description < b.Description, a.Description == b.Description
		default:
			return a.Date.Before(b.Date), a.Date.Equal(b.Date)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		lt, eq := key(all[i], all[j])
		if eq {
			// ascending id tie-break, same as the SQL ORDER BY
			return all[i].ID.String() < all[j].ID.String()
		}
		if f.SortOrder == "desc" {
			return !lt
		}
		return lt
	})
	total := int64(len(all))
	if f.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && f.Limit < len(all) {
		all = all[:f.Limit]
	}
	return all, total, nil
}

func (r *transactionRepo) Update(_ context.Context, t *domain.Transaction) error {
	for i, existing := range r.store.Transactions {
		if existing.ID == t.ID && existing.UserID == t.UserID {
			cp := *t
			cp.TagIDs = append([]uuid.UUID(nil), t.TagIDs...)
			r.store.Transactions[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *transactionRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, t := range r.store.Transactions {
		if t.ID == id && t.UserID == userID {
			r.store.Transactions = append(r.store.Transactions[:i], r.store.Transactions[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *transactionRepo) DeleteMany(_ context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var kept []*domain.Transaction
	var deleted int64
	for _, t := range r.store.Transactions {
		if t.UserID == userID && want[t.ID] {
			deleted++
			continue
		}
		kept = append(kept, t)
	}
	r.store.Transactions = kept
	return deleted, nil
}

func (r *transactionRepo) CountByAccount(_ context.Context, userID, accountID uuid.UUID) (int64, error) {
	var n int64
	for _, t := range r.store.Transactions {
		if t.UserID == userID && t.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

func (r *transactionRepo) CountByCategory(_ context.Context, userID, categoryID uuid.UUID) (int64, error) {
	var n int64
	for _, t := range r.store.Transactions {
		if t.UserID == userID && t.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *transactionRepo) ReassignCategory(_ context.Context, userID, fromCategory, toCategory uuid.UUID) error {
	for _, t := range r.store.Transactions {
		if t.UserID == userID && t.CategoryID == fromCategory {
			t.CategoryID = toCategory
		}
	}
	return nil
}

func (r *transactionRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, t := range r.store.Transactions {
		if t.UserID == userID {
			cp := *t
			cp.TagIDs = append([]uuid.UUID(nil), t.TagIDs...)
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- tags ----

type tagRepo struct{ store *Store }

func (r *tagRepo) Create(_ context.Context, t *domain.Tag) error {
	cp := *t
	r.store.Tags = append(r.store.Tags, &cp)
	return nil
}

func (r *tagRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.Tag, error) {
	for _, t := range r.store.Tags {
		if t.ID == id && t.UserID == userID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *tagRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	var out []*domain.Tag
	for _, t := range r.store.Tags {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *tagRepo) Update(_ context.Context, t *domain.Tag) error {
	for i, existing := range r.store.Tags {
		if existing.ID == t.ID && existing.UserID == t.UserID {
			cp := *t
			r.store.Tags[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *tagRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, t := range r.store.Tags {
		if t.ID == id && t.UserID == userID {
			r.store.Tags = append(r.store.Tags[:i], r.store.Tags[i+1:]...)
			// Drop the tag from every transaction, like the SQL cascade.
			for _, tx := range r.store.Transactions {
				for j, tagID := range tx.TagIDs {
					if tagID == id {
						tx.TagIDs = append(tx.TagIDs[:j], tx.TagIDs[j+1:]...)
						break
					}
				}
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// ---- budgets ----

type budgetRepo struct{ store *Store }

func (r *budgetRepo) Create(_ context.Context, b *domain.Budget) error {
	cp := *b
	r.store.Budgets = append(r.store.Budgets, &cp)
	return nil
}

func (r *budgetRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.Budget, error) {
	for _, b := range r.store.Budgets {
		if b.ID == id && b.UserID == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *budgetRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Budget, error) {
	var out []*domain.Budget
	for _, b := range r.store.Budgets {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *budgetRepo) Update(_ context.Context, b *domain.Budget) error {
	for i, existing := range r.store.Budgets {
		if existing.ID == b.ID && existing.UserID == b.UserID {
			cp := *b
			r.store.Budgets[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *budgetRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, b := range r.store.Budgets {
		if b.ID == id && b.UserID == userID {
			r.store.Budgets = append(r.store.Budgets[:i], r.store.Budgets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *budgetRepo) ListActiveAll(_ context.Context) ([]*domain.Budget, error) {
	var out []*domain.Budget
	for _, b := range r.store.Budgets {
		if b.IsActive {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- goals ----

type goalRepo struct{ store *Store }

func (r *goalRepo) Create(_ context.Context, g *domain.Goal) error {
	cp := *g
	r.store.Goals = append(r.store.Goals, &cp)
	return nil
}

func (r *goalRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.Goal, error) {
	for _, g := range r.store.Goals {
		if g.ID == id && g.UserID == userID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *goalRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	var out []*domain.Goal
	for _, g := range r.store.Goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *goalRepo) Update(_ context.Context, g *domain.Goal) error {
	for i, existing := range r.store.Goals {
		if existing.ID == g.ID && existing.UserID == g.UserID {
			cp := *g
			r.store.Goals[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *goalRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, g := range r.store.Goals {
		if g.ID == id && g.UserID == userID {
			r.store.Goals = append(r.store.Goals[:i], r.store.Goals[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ---- alerts ----

type alertRepo struct{ store *Store }

func (r *alertRepo) Create(_ context.Context, a *domain.Alert) error {
	cp := *a
	r.store.Alerts = append(r.store.Alerts, &cp)
	return nil
}

func (r *alertRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.Alert, error) {
	for _, a := range r.store.Alerts {
		if a.ID == id && a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *alertRepo) ListByUser(_ context.Context, userID uuid.UUID, includeDismissed bool) ([]*domain.Alert, error) {
	var out []*domain.Alert
	for _, a := range r.store.Alerts {
		if a.UserID != userID {
			continue
		}
		if a.IsDismissed && !includeDismissed {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *alertRepo) FindOpen(_ context.Context, userID uuid.UUID, typ domain.AlertType, severity domain.AlertSeverity, entityID uuid.UUID) (*domain.Alert, error) {
	for _, a := range r.store.Alerts {
		if a.UserID != userID || a.IsDismissed || a.EntityID == nil {
			continue
		}
		if a.Type == typ && a.Severity == severity && *a.EntityID == entityID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *alertRepo) Update(_ context.Context, a *domain.Alert) error {
	for i, existing := range r.store.Alerts {
		if existing.ID == a.ID && existing.UserID == a.UserID {
			cp := *a
			r.store.Alerts[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *alertRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, a := range r.store.Alerts {
		if a.ID == id && a.UserID == userID {
			r.store.Alerts = append(r.store.Alerts[:i], r.store.Alerts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *alertRepo) DeleteDismissedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []*domain.Alert
	var deleted int64
	for _, a := range r.store.Alerts {
		if a.IsDismissed && a.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	r.store.Alerts = kept
	return deleted, nil
}

// ---- schedules ----

type scheduleRepo struct{ store *Store }

func (r *scheduleRepo) Create(_ context.Context, s *domain.Schedule) error {
	cp := *s
	r.store.Schedules = append(r.store.Schedules, &cp)
	return nil
}

func (r *scheduleRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.Schedule, error) {
	for _, s := range r.store.Schedules {
		if s.ID == id && s.UserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *scheduleRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Schedule, error) {
	var out []*domain.Schedule
	for _, s := range r.store.Schedules {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *scheduleRepo) Update(_ context.Context, s *domain.Schedule) error {
	for i, existing := range r.store.Schedules {
		if existing.ID == s.ID && existing.UserID == s.UserID {
			cp := *s
			r.store.Schedules[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *scheduleRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, s := range r.store.Schedules {
		if s.ID == id && s.UserID == userID {
			r.store.Schedules = append(r.store.Schedules[:i], r.store.Schedules[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *scheduleRepo) ListDue(_ context.Context, day time.Time) ([]*domain.Schedule, error) {
	var out []*domain.Schedule
	for _, s := range r.store.Schedules {
		if s.IsActive && !s.NextDate.After(day) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- crypto wallets ----

type walletRepo struct{ store *Store }

func (r *walletRepo) Create(_ context.Context, w *domain.CryptoWallet) error {
	cp := *w
	r.store.Wallets = append(r.store.Wallets, &cp)
	return nil
}

func (r *walletRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.CryptoWallet, error) {
	for _, w := range r.store.Wallets {
		if w.ID == id && w.UserID == userID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *walletRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.CryptoWallet, error) {
	var out []*domain.CryptoWallet
	for _, w := range r.store.Wallets {
		if w.UserID == userID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *walletRepo) Update(_ context.Context, w *domain.CryptoWallet) error {
	for i, existing := range r.store.Wallets {
		if existing.ID == w.ID && existing.UserID == w.UserID {
			cp := *w
			r.store.Wallets[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *walletRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, w := range r.store.Wallets {
		if w.ID == id && w.UserID == userID {
			r.store.Wallets = append(r.store.Wallets[:i], r.store.Wallets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ---- crypto assets ----

type assetRepo struct{ store *Store }

func (r *assetRepo) Create(_ context.Context, a *domain.CryptoAsset) error {
	cp := *a
	r.store.Assets = append(r.store.Assets, &cp)
	return nil
}

func (r *assetRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.CryptoAsset, error) {
	for _, a := range r.store.Assets {
		if a.ID == id && a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *assetRepo) ListByWallet(_ context.Context, userID, walletID uuid.UUID) ([]*domain.CryptoAsset, error) {
	var out []*domain.CryptoAsset
	for _, a := range r.store.Assets {
		if a.UserID == userID && a.WalletID == walletID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *assetRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.CryptoAsset, error) {
	var out []*domain.CryptoAsset
	for _, a := range r.store.Assets {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *assetRepo) Update(_ context.Context, a *domain.CryptoAsset) error {
	for i, existing := range r.store.Assets {
		if existing.ID == a.ID && existing.UserID == a.UserID {
			cp := *a
			r.store.Assets[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *assetRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, a := range r.store.Assets {
		if a.ID == id && a.UserID == userID {
			r.store.Assets = append(r.store.Assets[:i], r.store.Assets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *assetRepo) ListAll(_ context.Context) ([]*domain.CryptoAsset, error) {
	out := make([]*domain.CryptoAsset, 0, len(r.store.Assets))
	for _, a := range r.store.Assets {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

// ---- users ----

type userRepo struct{ store *Store }

func (r *userRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.store.Users {
		if strings.EqualFold(existing.Username, u.Username) || strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrAlreadyExists
		}
	}
	cp := *u
	r.store.Users = append(r.store.Users, &cp)
	return nil
}

func (r *userRepo) Get(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range r.store.Users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.store.Users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.store.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) Update(_ context.Context, u *domain.User) error {
	for i, existing := range r.store.Users {
		if existing.ID == u.ID {
			cp := *u
			r.store.Users[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, u := range r.store.Users {
		if u.ID == id {
			r.store.Users = append(r.store.Users[:i], r.store.Users[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
