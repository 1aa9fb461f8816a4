package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/pkg/repository"
)

// UoW binds repository access to a transaction boundary: every repository
// obtained from the UnitOfWork handed to Do shares the same gorm session, so
// multi-step writes commit or roll back as one.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a unit of work over the given connection.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a database transaction. Returning an error rolls it back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the base connection outside.
func (u *UoW) session() (*gorm.DB, error) {
	if u.tx != nil {
		return u.tx, nil
	}
	if u.db == nil {
		return nil, errors.New("unit of work has no database session")
	}
	return u.db, nil
}

func (u *UoW) Accounts() (repository.AccountRepository, error) {
	s, err := u.session()
	if err != nil {
		return nil, err
	}
	return &accountRepository{db: s}, nil
}

func (u *UoW) Categories() (repository.CategoryRepository, error) {
	s, err := u.session()
	if err != nil {
		return nil, err
	}
	return &categoryRepository{db: s}, nil
}

func (u *UoW) Transactions() (repository.TransactionRepository, error) {
	s, err := u.session()
	if err != nil {
		return nil, err
	}
	return &transactionRepository{db: s}, nil
}

func (u *UoW) Tags() (repository.TagRepository, error) {
	s, err := u.session()
	if err != nil {
		return nil, err
	}
	return &tagRepository{db: s}, nil
}

func (u *UoW) Budgets() (repository.BudgetRepository, error) {
	s, err := u.session()
	if err != nil {
		return nil, err
	}
	return &budgetRepository{db: s}, nil
}

func (u *UoW) Goals() (repository.GoalRepository, error) {
	s, err := u.session()
	if err != nil {
		return nil, err
	}
	return &goalRepository{db: s}, nil
}

func (u *UoW) Alerts() (repository.AlertRepository, error) {
	s, err := u.session()
	if err != nil {
		return nil, err
	}
	return &alertRepository{db: s}, nil
}

func (u *UoW) Schedules() (repository.ScheduleRepository, error) {
	s, err := u.session()
	if err != nil {
		return nil, err
	}
	return &scheduleRepository{db: s}, nil
}

func (u *UoW) Wallets() (repository.WalletRepository, error) {
	s, err := u.session()
	if err != nil {
		return nil, err
	}
	return &walletRepository{db: s}, nil
}

func (u *UoW) Assets() (repository.AssetRepository, error) {
	s, err := u.session()
	if err != nil {
		return nil, err
	}
	return &assetRepository{db: s}, nil
}

func (u *UoW) Users() (repository.UserRepository, error) {
	s, err := u.session()
	if err != nil {
		return nil, err
	}
	return &userRepository{db: s}, nil
}
