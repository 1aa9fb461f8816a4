package repository

import "context"

// UnitOfWork groups repository access with a transaction boundary. All
// repositories obtained inside Do share one database session, so a multi-step
// write (materializing a schedule, merging categories, importing a snapshot)
// either fully commits or fully rolls back.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork handed to
	// fn is bound to that transaction; returning an error rolls it back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Accounts() (AccountRepository, error)
	Categories() (CategoryRepository, error)
	Transactions() (TransactionRepository, error)
	Tags() (TagRepository, error)
	Budgets() (BudgetRepository, error)
	Goals() (GoalRepository, error)
	Alerts() (AlertRepository, error)
	Schedules() (ScheduleRepository, error)
	Wallets() (WalletRepository, error)
	Assets() (AssetRepository, error)
	Users() (UserRepository, error)
}
