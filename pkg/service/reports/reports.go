// Package reports assembles the read-only aggregations: dashboard summary,
// cash flow, and category roll-ups. Everything here is derived on demand
// from the stored rows; nothing is persisted.
package reports

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/report"
	"github.com/tincan-finance/tincan/pkg/repository"
)

// Service computes reports over a user's data.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a reports service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "reports")}
}

// Summary is the dashboard overview: net worth plus current-month flow.
type Summary struct {
	NetWorth       float64 `json:"netWorth"`
	MonthIncome    float64 `json:"monthIncome"`
	MonthExpense   float64 `json:"monthExpense"` // negative
	MonthNet       float64 `json:"monthNet"`
	AccountCount   int     `json:"accountCount"`
	UnreviewedTxns int     `json:"unreviewedTransactions"`
}

// Dashboard computes the overview for now's calendar month.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID, now time.Time) (Summary, error) {
	var (
		accounts []*domain.Account
		txs      []*domain.Transaction
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accountRepo, err := uow.Accounts()
		if err != nil {
			return err
		}
		transactionRepo, err := uow.Transactions()
		if err != nil {
			return err
		}
		accounts, err = accountRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		txs, err = transactionRepo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return Summary{}, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	sum := Summary{NetWorth: report.NetWorth(accounts)}
	for _, a := range accounts {
		if a.IsActive && !a.IsHidden {
			sum.AccountCount++
		}
	}
	flow := report.CashFlow(txs, monthStart, monthEnd)
	for _, b := range flow {
		sum.MonthIncome += b.Income
		sum.MonthExpense += b.Expense
		sum.MonthNet += b.Net
	}
	for _, t := range txs {
		if !t.IsReviewed {
			sum.UnreviewedTxns++
		}
	}
	return sum, nil
}

// CashFlow buckets the user's transactions over [start, end]; bucket size is
// derived from the span.
func (s *Service) CashFlow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]report.CashFlowBucket, error) {
	txs, err := s.transactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return report.CashFlow(txs, start, end), nil
}

// CategoryRollup computes the recursive roll-up for one category subtree.
func (s *Service) CategoryRollup(ctx context.Context, userID, categoryID uuid.UUID) (report.CategoryRollup, error) {
	var (
		cats []*domain.Category
		txs  []*domain.Transaction
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		if _, err := categories.Get(ctx, userID, categoryID); err != nil {
			return err
		}
		cats, err = categories.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		txs, err = transactions.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return report.CategoryRollup{}, err
	}
	return report.RollUp(cats, txs, categoryID), nil
}

// CategoryRollups computes the roll-up for every root category of the user.
func (s *Service) CategoryRollups(ctx context.Context, userID uuid.UUID) ([]report.CategoryRollup, error) {
	var (
		cats []*domain.Category
		txs  []*domain.Transaction
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		cats, err = categories.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		txs, err = transactions.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	var out []report.CategoryRollup
	for _, c := range cats {
		if c.IsRoot() {
			out = append(out, report.RollUp(cats, txs, c.ID))
		}
	}
	return out, nil
}

func (s *Service) transactions(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		txs, err = transactions.ListByUser(ctx, userID)
		return err
	})
	return txs, err
}
