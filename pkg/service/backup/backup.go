// Package backup exports and imports a user's full data set as a versioned
// snapshot. Import is all-or-nothing: the payload is validated record by
// record and cross-checked for referential integrity before anything is
// written, and the whole write runs in one transaction boundary.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/repository"
)

// Service exports and imports user snapshots.
type Service struct {
	uow      repository.UnitOfWork
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a backup service.
func New(uow repository.UnitOfWork, validate *validator.Validate, logger *slog.Logger) *Service {
	return &Service{uow: uow, validate: validate, logger: logger.With("service", "backup")}
}

// Export collects every record the user owns into one snapshot.
func (s *Service) Export(ctx context.Context, userID uuid.UUID) (*dto.Snapshot, error) {
	snap := &dto.Snapshot{
		ExportDate: time.Now().UTC(),
		Version:    dto.SnapshotVersion,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		tags, err := uow.Tags()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		budgets, err := uow.Budgets()
		if err != nil {
			return err
		}
		goals, err := uow.Goals()
		if err != nil {
			return err
		}
		schedules, err := uow.Schedules()
		if err != nil {
			return err
		}

		as, err := accounts.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, a := range as {
			snap.Accounts = append(snap.Accounts, dto.SnapshotAccount{
				ID: a.ID, Name: a.Name, Type: string(a.Type), Balance: a.Balance,
				Color: a.Color, Institution: a.Institution, IsActive: a.IsActive, IsHidden: a.IsHidden,
			})
		}

		cs, err := categories.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, c := range cs {
			snap.Categories = append(snap.Categories, dto.SnapshotCategory{
				ID: c.ID, Name: c.Name, Color: c.Color, Type: string(c.Type), ParentID: c.ParentID,
			})
		}

		ts, err := tags.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, t := range ts {
			snap.Tags = append(snap.Tags, dto.SnapshotTag{ID: t.ID, Name: t.Name, Color: t.Color})
		}

		txs, err := transactions.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, t := range txs {
			snap.Transactions = append(snap.Transactions, dto.SnapshotTransaction{
				ID: t.ID, AccountID: t.AccountID, CategoryID: t.CategoryID, ScheduleID: t.ScheduleID,
				Description: t.Description, Amount: t.Amount, Date: t.Date, Notes: t.Notes,
				TagIDs: t.TagIDs, IsReviewed: t.IsReviewed,
			})
		}

		bs, err := budgets.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, b := range bs {
			snap.Budgets = append(snap.Budgets, dto.SnapshotBudget{
				ID: b.ID, Name: b.Name, Amount: b.Amount, Period: string(b.Period),
				CategoryID: b.CategoryID, StartDate: b.StartDate, EndDate: b.EndDate, IsActive: b.IsActive,
			})
		}

		gs, err := goals.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, g := range gs {
			snap.Goals = append(snap.Goals, dto.SnapshotGoal{
				ID: g.ID, Name: g.Name, Description: g.Description, TargetAmount: g.TargetAmount,
				CurrentAmount: g.CurrentAmount, TargetDate: g.TargetDate, IsCompleted: g.IsCompleted,
			})
		}

		scs, err := schedules.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, sc := range scs {
			snap.Schedules = append(snap.Schedules, dto.SnapshotSchedule{
				ID: sc.ID, Name: sc.Name, Amount: sc.Amount, Type: string(sc.Type),
				AccountID: sc.AccountID, CategoryID: sc.CategoryID, Frequency: string(sc.Frequency),
				CustomDays: sc.CustomDays, NextDate: sc.NextDate, EndDate: sc.EndDate, IsActive: sc.IsActive,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("snapshot exported", "userID", userID,
		"accounts", len(snap.Accounts), "transactions", len(snap.Transactions))
	return snap, nil
}

// ImportCounts reports how many records an import wrote.
type ImportCounts struct {
	Accounts     int `json:"accounts"`
	Categories   int `json:"categories"`
	Tags         int `json:"tags"`
	Transactions int `json:"transactions"`
	Budgets      int `json:"budgets"`
	Goals        int `json:"goals"`
	Schedules    int `json:"schedules"`
}

// Import validates a snapshot and writes every record for the user in one
// transaction. Records keep their exported ids. The first violation aborts
// the whole import.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, snap *dto.Snapshot) (ImportCounts, error) {
	var counts ImportCounts
	if err := s.validate.Struct(snap); err != nil {
		return counts, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	if err := checkIntegrity(snap); err != nil {
		return counts, err
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		tags, err := uow.Tags()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		budgets, err := uow.Budgets()
		if err != nil {
			return err
		}
		goals, err := uow.Goals()
		if err != nil {
			return err
		}
		schedules, err := uow.Schedules()
		if err != nil {
			return err
		}

		for _, a := range snap.Accounts {
			if err := accounts.Create(ctx, &domain.Account{
				ID: a.ID, UserID: userID, Name: a.Name, Type: domain.AccountType(a.Type),
				Balance: a.Balance, Color: a.Color, Institution: a.Institution,
				IsActive: a.IsActive, IsHidden: a.IsHidden,
			}); err != nil {
				return fmt.Errorf("account %s: %w", a.ID, err)
			}
			counts.Accounts++
		}
		for _, c := range snap.Categories {
			if err := categories.Create(ctx, &domain.Category{
				ID: c.ID, UserID: userID, Name: c.Name, Color: c.Color,
				Type: domain.CategoryType(c.Type), ParentID: c.ParentID,
			}); err != nil {
				return fmt.Errorf("category %s: %w", c.ID, err)
			}
			counts.Categories++
		}
		for _, t := range snap.Tags {
			if err := tags.Create(ctx, &domain.Tag{
				ID: t.ID, UserID: userID, Name: t.Name, Color: t.Color,
			}); err != nil {
				return fmt.Errorf("tag %s: %w", t.ID, err)
			}
			counts.Tags++
		}
		for _, sc := range snap.Schedules {
			if err := schedules.Create(ctx, &domain.Schedule{
				ID: sc.ID, UserID: userID, AccountID: sc.AccountID, CategoryID: sc.CategoryID,
				Name: sc.Name, Amount: sc.Amount, Type: domain.ScheduleType(sc.Type),
				Frequency: domain.Frequency(sc.Frequency), CustomDays: sc.CustomDays,
				NextDate: sc.NextDate, EndDate: sc.EndDate, IsActive: sc.IsActive,
			}); err != nil {
				return fmt.Errorf("schedule %s: %w", sc.ID, err)
			}
			counts.Schedules++
		}
		for _, t := range snap.Transactions {
			if err := transactions.Create(ctx, &domain.Transaction{
				ID: t.ID, UserID: userID, AccountID: t.AccountID, CategoryID: t.CategoryID,
				ScheduleID: t.ScheduleID, Description: t.Description, Amount: t.Amount,
				Date: t.Date, Notes: t.Notes, TagIDs: t.TagIDs, IsReviewed: t.IsReviewed,
			}); err != nil {
				return fmt.Errorf("transaction %s: %w", t.ID, err)
			}
			counts.Transactions++
		}
		for _, b := range snap.Budgets {
			if err := budgets.Create(ctx, &domain.Budget{
				ID: b.ID, UserID: userID, CategoryID: b.CategoryID, Name: b.Name,
				Amount: b.Amount, Period: domain.BudgetPeriod(b.Period),
				StartDate: b.StartDate, EndDate: b.EndDate, IsActive: b.IsActive,
			}); err != nil {
				return fmt.Errorf("budget %s: %w", b.ID, err)
			}
			counts.Budgets++
		}
		for _, g := range snap.Goals {
			if err := goals.Create(ctx, &domain.Goal{
				ID: g.ID, UserID: userID, Name: g.Name, Description: g.Description,
				TargetAmount: g.TargetAmount, CurrentAmount: g.CurrentAmount,
				TargetDate: g.TargetDate, IsCompleted: g.IsCompleted,
			}); err != nil {
				return fmt.Errorf("goal %s: %w", g.ID, err)
			}
			counts.Goals++
		}
		return nil
	})
	if err != nil {
		return ImportCounts{}, err
	}
	s.logger.Info("snapshot imported", "userID", userID,
		"accounts", counts.Accounts, "transactions", counts.Transactions)
	return counts, nil
}

// checkIntegrity cross-checks every reference inside the snapshot: parents,
// accounts, categories, tags, and schedules must all resolve to records in
// the same payload, and the category graph must be acyclic.
func checkIntegrity(snap *dto.Snapshot) error {
	accountIDs := make(map[uuid.UUID]bool, len(snap.Accounts))
	for _, a := range snap.Accounts {
		if accountIDs[a.ID] {
			return fmt.Errorf("%w: duplicate account id %s", domain.ErrValidation, a.ID)
		}
		accountIDs[a.ID] = true
	}
	categoryIDs := make(map[uuid.UUID]bool, len(snap.Categories))
	for _, c := range snap.Categories {
		if categoryIDs[c.ID] {
			return fmt.Errorf("%w: duplicate category id %s", domain.ErrValidation, c.ID)
		}
		categoryIDs[c.ID] = true
	}
	tagIDs := make(map[uuid.UUID]bool, len(snap.Tags))
	for _, t := range snap.Tags {
		tagIDs[t.ID] = true
	}
	scheduleIDs := make(map[uuid.UUID]bool, len(snap.Schedules))
	for _, sc := range snap.Schedules {
		scheduleIDs[sc.ID] = true
	}

	cats := make([]*domain.Category, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		if c.ParentID != nil && !categoryIDs[*c.ParentID] {
			return fmt.Errorf("%w: category %s references missing parent %s", domain.ErrValidation, c.ID, *c.ParentID)
		}
		cats = append(cats, &domain.Category{ID: c.ID, ParentID: c.ParentID})
	}
	for _, c := range cats {
		if c.ParentID != nil && domain.WouldCycle(cats, c.ID, *c.ParentID) {
			return fmt.Errorf("%w: category %s is part of a parent cycle", domain.ErrValidation, c.ID)
		}
	}

	for _, t := range snap.Transactions {
		if !accountIDs[t.AccountID] {
			return fmt.Errorf("%w: transaction %s references missing account %s", domain.ErrValidation, t.ID, t.AccountID)
		}
		if !categoryIDs[t.CategoryID] {
			return fmt.Errorf("%w: transaction %s references missing category %s", domain.ErrValidation, t.ID, t.CategoryID)
		}
		if t.ScheduleID != nil && !scheduleIDs[*t.ScheduleID] {
			return fmt.Errorf("%w: transaction %s references missing schedule %s", domain.ErrValidation, t.ID, *t.ScheduleID)
		}
		for _, tagID := range t.TagIDs {
			if !tagIDs[tagID] {
				return fmt.Errorf("%w: transaction %s references missing tag %s", domain.ErrValidation, t.ID, tagID)
			}
		}
	}
	for _, b := range snap.Budgets {
		if !categoryIDs[b.CategoryID] {
			return fmt.Errorf("%w: budget %s references missing category %s", domain.ErrValidation, b.ID, b.CategoryID)
		}
	}
	for _, sc := range snap.Schedules {
		if !accountIDs[sc.AccountID] {
			return fmt.Errorf("%w: schedule %s references missing account %s", domain.ErrValidation, sc.ID, sc.AccountID)
		}
		if !categoryIDs[sc.CategoryID] {
			return fmt.Errorf("%w: schedule %s references missing category %s", domain.ErrValidation, sc.ID, sc.CategoryID)
		}
	}
	return nil
}
