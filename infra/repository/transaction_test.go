package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tincan-finance/tincan/pkg/repository"
)

func TestTransactionList_OrdersWithIDTieBreak(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &transactionRepository{db: db}

	userID := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "transactions" WHERE transactions\.user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// Rows with equal dates must keep a fixed relative order across
	// OFFSET pages, so the sort always ends on the id column.
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE transactions\.user_id = \$1 ORDER BY date DESC, id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, total, err := repo.List(context.Background(), userID, repository.TransactionFilter{
		SortOrder: "desc",
		Limit:     20,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionList_SortByAmountKeepsTieBreak(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &transactionRepository{db: db}

	userID := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE transactions\.user_id = \$1 ORDER BY amount, id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := repo.List(context.Background(), userID, repository.TransactionFilter{
		SortBy: "amount",
		Limit:  20,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
