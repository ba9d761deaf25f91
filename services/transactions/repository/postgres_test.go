package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetyarda/walletwise/internal/pkg/models"
)

func setupRepoTest(t *testing.T) (*PostgresTransactionRepo, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return &PostgresTransactionRepo{db: sqlxDB}, mock
}

func TestInitSchema(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	defer sqlxDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS transactions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = InitSchema(context.Background(), sqlxDB)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchema_Error(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	defer sqlxDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS transactions").
		WillReturnError(errors.New("permission denied"))

	err = InitSchema(context.Background(), sqlxDB)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize transactions schema")
}

func TestListByUser(t *testing.T) {
	testCases := []struct {
		name       string
		userID     string
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, records []models.Transaction, err error)
	}{
		{
			name:   "Success - newest first",
			userID: "u1",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "title", "amount", "category", "created_at"}).
					AddRow(int64(7), "u1", "Salary", "100.00", "Income", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)).
					AddRow(int64(3), "u1", "Coffee", "-3.50", "Food", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
				mock.ExpectQuery("(?s)SELECT .+ FROM transactions\\s+WHERE user_id = \\$1\\s+ORDER BY created_at DESC, id DESC").
					WithArgs("u1").
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, records []models.Transaction, err error) {
				require.NoError(t, err)
				require.Len(t, records, 2)
				assert.Equal(t, int64(7), records[0].ID)
				assert.Equal(t, "Salary", records[0].Title)
				assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("100.00")))
				assert.Equal(t, int64(3), records[1].ID)
				assert.True(t, records[1].Amount.Equal(decimal.RequireFromString("-3.50")))
			},
		},
		{
			name:   "Unknown user - empty slice, not an error",
			userID: "nobody",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "title", "amount", "category", "created_at"})
				mock.ExpectQuery("(?s)SELECT .+ FROM transactions").
					WithArgs("nobody").
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, records []models.Transaction, err error) {
				require.NoError(t, err)
				assert.NotNil(t, records)
				assert.Empty(t, records)
			},
		},
		{
			name:   "Store error",
			userID: "u1",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("(?s)SELECT .+ FROM transactions").
					WithArgs("u1").
					WillReturnError(errors.New("connection reset"))
			},
			assertFunc: func(t *testing.T, records []models.Transaction, err error) {
				assert.Error(t, err)
				assert.Nil(t, records)
				assert.Contains(t, err.Error(), "failed to list transactions")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := setupRepoTest(t)
			tc.mockSetup(mock)

			records, err := repo.ListByUser(context.Background(), tc.userID)

			tc.assertFunc(t, records, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreate(t *testing.T) {
	repo, mock := setupRepoTest(t)

	amount := decimal.RequireFromString("-3.50")
	createdAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("(?s)INSERT INTO transactions \\(user_id, title, amount, category\\).+RETURNING id, created_at").
		WithArgs("u1", "Coffee", amount, "Food").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), createdAt))

	transaction := &models.Transaction{
		UserID:   "u1",
		Title:    "Coffee",
		Amount:   amount,
		Category: "Food",
	}

	err := repo.Create(context.Background(), transaction)

	require.NoError(t, err)
	assert.Equal(t, int64(42), transaction.ID)
	assert.Equal(t, createdAt, transaction.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Error(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &models.Transaction{
		UserID:   "u1",
		Title:    "Coffee",
		Amount:   decimal.RequireFromString("-3.50"),
		Category: "Food",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create transaction")
}

func TestDeleteByID(t *testing.T) {
	testCases := []struct {
		name        string
		id          int64
		mockSetup   func(mock sqlmock.Sqlmock)
		wantDeleted bool
		wantErr     bool
	}{
		{
			name: "Deleted existing row",
			id:   42,
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM transactions WHERE id = \\$1").
					WithArgs(int64(42)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantDeleted: true,
		},
		{
			name: "Nonexistent row - false without error",
			id:   999,
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM transactions WHERE id = \\$1").
					WithArgs(int64(999)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantDeleted: false,
		},
		{
			name: "Store error",
			id:   42,
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM transactions WHERE id = \\$1").
					WithArgs(int64(42)).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := setupRepoTest(t)
			tc.mockSetup(mock)

			deleted, err := repo.DeleteByID(context.Background(), tc.id)

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantDeleted, deleted)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSummarize(t *testing.T) {
	repo, mock := setupRepoTest(t)

	rows := sqlmock.NewRows([]string{"balance", "income", "expense"}).
		AddRow("49.50", "100.00", "-50.50")
	mock.ExpectQuery("(?s)SELECT\\s+COALESCE\\(SUM\\(amount\\), 0\\) AS balance.+WHERE user_id = \\$1").
		WithArgs("u2").
		WillReturnRows(rows)

	summary, err := repo.Summarize(context.Background(), "u2")

	require.NoError(t, err)
	assert.True(t, summary.Balance.Equal(decimal.RequireFromString("49.50")))
	assert.True(t, summary.Income.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, summary.Expense.Equal(decimal.RequireFromString("-50.50")))
	// balance = income + expense holds exactly, no float drift
	assert.True(t, summary.Balance.Equal(summary.Income.Add(summary.Expense)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummarize_EmptyUserDefaultsToZero(t *testing.T) {
	repo, mock := setupRepoTest(t)

	rows := sqlmock.NewRows([]string{"balance", "income", "expense"}).
		AddRow("0", "0", "0")
	mock.ExpectQuery("(?s)SELECT\\s+COALESCE").
		WithArgs("nobody").
		WillReturnRows(rows)

	summary, err := repo.Summarize(context.Background(), "nobody")

	require.NoError(t, err)
	assert.True(t, summary.Balance.IsZero())
	assert.True(t, summary.Income.IsZero())
	assert.True(t, summary.Expense.IsZero())
}

func TestSummarize_Error(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectQuery("(?s)SELECT\\s+COALESCE").
		WithArgs("u2").
		WillReturnError(errors.New("connection reset"))

	summary, err := repo.Summarize(context.Background(), "u2")

	assert.Error(t, err)
	assert.Nil(t, summary)
	assert.Contains(t, err.Error(), "failed to summarize transactions")
}
