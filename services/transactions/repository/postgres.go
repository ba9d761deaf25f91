package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/prasetyarda/walletwise/internal/pkg/models"
	"github.com/prasetyarda/walletwise/services/transactions"
)

// schemaDDL creates the transactions table. Idempotent; run once at
// startup and fatal to the process if it fails.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS transactions(
	id SERIAL PRIMARY KEY,
	user_id VARCHAR(255) NOT NULL,
	title VARCHAR(255) NOT NULL,
	amount DECIMAL(10,2) NOT NULL,
	category VARCHAR(255) NOT NULL,
	created_at DATE NOT NULL DEFAULT CURRENT_DATE
)`

// InitSchema creates the transactions table if it does not exist yet.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to initialize transactions schema: %w", err)
	}
	return nil
}

// PostgresTransactionRepo implements the transactions.TransactionRepo interface
type PostgresTransactionRepo struct {
	db *sqlx.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sqlx.DB) transactions.TransactionRepo {
	return &PostgresTransactionRepo{
		db: db,
	}
}

// ListByUser returns the user's transactions newest first, ties broken by
// id descending so same-day entries order deterministically.
func (r *PostgresTransactionRepo) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, title, amount, category, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	records := []models.Transaction{}
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return records, nil
}

// Create inserts a new transaction row and populates the generated id and
// created_at from the database.
func (r *PostgresTransactionRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, title, amount, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		transaction.UserID,
		transaction.Title,
		transaction.Amount,
		transaction.Category,
	).Scan(&transaction.ID, &transaction.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// DeleteByID removes one row. Zero rows affected is reported as false,
// not as an error.
func (r *PostgresTransactionRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Summarize computes balance, income and expense in one statement so the
// three sums can never disagree about which rows they counted.
func (r *PostgresTransactionRepo) Summarize(ctx context.Context, userID string) (*models.TransactionSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount), 0) AS balance,
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN amount < 0 THEN amount ELSE 0 END), 0) AS expense
		FROM transactions
		WHERE user_id = $1
	`

	var summary models.TransactionSummary
	if err := r.db.GetContext(ctx, &summary, query, userID); err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	return &summary, nil
}
