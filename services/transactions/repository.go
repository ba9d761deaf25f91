package transactions

import (
	"context"

	"github.com/prasetyarda/walletwise/internal/pkg/models"
)

// TransactionRepo owns the persisted ledger rows. Every operation is a
// single atomic SQL statement; concurrent create/delete on the same user
// rely on the database's row-level atomicity, not on locks here.
type TransactionRepo interface {
	// ListByUser returns the user's transactions newest first
	// (created_at descending, ties broken by id descending). An unknown
	// user yields an empty slice, not an error.
	ListByUser(ctx context.Context, userID string) ([]models.Transaction, error)

	// Create inserts the transaction and fills in the generated ID and
	// CreatedAt on success.
	Create(ctx context.Context, transaction *models.Transaction) error

	// DeleteByID removes the row with the given id. It returns false
	// when no row matched; that is a normal outcome, not an error.
	DeleteByID(ctx context.Context, id int64) (bool, error)

	// Summarize computes the balance/income/expense triple for one user
	// in a single statement, so the three sums always describe the same
	// snapshot.
	Summarize(ctx context.Context, userID string) (*models.TransactionSummary, error)
}
