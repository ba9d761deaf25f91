package transactions

import (
	"context"

	"github.com/prasetyarda/walletwise/internal/pkg/models"
)

// TransactionUC is the application-facing contract over the ledger.
// Validation happens here, before any store access; errors carry
// apperrors kinds the HTTP layer maps to status codes.
type TransactionUC interface {
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	GetSummary(ctx context.Context, userID string) (*models.TransactionSummary, error)
}
