package usecase

import (
	"context"
	"strings"

	"github.com/prasetyarda/walletwise/internal/pkg/apperrors"
	"github.com/prasetyarda/walletwise/internal/pkg/models"
	"github.com/prasetyarda/walletwise/services/transactions"
)

// TransactionService implements the transactions.TransactionUC interface
type TransactionService struct {
	repo transactions.TransactionRepo
}

// NewTransactionUC creates a new transaction use case
func NewTransactionUC(repo transactions.TransactionRepo) transactions.TransactionUC {
	return &TransactionService{
		repo: repo,
	}
}

// ListTransactions returns all transactions for a user, newest first.
// An unknown user gets an empty list, not an error.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to list transactions", err)
	}
	return records, nil
}

// CreateTransaction validates the request and persists a new ledger
// entry. Validation runs before any store access, so a rejected request
// never writes a row.
func (s *TransactionService) CreateTransaction(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:   strings.TrimSpace(req.UserID),
		Title:    strings.TrimSpace(req.Title),
		Amount:   *req.Amount,
		Category: strings.TrimSpace(req.Category),
	}

	if err := s.repo.Create(ctx, transaction); err != nil {
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to create transaction", err)
	}

	return transaction, nil
}

// DeleteTransaction removes one transaction by id. A missing row is a
// not-found outcome, distinct from a store failure.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.KindStore, "failed to delete transaction", err)
	}
	if !deleted {
		return apperrors.New(apperrors.KindNotFound, "Transaction not found")
	}
	return nil
}

// GetSummary returns the balance/income/expense triple for a user. All
// three are zero for a user without transactions.
func (s *TransactionService) GetSummary(ctx context.Context, userID string) (*models.TransactionSummary, error) {
	summary, err := s.repo.Summarize(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to summarize transactions", err)
	}
	return summary, nil
}

// validateCreateRequest checks field presence. Amount is a pointer so an
// explicit zero passes while an absent field does not.
func validateCreateRequest(req *models.CreateTransactionRequest) error {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.UserID) == "" ||
		strings.TrimSpace(req.Category) == "" ||
		req.Amount == nil {
		return apperrors.New(apperrors.KindValidation, "All fields are required!")
	}
	return nil
}
