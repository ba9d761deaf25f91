package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single ledger entry.
//
// Amount carries the sign convention used by the summary aggregates:
// positive values are income, negative values are expense. The convention
// is not enforced by the schema; nothing stops a caller from inverting it.
type Transaction struct {
	ID        int64           `json:"id" db:"id"`
	UserID    string          `json:"user_id" db:"user_id"`
	Title     string          `json:"title" db:"title"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Category  string          `json:"category" db:"category"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// CreateTransactionRequest is the request body for creating a transaction.
// Amount is a pointer so an absent field is distinguishable from zero,
// which is a legal amount.
type CreateTransactionRequest struct {
	UserID   string           `json:"user_id"`
	Title    string           `json:"title"`
	Amount   *decimal.Decimal `json:"amount"`
	Category string           `json:"category"`
}

// TransactionSummary is the aggregate triple for one user. Income sums the
// positive amounts, Expense the negative ones, Balance everything; all
// three are zero for a user without transactions.
type TransactionSummary struct {
	Balance decimal.Decimal `json:"balance" db:"balance"`
	Income  decimal.Decimal `json:"income" db:"income"`
	Expense decimal.Decimal `json:"expense" db:"expense"`
}
