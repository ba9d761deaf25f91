package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prasetyarda/walletwise/services/transactions"
)

// TransactionHandler handles HTTP requests for ledger operations
type TransactionHandler struct {
	transactionUC transactions.TransactionUC
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionUC transactions.TransactionUC) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
	}
}

// RegisterRoutes registers the transaction routes. gateMiddleware runs
// before every route here, so a denied request never reaches a handler.
func (h *TransactionHandler) RegisterRoutes(e *echo.Echo, gateMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/transactions", gateMiddleware)

	g.GET("/:user_id", h.ListTransactions)
	g.POST("", h.CreateTransaction)
	g.DELETE("/:id", h.DeleteTransaction)
	g.GET("/summary/:userId", h.GetSummary)
}
