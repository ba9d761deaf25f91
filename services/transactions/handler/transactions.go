package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prasetyarda/walletwise/internal/pkg/apperrors"
	"github.com/prasetyarda/walletwise/internal/pkg/logger"
	"github.com/prasetyarda/walletwise/internal/pkg/models"
	"github.com/prasetyarda/walletwise/internal/utils"
)

// statusByKind is the explicit error-kind to HTTP status mapping. Kinds
// missing from the table fall back to 500.
var statusByKind = map[apperrors.Kind]int{
	apperrors.KindValidation:      http.StatusBadRequest,
	apperrors.KindNotFound:        http.StatusNotFound,
	apperrors.KindRateLimited:     http.StatusTooManyRequests,
	apperrors.KindGateUnavailable: http.StatusInternalServerError,
	apperrors.KindStore:           http.StatusInternalServerError,
}

// errorResponse maps a classified error to its status code. Client-caused
// outcomes keep their message; everything else is logged and returned as
// a generic 500 so internals never leak.
func errorResponse(c echo.Context, err error) error {
	status, ok := statusByKind[apperrors.KindOf(err)]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed",
			logger.String("method", c.Request().Method),
			logger.String("path", c.Request().URL.Path),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "")
	}

	return utils.ErrorResponseHandler(c, status, err.Error())
}

// ListTransactions handles GET /api/transactions/:user_id
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID := c.Param("user_id")

	records, err := h.transactionUC.ListTransactions(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, records)
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req models.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	created, err := h.transactionUC.CreateTransaction(c.Request().Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// DeleteTransaction handles DELETE /api/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction id")
	}

	if err := h.transactionUC.DeleteTransaction(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, utils.MessageResponse{
		Message: "Transaction deleted successfully",
	})
}

// GetSummary handles GET /api/transactions/summary/:userId
func (h *TransactionHandler) GetSummary(c echo.Context) error {
	userID := c.Param("userId")

	summary, err := h.transactionUC.GetSummary(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}
