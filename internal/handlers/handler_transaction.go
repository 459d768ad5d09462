package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/SscSPs/finance_planner/internal/dto"
	"github.com/SscSPs/finance_planner/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler serves transaction reads and ledger writes.
type transactionHandler struct {
	ledger portssvc.LedgerSvc
	reader portssvc.TransactionReaderSvc
}

func registerTransactionRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvc, reader portssvc.TransactionReaderSvc) {
	h := &transactionHandler{ledger: ledger, reader: reader}

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.POST("/batch", h.createTransactionBatch)
		txns.GET("", h.listTransactions)
		txns.GET("/:id", h.getTransaction)
		txns.PATCH("/:id", h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Persists one transaction and adds its amount to the account balance atomically.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Ledger operation failed"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	txn, err := h.ledger.CreateTransaction(c.Request.Context(), authCtx, req)
	if err != nil {
		respondError(c, err, "create transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// createTransactionBatch godoc
// @Summary Record up to 100 transactions at once
// @Description All transactions are written to one account in a single unit; either all persist or none do.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   batch body dto.BatchCreateTransactionsRequest true "Batch"
// @Success 201 {object} dto.BatchCreateTransactionsResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Ledger operation failed"
// @Security BearerAuth
// @Router /transactions/batch [post]
func (h *transactionHandler) createTransactionBatch(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}
	var req dto.BatchCreateTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	result, err := h.ledger.CreateTransactionBatch(c.Request.Context(), authCtx, req)
	if err != nil {
		respondError(c, err, "create transaction batch")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBatchResponse(result))
}

// listTransactions godoc
// @Summary List transactions
// @Description Filters are AND-combined; tags matches any of the comma-separated values.
// @Tags transactions
// @Produce  json
// @Param   account_id query string false "Account ID"
// @Param   start_date query string false "Inclusive start (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end (YYYY-MM-DD)"
// @Param   category query string false "Category"
// @Param   merchant query string false "Merchant"
// @Param   tags query string false "Comma-separated tags"
// @Param   der_category query string false "Derived category"
// @Param   der_merchant query string false "Derived merchant"
// @Param   limit query int false "Page size" default(100)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	txns, total, err := h.reader.ListTransactions(c.Request.Context(), authCtx, params)
	if err != nil {
		respondError(c, err, "list transactions")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Transactions listed",
		slog.Int("count", len(txns)), slog.Int("total", total))
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Total:        total,
	})
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}

	txn, err := h.reader.GetTransaction(c.Request.Context(), authCtx, c.Param("id"))
	if err != nil {
		respondError(c, err, "get transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Absent fields are unchanged. A new amount moves the balance by the difference.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Ledger operation failed"
// @Security BearerAuth
// @Router /transactions/{id} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	txn, err := h.ledger.UpdateTransaction(c.Request.Context(), authCtx, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "update transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes the transaction and reverses its amount on the account balance.
// @Tags transactions
// @Param   id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Ledger operation failed"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}

	if err := h.ledger.DeleteTransaction(c.Request.Context(), authCtx, c.Param("id")); err != nil {
		respondError(c, err, "delete transaction")
		return
	}

	c.Status(http.StatusNoContent)
}
