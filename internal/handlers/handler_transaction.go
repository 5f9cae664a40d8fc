package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles transaction and installment requests.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{txnService: txnService}

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/:id", h.getTransaction)
		txns.PUT("/:id", h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
		txns.GET("/:id/installments", h.listInstallmentGroup)
	}

	installments := rg.Group("/installments")
	{
		installments.GET("/incomplete", h.listIncompleteInstallments)
		installments.POST("/:id/repair", h.repairInstallments)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an income or expense. With installments > 1 the purchase is split into
// @Description monthly records; only the first one moves the account balance.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.CreateTransactionResponse
// @Success 207 {object} dto.PartialFailureResponse "Some installments could not be stored"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Category, account or credit card not found"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create transaction",
		slog.String("type", string(req.Type)), slog.Int("installments", req.Installments))

	created, err := h.txnService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "create transaction")
		return
	}

	logger.Info("Transaction created successfully",
		slog.String("transaction_id", created[0].TransactionID), slog.Int("records", len(created)))
	c.JSON(http.StatusCreated, dto.CreateTransactionResponse{Transactions: dto.ToListTransactionResponse(created)})
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions newest first, one page at a time
// @Tags transactions
// @Produce  json
// @Param   period query string false "thisMonth, lastMonth, thisYear or custom" default(thisMonth)
// @Param   start query string false "Custom period start (YYYY-MM-DD)"
// @Param   end query string false "Custom period end (YYYY-MM-DD)"
// @Param   userID query string false "Owner filter"
// @Param   accountID query string false "Account filter"
// @Param   creditCardID query string false "Credit card filter"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if !bindQuery(c, &params) {
		return
	}
	txns, next, err := h.txnService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToListTransactionResponse(txns),
		NextToken:    next,
	})
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	txn, err := h.txnService.GetTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Edits a single record and moves its balance effect accordingly. Other installments are untouched.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "New values"
// @Success 200 {object} dto.TransactionResponse
// @Success 207 {object} dto.PartialFailureResponse "Saved but the balance effect is pending"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	txn, err := h.txnService.UpdateTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Reverses the record's balance effect, then removes it
// @Tags transactions
// @Param   id path string true "Transaction ID"
// @Success 204
// @Success 207 {object} dto.PartialFailureResponse "Not deleted and the balance effect is pending"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.txnService.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// listInstallmentGroup godoc
// @Summary List the installments of a purchase
// @Tags installments
// @Produce  json
// @Param   id path string true "Any transaction ID of the purchase"
// @Success 200 {array} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id}/installments [get]
func (h *transactionHandler) listInstallmentGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	group, err := h.txnService.ListInstallmentGroup(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "list installments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(group))
}

// listIncompleteInstallments godoc
// @Summary List purchases with missing installments
// @Tags installments
// @Produce  json
// @Success 200 {array} dto.IncompleteInstallmentResponse
// @Security BearerAuth
// @Router /installments/incomplete [get]
func (h *transactionHandler) listIncompleteInstallments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	items, err := h.txnService.ListIncompleteInstallments(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "list incomplete installments")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncompleteInstallmentResponses(items))
}

// repairInstallments godoc
// @Summary Recreate missing installments
// @Description Creates the installments a partial failure left out. Balances are not changed.
// @Tags installments
// @Produce  json
// @Param   id path string true "Parent transaction ID"
// @Success 200 {array} dto.TransactionResponse "Records created by the repair"
// @Success 207 {object} dto.PartialFailureResponse "Repair stopped midway"
// @Failure 400 {object} map[string]string "Transaction is not an installment parent"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /installments/{id}/repair [post]
func (h *transactionHandler) repairInstallments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	created, err := h.txnService.RepairInstallments(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "repair installments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(created))
}
