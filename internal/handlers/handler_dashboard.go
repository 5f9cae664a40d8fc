package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
	now              func() time.Time
}

type monthlySummaryParams struct {
	Year int `form:"year" binding:"omitempty,min=1900,max=9999"`
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvc) {
	h := &dashboardHandler{dashboardService: dashboardService, now: time.Now}

	rg.GET("/dashboard", h.getDashboard)
	rg.GET("/dashboard/transactions", h.listFilteredTransactions)
	rg.GET("/reports/monthly", h.getMonthlySummary)
}

// getDashboard godoc
// @Summary Get the dashboard
// @Description Aggregates balances, expenses by category, income vs expense and the latest transactions
// @Description for the selected period. "empty" is true while there is no data at all.
// @Tags dashboard
// @Produce  json
// @Param   period query string false "thisMonth, lastMonth, thisYear or custom" default(thisMonth)
// @Param   start query string false "Custom period start (YYYY-MM-DD)"
// @Param   end query string false "Custom period end (YYYY-MM-DD)"
// @Param   userID query string false "Owner filter"
// @Param   accountID query string false "Account filter"
// @Param   creditCardID query string false "Credit card filter"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.FilterParams
	if !bindQuery(c, &params) {
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondError(c, err, "build dashboard")
		return
	}
	data, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "build dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(data))
}

// listFilteredTransactions godoc
// @Summary List the transactions behind the dashboard
// @Tags dashboard
// @Produce  json
// @Param   period query string false "thisMonth, lastMonth, thisYear or custom" default(thisMonth)
// @Param   start query string false "Custom period start (YYYY-MM-DD)"
// @Param   end query string false "Custom period end (YYYY-MM-DD)"
// @Param   userID query string false "Owner filter"
// @Param   accountID query string false "Account filter"
// @Param   creditCardID query string false "Credit card filter"
// @Success 200 {array} dto.TransactionResponse
// @Security BearerAuth
// @Router /dashboard/transactions [get]
func (h *dashboardHandler) listFilteredTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.FilterParams
	if !bindQuery(c, &params) {
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondError(c, err, "filter transactions")
		return
	}
	txns, err := h.dashboardService.ListFilteredTransactions(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "filter transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// getMonthlySummary godoc
// @Summary Monthly income and expense totals
// @Tags reports
// @Produce  json
// @Param   year query int false "Calendar year, defaults to the current one"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *dashboardHandler) getMonthlySummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params monthlySummaryParams
	if !bindQuery(c, &params) {
		return
	}
	if params.Year == 0 {
		params.Year = h.now().Year()
	}
	months, err := h.dashboardService.GetMonthlySummary(c.Request.Context(), userID, params.Year)
	if err != nil {
		respondError(c, err, "build monthly summary")
		return
	}
	c.JSON(http.StatusOK, dto.MonthlySummaryResponse{Year: params.Year, Months: months})
}
