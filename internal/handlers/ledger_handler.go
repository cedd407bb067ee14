package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "meubolso/internal/errors"
	"meubolso/internal/pagination"
	"meubolso/internal/services"
)

// LedgerHandler handles dashboard figures, monthly snapshots, and spending
// statistics.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// CloseMonthRequest identifies the period to compute and snapshot.
type CloseMonthRequest struct {
	UserID uint `json:"user_id" binding:"required"`
	Year   int  `json:"ano" binding:"required"`
	Month  int  `json:"mes" binding:"required"`
}

// GetSalary returns the user's monthly salary
// @Summary     Dashboard monthly salary
// @Tags        dashboard
// @Produce     json
// @Param       user_id query int true "User ID"
// @Success     200 {object} map[string]interface{} "Monthly salary"
// @Failure     400 {object} ErrorResponse "Missing user_id"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /dashboard/salariomensal [get]
func (h *LedgerHandler) GetSalary(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	figures, err := h.ledgerService.GetDashboardFigures(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"salario_mensal": figures.MonthlySalary})
}

// GetFixedBillsSum returns the sum of the user's active fixed bills
// @Summary     Dashboard active fixed bill total
// @Tags        dashboard
// @Produce     json
// @Param       user_id query int true "User ID"
// @Success     200 {object} map[string]interface{} "Sum of active fixed bills"
// @Failure     400 {object} ErrorResponse "Missing user_id"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /dashboard/somacontasfixas [get]
func (h *LedgerHandler) GetFixedBillsSum(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	figures, err := h.ledgerService.GetDashboardFigures(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"soma_contas_fixas": figures.TotalFixedBills})
}

// CloseMonth computes and stores the snapshot for a period
// @Summary     Compute monthly position
// @Description Aggregates daily spending, active fixed bills, and active
// @Description installments for the period and upserts the snapshot.
// @Tags        fatura
// @Accept      json
// @Produce     json
// @Param       request body CloseMonthRequest true "Period to close"
// @Success     200 {object} map[string]interface{} "Stored snapshot"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /fatura/fechar [post]
func (h *LedgerHandler) CloseMonth(c *gin.Context) {
	var req CloseMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary, err := h.ledgerService.ComputeMonthlyPosition(req.UserID, req.Year, req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Fatura fechada com sucesso",
		"fatura":  summary,
	})
}

// GetSummary returns a stored snapshot
// @Summary     Get a stored monthly snapshot
// @Tags        fatura
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       ano path int true "Year"
// @Param       mes path int true "Month"
// @Success     200 {object} map[string]interface{} "Stored snapshot"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     404 {object} ErrorResponse "No snapshot for the period"
// @Router      /fatura/consultar/{user_id}/{ano}/{mes} [get]
func (h *LedgerHandler) GetSummary(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	year, err := parsePathInt(c, "ano")
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := parsePathInt(c, "mes")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.ledgerService.GetMonthlyPosition(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fatura": summary})
}

// GetHistory returns the snapshot history
// @Summary     List stored monthly snapshots
// @Tags        fatura
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       page query int false "Page"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated snapshots, newest period first"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /fatura/historico/{user_id} [get]
func (h *LedgerHandler) GetHistory(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.ledgerService.ListSummaries(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMonthTotal returns the month's total daily spending
// @Summary     Total daily spending for a month
// @Tags        registro
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       mes path int true "Month"
// @Param       ano path int true "Year"
// @Success     200 {object} map[string]interface{} "Month total"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /registro/total-gasto-mes/{user_id}/{mes}/{ano} [get]
func (h *LedgerHandler) GetMonthTotal(c *gin.Context) {
	userID, year, month, err := parsePeriodPath(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.ledgerService.MonthSpendingTotal(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_gasto_mes": total})
}

// GetCategoryTotals returns the month's spending grouped by category
// @Summary     Daily spending per category for a month
// @Tags        registro
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       mes path int true "Month"
// @Param       ano path int true "Year"
// @Success     200 {object} map[string]interface{} "Totals per category"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /registro/total-gasto-categoria/{user_id}/{mes}/{ano} [get]
func (h *LedgerHandler) GetCategoryTotals(c *gin.Context) {
	userID, year, month, err := parsePeriodPath(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.ledgerService.SpendingByCategory(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_por_categoria": totals})
}

// GetCategoryPercentages returns each category's share of the month total
// @Summary     Spending share per category for a month
// @Tags        registro
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       mes path int true "Month"
// @Param       ano path int true "Year"
// @Success     200 {object} map[string]interface{} "Percent per category"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /registro/percentual-gasto-categoria/{user_id}/{mes}/{ano} [get]
func (h *LedgerHandler) GetCategoryPercentages(c *gin.Context) {
	userID, year, month, err := parsePeriodPath(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	percents, err := h.ledgerService.SpendingPercentByCategory(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"percentual_por_categoria": percents})
}

// parsePeriodPath reads the /:user_id/:mes/:ano statistics path parameters.
func parsePeriodPath(c *gin.Context) (userID uint, year, month int, err error) {
	userID, err = parsePathID(c, "user_id")
	if err != nil {
		return 0, 0, 0, err
	}
	month, err = parsePathInt(c, "mes")
	if err != nil {
		return 0, 0, 0, err
	}
	year, err = parsePathInt(c, "ano")
	if err != nil {
		return 0, 0, 0, err
	}
	return userID, year, month, nil
}
