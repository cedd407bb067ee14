package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "meubolso/internal/errors"
	"meubolso/internal/pagination"
	"meubolso/internal/services"
)

// FixedBillHandler handles recurring-bill requests.
type FixedBillHandler struct {
	billService services.FixedBillServicer
}

// NewFixedBillHandler creates a new FixedBillHandler.
func NewFixedBillHandler(billService services.FixedBillServicer) *FixedBillHandler {
	return &FixedBillHandler{billService: billService}
}

// CreateFixedBillRequest represents the creation payload.
type CreateFixedBillRequest struct {
	UserID uint             `json:"user_id" binding:"required"`
	Name   string           `json:"nome" binding:"required,max=100"`
	Amount *decimal.Decimal `json:"valor" binding:"required"`
	DueDay int              `json:"dia_vencimento" binding:"required"`
	Active *bool            `json:"ativa"`
}

// UpdateFixedBillRequest carries partial updates; absent fields are unchanged.
type UpdateFixedBillRequest struct {
	Name   *string          `json:"nome" binding:"omitempty,max=100"`
	Amount *decimal.Decimal `json:"valor"`
	DueDay *int             `json:"dia_vencimento"`
	Active *bool            `json:"ativa"`
}

// Create adds a fixed bill
// @Summary     Create a fixed bill
// @Tags        contas-fixas
// @Accept      json
// @Produce     json
// @Param       request body CreateFixedBillRequest true "Fixed bill data"
// @Success     201 {object} map[string]interface{} "Fixed bill created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /contas-fixas/create [post]
func (h *FixedBillHandler) Create(c *gin.Context) {
	var req CreateFixedBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	bill, err := h.billService.Create(req.UserID, req.Name, *req.Amount, req.DueDay, active)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Conta fixa criada com sucesso",
		"conta_fixa": bill,
	})
}

// List returns the user's fixed bills
// @Summary     List fixed bills
// @Tags        contas-fixas
// @Produce     json
// @Param       user_id query int true "User ID"
// @Param       page query int false "Page"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated fixed bills, newest first"
// @Failure     400 {object} ErrorResponse "Missing user_id"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /contas-fixas/minhascontas [get]
func (h *FixedBillHandler) List(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.billService.ListByUser(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Update applies a partial fixed-bill update
// @Summary     Update a fixed bill
// @Tags        contas-fixas
// @Accept      json
// @Produce     json
// @Param       id path int true "Fixed bill ID"
// @Param       request body UpdateFixedBillRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Fixed bill updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Fixed bill not found"
// @Router      /contas-fixas/alterar/{id} [put]
func (h *FixedBillHandler) Update(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFixedBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill, err := h.billService.Update(billID, services.FixedBillUpdate{
		Name:   req.Name,
		Amount: req.Amount,
		DueDay: req.DueDay,
		Active: req.Active,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Conta fixa alterada com sucesso",
		"conta_fixa": bill,
	})
}

// Delete removes a fixed bill
// @Summary     Delete a fixed bill
// @Tags        contas-fixas
// @Produce     json
// @Param       id path int true "Fixed bill ID"
// @Success     200 {object} map[string]interface{} "Fixed bill deleted"
// @Failure     404 {object} ErrorResponse "Fixed bill not found"
// @Router      /contas-fixas/deletar/{id} [delete]
func (h *FixedBillHandler) Delete(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.Delete(billID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conta fixa deletada com sucesso"})
}
