package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "meubolso/internal/errors"
	"meubolso/internal/models"
	"meubolso/internal/pagination"
	"meubolso/internal/services"
)

// InstallmentHandler handles installment-purchase requests.
type InstallmentHandler struct {
	installmentService services.InstallmentServicer
}

// NewInstallmentHandler creates a new InstallmentHandler.
func NewInstallmentHandler(installmentService services.InstallmentServicer) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService}
}

// CreateInstallmentRequest represents the creation payload. When
// valor_parcela is omitted it is derived from valor_total and
// parcelas_totais.
type CreateInstallmentRequest struct {
	UserID            uint             `json:"user_id" binding:"required"`
	Description       string           `json:"descricao" binding:"required,max=150"`
	TotalAmount       *decimal.Decimal `json:"valor_total" binding:"required"`
	InstallmentAmount *decimal.Decimal `json:"valor_parcela"`
	TotalCount        int              `json:"parcelas_totais" binding:"required,min=1"`
	StartDate         string           `json:"data_inicio" binding:"required,dateonly"`
	Active            *bool            `json:"ativo"`
}

// UpdateInstallmentRequest carries partial updates; absent fields are unchanged.
type UpdateInstallmentRequest struct {
	Description       *string          `json:"descricao" binding:"omitempty,max=150"`
	TotalAmount       *decimal.Decimal `json:"valor_total"`
	InstallmentAmount *decimal.Decimal `json:"valor_parcela"`
	TotalCount        *int             `json:"parcelas_totais"`
	RemainingCount    *int             `json:"parcelas_restantes"`
	Active            *bool            `json:"ativo"`
}

// Create adds an installment purchase
// @Summary     Create an installment
// @Tags        parcelamentos
// @Accept      json
// @Produce     json
// @Param       request body CreateInstallmentRequest true "Installment data"
// @Success     201 {object} map[string]interface{} "Installment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /parcelamentos/adicionar [post]
func (h *InstallmentHandler) Create(c *gin.Context) {
	var req CreateInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidDate)
		return
	}

	installmentAmount := req.TotalAmount.Div(decimal.NewFromInt(int64(req.TotalCount))).Round(2)
	if req.InstallmentAmount != nil {
		installmentAmount = *req.InstallmentAmount
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	installment, err := h.installmentService.Create(req.UserID, req.Description, *req.TotalAmount, installmentAmount, req.TotalCount, startDate, active)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Parcelamento criado com sucesso",
		"parcelamento": installment,
	})
}

// List returns the user's installments
// @Summary     List installments
// @Tags        parcelamentos
// @Produce     json
// @Param       user_id query int true "User ID"
// @Param       page query int false "Page"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated installments, newest first"
// @Failure     400 {object} ErrorResponse "Missing user_id"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /parcelamentos/meusparcelamentos [get]
func (h *InstallmentHandler) List(c *gin.Context) {
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

	result, err := h.installmentService.ListByUser(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Update applies a partial installment update
// @Summary     Update an installment
// @Tags        parcelamentos
// @Accept      json
// @Produce     json
// @Param       id path int true "Installment ID"
// @Param       request body UpdateInstallmentRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Installment updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Installment not found"
// @Router      /parcelamentos/alterar/{id} [put]
func (h *InstallmentHandler) Update(c *gin.Context) {
	installmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	installment, err := h.installmentService.Update(installmentID, services.InstallmentUpdate{
		Description:       req.Description,
		TotalAmount:       req.TotalAmount,
		InstallmentAmount: req.InstallmentAmount,
		TotalCount:        req.TotalCount,
		RemainingCount:    req.RemainingCount,
		Active:            req.Active,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Parcelamento alterado com sucesso",
		"parcelamento": installment,
	})
}

// Delete removes an installment
// @Summary     Delete an installment
// @Tags        parcelamentos
// @Produce     json
// @Param       id path int true "Installment ID"
// @Success     200 {object} map[string]interface{} "Installment deleted"
// @Failure     404 {object} ErrorResponse "Installment not found"
// @Router      /parcelamentos/deletar/{id} [delete]
func (h *InstallmentHandler) Delete(c *gin.Context) {
	installmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.installmentService.Delete(installmentID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Parcelamento deletado com sucesso"})
}
