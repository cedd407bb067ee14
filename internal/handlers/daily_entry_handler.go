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

// DailyEntryHandler handles daily expense requests.
type DailyEntryHandler struct {
	entryService services.DailyEntryServicer
}

// NewDailyEntryHandler creates a new DailyEntryHandler.
func NewDailyEntryHandler(entryService services.DailyEntryServicer) *DailyEntryHandler {
	return &DailyEntryHandler{entryService: entryService}
}

// CreateDailyEntryRequest represents the creation payload. data_registro
// defaults to today when omitted.
type CreateDailyEntryRequest struct {
	UserID      uint             `json:"user_id" binding:"required"`
	Description string           `json:"descricao" binding:"required,max=150"`
	Category    string           `json:"categoria" binding:"required,max=50"`
	Amount      *decimal.Decimal `json:"valor" binding:"required"`
	EntryDate   string           `json:"data_registro" binding:"omitempty,dateonly"`
}

// UpdateDailyEntryRequest carries partial updates. The entry date is
// immutable and deliberately absent.
type UpdateDailyEntryRequest struct {
	Description *string          `json:"descricao" binding:"omitempty,max=150"`
	Category    *string          `json:"categoria" binding:"omitempty,max=50"`
	Amount      *decimal.Decimal `json:"valor"`
}

// Create adds a daily expense entry
// @Summary     Create a daily entry
// @Tags        registro
// @Accept      json
// @Produce     json
// @Param       request body CreateDailyEntryRequest true "Daily entry data"
// @Success     201 {object} map[string]interface{} "Daily entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /registro/adicionar [post]
func (h *DailyEntryHandler) Create(c *gin.Context) {
	var req CreateDailyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var entryDate *models.Date
	if req.EntryDate != "" {
		parsed, err := models.ParseDate(req.EntryDate)
		if err != nil {
			respondWithError(c, apperrors.ErrInvalidDate)
			return
		}
		entryDate = &parsed
	}

	entry, err := h.entryService.Create(req.UserID, req.Description, req.Category, *req.Amount, entryDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Gasto diário criado com sucesso",
		"gasto_diario": entry,
	})
}

// List returns the user's daily entries
// @Summary     List daily entries
// @Tags        registro
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       page query int false "Page"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated entries, newest first; empty page when none"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /registro/mostrar/{user_id} [get]
func (h *DailyEntryHandler) List(c *gin.Context) {
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

	result, err := h.entryService.ListByUser(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Update applies a partial daily-entry update
// @Summary     Update a daily entry
// @Tags        registro
// @Accept      json
// @Produce     json
// @Param       id path int true "Daily entry ID"
// @Param       request body UpdateDailyEntryRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Daily entry updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Daily entry not found"
// @Router      /registro/alterar/{id} [put]
func (h *DailyEntryHandler) Update(c *gin.Context) {
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDailyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.entryService.Update(entryID, services.DailyEntryUpdate{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gasto alterado com sucesso",
		"gasto":   entry,
	})
}

// Delete removes a daily entry
// @Summary     Delete a daily entry
// @Tags        registro
// @Produce     json
// @Param       id path int true "Daily entry ID"
// @Success     200 {object} map[string]interface{} "Daily entry deleted"
// @Failure     404 {object} ErrorResponse "Daily entry not found"
// @Router      /registro/deletar/{id} [delete]
func (h *DailyEntryHandler) Delete(c *gin.Context) {
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.entryService.Delete(entryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gasto deletado com sucesso"})
}
