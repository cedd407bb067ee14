package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "meubolso/internal/errors"
	"meubolso/internal/models"
	"meubolso/internal/pagination"
)

// installmentService handles installment-purchase business logic.
type installmentService struct {
	db *gorm.DB
}

// NewInstallmentService creates a new InstallmentServicer.
func NewInstallmentService(db *gorm.DB) InstallmentServicer {
	return &installmentService{db: db}
}

// Create validates and persists a new installment purchase. The remaining
// count starts equal to the total count.
func (s *installmentService) Create(userID uint, description string, totalAmount, installmentAmount decimal.Decimal, totalCount int, startDate models.Date, active bool) (*models.Installment, error) {
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "descricao is required")
	}
	if totalAmount.IsNegative() || installmentAmount.IsNegative() {
		return nil, apperrors.ErrNegativeAmount
	}
	if totalCount < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "parcelas_totais must be at least 1")
	}
	if startDate.IsZero() {
		return nil, apperrors.ErrInvalidDate
	}
	if err := ensureUserExists(s.db, userID); err != nil {
		return nil, err
	}

	installment := &models.Installment{
		UserID:            userID,
		Description:       description,
		TotalAmount:       totalAmount.Round(2),
		InstallmentAmount: installmentAmount.Round(2),
		TotalCount:        totalCount,
		RemainingCount:    totalCount,
		StartDate:         startDate,
		Active:            active,
	}

	if err := s.db.Create(installment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return installment, nil
}

// ListByUser returns the user's installments, newest first.
func (s *installmentService) ListByUser(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Installment], error) {
	if err := ensureUserExists(s.db, userID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.Installment{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var installments []models.Installment
	if err := base.Scopes(pagination.NewestFirst, pagination.Paginate(page)).Find(&installments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(installments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Update applies the provided fields only. The remaining count may never
// exceed the total count, including when both change at once.
func (s *installmentService) Update(installmentID uint, update InstallmentUpdate) (*models.Installment, error) {
	installment, err := s.getByID(installmentID)
	if err != nil {
		return nil, err
	}

	total := installment.TotalCount
	if update.TotalCount != nil {
		total = *update.TotalCount
	}
	remaining := installment.RemainingCount
	if update.RemainingCount != nil {
		remaining = *update.RemainingCount
	}
	if total < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "parcelas_totais must be at least 1")
	}
	if remaining < 0 || remaining > total {
		return nil, apperrors.ErrRemainingExceeds
	}

	updates := make(map[string]interface{})
	if update.Description != nil {
		if *update.Description == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "descricao must not be empty")
		}
		updates["descricao"] = *update.Description
	}
	if update.TotalAmount != nil {
		if update.TotalAmount.IsNegative() {
			return nil, apperrors.ErrNegativeAmount
		}
		updates["valor_total"] = update.TotalAmount.Round(2)
	}
	if update.InstallmentAmount != nil {
		if update.InstallmentAmount.IsNegative() {
			return nil, apperrors.ErrNegativeAmount
		}
		updates["valor_parcela"] = update.InstallmentAmount.Round(2)
	}
	if update.TotalCount != nil {
		updates["parcelas_totais"] = *update.TotalCount
	}
	if update.RemainingCount != nil {
		updates["parcelas_restantes"] = *update.RemainingCount
	}
	if update.Active != nil {
		updates["ativo"] = *update.Active
	}

	if len(updates) > 0 {
		if err := s.db.Model(installment).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return installment, nil
}

// Delete hard-deletes an installment.
func (s *installmentService) Delete(installmentID uint) error {
	installment, err := s.getByID(installmentID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(installment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *installmentService) getByID(installmentID uint) (*models.Installment, error) {
	var installment models.Installment
	if err := s.db.First(&installment, installmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInstallmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &installment, nil
}
