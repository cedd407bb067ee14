package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "meubolso/internal/errors"
	"meubolso/internal/models"
	"meubolso/internal/pagination"
)

// fixedBillService handles recurring-bill business logic.
type fixedBillService struct {
	db *gorm.DB
}

// NewFixedBillService creates a new FixedBillServicer.
func NewFixedBillService(db *gorm.DB) FixedBillServicer {
	return &fixedBillService{db: db}
}

// Create validates and persists a new fixed bill for the user.
func (s *fixedBillService) Create(userID uint, name string, amount decimal.Decimal, dueDay int, active bool) (*models.FixedBill, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nome is required")
	}
	if amount.IsNegative() {
		return nil, apperrors.ErrNegativeAmount
	}
	if dueDay < 1 || dueDay > 31 {
		return nil, apperrors.ErrInvalidDueDay
	}
	if err := ensureUserExists(s.db, userID); err != nil {
		return nil, err
	}

	bill := &models.FixedBill{
		UserID: userID,
		Name:   name,
		Amount: amount.Round(2),
		DueDay: dueDay,
		Active: active,
	}

	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return bill, nil
}

// ListByUser returns the user's fixed bills, newest first.
func (s *fixedBillService) ListByUser(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FixedBill], error) {
	if err := ensureUserExists(s.db, userID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.FixedBill{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bills []models.FixedBill
	if err := base.Scopes(pagination.NewestFirst, pagination.Paginate(page)).Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(bills, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Update applies the provided fields only, validating each before any write.
func (s *fixedBillService) Update(billID uint, update FixedBillUpdate) (*models.FixedBill, error) {
	bill, err := s.getByID(billID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		if *update.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nome must not be empty")
		}
		updates["nome"] = *update.Name
	}
	if update.Amount != nil {
		if update.Amount.IsNegative() {
			return nil, apperrors.ErrNegativeAmount
		}
		updates["valor"] = update.Amount.Round(2)
	}
	if update.DueDay != nil {
		if *update.DueDay < 1 || *update.DueDay > 31 {
			return nil, apperrors.ErrInvalidDueDay
		}
		updates["dia_vencimento"] = *update.DueDay
	}
	if update.Active != nil {
		updates["ativa"] = *update.Active
	}

	if len(updates) > 0 {
		if err := s.db.Model(bill).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return bill, nil
}

// Delete hard-deletes a fixed bill.
func (s *fixedBillService) Delete(billID uint) error {
	bill, err := s.getByID(billID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(bill).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *fixedBillService) getByID(billID uint) (*models.FixedBill, error) {
	var bill models.FixedBill
	if err := s.db.First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFixedBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bill, nil
}
