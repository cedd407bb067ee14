package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "meubolso/internal/errors"
	"meubolso/internal/models"
	"meubolso/internal/pagination"
)

// dailyEntryService handles daily expense business logic.
type dailyEntryService struct {
	db *gorm.DB
}

// NewDailyEntryService creates a new DailyEntryServicer.
func NewDailyEntryService(db *gorm.DB) DailyEntryServicer {
	return &dailyEntryService{db: db}
}

// Create validates and persists a new daily entry. A nil entry date defaults
// to today.
func (s *dailyEntryService) Create(userID uint, description, category string, amount decimal.Decimal, entryDate *models.Date) (*models.DailyEntry, error) {
	if description == "" || category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "descricao and categoria are required")
	}
	if amount.IsNegative() {
		return nil, apperrors.ErrNegativeAmount
	}
	if err := ensureUserExists(s.db, userID); err != nil {
		return nil, err
	}

	date := models.Today()
	if entryDate != nil {
		date = *entryDate
	}

	entry := &models.DailyEntry{
		UserID:      userID,
		Description: description,
		Category:    category,
		Amount:      amount.Round(2),
		EntryDate:   date,
	}

	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return entry, nil
}

// ListByUser returns the user's daily entries, newest first. A user with no
// entries gets an empty page, not an error.
func (s *dailyEntryService) ListByUser(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.DailyEntry], error) {
	if err := ensureUserExists(s.db, userID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.DailyEntry{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.DailyEntry
	if err := base.Scopes(pagination.NewestFirst, pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Update applies the provided fields only; the entry date never changes.
func (s *dailyEntryService) Update(entryID uint, update DailyEntryUpdate) (*models.DailyEntry, error) {
	entry, err := s.getByID(entryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Description != nil {
		updates["descricao"] = *update.Description
	}
	if update.Category != nil {
		updates["categoria"] = *update.Category
	}
	if update.Amount != nil {
		if update.Amount.IsNegative() {
			return nil, apperrors.ErrNegativeAmount
		}
		updates["valor"] = update.Amount.Round(2)
	}

	if len(updates) > 0 {
		if err := s.db.Model(entry).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return entry, nil
}

// Delete hard-deletes a daily entry.
func (s *dailyEntryService) Delete(entryID uint) error {
	entry, err := s.getByID(entryID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *dailyEntryService) getByID(entryID uint) (*models.DailyEntry, error) {
	var entry models.DailyEntry
	if err := s.db.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}
