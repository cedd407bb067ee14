package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "meubolso/internal/errors"
	"meubolso/internal/models"
	"meubolso/internal/pagination"
)

// ledgerService computes a user's monthly financial position and manages the
// persisted snapshots.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// monthWindow returns the first and last day of the given calendar month.
func monthWindow(year, month int) (models.Date, models.Date) {
	start := models.NewDate(year, time.Month(month), 1)
	end := models.NewDate(year, time.Month(month+1), 0)
	return start, end
}

// ComputeMonthlyPosition aggregates the user's position for one month and
// upserts the snapshot for (user, year, month). Everything runs in a single
// transaction; recomputation replaces the previous snapshot, so concurrent
// calls are last-write-wins.
func (s *ledgerService) ComputeMonthlyPosition(userID uint, year, month int) (*models.FinancialSummary, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidMonth
	}

	var summary models.FinancialSummary
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		start, end := monthWindow(year, month)

		var totalDaily decimal.Decimal
		if err := tx.Model(&models.DailyEntry{}).
			Select("COALESCE(SUM(valor), 0)").
			Where("user_id = ? AND data_registro BETWEEN ? AND ?", userID, start, end).
			Scan(&totalDaily).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var totalFixed decimal.Decimal
		if err := tx.Model(&models.FixedBill{}).
			Select("COALESCE(SUM(valor), 0)").
			Where("user_id = ? AND ativa = ?", userID, true).
			Scan(&totalFixed).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var totalInstallments decimal.Decimal
		if err := tx.Model(&models.Installment{}).
			Select("COALESCE(SUM(valor_parcela), 0)").
			Where("user_id = ? AND ativo = ? AND parcelas_restantes > 0 AND data_inicio <= ?", userID, true, end).
			Scan(&totalInstallments).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		totalDaily = totalDaily.Round(2)
		totalFixed = totalFixed.Round(2)
		totalInstallments = totalInstallments.Round(2)
		balance := user.MonthlySalary.
			Sub(totalDaily).
			Sub(totalFixed).
			Sub(totalInstallments).
			Round(2)

		row := models.FinancialSummary{
			UserID:            userID,
			Year:              year,
			Month:             month,
			TotalDaily:        totalDaily,
			TotalFixedBills:   totalFixed,
			TotalInstallments: totalInstallments,
			FinalBalance:      balance,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "ano"}, {Name: "mes"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_gastos_registro", "total_contas_fixas", "total_parcelamentos", "saldo_final", "updated_at",
			}),
		}).Create(&row).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// Read the row back: on a conflict-update the insert does not report
		// the surviving row's identity.
		if err := tx.Where("user_id = ? AND ano = ? AND mes = ?", userID, year, month).
			First(&summary).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// GetMonthlyPosition returns the stored snapshot for a period.
func (s *ledgerService) GetMonthlyPosition(userID uint, year, month int) (*models.FinancialSummary, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidMonth
	}
	if err := ensureUserExists(s.db, userID); err != nil {
		return nil, err
	}

	var summary models.FinancialSummary
	err := s.db.Where("user_id = ? AND ano = ? AND mes = ?", userID, year, month).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSummaryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &summary, nil
}

// ListSummaries returns the user's snapshot history, newest period first.
func (s *ledgerService) ListSummaries(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FinancialSummary], error) {
	if err := ensureUserExists(s.db, userID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.FinancialSummary{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var summaries []models.FinancialSummary
	if err := base.Order("ano DESC, mes DESC").Scopes(pagination.Paginate(page)).Find(&summaries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(summaries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDashboardFigures returns the live dashboard aggregates: the user's
// salary and the sum of currently active fixed bills. Snapshots are never
// consulted here.
func (s *ledgerService) GetDashboardFigures(userID uint) (*DashboardFigures, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var total decimal.Decimal
	if err := s.db.Model(&models.FixedBill{}).
		Select("COALESCE(SUM(valor), 0)").
		Where("user_id = ? AND ativa = ?", userID, true).
		Scan(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &DashboardFigures{
		MonthlySalary:   user.MonthlySalary,
		TotalFixedBills: total.Round(2),
	}, nil
}

// MonthSpendingTotal returns the sum of daily entries in the given month.
func (s *ledgerService) MonthSpendingTotal(userID uint, year, month int) (decimal.Decimal, error) {
	if month < 1 || month > 12 {
		return decimal.Zero, apperrors.ErrInvalidMonth
	}
	if err := ensureUserExists(s.db, userID); err != nil {
		return decimal.Zero, err
	}

	start, end := monthWindow(year, month)
	var total decimal.Decimal
	if err := s.db.Model(&models.DailyEntry{}).
		Select("COALESCE(SUM(valor), 0)").
		Where("user_id = ? AND data_registro BETWEEN ? AND ?", userID, start, end).
		Scan(&total).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total.Round(2), nil
}

// SpendingByCategory returns the month's daily spending grouped by category.
func (s *ledgerService) SpendingByCategory(userID uint, year, month int) (map[string]decimal.Decimal, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidMonth
	}
	if err := ensureUserExists(s.db, userID); err != nil {
		return nil, err
	}

	start, end := monthWindow(year, month)
	var rows []struct {
		Category string
		Total    decimal.Decimal
	}
	if err := s.db.Model(&models.DailyEntry{}).
		Select("categoria AS category, COALESCE(SUM(valor), 0) AS total").
		Where("user_id = ? AND data_registro BETWEEN ? AND ?", userID, start, end).
		Group("categoria").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Category] = row.Total.Round(2)
	}
	return totals, nil
}

// SpendingPercentByCategory returns each category's share of the month total
// in percent, rounded to 2 decimals. An empty month yields an empty map.
func (s *ledgerService) SpendingPercentByCategory(userID uint, year, month int) (map[string]decimal.Decimal, error) {
	totals, err := s.SpendingByCategory(userID, year, month)
	if err != nil {
		return nil, err
	}

	monthTotal := decimal.Zero
	for _, v := range totals {
		monthTotal = monthTotal.Add(v)
	}

	percents := make(map[string]decimal.Decimal, len(totals))
	if monthTotal.IsZero() {
		return percents, nil
	}
	hundred := decimal.NewFromInt(100)
	for category, v := range totals {
		percents[category] = v.Mul(hundred).Div(monthTotal).Round(2)
	}
	return percents, nil
}
