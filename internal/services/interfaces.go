package services

import (
	"github.com/shopspring/decimal"

	"meubolso/internal/models"
	"meubolso/internal/pagination"
)

// UserUpdate holds optional profile fields; nil leaves a field unchanged.
type UserUpdate struct {
	Name          *string
	Email         *string
	MonthlySalary *decimal.Decimal
}

// UserServicer defines the contract for account-related business logic.
type UserServicer interface {
	Register(name, email, secret string, monthlySalary decimal.Decimal) (*models.User, error)
	Authenticate(email, secret string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	UpdateProfile(id uint, update UserUpdate) (*models.User, error)
	Delete(id uint) error
}

// FixedBillUpdate holds optional fixed-bill fields; nil leaves a field unchanged.
type FixedBillUpdate struct {
	Name   *string
	Amount *decimal.Decimal
	DueDay *int
	Active *bool
}

// FixedBillServicer defines the contract for recurring-bill business logic.
type FixedBillServicer interface {
	Create(userID uint, name string, amount decimal.Decimal, dueDay int, active bool) (*models.FixedBill, error)
	ListByUser(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FixedBill], error)
	Update(billID uint, update FixedBillUpdate) (*models.FixedBill, error)
	Delete(billID uint) error
}

// InstallmentUpdate holds optional installment fields; nil leaves a field unchanged.
type InstallmentUpdate struct {
	Description       *string
	TotalAmount       *decimal.Decimal
	InstallmentAmount *decimal.Decimal
	TotalCount        *int
	RemainingCount    *int
	Active            *bool
}

// InstallmentServicer defines the contract for installment business logic.
type InstallmentServicer interface {
	Create(userID uint, description string, totalAmount, installmentAmount decimal.Decimal, totalCount int, startDate models.Date, active bool) (*models.Installment, error)
	ListByUser(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Installment], error)
	Update(installmentID uint, update InstallmentUpdate) (*models.Installment, error)
	Delete(installmentID uint) error
}

// DailyEntryUpdate holds optional entry fields; nil leaves a field unchanged.
// The entry date is immutable after creation and therefore absent here.
type DailyEntryUpdate struct {
	Description *string
	Category    *string
	Amount      *decimal.Decimal
}

// DailyEntryServicer defines the contract for daily expense business logic.
type DailyEntryServicer interface {
	Create(userID uint, description, category string, amount decimal.Decimal, entryDate *models.Date) (*models.DailyEntry, error)
	ListByUser(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.DailyEntry], error)
	Update(entryID uint, update DailyEntryUpdate) (*models.DailyEntry, error)
	Delete(entryID uint) error
}

// DashboardFigures holds the live aggregates for the dashboard view. They are
// computed from current data on every call, never from stored snapshots.
type DashboardFigures struct {
	MonthlySalary   decimal.Decimal `json:"salario_mensal"`
	TotalFixedBills decimal.Decimal `json:"soma_contas_fixas"`
}

// LedgerServicer defines the contract for monthly aggregation and snapshots.
type LedgerServicer interface {
	ComputeMonthlyPosition(userID uint, year, month int) (*models.FinancialSummary, error)
	GetMonthlyPosition(userID uint, year, month int) (*models.FinancialSummary, error)
	ListSummaries(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FinancialSummary], error)
	GetDashboardFigures(userID uint) (*DashboardFigures, error)
	MonthSpendingTotal(userID uint, year, month int) (decimal.Decimal, error)
	SpendingByCategory(userID uint, year, month int) (map[string]decimal.Decimal, error)
	SpendingPercentByCategory(userID uint, year, month int) (map[string]decimal.Decimal, error)
}
