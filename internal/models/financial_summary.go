package models

import "github.com/shopspring/decimal"

// FinancialSummary is a persisted snapshot of a user's net position for one
// calendar month. Exactly one row may exist per (user, year, month);
// recomputation replaces it.
type FinancialSummary struct {
	Base
	UserID            uint            `gorm:"not null;uniqueIndex:uq_usuario_mes_ano" json:"user_id"`
	Year              int             `gorm:"column:ano;not null;uniqueIndex:uq_usuario_mes_ano" json:"ano"`
	Month             int             `gorm:"column:mes;not null;uniqueIndex:uq_usuario_mes_ano" json:"mes"`
	TotalDaily        decimal.Decimal `gorm:"column:total_gastos_registro;type:numeric(10,2);not null" json:"total_gastos_registro"`
	TotalFixedBills   decimal.Decimal `gorm:"column:total_contas_fixas;type:numeric(10,2);not null" json:"total_contas_fixas"`
	TotalInstallments decimal.Decimal `gorm:"column:total_parcelamentos;type:numeric(10,2);not null" json:"total_parcelamentos"`
	FinalBalance      decimal.Decimal `gorm:"column:saldo_final;type:numeric(10,2);not null" json:"saldo_final"`
}
