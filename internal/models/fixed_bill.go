package models

import "github.com/shopspring/decimal"

// FixedBill is a recurring monthly obligation with a fixed due day.
// Active bills are charged every month regardless of the period.
type FixedBill struct {
	Base
	UserID uint            `gorm:"not null;index" json:"user_id"`
	Name   string          `gorm:"column:nome;size:100;not null" json:"nome"`
	Amount decimal.Decimal `gorm:"column:valor;type:numeric(10,2);not null" json:"valor"`
	DueDay int             `gorm:"column:dia_vencimento;not null" json:"dia_vencimento"`
	Active bool            `gorm:"column:ativa;default:true" json:"ativa"`
}
