package models

import "github.com/shopspring/decimal"

// DailyEntry is an ad-hoc dated expense record. The entry date defaults to
// the creation date and is immutable afterwards.
type DailyEntry struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Description string          `gorm:"column:descricao;size:150" json:"descricao"`
	Category    string          `gorm:"column:categoria;size:50" json:"categoria"`
	Amount      decimal.Decimal `gorm:"column:valor;type:numeric(10,2);not null" json:"valor"`
	EntryDate   Date            `gorm:"column:data_registro;type:date;not null" json:"data_registro"`
}
