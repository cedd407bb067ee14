package models

import "github.com/shopspring/decimal"

// Installment is a purchase paid over a fixed number of equal monthly
// parcels. A month is charged while the installment is active, has parcels
// remaining, and started on or before that month.
type Installment struct {
	Base
	UserID            uint            `gorm:"not null;index" json:"user_id"`
	Description       string          `gorm:"column:descricao;size:150;not null" json:"descricao"`
	TotalAmount       decimal.Decimal `gorm:"column:valor_total;type:numeric(10,2);not null" json:"valor_total"`
	InstallmentAmount decimal.Decimal `gorm:"column:valor_parcela;type:numeric(10,2);not null" json:"valor_parcela"`
	TotalCount        int             `gorm:"column:parcelas_totais;not null" json:"parcelas_totais"`
	RemainingCount    int             `gorm:"column:parcelas_restantes;not null" json:"parcelas_restantes"`
	StartDate         Date            `gorm:"column:data_inicio;type:date;not null" json:"data_inicio"`
	Active            bool            `gorm:"column:ativo;default:true" json:"ativo"`
}
