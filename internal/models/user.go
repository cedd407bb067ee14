package models

import "github.com/shopspring/decimal"

// User represents an account holder. The password is stored only as a bcrypt
// digest; the wire name senha_hash is kept for compatibility with the
// existing clients but the value is never returned.
type User struct {
	Base
	Name          string          `gorm:"column:nome;size:100;not null" json:"nome"`
	Email         string          `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash  string          `gorm:"column:senha_hash;size:255;not null" json:"-"`
	MonthlySalary decimal.Decimal `gorm:"column:salario_mensal;type:numeric(10,2);not null" json:"salario_mensal"`

	FixedBills   []FixedBill        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Installments []Installment      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	DailyEntries []DailyEntry       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Summaries    []FinancialSummary `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
