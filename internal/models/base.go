package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields go over the wire as plain decimal numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Base contains common columns for all tables
type Base struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
