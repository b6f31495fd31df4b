package model

import (
	"time"
)

// Transaction represents one row of the append-only trade ledger.
// Shares is signed: positive for buys, negative for sells.
type Transaction struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	UserID       uint64    `gorm:"not null;index:idx_transactions_user_symbol,priority:1"`
	Symbol       string    `gorm:"not null;size:12;index:idx_transactions_user_symbol,priority:2"`
	Shares       int64     `gorm:"not null"`
	PriceInCents int64     `gorm:"not null"`
	ExecutedAt   time.Time `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
