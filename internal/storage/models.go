package storage

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Statement is one stored conversion run.
type Statement struct {
	gorm.Model
	AccountID    string `gorm:"index"`
	BankID       string
	Currency     string
	SourceFile   string
	StartDate    time.Time
	EndDate      time.Time
	StartBalance decimal.Decimal `gorm:"type:decimal(20,2)"`
	EndBalance   decimal.Decimal `gorm:"type:decimal(20,2)"`
	Transactions []Transaction
}

// Transaction represents a stored financial transaction. TransactionID is
// unique per account so re-importing a file adds nothing.
type Transaction struct {
	gorm.Model
	StatementID   uint
	AccountID     string `gorm:"uniqueIndex:idx_account_transaction"`
	TransactionID string `gorm:"uniqueIndex:idx_account_transaction"`
	Date          time.Time
	Payee         string
	Memo          string
	Amount        decimal.Decimal `gorm:"type:decimal(20,2)"`
	Direction     string
}
