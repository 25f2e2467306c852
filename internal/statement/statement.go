package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies a transaction as incoming or outgoing money.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// DirectionOf returns Credit for zero or positive amounts and Debit otherwise.
func DirectionOf(amount decimal.Decimal) Direction {
	if amount.IsNegative() {
		return Debit
	}
	return Credit
}

// Transaction is one normalized movement on the account.
type Transaction struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	Payee     string          `json:"payee"`
	Memo      string          `json:"memo"`
	Amount    decimal.Decimal `json:"amount"`
	Direction Direction       `json:"direction"`
}

// Statement is the result of one conversion run.
//
// StartDate and StartBalance hold the values of the last processed row while
// EndDate and EndBalance hold the first one.
type Statement struct {
	Currency     string          `json:"currency"`
	AccountID    string          `json:"account_id"`
	BankID       string          `json:"bank_id"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	StartBalance decimal.Decimal `json:"start_balance"`
	EndBalance   decimal.Decimal `json:"end_balance"`
	Transactions []Transaction   `json:"transactions"`
}

// Totals aggregates the transactions of a statement by direction.
type Totals struct {
	Credits     decimal.Decimal
	Debits      decimal.Decimal
	CreditCount int
	DebitCount  int
}

// Net is the sum of all amounts.
func (t Totals) Net() decimal.Decimal {
	return t.Credits.Add(t.Debits)
}

func (s *Statement) Totals() Totals {
	var t Totals
	for _, tx := range s.Transactions {
		switch tx.Direction {
		case Debit:
			t.Debits = t.Debits.Add(tx.Amount)
			t.DebitCount++
		default:
			t.Credits = t.Credits.Add(tx.Amount)
			t.CreditCount++
		}
	}
	return t
}
