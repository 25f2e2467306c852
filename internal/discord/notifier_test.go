package discord

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NgigiN/aliorpl/internal/config"
	"github.com/NgigiN/aliorpl/internal/statement"
)

func TestFormatSummary(t *testing.T) {
	stmt := &statement.Statement{
		Currency:     "PLN",
		AccountID:    "PL61",
		BankID:       "Alior",
		StartDate:    time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndBalance:   decimal.RequireFromString("1000"),
		StartBalance: decimal.RequireFromString("1500"),
		Transactions: []statement.Transaction{
			{Amount: decimal.RequireFromString("-12.34"), Direction: statement.Debit},
			{Amount: decimal.RequireFromString("500"), Direction: statement.Credit},
		},
	}

	msg := FormatSummary(stmt, 1)
	for _, want := range []string{
		"Alior statement imported",
		"Account: PL61",
		"Transactions: 2 (1 new)",
		"**Credits**: 500.00 PLN (1)",
		"**Debits**: -12.34 PLN (1)",
		"**Balance**: 1000.00 PLN",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("summary missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatSummaryEmpty(t *testing.T) {
	msg := FormatSummary(&statement.Statement{AccountID: "PL61", BankID: "Alior"}, 0)
	if !strings.HasSuffix(msg, "No transactions found.") {
		t.Fatalf("unexpected summary: %s", msg)
	}
}

func TestNewNotifier(t *testing.T) {
	n, err := NewNotifier(&config.Config{DiscordBotToken: "token", DiscordChannelId: "123"})
	if err != nil {
		t.Fatalf("NewNotifier: %v", err)
	}
	if n.channelID != "123" {
		t.Fatalf("channel = %q, want 123", n.channelID)
	}
}
