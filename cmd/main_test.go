package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/NgigiN/aliorpl/internal/config"
	"github.com/NgigiN/aliorpl/internal/statement"
	"github.com/NgigiN/aliorpl/internal/storage"
)

func writeExport(t *testing.T, dir string) string {
	t.Helper()
	csv := "Data księgowania;Data transakcji;Tytuł;Nadawca/Odbiorca;Opis;Rachunek;Bank;Kategoria;Typ;Kwota;Waluta;Saldo\r\n" +
		"20230101;;;A;Groceries;;;;;-12,34;PLN;1000,00\r\n" +
		"20230102;;;B;Salary;;;;;500,00;PLN;1500,00\r\n"
	encoded, err := charmap.Windows1250.NewEncoder().String(csv)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(dir, "historia.csv")
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestRunStoresStatement(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Account: "PL61",
		Charset: "cp1250",
		Bank:    "Alior",
		DBPath:  filepath.Join(dir, "statements.db"),
	}
	path := writeExport(t, dir)

	if err := run(context.Background(), cfg, path, false, true); err != nil {
		t.Fatalf("run: %v", err)
	}
	// A second import of the same file must not duplicate transactions.
	if err := run(context.Background(), cfg, path, false, true); err != nil {
		t.Fatalf("second run: %v", err)
	}

	db, err := storage.NewDatabase(cfg.DBPath)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	defer db.Close()
	txs, err := db.ListTransactions("PL61")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 stored transactions, got %d", len(txs))
	}
}

func TestRunMissingAccount(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Charset: "cp1250", DBPath: filepath.Join(dir, "statements.db")}

	err := run(context.Background(), cfg, writeExport(t, dir), false, false)
	if err == nil || !strings.Contains(err.Error(), "account") {
		t.Fatalf("expected missing account error, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	stmt := &statement.Statement{
		Currency:  "PLN",
		AccountID: "PL61",
		BankID:    "Alior",
		Transactions: []statement.Transaction{
			{Amount: decimal.RequireFromString("-12.34"), Direction: statement.Debit},
		},
	}
	want := "Alior PL61: 1 transactions (0 new), credits 0.00, debits -12.34, PLN"
	if got := summary(stmt, 0); got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}
