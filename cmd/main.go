package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/NgigiN/aliorpl/internal/aliorpl"
	"github.com/NgigiN/aliorpl/internal/config"
	"github.com/NgigiN/aliorpl/internal/discord"
	"github.com/NgigiN/aliorpl/internal/logger"
	"github.com/NgigiN/aliorpl/internal/statement"
	"github.com/NgigiN/aliorpl/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("aliorpl", flag.ExitOnError)
	fs.StringVar(&cfg.Account, "account", cfg.Account, "account identifier (required)")
	fs.StringVar(&cfg.Bank, "bank", cfg.Bank, "bank identifier")
	fs.StringVar(&cfg.Charset, "charset", cfg.Charset, "code page of the export")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database for imported statements")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	asJSON := fs.Bool("json", false, "print the statement as JSON")
	noStore := fs.Bool("no-store", false, "do not save the statement")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: aliorpl [flags] <export.csv>")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	log := logger.New(cfg.LogLevel)
	ctx := logger.WithContext(context.Background(), log)

	if err := run(ctx, cfg, fs.Arg(0), *asJSON, !*noStore); err != nil {
		log.Error().Err(err).Msg("Conversion failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path string, asJSON, store bool) error {
	log := logger.FromContext(ctx)

	stmt, err := aliorpl.Convert(ctx, path, cfg.ParserOptions())
	if err != nil {
		return err
	}
	log.Info().
		Str("file", path).
		Str("account", stmt.AccountID).
		Int("transactions", len(stmt.Transactions)).
		Msg("Statement converted")

	inserted := len(stmt.Transactions)
	if store {
		db, err := storage.NewDatabase(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize the database: %w", err)
		}
		defer db.Close()

		inserted, err = db.SaveStatement(stmt, path)
		if err != nil {
			return err
		}
		log.Info().Int("inserted", inserted).Str("db", cfg.DBPath).Msg("Statement saved")
	}

	if cfg.NotificationsEnabled() {
		notifyDiscord(log, cfg, stmt, inserted)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stmt)
	}
	fmt.Println(summary(stmt, inserted))
	return nil
}

// notifyDiscord reports failures without failing the import.
func notifyDiscord(log zerolog.Logger, cfg *config.Config, stmt *statement.Statement, inserted int) {
	n, err := discord.NewNotifier(cfg)
	if err == nil {
		err = n.Notify(stmt, inserted)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Discord notification failed")
	}
}

func summary(stmt *statement.Statement, inserted int) string {
	totals := stmt.Totals()
	return fmt.Sprintf("%s %s: %d transactions (%d new), credits %s, debits %s, %s",
		stmt.BankID, stmt.AccountID, len(stmt.Transactions), inserted,
		totals.Credits.StringFixed(2), totals.Debits.StringFixed(2), stmt.Currency)
}
