package storage

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/NgigiN/aliorpl/internal/statement"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Statement{}, &Transaction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveStatement stores stmt and its transactions in one database
// transaction. Transactions already stored for the account are skipped; the
// number of newly inserted ones is returned.
func (d *Database) SaveStatement(stmt *statement.Statement, sourceFile string) (int, error) {
	row := Statement{
		AccountID:    stmt.AccountID,
		BankID:       stmt.BankID,
		Currency:     stmt.Currency,
		SourceFile:   sourceFile,
		StartDate:    stmt.StartDate,
		EndDate:      stmt.EndDate,
		StartBalance: stmt.StartBalance,
		EndBalance:   stmt.EndBalance,
	}

	var inserted int64
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save statement: %w", err)
		}
		if len(stmt.Transactions) == 0 {
			return nil
		}

		txs := make([]Transaction, 0, len(stmt.Transactions))
		for _, t := range stmt.Transactions {
			txs = append(txs, Transaction{
				StatementID:   row.ID,
				AccountID:     stmt.AccountID,
				TransactionID: t.ID,
				Date:          t.Date,
				Payee:         t.Payee,
				Memo:          t.Memo,
				Amount:        t.Amount,
				Direction:     string(t.Direction),
			})
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "transaction_id"}},
			DoNothing: true,
		}).Create(&txs)
		if res.Error != nil {
			return fmt.Errorf("failed to save transactions: %w", res.Error)
		}
		inserted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(inserted), nil
}

// ListTransactions returns the stored transactions of an account, oldest
// first.
func (d *Database) ListTransactions(accountID string) ([]Transaction, error) {
	var txs []Transaction
	if err := d.db.Where("account_id = ?", accountID).Order("date, id").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txs, nil
}

// ListStatements returns the stored runs of an account, newest first.
func (d *Database) ListStatements(accountID string) ([]Statement, error) {
	var stmts []Statement
	if err := d.db.Where("account_id = ?", accountID).Order("id desc").Find(&stmts).Error; err != nil {
		return nil, fmt.Errorf("failed to get statements: %w", err)
	}
	return stmts, nil
}
