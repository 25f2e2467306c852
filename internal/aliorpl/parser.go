package aliorpl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"

	"github.com/NgigiN/aliorpl/internal/logger"
	"github.com/NgigiN/aliorpl/internal/statement"
)

const (
	// HeaderSentinel is the first column of the export's title row.
	HeaderSentinel = "Data księgowania"

	// misdecodedSentinel is HeaderSentinel as UTF-8 bytes read as cp1250,
	// which is what a UTF-8 export looks like under the default charset.
	misdecodedSentinel = "Data ksi\u00c4\u2122gowania"

	DefaultCharset = "cp1250"
	DefaultBank    = "Alior"

	dateLayout = "20060102"
	minFields  = 12
)

// Column positions in the Alior export.
const (
	colDate     = 0
	colPayee    = 3
	colMemo     = 4
	colAmount   = 9
	colCurrency = 10
	colBalance  = 11
)

// idNamespace seeds the name-based UUIDs used as transaction ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("aliorbank.pl"))

// Options configure one conversion run.
type Options struct {
	Charset string
	Account string
	Bank    string
}

// Normalizer turns Alior CSV rows into a statement. A Normalizer is owned by
// one goroutine; Parse starts a fresh statement on every call.
type Normalizer struct {
	opts Options
	log  zerolog.Logger
	acc  *accumulator

	// checkReplacement is set when the charset decodes bad bytes to U+FFFD.
	checkReplacement bool
}

// accumulator is the state threaded through a run.
type accumulator struct {
	stmt    *statement.Statement
	records int
	seen    map[string]int
}

// NewNormalizer validates opts and fills in defaults.
func NewNormalizer(opts Options) (*Normalizer, error) {
	if strings.TrimSpace(opts.Account) == "" {
		return nil, &MissingConfigError{Option: "account"}
	}
	if opts.Charset == "" {
		opts.Charset = DefaultCharset
	}
	if opts.Bank == "" {
		opts.Bank = DefaultBank
	}

	n := &Normalizer{opts: opts, log: zerolog.Nop()}
	if _, replaces, err := decoderFor(opts.Charset); err == nil {
		n.checkReplacement = replaces
	}
	n.reset()
	return n, nil
}

// WithLogger sets the logger used for debug output.
func (n *Normalizer) WithLogger(log zerolog.Logger) *Normalizer {
	n.log = log
	return n
}

func (n *Normalizer) Options() Options { return n.opts }

// Statement returns the statement accumulated so far.
func (n *Normalizer) Statement() *statement.Statement { return n.acc.stmt }

func (n *Normalizer) reset() {
	n.acc = &accumulator{
		stmt: &statement.Statement{
			AccountID:    n.opts.Account,
			BankID:       n.opts.Bank,
			Transactions: []statement.Transaction{},
		},
		seen: make(map[string]int),
	}
}

// ParseRecord applies one row to the statement. It returns a nil transaction
// and a nil error for the header row.
func (n *Normalizer) ParseRecord(rec Record) (*statement.Transaction, error) {
	var verify func(Record) error
	if n.checkReplacement {
		verify = func(rec Record) error { return checkDecoded(rec, n.opts.Charset) }
	}
	tx, err := step(n.acc, rec, verify)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		n.log.Debug().Int("line", rec.Line).Msg("skipping header row")
	}
	return tx, nil
}

// Parse decodes r and consumes every row. On any error no statement is
// returned.
func (n *Normalizer) Parse(r io.Reader) (*statement.Statement, error) {
	n.reset()

	decoded, err := Decode(r, n.opts.Charset)
	if err != nil {
		return nil, err
	}
	counter := &lineCounter{r: decoded}
	for rec, err := range Split(counter) {
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			return nil, &DecodeError{Charset: n.opts.Charset, Line: counter.lines + 1, Err: err}
		}
		if err != nil {
			return nil, err
		}
		if _, err := n.ParseRecord(rec); err != nil {
			return nil, err
		}
	}

	n.log.Debug().
		Int("transactions", len(n.acc.stmt.Transactions)).
		Str("currency", n.acc.stmt.Currency).
		Msg("statement parsed")
	return n.acc.stmt, nil
}

// Convert reads the export at path. The logger is taken from ctx.
func Convert(ctx context.Context, path string, opts Options) (*statement.Statement, error) {
	n, err := NewNormalizer(opts)
	if err != nil {
		return nil, err
	}
	n.WithLogger(logger.FromContext(ctx).With().Str("file", path).Logger())

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer f.Close()

	return n.Parse(f)
}

// step validates rec completely before touching acc, so a failing row leaves
// the accumulator as it was.
func step(acc *accumulator, rec Record, verify func(Record) error) (*statement.Transaction, error) {
	if len(rec.Fields) > 0 && isHeader(rec.Fields[colDate]) {
		return nil, nil
	}
	if len(rec.Fields) < minFields {
		return nil, &RecordError{Line: rec.Line, Fields: len(rec.Fields)}
	}
	if verify != nil {
		if err := verify(rec); err != nil {
			return nil, err
		}
	}

	f := rec.Fields
	date, err := parseDate(f[colDate])
	if err != nil {
		return nil, &DateFormatError{Line: rec.Line, Value: f[colDate], Err: err}
	}
	amount, err := parseDecimal(f[colAmount])
	if err != nil {
		return nil, &NumericFormatError{Line: rec.Line, Field: "amount", Value: f[colAmount], Err: err}
	}
	balance, err := parseDecimal(f[colBalance])
	if err != nil {
		return nil, &NumericFormatError{Line: rec.Line, Field: "balance", Value: f[colBalance], Err: err}
	}

	tx := statement.Transaction{
		Date:      date,
		Payee:     f[colPayee],
		Memo:      f[colMemo],
		Amount:    amount,
		Direction: statement.DirectionOf(amount),
	}
	tx.ID = acc.transactionID(tx)

	stmt := acc.stmt
	if acc.records == 0 {
		stmt.Currency = f[colCurrency]
		stmt.EndDate = date
		stmt.EndBalance = balance
	}
	stmt.StartDate = date
	stmt.StartBalance = balance
	stmt.Transactions = append(stmt.Transactions, tx)
	acc.records++

	return &tx, nil
}

// transactionID derives a name-based UUID from the transaction content and
// the number of identical transactions seen earlier in the run.
func (acc *accumulator) transactionID(tx statement.Transaction) string {
	key := strings.Join([]string{
		tx.Date.Format(dateLayout),
		tx.Payee,
		tx.Memo,
		tx.Amount.String(),
	}, "\x1f")
	occurrence := acc.seen[key]
	acc.seen[key] = occurrence + 1

	return uuid.NewSHA1(idNamespace, []byte(key+"\x1f"+strconv.Itoa(occurrence))).String()
}

func isHeader(field string) bool {
	return field == HeaderSentinel || field == misdecodedSentinel
}

func parseDate(s string) (time.Time, error) {
	if len(s) != len(dateLayout) {
		return time.Time{}, fmt.Errorf("expected %d characters, got %d", len(dateLayout), len(s))
	}
	return time.Parse(dateLayout, s)
}

// parseDecimal reads a number written with a decimal comma.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}
