// Package ledger turns raw tabular transaction responses into the enriched,
// balance-annotated view the review UI renders.
//
// Everything here is a pure computation over in-memory slices: build
// transactions from rows, attach running balances, filter, re-balance the
// filtered subset, summarize and paginate. Callers own all state.
package ledger

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// Column positions fixed by the remote table format.
const (
	dateColumn   = 1
	amountColumn = 2
)

// Field names used for text search, taken from the header row.
const (
	fieldPayee = "payee"
	fieldMemo  = "memo"
)

// Transaction is one enriched row of the transaction table.
type Transaction struct {
	// Fields holds every cell keyed by its header name.
	Fields map[string]string

	// Seq is the row's position in the original response, used to break
	// date ties without disturbing server order.
	Seq int

	Amount        decimal.Decimal
	IsDebit       bool
	DisplayAmount decimal.Decimal

	// Date is parsed from the date column and used only for sorting and
	// filtering. A row with an unparseable date gets the zero time, which
	// sorts before everything else and fails any date-range clause.
	Date time.Time

	// RunningBalance accumulates Amount over the full unfiltered set in
	// chronological order, independent of display order.
	RunningBalance decimal.Decimal

	// FilteredRunningBalance accumulates Amount over the filtered subset
	// only, from zero, in chronological order. Nil until a filter pass has
	// produced it.
	FilteredRunningBalance *decimal.Decimal

	// DisplayBalance is FilteredRunningBalance when set, else RunningBalance.
	DisplayBalance decimal.Decimal
}

// Payee returns the payee field, or "" when the column is absent.
func (t Transaction) Payee() string {
	return t.Fields[fieldPayee]
}

// Memo returns the memo field, or "" when the column is absent.
func (t Transaction) Memo() string {
	return t.Fields[fieldMemo]
}

// Date layouts the remote has been observed to emit.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// BuildTransactions maps raw rows into transactions. Cells are keyed by the
// header row positionally; the amount and date columns sit at fixed indexes.
//
// An amount cell that fails to parse becomes zero rather than an error. That
// leniency matches the ledger display the UI has always shown, but it can
// mask malformed server data, so every coercion is logged to keep it
// distinguishable from a genuine zero amount.
func BuildTransactions(headers []string, rows [][]string, logger *slog.Logger) []Transaction {
	if logger == nil {
		logger = slog.Default()
	}

	txns := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		fields := make(map[string]string, len(headers))
		for j, header := range headers {
			if j < len(row) {
				fields[header] = row[j]
			}
		}

		amount := decimal.Zero
		if amountColumn < len(row) {
			parsed, err := decimal.NewFromString(row[amountColumn])
			if err != nil {
				logger.Warn("amount cell did not parse, coerced to zero",
					slog.Int("row", i),
					slog.String("raw", row[amountColumn]),
				)
			} else {
				amount = parsed
			}
		} else {
			logger.Warn("amount cell missing, coerced to zero", slog.Int("row", i))
		}

		var date time.Time
		if dateColumn < len(row) {
			parsed, err := parseDate(row[dateColumn])
			if err != nil {
				logger.Warn("date cell did not parse",
					slog.Int("row", i),
					slog.String("raw", row[dateColumn]),
				)
			} else {
				date = parsed
			}
		}

		txns = append(txns, Transaction{
			Fields:        fields,
			Seq:           i,
			Amount:        amount,
			IsDebit:       amount.IsNegative(),
			DisplayAmount: amount.Abs(),
			Date:          date,
		})
	}
	return txns
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
