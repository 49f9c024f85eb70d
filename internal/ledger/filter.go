package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType narrows the table to one side of the ledger.
type TransactionType string

const (
	TypeAll     TransactionType = "all"
	TypeCredits TransactionType = "credits"
	TypeDebits  TransactionType = "debits"
)

// ParseTransactionType maps a raw value to a TransactionType, defaulting to
// TypeAll for anything unrecognized.
func ParseTransactionType(raw string) TransactionType {
	switch TransactionType(raw) {
	case TypeCredits:
		return TypeCredits
	case TypeDebits:
		return TypeDebits
	default:
		return TypeAll
	}
}

// FilterSet is a conjunctive predicate over transactions. Nil fields mean the
// clause is inactive. Amount bounds compare against the absolute amount; a
// credit is any non-negative amount and a debit any negative one.
type FilterSet struct {
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	SearchText string
	Type       TransactionType
}

// Active reports whether any clause constrains the table.
func (f FilterSet) Active() bool {
	return f.StartDate != nil ||
		f.EndDate != nil ||
		f.MinAmount != nil ||
		f.MaxAmount != nil ||
		f.SearchText != "" ||
		(f.Type != "" && f.Type != TypeAll)
}

// Match evaluates the predicate against a single transaction.
func (f FilterSet) Match(t Transaction) bool {
	if f.StartDate != nil && t.Date.Before(startOfDay(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && t.Date.After(endOfDay(*f.EndDate)) {
		return false
	}

	if f.MinAmount != nil && t.DisplayAmount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && t.DisplayAmount.GreaterThan(*f.MaxAmount) {
		return false
	}

	switch f.Type {
	case TypeCredits:
		if t.Amount.IsNegative() {
			return false
		}
	case TypeDebits:
		if !t.Amount.IsNegative() {
			return false
		}
	}

	if f.SearchText != "" {
		needle := strings.ToLower(f.SearchText)
		payee := strings.ToLower(t.Payee())
		memo := strings.ToLower(t.Memo())
		if !strings.Contains(payee, needle) && !strings.Contains(memo, needle) {
			return false
		}
	}

	return true
}

// Filter returns the transactions matching the set, preserving order.
func Filter(txns []Transaction, f FilterSet) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay makes an end-date bound inclusive through 23:59:59.999.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}
