package ledger

import "github.com/shopspring/decimal"

// Summary is a fold over whatever transaction list is currently in scope,
// full or filtered.
type Summary struct {
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
}

// Summarize folds a transaction list into totals. Debits contribute their
// absolute amount, credits their signed (non-negative) amount, and
// Balance = TotalCredits - TotalDebits.
func Summarize(txns []Transaction) Summary {
	s := Summary{
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		Balance:      decimal.Zero,
	}
	for _, t := range txns {
		if t.Amount.IsNegative() {
			s.TotalDebits = s.TotalDebits.Add(t.Amount.Abs())
		} else {
			s.TotalCredits = s.TotalCredits.Add(t.Amount)
		}
		s.TransactionCount++
	}
	s.Balance = s.TotalCredits.Sub(s.TotalDebits)
	return s
}
