package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func amountPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func filterFixture(t *testing.T) []Transaction {
	t.Helper()
	return BuildTransactions(testHeaders, [][]string{
		row("1", "2024-01-01", "100", "Employer", "january salary"),
		row("2", "2024-01-15", "-40", "Corner Grocer", "weekly shop"),
		row("3", "2024-02-01", "-9.99", "Streamify", "subscription"),
		row("4", "2024-02-10", "0", "Bank", "interest adjustment"),
		row("5", "2024-03-01", "250", "Employer", "bonus"),
	}, nil)
}

func TestFilterSetMatch(t *testing.T) {
	txns := filterFixture(t)

	t.Run("empty set matches everything", func(t *testing.T) {
		out := Filter(txns, FilterSet{})
		assert.Len(t, out, len(txns))
	})

	t.Run("start date is inclusive from start of day", func(t *testing.T) {
		out := Filter(txns, FilterSet{StartDate: datePtr(2024, 1, 15)})
		require.Len(t, out, 4)
		assert.Equal(t, "Corner Grocer", out[0].Payee())
	})

	t.Run("end date is inclusive through end of day", func(t *testing.T) {
		withTime := BuildTransactions(testHeaders, [][]string{
			row("1", "2024-01-15T18:45:00Z", "-5", "Late Cafe", ""),
		}, nil)

		out := Filter(withTime, FilterSet{EndDate: datePtr(2024, 1, 15)})
		assert.Len(t, out, 1)

		out = Filter(withTime, FilterSet{EndDate: datePtr(2024, 1, 14)})
		assert.Empty(t, out)
	})

	t.Run("amount bounds compare absolute values", func(t *testing.T) {
		out := Filter(txns, FilterSet{MinAmount: amountPtr("40")})
		assert.Len(t, out, 3) // 100, -40, 250

		out = Filter(txns, FilterSet{MaxAmount: amountPtr("40")})
		assert.Len(t, out, 3) // -40, -9.99, 0

		out = Filter(txns, FilterSet{MinAmount: amountPtr("10"), MaxAmount: amountPtr("150")})
		assert.Len(t, out, 2) // 100, -40
	})

	t.Run("credits include zero amounts", func(t *testing.T) {
		out := Filter(txns, FilterSet{Type: TypeCredits})
		require.Len(t, out, 3)
		for _, tx := range out {
			assert.False(t, tx.Amount.IsNegative())
		}
	})

	t.Run("debits are strictly negative", func(t *testing.T) {
		out := Filter(txns, FilterSet{Type: TypeDebits})
		require.Len(t, out, 2)
		for _, tx := range out {
			assert.True(t, tx.Amount.IsNegative())
		}
	})

	t.Run("search is case-insensitive over payee and memo", func(t *testing.T) {
		out := Filter(txns, FilterSet{SearchText: "GROCER"})
		require.Len(t, out, 1)
		assert.Equal(t, "Corner Grocer", out[0].Payee())

		out = Filter(txns, FilterSet{SearchText: "salary"})
		require.Len(t, out, 1)
		assert.Equal(t, "Employer", out[0].Payee())

		out = Filter(txns, FilterSet{SearchText: "no such thing"})
		assert.Empty(t, out)
	})

	t.Run("missing payee and memo fields are treated as empty", func(t *testing.T) {
		short := BuildTransactions(testHeaders, [][]string{
			{"1", "2024-01-01", "10"},
		}, nil)

		out := Filter(short, FilterSet{SearchText: "anything"})
		assert.Empty(t, out)

		out = Filter(short, FilterSet{})
		assert.Len(t, out, 1)
	})

	t.Run("clauses combine with AND", func(t *testing.T) {
		out := Filter(txns, FilterSet{
			StartDate:  datePtr(2024, 1, 1),
			EndDate:    datePtr(2024, 2, 28),
			Type:       TypeDebits,
			SearchText: "subscription",
		})
		require.Len(t, out, 1)
		assert.Equal(t, "Streamify", out[0].Payee())
	})

	t.Run("unparseable date fails date-range clauses", func(t *testing.T) {
		bad := BuildTransactions(testHeaders, [][]string{
			row("1", "garbage", "10", "A", ""),
		}, nil)

		out := Filter(bad, FilterSet{StartDate: datePtr(2024, 1, 1)})
		assert.Empty(t, out)
	})
}

func TestFilterSetActive(t *testing.T) {
	assert.False(t, FilterSet{}.Active())
	assert.False(t, FilterSet{Type: TypeAll}.Active())
	assert.True(t, FilterSet{Type: TypeDebits}.Active())
	assert.True(t, FilterSet{SearchText: "x"}.Active())
	assert.True(t, FilterSet{StartDate: datePtr(2024, 1, 1)}.Active())
	assert.True(t, FilterSet{MinAmount: amountPtr("1")}.Active())
}

func TestParseTransactionType(t *testing.T) {
	assert.Equal(t, TypeCredits, ParseTransactionType("credits"))
	assert.Equal(t, TypeDebits, ParseTransactionType("debits"))
	assert.Equal(t, TypeAll, ParseTransactionType("all"))
	assert.Equal(t, TypeAll, ParseTransactionType(""))
	assert.Equal(t, TypeAll, ParseTransactionType("bogus"))
}

func TestApplyFilteredBalances(t *testing.T) {
	t.Run("re-accumulates from zero over the subset", func(t *testing.T) {
		// Debits-only view of a 100 credit followed by a -40 debit: the
		// remaining row balances to -40, not to the unfiltered 60.
		txns := ApplyRunningBalances(BuildTransactions(testHeaders, [][]string{
			row("1", "2024-01-01", "100", "A", ""),
			row("2", "2024-01-05", "-40", "B", ""),
		}, nil))

		filtered := Filter(txns, FilterSet{Type: TypeDebits})
		out := ApplyFilteredBalances(filtered)

		require.Len(t, out, 1)
		require.NotNil(t, out[0].FilteredRunningBalance)
		assert.True(t, out[0].FilteredRunningBalance.Equal(decimal.NewFromInt(-40)))
		assert.True(t, out[0].DisplayBalance.Equal(decimal.NewFromInt(-40)))
		// The unfiltered balance is untouched.
		assert.True(t, out[0].RunningBalance.Equal(decimal.NewFromInt(60)))
	})

	t.Run("no-op filter reproduces unfiltered balances", func(t *testing.T) {
		txns := ApplyRunningBalances(filterFixture(t))

		out := ApplyFilteredBalances(Filter(txns, FilterSet{}))
		require.Len(t, out, len(txns))
		for i, tx := range out {
			require.NotNil(t, tx.FilteredRunningBalance)
			assert.True(t, tx.FilteredRunningBalance.Equal(tx.RunningBalance),
				"row %d: filtered %s vs unfiltered %s", i, tx.FilteredRunningBalance, tx.RunningBalance)
		}
	})

	t.Run("differs from restricting unfiltered balances", func(t *testing.T) {
		txns := ApplyRunningBalances(filterFixture(t))

		filtered := Filter(txns, FilterSet{Type: TypeCredits})
		out := ApplyFilteredBalances(filtered)

		// The bonus row's unfiltered balance includes the hidden debits;
		// its filtered balance must not.
		var bonus *Transaction
		for i := range out {
			if out[i].Memo() == "bonus" {
				bonus = &out[i]
			}
		}
		require.NotNil(t, bonus)
		assert.True(t, bonus.FilteredRunningBalance.Equal(decimal.NewFromInt(350)))
		assert.False(t, bonus.FilteredRunningBalance.Equal(bonus.RunningBalance))
	})

	t.Run("keeps display order", func(t *testing.T) {
		txns := ApplyRunningBalances(filterFixture(t))

		out := ApplyFilteredBalances(Filter(txns, FilterSet{}))
		for i := 1; i < len(out); i++ {
			assert.False(t, out[i-1].Date.Before(out[i].Date))
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("splits debits and credits", func(t *testing.T) {
		s := Summarize(filterFixture(t))

		assert.True(t, s.TotalDebits.Equal(decimal.RequireFromString("49.99")))
		assert.True(t, s.TotalCredits.Equal(decimal.NewFromInt(350)))
		assert.True(t, s.Balance.Equal(decimal.RequireFromString("300.01")))
		assert.Equal(t, 5, s.TransactionCount)
	})

	t.Run("balance equals credits minus debits and totals stay non-negative", func(t *testing.T) {
		s := Summarize(filterFixture(t))
		assert.True(t, s.Balance.Equal(s.TotalCredits.Sub(s.TotalDebits)))
		assert.False(t, s.TotalDebits.IsNegative())
		assert.False(t, s.TotalCredits.IsNegative())
	})

	t.Run("debits-only subset", func(t *testing.T) {
		txns := BuildTransactions(testHeaders, [][]string{
			row("1", "2024-01-01", "100", "A", ""),
			row("2", "2024-01-05", "-40", "B", ""),
		}, nil)

		s := Summarize(Filter(txns, FilterSet{Type: TypeDebits}))
		assert.True(t, s.TotalDebits.Equal(decimal.NewFromInt(40)))
		assert.True(t, s.TotalCredits.IsZero())
		assert.True(t, s.Balance.Equal(decimal.NewFromInt(-40)))
		assert.Equal(t, 1, s.TransactionCount)
	})

	t.Run("empty list", func(t *testing.T) {
		s := Summarize(nil)
		assert.True(t, s.TotalDebits.IsZero())
		assert.True(t, s.TotalCredits.IsZero())
		assert.True(t, s.Balance.IsZero())
		assert.Equal(t, 0, s.TransactionCount)
	})

	t.Run("zero amount counts as a credit", func(t *testing.T) {
		txns := BuildTransactions(testHeaders, [][]string{
			row("1", "2024-01-01", "0", "A", ""),
		}, nil)

		s := Summarize(txns)
		assert.True(t, s.TotalCredits.IsZero())
		assert.True(t, s.TotalDebits.IsZero())
		assert.Equal(t, 1, s.TransactionCount)
	})
}
