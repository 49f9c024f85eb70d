package ledger

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewFixture(n int) []Transaction {
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		amount := "10"
		if i%3 == 0 {
			amount = "-5"
		}
		date := fmt.Sprintf("2024-01-%02d", i%28+1)
		rows = append(rows, row(fmt.Sprintf("%d", i+1), date, amount, fmt.Sprintf("Payee %d", i), ""))
	}
	return ApplyRunningBalances(BuildTransactions(testHeaders, rows, nil))
}

func TestDeriveView(t *testing.T) {
	t.Run("composes filter, balances, summary and page", func(t *testing.T) {
		txns := ApplyRunningBalances(BuildTransactions(testHeaders, [][]string{
			row("1", "2024-01-01", "100", "A", ""),
			row("2", "2024-01-05", "-40", "B", ""),
		}, nil))

		v := DeriveView(txns, FilterSet{Type: TypeDebits}, 1, 10)

		assert.Equal(t, 1, v.FilteredCount)
		require.Len(t, v.Page, 1)
		assert.True(t, v.Page[0].DisplayBalance.Equal(decimal.NewFromInt(-40)))
		assert.True(t, v.Summary.TotalDebits.Equal(decimal.NewFromInt(40)))
		assert.True(t, v.Summary.TotalCredits.IsZero())
		assert.True(t, v.Summary.Balance.Equal(decimal.NewFromInt(-40)))
		assert.Equal(t, 1, v.Summary.TransactionCount)
		assert.True(t, v.FiltersActive)
	})

	t.Run("summary covers the whole filtered set, not just the page", func(t *testing.T) {
		txns := viewFixture(25)

		v := DeriveView(txns, FilterSet{}, 1, 10)
		assert.Equal(t, 25, v.Summary.TransactionCount)
		assert.Len(t, v.Page, 10)
		assert.Equal(t, 25, v.FilteredCount)
		assert.False(t, v.FiltersActive)
	})

	t.Run("page beyond the end clamps", func(t *testing.T) {
		txns := viewFixture(25)

		v := DeriveView(txns, FilterSet{}, 5, 10)
		assert.Equal(t, 3, v.Pagination.Page)
		assert.Equal(t, 3, v.Pagination.TotalPages)
		assert.Len(t, v.Page, 5)
	})

	t.Run("empty result keeps one empty page", func(t *testing.T) {
		txns := viewFixture(4)

		v := DeriveView(txns, FilterSet{SearchText: "no match"}, 1, 10)
		assert.Empty(t, v.Page)
		assert.Equal(t, 0, v.FilteredCount)
		assert.Equal(t, 1, v.Pagination.TotalPages)
		assert.Equal(t, 0, v.Summary.TransactionCount)
	})

	t.Run("input is left untouched", func(t *testing.T) {
		txns := viewFixture(6)
		before := make([]Transaction, len(txns))
		copy(before, txns)

		_ = DeriveView(txns, FilterSet{Type: TypeDebits}, 1, 5)

		for i := range txns {
			assert.Nil(t, txns[i].FilteredRunningBalance)
			assert.True(t, txns[i].DisplayBalance.Equal(before[i].DisplayBalance))
		}
	})

	t.Run("page slice carries filtered balances", func(t *testing.T) {
		txns := viewFixture(12)

		v := DeriveView(txns, FilterSet{Type: TypeCredits}, 1, 5)
		for _, tx := range v.Page {
			require.NotNil(t, tx.FilteredRunningBalance)
			assert.True(t, tx.DisplayBalance.Equal(*tx.FilteredRunningBalance))
		}
	})
}
