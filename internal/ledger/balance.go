package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ApplyRunningBalances computes the unfiltered running balance for every
// transaction and returns the list in display order (date descending).
//
// The balance is always accumulated chronologically over the full set,
// regardless of how the table is displayed. Date ties keep their original
// response order in both passes.
func ApplyRunningBalances(txns []Transaction) []Transaction {
	out := make([]Transaction, len(txns))
	copy(out, txns)

	// Accumulate in chronological order over a separate index ordering so
	// the slice itself is only sorted once, for display.
	chrono := make([]int, len(out))
	for i := range chrono {
		chrono[i] = i
	}
	sort.SliceStable(chrono, func(a, b int) bool {
		return out[chrono[a]].Date.Before(out[chrono[b]].Date)
	})

	balance := decimal.Zero
	for _, idx := range chrono {
		balance = balance.Add(out[idx].Amount)
		out[idx].RunningBalance = balance
		out[idx].DisplayBalance = balance
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[b].Date.Before(out[a].Date)
	})
	return out
}

// ApplyFilteredBalances recomputes running balances over a filtered subset.
// The accumulation restarts from zero and covers only the rows present, in
// chronological order; the returned slice keeps the input (display) order
// with DisplayBalance switched to the filtered balance.
//
// This is not the unfiltered balance restricted to the subset: hiding a row
// removes its amount from every later balance.
func ApplyFilteredBalances(filtered []Transaction) []Transaction {
	out := make([]Transaction, len(filtered))
	copy(out, filtered)

	chrono := make([]int, len(out))
	for i := range chrono {
		chrono[i] = i
	}
	sort.SliceStable(chrono, func(a, b int) bool {
		if out[chrono[a]].Date.Equal(out[chrono[b]].Date) {
			return out[chrono[a]].Seq < out[chrono[b]].Seq
		}
		return out[chrono[a]].Date.Before(out[chrono[b]].Date)
	})

	balance := decimal.Zero
	for _, idx := range chrono {
		balance = balance.Add(out[idx].Amount)
		filteredBalance := balance
		out[idx].FilteredRunningBalance = &filteredBalance
		out[idx].DisplayBalance = filteredBalance
	}
	return out
}
