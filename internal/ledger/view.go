package ledger

// View is the fully derived state for one render of the transaction table:
// the filtered subset re-balanced from zero, the current page slice, summary
// totals over the filtered subset, and pagination metadata.
type View struct {
	// Page is the visible slice, display order, filtered balances attached.
	Page []Transaction

	// FilteredCount is the size of the filtered subset across all pages.
	FilteredCount int

	Summary       Summary
	Pagination    Pagination
	FiltersActive bool
}

// DeriveView recomputes everything the table shows from its inputs. It is a
// pure function: txns must already carry unfiltered running balances and be
// in display order (see ApplyRunningBalances), and is never mutated.
func DeriveView(txns []Transaction, filters FilterSet, page, perPage int) View {
	filtered := Filter(txns, filters)
	filtered = ApplyFilteredBalances(filtered)

	start, end, pagination := Paginate(len(filtered), page, perPage)

	return View{
		Page:          filtered[start:end],
		FilteredCount: len(filtered),
		Summary:       Summarize(filtered),
		Pagination:    pagination,
		FiltersActive: filters.Active(),
	}
}
