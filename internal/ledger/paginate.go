package ledger

// pageWindowSize is how many page-number buttons the UI shows at once.
const pageWindowSize = 5

// Pagination describes one page slice of a filtered transaction list.
type Pagination struct {
	Page       int
	PerPage    int
	TotalPages int
	TotalCount int

	// From and To are the 1-based positions shown as "Showing X to Y of Z".
	// Both are 0 for an empty list.
	From int
	To   int

	HasPrev bool
	HasNext bool

	// Window is the bounded run of page numbers to render as buttons.
	Window []int
}

// Paginate clamps the requested page into range and computes the slice
// bounds for a list of n items. perPage values below 1 fall back to 1.
// TotalPages is never less than 1, so an empty list still has one (empty)
// page.
func Paginate(n, page, perPage int) (start, end int, p Pagination) {
	if perPage < 1 {
		perPage = 1
	}

	totalPages := (n + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	page = ClampPage(page, totalPages)

	start = (page - 1) * perPage
	end = start + perPage
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}

	p = Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalCount: n,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		Window:     PageWindow(page, totalPages),
	}
	if n > 0 && start < n {
		p.From = start + 1
		p.To = end
	}
	return start, end, p
}

// ClampPage bounds a requested page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageWindow returns a run of up to pageWindowSize page numbers centered on
// the current page, shifted rather than shrunk at either end.
func PageWindow(current, total int) []int {
	start := current - pageWindowSize/2
	if start < 1 {
		start = 1
	}
	end := start + pageWindowSize - 1
	if end > total {
		end = total
	}
	if end-start < pageWindowSize-1 {
		start = end - pageWindowSize + 1
		if start < 1 {
			start = 1
		}
	}

	window := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		window = append(window, i)
	}
	return window
}
