package dto

// CreateAccountRequest is the payload for POST /api/accounts.
type CreateAccountRequest struct {
	AccountName     string  `json:"account_name"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	StartingBalance float64 `json:"starting_balance"`
	StartingDate    string  `json:"starting_date"`
}

// SelectAccountRequest is the payload for POST /api/accounts/select. An
// empty id clears the selection.
type SelectAccountRequest struct {
	AccountID string `json:"account_id"`
}

// FiltersRequest carries the filter form as the browser submits it: bare
// strings, empty meaning the clause is inactive. Dates use YYYY-MM-DD.
type FiltersRequest struct {
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	MinAmount       string `json:"min_amount"`
	MaxAmount       string `json:"max_amount"`
	SearchText      string `json:"search_text"`
	TransactionType string `json:"transaction_type"`
}

// PageRequest is the payload for POST /api/view/page.
type PageRequest struct {
	Page int `json:"page"`
}

// PageSizeRequest is the payload for POST /api/view/page-size.
type PageSizeRequest struct {
	PerPage int `json:"per_page"`
}
