package dto

import "github.com/shopspring/decimal"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// AccountResponse is one directory entry.
type AccountResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccountListResponse is returned when listing accounts.
type AccountListResponse struct {
	Accounts   []AccountResponse `json:"accounts"`
	SelectedID string            `json:"selected_id,omitempty"`
}

// CreateAccountResponse acknowledges a new account.
type CreateAccountResponse struct {
	AccountID string `json:"account_id"`
	Message   string `json:"message"`
}

// UploadResponse acknowledges a transaction file import.
type UploadResponse struct {
	Message string `json:"message"`
}

// TransactionResponse is one enriched row of the review table. Monetary
// values serialize as decimal strings.
type TransactionResponse struct {
	Fields         map[string]string `json:"fields"`
	Date           string            `json:"date,omitempty"`
	Amount         decimal.Decimal   `json:"amount"`
	IsDebit        bool              `json:"is_debit"`
	DisplayAmount  decimal.Decimal   `json:"display_amount"`
	RunningBalance decimal.Decimal   `json:"running_balance"`
	DisplayBalance decimal.Decimal   `json:"display_balance"`
}

// SummaryResponse carries the totals cards.
type SummaryResponse struct {
	TotalDebits      decimal.Decimal `json:"total_debits"`
	TotalCredits     decimal.Decimal `json:"total_credits"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transaction_count"`
}

// PaginationResponse carries everything the pager renders.
type PaginationResponse struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
	TotalCount int   `json:"total_count"`
	From       int   `json:"from"`
	To         int   `json:"to"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
	Window     []int `json:"window"`
}

// FiltersResponse echoes the active filter set in form shape.
type FiltersResponse struct {
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	MinAmount       string `json:"min_amount"`
	MaxAmount       string `json:"max_amount"`
	SearchText      string `json:"search_text"`
	TransactionType string `json:"transaction_type"`
	Active          bool   `json:"active"`
}

// ViewResponse is the full render state for the review table. State is one
// of no_account, loading, error, table; the table fields are only populated
// for the table state.
type ViewResponse struct {
	State         string                `json:"state"`
	AccountID     string                `json:"account_id,omitempty"`
	AccountName   string                `json:"account_name,omitempty"`
	Error         string                `json:"error,omitempty"`
	Headers       []string              `json:"headers,omitempty"`
	Transactions  []TransactionResponse `json:"transactions"`
	FilteredCount int                   `json:"filtered_count"`
	Summary       SummaryResponse       `json:"summary"`
	Pagination    PaginationResponse    `json:"pagination"`
	Filters       FiltersResponse       `json:"filters"`
}
