// Package review holds the transaction review session: which account is
// open, its fetched transactions, the active filters and the current page.
//
// The session re-derives its visible state through the ledger package on
// every read; only the fetched transaction list and the user's filter and
// paging choices are stored.
package review

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ledgerview/ledgerview/internal/bookkeeper"
	"github.com/ledgerview/ledgerview/internal/ledger"
)

// TableAPI is the slice of the bookkeeping client the session needs.
type TableAPI interface {
	FetchTransactionTable(ctx context.Context, accountID string) (*bookkeeper.Table, error)
}

// DisplayState tells the UI which of the mutually exclusive table states to
// render. They are checked in order: no account, loading, error, table.
type DisplayState string

const (
	StateNoAccount DisplayState = "no_account"
	StateLoading   DisplayState = "loading"
	StateError     DisplayState = "error"
	StateTable     DisplayState = "table"
)

// PerPage values the UI offers.
var allowedPerPage = map[int]bool{10: true, 25: true, 50: true, 100: true}

// ErrNoAccount is returned when a fetch is requested with no account open.
var ErrNoAccount = errors.New("no account selected")

// Session is the per-process review state. All methods are safe for
// concurrent use.
type Session struct {
	client TableAPI
	logger *slog.Logger

	mu           sync.Mutex
	accountID    string
	loading      bool
	lastErr      error
	headers      []string
	transactions []ledger.Transaction
	filters      ledger.FilterSet
	page         int
	perPage      int

	// fetchTag identifies the fetch whose response is still welcome.
	// Responses carrying any other tag arrive too late and are discarded,
	// so a slow reply can never overwrite a newer account's table.
	fetchTag uuid.UUID
}

// ViewState is everything a render needs for the review table.
type ViewState struct {
	State        DisplayState
	AccountID    string
	Headers      []string
	Filters      ledger.FilterSet
	ErrorMessage string

	// View is only meaningful when State is StateTable.
	View ledger.View
}

// NewSession creates a review session.
func NewSession(client TableAPI, defaultPerPage int, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if !allowedPerPage[defaultPerPage] {
		defaultPerPage = 10
	}
	return &Session{
		client:  client,
		logger:  logger.With(slog.String("system", "review")),
		page:    1,
		perPage: defaultPerPage,
	}
}

// Select opens an account and fetches its transaction table. An empty id
// clears the session back to the no-account state. Filters survive an
// account change; the page resets to 1.
func (s *Session) Select(ctx context.Context, accountID string) error {
	s.mu.Lock()
	s.accountID = accountID
	s.page = 1
	if accountID == "" {
		s.fetchTag = uuid.Nil
		s.loading = false
		s.lastErr = nil
		s.headers = nil
		s.transactions = nil
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	return s.fetch(ctx, accountID)
}

// Refresh re-fetches the open account's table. Also serves as the explicit
// retry after an error: the identical fetch is issued again.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	accountID := s.accountID
	s.mu.Unlock()

	if accountID == "" {
		return ErrNoAccount
	}
	return s.fetch(ctx, accountID)
}

// fetch retrieves and applies the transaction table for accountID. The
// response is applied only if no newer fetch has started and the session is
// still on the same account.
func (s *Session) fetch(ctx context.Context, accountID string) error {
	tag := uuid.New()

	s.mu.Lock()
	s.fetchTag = tag
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	table, err := s.client.FetchTransactionTable(ctx, accountID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fetchTag != tag || s.accountID != accountID {
		s.logger.Debug("discarding stale transaction response",
			slog.String("account_id", accountID),
		)
		return err
	}
	s.loading = false

	if err != nil {
		// No partial state: a failed fetch leaves an empty table behind
		// the error message.
		s.lastErr = err
		s.headers = nil
		s.transactions = nil
		s.logger.Error("transaction fetch failed",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.headers = table.Headers
	s.transactions = ledger.ApplyRunningBalances(
		ledger.BuildTransactions(table.Headers, table.StringRows(), s.logger),
	)
	s.logger.Info("transaction table loaded",
		slog.String("account_id", accountID),
		slog.Int("rows", len(s.transactions)),
	)
	return nil
}

// SetFilters replaces the active filter set and resets to the first page.
func (s *Session) SetFilters(f ledger.FilterSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.page = 1
}

// ClearFilters removes every filter clause and resets to the first page.
func (s *Session) ClearFilters() {
	s.SetFilters(ledger.FilterSet{})
}

// Filters returns the active filter set.
func (s *Session) Filters() ledger.FilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetPage moves to the requested page, clamped into the valid range for the
// current filtered list.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := len(ledger.Filter(s.transactions, s.filters))
	totalPages := (filtered + s.perPage - 1) / s.perPage
	if totalPages < 1 {
		totalPages = 1
	}
	s.page = ledger.ClampPage(page, totalPages)
}

// SetPerPage changes the page size. Values outside the offered set fall back
// to 10. Changing the size resets to the first page.
func (s *Session) SetPerPage(perPage int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !allowedPerPage[perPage] {
		perPage = 10
	}
	s.perPage = perPage
	s.page = 1
}

// View derives the current render state. Display states are mutually
// exclusive and checked in order.
func (s *Session) View() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := ViewState{
		AccountID: s.accountID,
		Headers:   s.headers,
		Filters:   s.filters,
	}

	switch {
	case s.accountID == "":
		state.State = StateNoAccount
	case s.loading:
		state.State = StateLoading
	case s.lastErr != nil:
		state.State = StateError
		state.ErrorMessage = bookkeeper.RemoteMessage(s.lastErr)
	default:
		state.State = StateTable
		state.View = ledger.DeriveView(s.transactions, s.filters, s.page, s.perPage)
	}
	return state
}
