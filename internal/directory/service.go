// Package directory caches the remote account directory and tracks which
// account the user is working with.
package directory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ledgerview/ledgerview/internal/bookkeeper"
)

// API is the slice of the bookkeeping client the directory needs.
type API interface {
	ListAccounts(ctx context.Context) ([]bookkeeper.Account, error)
	CreateAccount(ctx context.Context, draft bookkeeper.AccountDraft) (string, error)
}

// Service holds the cached account list and the current selection. All
// methods are safe for concurrent use.
type Service struct {
	client API
	logger *slog.Logger

	mu         sync.Mutex
	accounts   []bookkeeper.Account
	selectedID string
	loading    bool
	lastErr    error

	// refreshTag identifies the most recent refresh. A response from an
	// older refresh is discarded so a slow reply cannot overwrite a newer
	// one.
	refreshTag uuid.UUID
}

// Snapshot is a consistent read of the directory state.
type Snapshot struct {
	Accounts   []bookkeeper.Account
	SelectedID string
	Loading    bool
	LastErr    error
}

// NewService creates an account directory backed by the given client.
func NewService(client API, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		logger: logger.With(slog.String("system", "directory")),
	}
}

// Refresh replaces the cached account list from the remote directory. On
// failure the previous list is kept (stale but available) and the error is
// recorded and returned.
func (s *Service) Refresh(ctx context.Context) error {
	tag := uuid.New()

	s.mu.Lock()
	s.refreshTag = tag
	s.loading = true
	s.mu.Unlock()

	accounts, err := s.client.ListAccounts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshTag != tag {
		// A newer refresh started while this one was in flight.
		s.logger.Debug("discarding stale account list response")
		return err
	}
	s.loading = false

	if err != nil {
		s.lastErr = err
		s.logger.Error("account refresh failed", slog.String("error", err.Error()))
		return err
	}

	s.accounts = accounts
	s.lastErr = nil
	s.logger.Info("account directory refreshed", slog.Int("count", len(accounts)))
	return nil
}

// Create registers a new account and then refreshes the directory so the new
// account shows up immediately. The account exists server-side once creation
// succeeds; a refresh failure afterwards is recorded but does not undo or
// fail the creation.
func (s *Service) Create(ctx context.Context, draft bookkeeper.AccountDraft) (string, error) {
	id, err := s.client.CreateAccount(ctx, draft)
	if err != nil {
		return "", err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("account created but directory refresh failed",
			slog.String("account_id", id),
			slog.String("error", err.Error()),
		)
	}
	return id, nil
}

// Select records the working account. An empty id clears the selection.
func (s *Service) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

// Selected returns the current account selection, or "" if none.
func (s *Service) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// Accounts returns a copy of the cached account list.
func (s *Service) Accounts() []bookkeeper.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]bookkeeper.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Get looks up a cached account by id.
func (s *Service) Get(id string) (bookkeeper.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return bookkeeper.Account{}, false
}

// Name returns the display name for an account id, or "" when unknown.
func (s *Service) Name(id string) string {
	if a, ok := s.Get(id); ok {
		return a.Name
	}
	return ""
}

// State returns a consistent snapshot of the directory.
func (s *Service) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts := make([]bookkeeper.Account, len(s.accounts))
	copy(accounts, s.accounts)
	return Snapshot{
		Accounts:   accounts,
		SelectedID: s.selectedID,
		Loading:    s.loading,
		LastErr:    s.lastErr,
	}
}
