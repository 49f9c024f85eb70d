// Package bookkeeper is an HTTP client for the remote bookkeeping API.
//
// The remote service owns all persistence, OFX/QIF parsing and ledger
// computation. This client covers the four operations the review UI needs:
// account creation, account listing, transaction file upload and transaction
// table retrieval. Requests are issued once each; there is no retry or
// backoff, every failure is surfaced to the caller.
package bookkeeper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// Config holds the remote endpoint settings. Paths vary between deployments
// of the bookkeeping service, so each one is configurable.
type Config struct {
	BaseURL        string
	AccountsPath   string
	NewAccountPath string
	UploadPath     string
	TablePath      string
	Timeout        time.Duration
}

// Account is one entry of the remote account directory.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccountDraft is the payload for creating a new account.
type AccountDraft struct {
	Name            string
	HolderFirst     string
	HolderLast      string
	StartingBalance float64
	StartingDate    string
}

// Table is a raw tabular transaction response. Cells arrive as a mix of JSON
// strings and numbers; CellString normalizes them for display and parsing.
type Table struct {
	Headers []string
	Rows    [][]any
}

// StringRows returns the table rows with every cell normalized via CellString.
func (t *Table) StringRows() [][]string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = CellString(cell)
		}
		rows[i] = cells
	}
	return rows
}

// Client talks to the remote bookkeeping API.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a bookkeeping API client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger.With(slog.String("client", "bookkeeper")),
	}
}

// CreateAccount registers a new account and returns its ID.
func (c *Client) CreateAccount(ctx context.Context, draft AccountDraft) (string, error) {
	payload := map[string]any{
		"AccountName":     draft.Name,
		"FirstName":       draft.HolderFirst,
		"LastName":        draft.HolderLast,
		"StartingBalance": draft.StartingBalance,
		"StartingDate":    draft.StartingDate,
	}

	var result struct {
		AccountID any `json:"account_id"`
	}
	if err := c.postJSON(ctx, c.cfg.NewAccountPath, payload, &result); err != nil {
		return "", err
	}

	id := CellString(result.AccountID)
	c.logger.Info("account created", slog.String("account_id", id))
	return id, nil
}

// ListAccounts fetches the account directory. The remote answers with a
// tabular {Rows: [[id, name], ...]} shape.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+c.cfg.AccountsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("building accounts request: %w", err)
	}

	var result struct {
		Rows [][]any `json:"Rows"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, len(result.Rows))
	for _, row := range result.Rows {
		if len(row) < 2 {
			continue
		}
		accounts = append(accounts, Account{
			ID:   CellString(row[0]),
			Name: CellString(row[1]),
		})
	}
	return accounts, nil
}

// UploadTransactions transfers a transaction file for the given account as a
// multipart form and returns the server's confirmation message.
func (c *Client) UploadTransactions(ctx context.Context, accountID, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("OfxContent", filename)
	if err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("writing upload content: %w", err)
	}
	if err := writer.WriteField("AccountId", accountID); err != nil {
		return "", fmt.Errorf("writing upload form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+c.cfg.UploadPath, &body)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result struct {
		Message   string `json:"message"`
		AccountID any    `json:"account_id"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}

	c.logger.Info("transactions uploaded",
		slog.String("account_id", accountID),
		slog.String("file", filename),
	)

	if result.Message != "" {
		return result.Message, nil
	}
	return "upload accepted for account " + CellString(result.AccountID), nil
}

// FetchTransactionTable retrieves the raw transaction table for an account.
// Only the first header row of the response is meaningful.
func (c *Client) FetchTransactionTable(ctx context.Context, accountID string) (*Table, error) {
	id, err := strconv.Atoi(accountID)
	if err != nil {
		return nil, fmt.Errorf("account id %q is not numeric: %w", accountID, err)
	}

	var result struct {
		Headers [][]string `json:"Headers"`
		Rows    [][]any    `json:"Rows"`
	}
	if err := c.postJSON(ctx, c.cfg.TablePath, map[string]any{"accountId": id}, &result); err != nil {
		return nil, err
	}

	table := &Table{Rows: result.Rows}
	if len(result.Headers) > 0 {
		table.Headers = result.Headers[0]
	}
	return table, nil
}

// postJSON issues a POST with a JSON body and decodes the JSON response.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do executes a request once and decodes the response into out. Non-2xx
// responses become a *RemoteError carrying the server's message when one is
// present in the body.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling bookkeeping API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteErrorFromResponse(resp)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// CellString normalizes a decoded table cell to its display string.
func CellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
