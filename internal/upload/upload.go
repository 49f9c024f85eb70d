// Package upload implements the transaction file upload workflow: local
// validation first, then the multipart transfer, then a directory refresh so
// the account list reflects the import.
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// DefaultExtensions are accepted when no configuration overrides them.
var DefaultExtensions = []string{".ofx", ".qif"}

// ValidationError is a client-side rejection. Nothing was sent to the remote
// service.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Uploader is the slice of the bookkeeping client the workflow needs.
type Uploader interface {
	UploadTransactions(ctx context.Context, accountID, filename string, content io.Reader) (string, error)
}

// AccountResolver resolves account names and refreshes the directory after a
// successful import.
type AccountResolver interface {
	Name(id string) string
	Refresh(ctx context.Context) error
}

// Service runs the upload workflow.
type Service struct {
	client     Uploader
	directory  AccountResolver
	extensions []string
	logger     *slog.Logger
}

// NewService creates the upload workflow service. Extensions defaults to
// DefaultExtensions when empty.
func NewService(client Uploader, directory AccountResolver, extensions []string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Service{
		client:     client,
		directory:  directory,
		extensions: extensions,
		logger:     logger.With(slog.String("system", "upload")),
	}
}

// ValidateFilename checks the file extension against the accepted set,
// case-insensitively. Drag-and-drop and the file picker both funnel through
// this check before any request is made.
func (s *Service) ValidateFilename(name string) error {
	if name == "" {
		return &ValidationError{Message: "please select a file"}
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, accepted := range s.extensions {
		if ext == strings.ToLower(accepted) {
			return nil
		}
	}
	names := make([]string, len(s.extensions))
	for i, accepted := range s.extensions {
		names[i] = strings.ToUpper(strings.TrimPrefix(accepted, "."))
	}
	return &ValidationError{
		Message: fmt.Sprintf("please select a %s file", strings.Join(names, " or ")),
	}
}

// Upload validates locally, transfers the file and refreshes the account
// directory. The returned message names the target account on success.
func (s *Service) Upload(ctx context.Context, accountID, filename string, content io.Reader) (string, error) {
	if accountID == "" {
		return "", &ValidationError{Message: "please select both a file and an account"}
	}
	if err := s.ValidateFilename(filename); err != nil {
		return "", err
	}

	if _, err := s.client.UploadTransactions(ctx, accountID, filename, content); err != nil {
		return "", err
	}

	name := s.directory.Name(accountID)
	if name == "" {
		name = "selected account"
	}

	// The import may change what the directory reports; a refresh failure
	// here does not undo the upload.
	if err := s.directory.Refresh(ctx); err != nil {
		s.logger.Warn("directory refresh after upload failed", slog.String("error", err.Error()))
	}

	return fmt.Sprintf("Upload successful! Data uploaded to: %s", name), nil
}
