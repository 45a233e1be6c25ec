package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")

	// Catalog errors.
	ErrCatalogParse    = fmt.Errorf("failed to parse catalog manifest")
	ErrCatalogSchema   = fmt.Errorf("unsupported catalog schema version")
	ErrUnknownLanguage = fmt.Errorf("unknown language code")

	// Eviction errors.
	ErrNoEvictionCandidates = fmt.Errorf("cannot free more disk space, no media files left to evict")

	// Transfer/verification errors.
	ErrSizeMismatch      = fmt.Errorf("size mismatch")
	ErrChecksumMismatch  = fmt.Errorf("checksum mismatch")
	ErrEmptyDownload     = fmt.Errorf("downloaded file is empty")
	ErrTruncatedDownload = fmt.Errorf("connection closed mid-transfer")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
