package config

import (
	"fmt"
	"os"
	"time"

	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrNegative indicates a size or count below zero.
	ErrNegative = errors.New("must not be negative")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if _, err := ParseNewline(cfg.Newline); err != nil {
		errs = append(errs, &FieldError{Field: "newline", Value: cfg.Newline, Err: ErrInvalidNewline})
	}

	for _, raw := range cfg.Backup {
		if raw == backup.AtLoad.String() || raw == backup.AtSave.String() {
			continue
		}
		if _, err := backup.Suffix(raw, time.Time{}); err != nil {
			errs = append(errs, &FieldError{Field: "backup", Value: raw, Err: backup.ErrInvalidExt})
		}
	}

	if cfg.MaxFileSize < 0 {
		errs = append(errs, &FieldError{Field: "max_file_size", Value: cfg.MaxFileSize, Err: ErrNegative})
	}
	if cfg.BackupKeep < 0 {
		errs = append(errs, &FieldError{Field: "backup_keep", Value: cfg.BackupKeep, Err: ErrNegative})
	}

	return errs
}

// FieldError represents an error for a specific config field.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
