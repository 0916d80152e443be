package ops

import (
	"errors"
	"fmt"
	"strings"

	"brronson/internal/pathguard"
)

// Error taxonomy. NotFound, Protected, and Validation abort before
// scanning; Operation marks an unexpected failure outside the per-candidate
// loop. Per-candidate mutation and read failures are collected in reports
// and never carry these markers.
var (
	ErrNotFound   = pathguard.ErrNotFound
	ErrProtected  = pathguard.ErrProtected
	ErrValidation = errors.New("validation error")
	ErrOperation  = errors.New("operation error")
)

// Wrap tags an error with a taxonomy marker and operation context.
func Wrap(marker error, operation, message string, err error) error {
	if marker == nil {
		marker = ErrOperation
	}
	detail := buildDetail(operation, message)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failure"
	}
	return strings.Join(parts, ": ")
}
