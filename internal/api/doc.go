// Package api defines wire-format types and converters for the HTTP layer.
// It translates internal queue models into transport-friendly DTOs so HTTP
// consumers never couple to internal types.
//
// DTOs use camelCase JSON tags. Statuses are exposed as lowercase strings.
// Operation reports and job params pass through as json.RawMessage to avoid
// double-encoding.
package api
