package errors

import (
	"fmt"
	"time"
)

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// ErrMalformedDecimal is returned when a monetary value cannot be parsed as an
// exact decimal. The value is never silently coerced to zero.
type ErrMalformedDecimal struct {
	Value string
}

func (e *ErrMalformedDecimal) Error() string {
	return fmt.Sprintf("malformed decimal amount: %q", e.Value)
}

// ErrRateUnavailable is returned when no exchange rate exists for a currency
// pair on or before the requested date. Callers decide whether to propagate or
// fall back to an identity conversion.
type ErrRateUnavailable struct {
	From string
	To   string
	Date time.Time
}

func (e *ErrRateUnavailable) Error() string {
	return fmt.Sprintf("no exchange rate for %s to %s on or before %s", e.From, e.To, e.Date.Format("2006-01-02"))
}

// ErrInvalidGranularity is returned for an unrecognized period frequency.
type ErrInvalidGranularity struct {
	Value string
}

func (e *ErrInvalidGranularity) Error() string {
	return fmt.Sprintf("invalid period granularity: %q", e.Value)
}
