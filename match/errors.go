package match

import (
	"errors"
	"fmt"
)

// RuleErrorCode categorizes rule errors.
type RuleErrorCode string

const (
	// ErrCodeMissingMode indicates a pattern without the Global and Multiline flags.
	ErrCodeMissingMode RuleErrorCode = "MISSING_MODE"

	// ErrCodeBadFlags indicates an unknown flag letter.
	ErrCodeBadFlags RuleErrorCode = "BAD_FLAGS"

	// ErrCodeBadPattern indicates an expression that does not compile.
	ErrCodeBadPattern RuleErrorCode = "BAD_PATTERN"

	// ErrCodeNilRule indicates a nil rule or an uncompiled pattern.
	ErrCodeNilRule RuleErrorCode = "NIL_RULE"
)

// RuleError describes a problem with a single rule.
type RuleError struct {
	// Code identifies the error category.
	Code RuleErrorCode

	// Message is a human-readable description.
	Message string

	// Pattern is the offending expression, if any.
	Pattern string

	// Err is the underlying error (optional).
	Err error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Pattern != "" {
		msg = fmt.Sprintf("%s (pattern=%q)", msg, e.Pattern)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// IsModeError returns true if err reports a pattern without the required flags.
// Uses errors.As to handle wrapped errors.
func IsModeError(err error) bool {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Code == ErrCodeMissingMode
	}
	return false
}
