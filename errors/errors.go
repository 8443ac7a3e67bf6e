// Package errors provides error handling for wkrq.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Assertion failures for programming-contract violations
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrInvalidFormula) {
//	    // reject before construction
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions for programming-contract violations. A rule invoked on a
// (sign, formula) combination it does not cover is a bug in the rule
// engine, not bad user input; it surfaces as an assertion failure.
var (
	AssertionFailedf                 = crdb.AssertionFailedf
	NewAssertionErrorWithWrappedErrf = crdb.NewAssertionErrorWithWrappedErrf
	HasAssertionFailure              = crdb.HasAssertionFailure
)

// Sentinel errors for the wkrq error taxonomy. Use with errors.Is() and
// wrap with errors.Wrap() to add context while preserving the type.
var (
	// ErrInvalidFormula indicates a structurally inconsistent formula
	// reached the core (e.g. a quantifier whose matrix never mentions the
	// bound variable). Detected before any tableau construction begins.
	ErrInvalidFormula = New("invalid formula")

	// ErrProviderFailure indicates the external bilateral evidence
	// provider failed or timed out. The tableau core never propagates
	// this into the proof; it degrades to unknown/unknown evidence.
	ErrProviderFailure = New("evidence provider failure")

	// ErrNotFound indicates the requested resource does not exist
	// (e.g. a theory statement id).
	ErrNotFound = New("not found")

	// ErrParse indicates textual input could not be parsed into a formula.
	ErrParse = New("parse error")
)
