// Package rvsdgerr classifies the three error kinds the core can raise:
// malformed construction, invariant violations detected mid-pass, and
// deterministic aborts for analysis cases that are not implemented.
package rvsdgerr

import (
	"errors"
	"fmt"
)

// DomainError reports malformed use of the construction API: wrong port
// count, type mismatch, finalizing a structural node whose results live in
// the wrong region. The partially constructed graph is unusable afterward.
type DomainError struct {
	Code string
	Err  error
}

func (e *DomainError) Error() string {
	if e.Err == nil {
		return "domain error: " + e.Code
	}
	return fmt.Sprintf("domain error [%s]: %v", e.Code, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomain wraps cause under code, or builds a bare message when cause is
// nil.
func NewDomain(code string, cause error) *DomainError {
	return &DomainError{Code: code, Err: cause}
}

// Domainf is the fmt.Errorf-shaped constructor used at most call sites.
func Domainf(code, format string, args ...any) *DomainError {
	return &DomainError{Code: code, Err: fmt.Errorf(format, args...)}
}

// InvariantViolation reports a graph invariant broken inside a pass — always
// a bug in that pass, never caller error. Fatal: the pass must stop.
type InvariantViolation struct {
	Invariant string // which graph invariant was broken, e.g. "dominance"
	Err       error
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant-violation [%s]: %v", e.Invariant, e.Err)
}

func (e *InvariantViolation) Unwrap() error { return e.Err }

func NewInvariant(invariant string, cause error) *InvariantViolation {
	return &InvariantViolation{Invariant: invariant, Err: cause}
}

func Invariantf(invariant, format string, args ...any) *InvariantViolation {
	return &InvariantViolation{Invariant: invariant, Err: fmt.Errorf(format, args...)}
}

// Unimplemented reports an analysis path that is enumerated but has no
// handling. No package in this module constructs it; memstate's
// lifetime-aware provider falls back to the agnostic set instead.
type Unimplemented struct {
	Case string
	Err  error
}

func (e *Unimplemented) Error() string {
	if e.Err == nil {
		return "unimplemented: " + e.Case
	}
	return fmt.Sprintf("unimplemented [%s]: %v", e.Case, e.Err)
}

func (e *Unimplemented) Unwrap() error { return e.Err }

func NewUnimplemented(kase string, cause error) *Unimplemented {
	return &Unimplemented{Case: kase, Err: cause}
}

// IsDomain, IsInvariant, and IsUnimplemented let callers branch on class
// without importing errors directly, matching how graph/executor.go in the
// teacher wraps with %w and lets callers errors.Is/As.
func IsDomain(err error) bool {
	var d *DomainError
	return errors.As(err, &d)
}

func IsInvariant(err error) bool {
	var v *InvariantViolation
	return errors.As(err, &v)
}

func IsUnimplemented(err error) bool {
	var u *Unimplemented
	return errors.As(err, &u)
}
