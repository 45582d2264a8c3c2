// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package extension

import (
	"errors"
	"strings"

	"github.com/samber/oops"
)

// Error codes for extension lifecycle failures.
const (
	CodeAlreadyLoaded = "ALREADY_LOADED"
	CodeNotLoaded     = "NOT_LOADED"
	CodeProtected     = "PROTECTED"
	CodeUnknownUnit   = "UNKNOWN_UNIT"
	CodeActionFailed  = "ACTION_FAILED"
)

// ErrAlreadyLoaded creates an error for loading an already-loaded extension.
func ErrAlreadyLoaded(id string) error {
	return oops.Code(CodeAlreadyLoaded).
		With("unit", id).
		Errorf("extension %s is already loaded", id)
}

// ErrNotLoaded creates an error for acting on an extension that is not loaded.
func ErrNotLoaded(id string) error {
	return oops.Code(CodeNotLoaded).
		With("unit", id).
		Errorf("extension %s is not loaded", id)
}

// ErrUnknownUnit creates an error for an id absent from the known set.
func ErrUnknownUnit(id string) error {
	return oops.Code(CodeUnknownUnit).
		With("unit", id).
		Errorf("unknown extension %s", id)
}

// ErrProtected creates an error for an unload request naming denylisted units.
// The blocked ids are carried in context for reporting.
func ErrProtected(blocked []string) error {
	return oops.Code(CodeProtected).
		With("blocked", blocked).
		Errorf("the following extension(s) may not be unloaded: %s", strings.Join(blocked, ", "))
}

// ErrActionFailed wraps a failure from an extension's own setup or teardown.
func ErrActionFailed(id string, cause error) error {
	return oops.Code(CodeActionFailed).
		With("unit", id).
		Wrap(cause)
}

// HasCode reports whether err carries the given error code.
func HasCode(err error, code string) bool {
	oopsErr, ok := oops.AsOops(err)
	return ok && oopsErr.Code() == code
}

// BlockedUnits extracts the denylisted ids from a PROTECTED error.
func BlockedUnits(err error) []string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return nil
	}
	blocked, _ := oopsErr.Context()["blocked"].([]string)
	return blocked
}

// failureMessage renders "<kind>: <detail>" from the innermost reported cause.
// One wrapping level is unwrapped so host failures surface their original
// message rather than the wrapper's.
func failureMessage(err error) string {
	kind := "error"
	if oopsErr, ok := oops.AsOops(err); ok {
		if c, ok := oopsErr.Code().(string); ok && c != "" {
			kind = c
		}
	}

	detail := err.Error()
	if inner := errors.Unwrap(err); inner != nil {
		detail = inner.Error()
	}

	return kind + ": " + detail
}
