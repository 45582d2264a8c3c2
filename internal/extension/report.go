// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package extension

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Outcome is the result of applying one action to one extension.
type Outcome struct {
	Unit      string
	Succeeded bool
	// Message is the full user-facing result line for this unit.
	Message string
	// Err is the "<kind>: <detail>" failure summary, empty on success.
	Err string
}

// Failure pairs a failed unit with its error summary.
type Failure struct {
	Unit  string
	Error string
}

// BatchReport aggregates the outcomes of one batch invocation. Reports are
// built fresh per invocation and discarded after delivery.
type BatchReport struct {
	ID       ulid.ULID
	Action   Action
	Total    int
	Failures []Failure
	// Message is the combined user-facing report.
	Message string
}

// Failed reports whether any unit in the batch failed.
func (r *BatchReport) Failed() bool {
	return len(r.Failures) > 0
}

// Successes returns the number of units that succeeded.
func (r *BatchReport) Successes() int {
	return r.Total - len(r.Failures)
}

// summarize renders the aggregate batch wording: a "K / N" count line plus an
// itemized failure block when any unit failed.
func summarize(action Action, total int, failures []Failure) string {
	msg := fmt.Sprintf("%d / %d extensions %s.", total-len(failures), total, action.Past())

	if len(failures) > 0 {
		lines := make([]string, 0, len(failures))
		for _, f := range failures {
			lines = append(lines, fmt.Sprintf("%s\n    %s", f.Unit, f.Error))
		}
		msg += fmt.Sprintf("\n\n**Failures:**```\n%s```", strings.Join(lines, "\n"))
	}

	return msg
}
