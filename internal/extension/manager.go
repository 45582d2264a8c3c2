// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package extension

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
)

// Status markers for the extension listing.
const (
	MarkerLoaded   = "🟢"
	MarkerUnloaded = "⚫"
)

// UncategorisedBucket is the sentinel category for extensions whose id has no
// intermediate path segments under the registry root.
const UncategorisedBucket = "uncategorised"

// Manager applies lifecycle actions to extensions through the host and
// summarizes the results. Extension state lives in the host; the manager only
// observes it at invocation time.
type Manager struct {
	registry *Registry
	host     Host
	denylist map[string]struct{}
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithDenylist adds ids that must never be unloaded, in addition to the
// registry's protected entries.
func WithDenylist(ids ...string) ManagerOption {
	return func(m *Manager) {
		for _, id := range ids {
			m.denylist[id] = struct{}{}
		}
	}
}

// NewManager creates a lifecycle manager over the given registry and host.
func NewManager(registry *Registry, host Host, opts ...ManagerOption) *Manager {
	m := &Manager{
		registry: registry,
		host:     host,
		denylist: make(map[string]struct{}),
	}
	for _, id := range registry.Protected() {
		m.denylist[id] = struct{}{}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Denylist returns the ids that must never be unloaded, sorted.
func (m *Manager) Denylist() []string {
	ids := make([]string, 0, len(m.denylist))
	for id := range m.denylist {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Apply performs one action on one extension and classifies the outcome.
// It never returns an error: host failures are captured in the outcome.
func (m *Manager) Apply(ctx context.Context, action Action, id string) Outcome {
	verb := action.Verb()

	err := m.dispatch(ctx, action, id)
	switch {
	case err == nil:
		msg := fmt.Sprintf("Extension successfully %s: `%s`.", action.Past(), id)
		slog.Debug("extension "+action.Past(), "unit", id, "verb", verb)
		RecordAction(id, verb, StatusSuccess)
		return Outcome{Unit: id, Succeeded: true, Message: msg}

	case HasCode(err, CodeAlreadyLoaded) || HasCode(err, CodeNotLoaded):
		if action == ActionReload {
			// Reload means "ensure loaded with fresh state"; when nothing is
			// loaded yet a plain load satisfies that intent.
			return m.Apply(ctx, ActionLoad, id)
		}
		msg := fmt.Sprintf("Extension `%s` is already %s.", id, action.Past())
		slog.Debug("extension already "+action.Past(), "unit", id, "verb", verb)
		RecordAction(id, verb, StatusNoop)
		return Outcome{Unit: id, Succeeded: true, Message: msg}

	default:
		errMsg := failureMessage(err)
		msg := fmt.Sprintf("Failed to %s extension `%s`:\n```\n%s```", verb, id, errMsg)
		slog.Debug("extension failed to "+verb, "unit", id, "verb", verb, "error", err)
		RecordAction(id, verb, StatusError)
		return Outcome{Unit: id, Succeeded: false, Message: msg, Err: errMsg}
	}
}

// ApplyBatch performs one action on every id in input order, continuing past
// failures. A single id keeps the single-unit message wording.
func (m *Manager) ApplyBatch(ctx context.Context, action Action, ids []string) BatchReport {
	start := time.Now()
	report := BatchReport{
		ID:     ulid.Make(),
		Action: action,
		Total:  len(ids),
	}

	if len(ids) == 1 {
		out := m.Apply(ctx, action, ids[0])
		report.Message = out.Message
		if !out.Succeeded {
			report.Failures = append(report.Failures, Failure{Unit: out.Unit, Error: out.Err})
		}
		return report
	}

	for _, id := range ids {
		out := m.Apply(ctx, action, id)
		if !out.Succeeded {
			report.Failures = append(report.Failures, Failure{Unit: out.Unit, Error: out.Err})
		}
	}

	report.Message = summarize(action, report.Total, report.Failures)

	ObserveBatch(action.Verb(), time.Since(start))
	slog.Debug("batch "+action.Past()+" extensions",
		"report_id", report.ID.String(),
		"total", report.Total,
		"failures", len(report.Failures))

	return report
}

// dispatch routes an action to the corresponding host operation.
func (m *Manager) dispatch(ctx context.Context, action Action, id string) error {
	switch action {
	case ActionLoad:
		return m.host.Load(ctx, id)
	case ActionUnload:
		return m.host.Unload(ctx, id)
	case ActionReload:
		return m.host.Reload(ctx, id)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

// GroupStatuses partitions every known extension into a display category with
// its status marker. The category is the id's intermediate path segments under
// the registry root, joined with " - "; extensions directly under the root
// fall into the uncategorised bucket. Entries within a category are sorted.
func (m *Manager) GroupStatuses() map[string][]string {
	loaded := make(map[string]struct{})
	for _, id := range m.host.Loaded() {
		loaded[id] = struct{}{}
	}

	rootDepth := m.registry.RootDepth()
	categories := make(map[string][]string)

	for _, id := range m.registry.IDs() {
		marker := MarkerUnloaded
		if _, ok := loaded[id]; ok {
			marker = MarkerLoaded
		}

		path := splitPath(id)
		category := UncategorisedBucket
		if len(path) > rootDepth+1 {
			category = joinPath(path[rootDepth : len(path)-1])
		}

		categories[category] = append(categories[category], marker+"  "+path[len(path)-1])
	}

	for _, entries := range categories {
		sort.Strings(entries)
	}
	return categories
}
