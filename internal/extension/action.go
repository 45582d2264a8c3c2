// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package extension

import "context"

// Action is a lifecycle verb applied to an extension.
type Action string

// Lifecycle actions. The verb string is used directly in user-facing messages.
const (
	ActionLoad   Action = "load"
	ActionUnload Action = "unload"
	ActionReload Action = "reload"
)

// Verb returns the action as a lowercase verb.
func (a Action) Verb() string {
	return string(a)
}

// Past returns the past tense of the verb, e.g. "loaded".
func (a Action) Past() string {
	return string(a) + "ed"
}

// Valid reports whether a is one of the defined actions.
func (a Action) Valid() bool {
	switch a {
	case ActionLoad, ActionUnload, ActionReload:
		return true
	}
	return false
}

// Host owns the extension load table and performs the actual state
// transitions. Implementations must treat each call independently; the
// manager never caches host state across invocations.
type Host interface {
	// Load activates an extension. Returns an ALREADY_LOADED error when the
	// extension is active, UNKNOWN_UNIT when no such extension exists.
	Load(ctx context.Context, id string) error
	// Unload deactivates an extension. Returns NOT_LOADED when the extension
	// is not active.
	Unload(ctx context.Context, id string) error
	// Reload deactivates and reactivates an extension with fresh state.
	// Returns NOT_LOADED when the extension is not active.
	Reload(ctx context.Context, id string) error
	// Loaded returns the ids of currently active extensions, sorted.
	Loaded() []string
}
