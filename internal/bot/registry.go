// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package bot

import (
	"log/slog"
	"sort"
	"sync"
)

// CommandEntry represents a registered application command.
type CommandEntry struct {
	Name    string  // command name as registered with Discord
	Handler Handler // interaction handler
	Source  string  // owning cog id
}

// CommandRegistry maps command names to their handlers.
// It is thread-safe for concurrent access.
type CommandRegistry struct {
	commands map[string]CommandEntry
	mu       sync.RWMutex
}

// NewCommandRegistry creates an empty command registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]CommandEntry),
	}
}

// Register adds a command to the registry. If a command with the same name
// exists it is overwritten and a warning is logged: last-loaded wins.
func (r *CommandRegistry) Register(entry CommandEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.commands[entry.Name]; ok {
		slog.Warn("command conflict: overwriting existing command",
			"command", entry.Name,
			"previous_source", existing.Source,
			"new_source", entry.Source)
	}

	r.commands[entry.Name] = entry
}

// Get retrieves a command by name.
func (r *CommandRegistry) Get(name string) (CommandEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.commands[name]
	return entry, ok
}

// RemoveBySource drops every command owned by the given cog id and returns
// the removed names, sorted.
func (r *CommandRegistry) RemoveBySource(source string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for name, entry := range r.commands {
		if entry.Source == source {
			delete(r.commands, name)
			removed = append(removed, name)
		}
	}
	sort.Strings(removed)
	return removed
}

// All returns all registered commands. The returned slice is a copy.
func (r *CommandRegistry) All() []CommandEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]CommandEntry, 0, len(r.commands))
	for _, e := range r.commands {
		entries = append(entries, e)
	}
	return entries
}
