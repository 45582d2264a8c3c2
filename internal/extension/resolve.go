// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package extension

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Wildcard tokens for batch commands. WildcardLive expands to the units
// currently relevant to the action; WildcardAll covers the full known set.
const (
	WildcardLive = "*"
	WildcardAll  = "**"
)

// ResolveTargets expands wildcard and glob arguments into an ordered, unique
// list of extension ids. The loaded set is read from the host at call time,
// never cached. Denylisted units named on unload, directly or through a glob
// match, abort the whole request with a PROTECTED error before wildcard
// expansion happens.
func (m *Manager) ResolveTargets(action Action, args []string) ([]string, error) {
	var explicit []string
	hasLive, hasAll := false, false
	for _, arg := range args {
		switch arg {
		case WildcardLive:
			hasLive = true
		case WildcardAll:
			hasAll = true
		default:
			explicit = append(explicit, arg)
		}
	}

	known := m.registry.IDs()
	explicit = expandPatterns(explicit, known)

	// Glob matches count as explicitly named: a denylisted unit reached
	// either way aborts the unload before wildcard expansion.
	if action == ActionUnload {
		var blocked []string
		for _, id := range explicit {
			if _, ok := m.denylist[id]; ok {
				blocked = append(blocked, id)
			}
		}
		if len(blocked) > 0 {
			sort.Strings(blocked)
			return nil, ErrProtected(blocked)
		}
	}

	if !hasLive && !hasAll {
		return dedupe(explicit), nil
	}

	loaded := m.host.Loaded()
	loadedSet := make(map[string]struct{}, len(loaded))
	for _, id := range loaded {
		loadedSet[id] = struct{}{}
	}

	var expanded []string
	switch action {
	case ActionLoad:
		for _, id := range known {
			if _, ok := loadedSet[id]; !ok {
				expanded = append(expanded, id)
			}
		}
	case ActionUnload:
		for _, id := range loaded {
			if _, ok := m.denylist[id]; !ok {
				expanded = append(expanded, id)
			}
		}
	case ActionReload:
		if hasAll {
			expanded = known
		} else {
			// Explicit names survive expansion even when not loaded.
			expanded = append(loaded, explicit...)
			explicit = nil
		}
	}

	sort.Strings(expanded)
	return dedupe(append(explicit, expanded...)), nil
}

// expandPatterns replaces glob-style arguments with the known ids they match.
// Arguments without metacharacters, and patterns matching nothing, pass
// through unchanged so the host error surfaces for them.
func expandPatterns(args, known []string) []string {
	var out []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			out = append(out, arg)
			continue
		}
		g, err := glob.Compile(arg)
		if err != nil {
			out = append(out, arg)
			continue
		}
		var matched []string
		for _, id := range known {
			if g.Match(id) {
				matched = append(matched, id)
			}
		}
		if len(matched) == 0 {
			out = append(out, arg)
			continue
		}
		out = append(out, matched...)
	}
	return out
}

// dedupe removes duplicates preserving first occurrence.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func splitPath(id string) []string {
	return strings.Split(id, ".")
}

func joinPath(segments []string) string {
	return strings.Join(segments, " - ")
}
