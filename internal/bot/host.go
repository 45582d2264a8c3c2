// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/glyphbot/glyphbot/internal/extension"
)

// loadedCog tracks one active cog and the Discord command ids it registered.
type loadedCog struct {
	cog        Cog
	commandIDs []string
}

// CogHost owns the extension load table. Loading a cog registers its
// application commands with Discord and its handlers with the command
// registry; unloading reverses both. Cog construction goes through factories
// so a reload observes fresh state.
type CogHost struct {
	session   Session
	appID     string
	guildID   string
	registry  *CommandRegistry
	factories map[string]CogFactory
	loaded    map[string]*loadedCog
	mu        sync.RWMutex
}

// NewCogHost creates a host bound to one application. guildID may be empty to
// register commands globally.
func NewCogHost(session Session, appID, guildID string) *CogHost {
	return &CogHost{
		session:   session,
		appID:     appID,
		guildID:   guildID,
		registry:  NewCommandRegistry(),
		factories: make(map[string]CogFactory),
		loaded:    make(map[string]*loadedCog),
	}
}

// Commands returns the host's command registry.
func (h *CogHost) Commands() *CommandRegistry {
	return h.registry
}

// RegisterFactory binds an extension id to a cog constructor. Registering the
// same id twice overwrites with a warning.
func (h *CogHost) RegisterFactory(id string, factory CogFactory) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.factories[id]; ok {
		slog.Warn("cog factory conflict: overwriting existing factory", "unit", id)
	}
	h.factories[id] = factory
}

// Load activates an extension: builds the cog, registers its commands with
// Discord, and wires its handlers. Partially registered commands are rolled
// back on failure so a failed load leaves no residue.
func (h *CogHost) Load(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadLocked(ctx, id)
}

func (h *CogHost) loadLocked(_ context.Context, id string) error {
	if _, ok := h.loaded[id]; ok {
		return extension.ErrAlreadyLoaded(id)
	}
	factory, ok := h.factories[id]
	if !ok {
		return extension.ErrUnknownUnit(id)
	}

	return h.installLocked(id, factory())
}

// installLocked registers a cog instance's commands and handlers. Partial
// registrations are rolled back on failure.
func (h *CogHost) installLocked(id string, cog Cog) error {
	handlers := cog.Handlers()

	var commandIDs []string
	for _, cmd := range cog.Commands() {
		created, err := h.session.ApplicationCommandCreate(h.appID, h.guildID, cmd)
		if err != nil {
			h.rollback(id, commandIDs)
			return extension.ErrActionFailed(id, err)
		}
		commandIDs = append(commandIDs, created.ID)

		handler, ok := handlers[cmd.Name]
		if !ok {
			h.rollback(id, commandIDs)
			return extension.ErrActionFailed(id,
				fmt.Errorf("cog %s declares command %q without a handler", id, cmd.Name))
		}
		h.registry.Register(CommandEntry{Name: cmd.Name, Handler: handler, Source: id})
	}

	h.loaded[id] = &loadedCog{cog: cog, commandIDs: commandIDs}
	slog.Info("loaded extension", "unit", id, "commands", len(commandIDs))
	return nil
}

// Unload deactivates an extension, deleting its Discord commands and
// dropping its handlers.
func (h *CogHost) Unload(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.unloadLocked(ctx, id)
}

func (h *CogHost) unloadLocked(_ context.Context, id string) error {
	active, ok := h.loaded[id]
	if !ok {
		return extension.ErrNotLoaded(id)
	}

	for _, cmdID := range active.commandIDs {
		if err := h.session.ApplicationCommandDelete(h.appID, h.guildID, cmdID); err != nil {
			// Command deletion failures must not wedge the unload; the
			// handler table is authoritative for dispatch.
			slog.Warn("failed to delete application command",
				"unit", id, "command_id", cmdID, "error", err)
		}
	}
	h.registry.RemoveBySource(id)
	delete(h.loaded, id)

	slog.Info("unloaded extension", "unit", id)
	return nil
}

// Reload deactivates an extension and activates a fresh instance. Returns
// NOT_LOADED when the extension is not active. If the fresh instance fails to
// load, the prior instance is reinstated so the extension stays active.
func (h *CogHost) Reload(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev, ok := h.loaded[id]
	if !ok {
		return extension.ErrNotLoaded(id)
	}
	if err := h.unloadLocked(ctx, id); err != nil {
		return err
	}
	if err := h.loadLocked(ctx, id); err != nil {
		if restoreErr := h.installLocked(id, prev.cog); restoreErr != nil {
			slog.Error("failed to restore prior instance after reload failure",
				"unit", id, "error", restoreErr)
		} else {
			slog.Warn("reload failed, prior instance restored", "unit", id)
		}
		return err
	}
	return nil
}

// Loaded returns the ids of currently active extensions, sorted.
func (h *CogHost) Loaded() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.loaded))
	for id := range h.loaded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// rollback deletes commands created during a failed load.
func (h *CogHost) rollback(id string, commandIDs []string) {
	for _, cmdID := range commandIDs {
		if err := h.session.ApplicationCommandDelete(h.appID, h.guildID, cmdID); err != nil {
			slog.Warn("failed to roll back application command",
				"unit", id, "command_id", cmdID, "error", err)
		}
	}
	h.registry.RemoveBySource(id)
}
