package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/riskzones/internal/model"
)

// Sender is whoever issued a command. *model.Player implements it.
type Sender interface {
	ID() uuid.UUID
	Name() string
	AccessLevel() int32
	Position() model.Point
	// Reply sends a chat message back to the sender.
	Reply(msg string)
}

// Command is the interface for admin commands (//command).
// Each command registers one or more names and a required access level.
type Command interface {
	// Handle executes the command. args includes command name at [0].
	Handle(ctx context.Context, sender Sender, args []string) error
	// Names returns all registered command names (without // prefix).
	Names() []string
	// RequiredAccessLevel returns the minimum access level to use this command.
	RequiredAccessLevel() int32
}

// UserCommand is the interface for user commands (/command).
// Available to all players (no access level check).
type UserCommand interface {
	// Handle executes the user command. params is the rest of the message after command name.
	Handle(ctx context.Context, sender Sender, params string) error
	// Names returns all registered command names (without / prefix).
	Names() []string
}

// Handler dispatches admin (//) and user (/) commands.
// Thread-safe: commands are registered once at startup, then read-only.
type Handler struct {
	mu        sync.RWMutex
	adminCmds map[string]Command     // name → Command (lowercase)
	userCmds  map[string]UserCommand // name → UserCommand (lowercase)
}

// NewHandler creates a new admin/user command handler.
func NewHandler() *Handler {
	return &Handler{
		adminCmds: make(map[string]Command, 8),
		userCmds:  make(map[string]UserCommand, 4),
	}
}

// RegisterAdmin registers an admin command.
// All command names are lowercased for case-insensitive lookup.
func (h *Handler) RegisterAdmin(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, name := range cmd.Names() {
		h.adminCmds[strings.ToLower(name)] = cmd
	}
}

// RegisterUser registers a user command.
func (h *Handler) RegisterUser(cmd UserCommand) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, name := range cmd.Names() {
		h.userCmds[strings.ToLower(name)] = cmd
	}
}

// HandleAdminCommand processes a message starting with //.
// Returns true if a command was found and executed.
// text is the full message WITHOUT the // prefix.
func (h *Handler) HandleAdminCommand(ctx context.Context, sender Sender, text string) bool {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return false
	}
	cmdName := strings.ToLower(parts[0])

	h.mu.RLock()
	cmd, ok := h.adminCmds[cmdName]
	h.mu.RUnlock()

	if !ok {
		sender.Reply("Unknown command: //" + cmdName)
		return false
	}

	// Access level check
	accessLevel := sender.AccessLevel()
	al := GetAccessLevel(accessLevel)
	if al == nil || !al.CanUseAdminCommands {
		slog.Warn("unauthorized admin command attempt",
			"player", sender.Name(),
			"command", cmdName,
			"accessLevel", accessLevel)
		return false
	}

	if accessLevel < cmd.RequiredAccessLevel() {
		sender.Reply(fmt.Sprintf("Insufficient access level for //%s (need %d, have %d)",
			cmdName, cmd.RequiredAccessLevel(), accessLevel))
		slog.Warn("admin command access denied",
			"player", sender.Name(),
			"command", cmdName,
			"required", cmd.RequiredAccessLevel(),
			"actual", accessLevel)
		return false
	}

	slog.Info("admin command",
		"player", sender.Name(),
		"command", text)

	if err := cmd.Handle(ctx, sender, parts); err != nil {
		sender.Reply(err.Error())
		slog.Warn("admin command failed",
			"player", sender.Name(),
			"command", text,
			"error", err)
	}

	return true
}

// HandleUserCommand processes a message starting with /.
// Returns true if a command was found and executed.
// text is the full message WITHOUT the / prefix.
func (h *Handler) HandleUserCommand(ctx context.Context, sender Sender, text string) bool {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return false
	}
	cmdName := strings.ToLower(parts[0])

	h.mu.RLock()
	cmd, ok := h.userCmds[cmdName]
	h.mu.RUnlock()

	if !ok {
		return false
	}

	// Extract params (everything after command name)
	params := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), parts[0]))

	if err := cmd.Handle(ctx, sender, params); err != nil {
		sender.Reply(err.Error())
		slog.Warn("user command failed",
			"player", sender.Name(),
			"command", text,
			"error", err)
	}

	return true
}

// AdminCommandCount returns number of registered admin commands.
func (h *Handler) AdminCommandCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.adminCmds)
}

// UserCommandCount returns number of registered user commands.
func (h *Handler) UserCommandCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userCmds)
}
