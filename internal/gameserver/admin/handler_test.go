package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/udisondev/riskzones/internal/model"
)

// mockAdminCmd is a test admin command.
type mockAdminCmd struct {
	names       []string
	required    int32
	err         error
	handleCalls int
	lastArgs    []string
}

func (c *mockAdminCmd) Names() []string            { return c.names }
func (c *mockAdminCmd) RequiredAccessLevel() int32 { return c.required }
func (c *mockAdminCmd) Handle(_ context.Context, sender Sender, args []string) error {
	c.handleCalls++
	c.lastArgs = args
	if c.err != nil {
		return c.err
	}
	sender.Reply("admin ok: " + args[0])
	return nil
}

// mockUserCmd is a test user command.
type mockUserCmd struct {
	names       []string
	handleCalls int
	lastParams  string
}

func (c *mockUserCmd) Names() []string { return c.names }
func (c *mockUserCmd) Handle(_ context.Context, sender Sender, params string) error {
	c.handleCalls++
	c.lastParams = params
	sender.Reply("user ok")
	return nil
}

func newGMPlayer(t *testing.T, accessLevel int32) *model.Player {
	t.Helper()
	p := model.NewPlayer(uuid.New(), "TestGM")
	p.SetAccessLevel(accessLevel)
	return p
}

func TestHandler_RegisterAndCount(t *testing.T) {
	h := NewHandler()
	if h.AdminCommandCount() != 0 {
		t.Errorf("AdminCommandCount = %d, want 0", h.AdminCommandCount())
	}
	if h.UserCommandCount() != 0 {
		t.Errorf("UserCommandCount = %d, want 0", h.UserCommandCount())
	}

	h.RegisterAdmin(&mockAdminCmd{names: []string{"zones", "zoneadmin"}, required: 1})
	if h.AdminCommandCount() != 2 {
		t.Errorf("AdminCommandCount = %d, want 2 (two aliases)", h.AdminCommandCount())
	}

	h.RegisterUser(&mockUserCmd{names: []string{"confirm"}})
	if h.UserCommandCount() != 1 {
		t.Errorf("UserCommandCount = %d, want 1", h.UserCommandCount())
	}
}

func TestHandler_AdminCommand_Success(t *testing.T) {
	h := NewHandler()
	cmd := &mockAdminCmd{names: []string{"create"}, required: 2}
	h.RegisterAdmin(cmd)

	player := newGMPlayer(t, 2) // Game Master, level 2

	ok := h.HandleAdminCommand(context.Background(), player, "create Keep green")
	if !ok {
		t.Error("HandleAdminCommand returned false, want true")
	}
	if cmd.handleCalls != 1 {
		t.Errorf("Handle called %d times, want 1", cmd.handleCalls)
	}
	if len(cmd.lastArgs) != 3 || cmd.lastArgs[0] != "create" || cmd.lastArgs[1] != "Keep" {
		t.Errorf("Handle args = %v, want [create Keep green]", cmd.lastArgs)
	}
	if msg := player.LastMessage(); msg != "admin ok: create" {
		t.Errorf("LastMessage = %q, want %q", msg, "admin ok: create")
	}
}

func TestHandler_AdminCommand_CaseInsensitive(t *testing.T) {
	h := NewHandler()
	cmd := &mockAdminCmd{names: []string{"pos1"}, required: 1}
	h.RegisterAdmin(cmd)

	player := newGMPlayer(t, 1)
	ok := h.HandleAdminCommand(context.Background(), player, "POS1")
	if !ok {
		t.Error("HandleAdminCommand with uppercase should still find command")
	}
	if cmd.handleCalls != 1 {
		t.Errorf("Handle called %d times, want 1", cmd.handleCalls)
	}
}

func TestHandler_AdminCommand_UnknownCommand(t *testing.T) {
	h := NewHandler()
	player := newGMPlayer(t, 100)

	ok := h.HandleAdminCommand(context.Background(), player, "nosuchcmd")
	if ok {
		t.Error("HandleAdminCommand should return false for unknown command")
	}
	if msg := player.LastMessage(); msg != "Unknown command: //nosuchcmd" {
		t.Errorf("LastMessage = %q, want unknown command notice", msg)
	}
}

func TestHandler_AdminCommand_EmptyText(t *testing.T) {
	h := NewHandler()
	player := newGMPlayer(t, 100)

	for _, text := range []string{"", "   "} {
		if h.HandleAdminCommand(context.Background(), player, text) {
			t.Errorf("HandleAdminCommand(%q) should return false", text)
		}
	}
}

func TestHandler_AdminCommand_InsufficientAccess(t *testing.T) {
	h := NewHandler()
	cmd := &mockAdminCmd{names: []string{"delete"}, required: 2}
	h.RegisterAdmin(cmd)

	player := newGMPlayer(t, 1) // Moderator, level 1 (needs 2)

	ok := h.HandleAdminCommand(context.Background(), player, "delete Keep")
	if ok {
		t.Error("HandleAdminCommand should return false when access level insufficient")
	}
	if cmd.handleCalls != 0 {
		t.Error("Handle should not be called when access denied")
	}
}

func TestHandler_AdminCommand_NormalPlayerDenied(t *testing.T) {
	h := NewHandler()
	cmd := &mockAdminCmd{names: []string{"list"}, required: 1}
	h.RegisterAdmin(cmd)

	player := newGMPlayer(t, 0) // normal user

	ok := h.HandleAdminCommand(context.Background(), player, "list")
	if ok {
		t.Error("HandleAdminCommand should return false for normal player")
	}
	if cmd.handleCalls != 0 {
		t.Error("Handle should not be called for normal player")
	}
}

func TestHandler_AdminCommand_ErrorIsReplied(t *testing.T) {
	h := NewHandler()
	h.RegisterAdmin(&mockAdminCmd{names: []string{"create"}, required: 1, err: errors.New("Zone 'Keep' already exists!")})

	player := newGMPlayer(t, 100)
	if !h.HandleAdminCommand(context.Background(), player, "create Keep red") {
		t.Fatal("HandleAdminCommand returned false, want true")
	}
	if msg := player.LastMessage(); msg != "Zone 'Keep' already exists!" {
		t.Errorf("LastMessage = %q, want command error", msg)
	}
}

func TestHandler_UserCommand_Success(t *testing.T) {
	h := NewHandler()
	cmd := &mockUserCmd{names: []string{"info", "zoneinfo"}}
	h.RegisterUser(cmd)

	player := newGMPlayer(t, 0) // normal user can use user commands

	ok := h.HandleUserCommand(context.Background(), player, "info")
	if !ok {
		t.Error("HandleUserCommand returned false, want true")
	}
	if cmd.handleCalls != 1 {
		t.Errorf("Handle called %d times, want 1", cmd.handleCalls)
	}
}

func TestHandler_UserCommand_WithParams(t *testing.T) {
	h := NewHandler()
	cmd := &mockUserCmd{names: []string{"info"}}
	h.RegisterUser(cmd)

	player := newGMPlayer(t, 0)
	ok := h.HandleUserCommand(context.Background(), player, "info  Other Player ")
	if !ok {
		t.Error("HandleUserCommand returned false, want true")
	}
	if cmd.lastParams != "Other Player" {
		t.Errorf("params = %q, want %q", cmd.lastParams, "Other Player")
	}
}

func TestHandler_UserCommand_Unknown(t *testing.T) {
	h := NewHandler()
	player := newGMPlayer(t, 0)

	ok := h.HandleUserCommand(context.Background(), player, "nosuchcmd")
	if ok {
		t.Error("HandleUserCommand should return false for unknown command")
	}
}

func TestHandler_UserCommand_EmptyText(t *testing.T) {
	h := NewHandler()
	player := newGMPlayer(t, 0)

	ok := h.HandleUserCommand(context.Background(), player, "")
	if ok {
		t.Error("HandleUserCommand should return false for empty text")
	}
}
