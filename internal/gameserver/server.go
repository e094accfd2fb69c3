package gameserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/udisondev/riskzones/internal/game/crossing"
	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/gameserver/admin"
	"github.com/udisondev/riskzones/internal/model"
)

var (
	// ErrNotOnline: the event names a player that has not joined.
	ErrNotOnline = errors.New("player is not online")
	// ErrNameTaken: another online player already uses this name.
	ErrNameTaken = errors.New("player name is already online")
	// ErrInvalidPosition: coordinates outside the world.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrEmptyName: join without a player name.
	ErrEmptyName = errors.New("player name is empty")
)

// ProfileRecorder stores a player's first-seen time; account age is
// measured from it.
type ProfileRecorder interface {
	// CreateProfile returns true if the profile did not exist before.
	CreateProfile(ctx context.Context, playerID uuid.UUID, name string) (bool, error)
}

// Option configures a Server.
type Option func(*Server)

// WithProfiles records a profile on every join.
func WithProfiles(p ProfileRecorder) Option {
	return func(s *Server) { s.profiles = p }
}

// Server is the game-facing side of the zone service: it keeps the online
// player registry and feeds player events to the crossing orchestrator and
// chat to the command handler.
type Server struct {
	players  *Registry
	orch     *crossing.Orchestrator
	commands *admin.Handler
	profiles ProfileRecorder
}

// NewServer creates a server over an orchestrator and a command handler.
func NewServer(orch *crossing.Orchestrator, commands *admin.Handler, opts ...Option) *Server {
	s := &Server{
		players:  NewRegistry(),
		orch:     orch,
		commands: commands,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Players returns the online player registry.
func (s *Server) Players() *Registry { return s.players }

// Join brings a player online at pos and starts zone tracking.
// Joining again without a leave replaces the previous session.
func (s *Server) Join(ctx context.Context, id uuid.UUID, name string, accessLevel int32, pos model.Point) (zone.Lookup, error) {
	if strings.TrimSpace(name) == "" {
		return zone.Lookup{}, ErrEmptyName
	}
	if err := ValidatePosition(pos); err != nil {
		return zone.Lookup{}, err
	}

	p := model.NewPlayer(id, name)
	p.SetAccessLevel(accessLevel)
	p.SetPosition(pos)

	if err := s.players.Add(p); err != nil {
		return zone.Lookup{}, fmt.Errorf("joining %q: %w", name, err)
	}

	if s.profiles != nil {
		created, err := s.profiles.CreateProfile(ctx, id, name)
		if err != nil {
			// Без профиля гейт отказывает во входе в опасные зоны, но
			// сам вход в игру не блокируем.
			slog.Warn("recording player profile", "player", id, "error", err)
		} else if created {
			slog.Info("new player profile", "player", id, "name", name)
		}
	}

	l := s.orch.OnJoin(ctx, id, pos)

	slog.Info("player joined",
		"player", id,
		"name", name,
		"zone", l.Name)

	return l, nil
}

// Move applies a movement. The stored position only changes when the
// orchestrator lets the move through.
func (s *Server) Move(ctx context.Context, id uuid.UUID, to model.Point) (crossing.MoveResult, error) {
	p := s.players.Get(id)
	if p == nil {
		return crossing.MoveResult{}, ErrNotOnline
	}
	if err := ValidatePosition(to); err != nil {
		return crossing.MoveResult{}, err
	}

	res := s.orch.OnMove(ctx, id, p.Position(), to)
	if !res.Cancelled {
		p.SetPosition(to)
	}

	return res, nil
}

// Leave takes a player offline.
func (s *Server) Leave(ctx context.Context, id uuid.UUID) error {
	p := s.players.Remove(id)
	if p == nil {
		return ErrNotOnline
	}

	s.orch.OnLeave(ctx, id)

	slog.Info("player left", "player", id, "name", p.Name())

	return nil
}

// Attack decides whether attacker may hit victim where both stand now.
func (s *Server) Attack(attackerID, victimID uuid.UUID) (crossing.AttackDecision, error) {
	attacker := s.players.Get(attackerID)
	victim := s.players.Get(victimID)
	if attacker == nil || victim == nil {
		return crossing.AttackDecision{}, ErrNotOnline
	}

	return s.orch.OnAttack(attacker.Position(), victim.Position()), nil
}

// Death resolves loot rules at the player's current position.
func (s *Server) Death(ctx context.Context, id uuid.UUID) (zone.DeathLoot, error) {
	p := s.players.Get(id)
	if p == nil {
		return zone.DeathLoot{}, ErrNotOnline
	}

	return s.orch.OnDeath(ctx, id, p.Position()), nil
}

// Chat routes "//cmd" to admin commands and "/cmd" to user commands.
// Returns the replies produced by the command; plain chat yields none.
func (s *Server) Chat(ctx context.Context, id uuid.UUID, text string) ([]string, error) {
	p := s.players.Get(id)
	if p == nil {
		return nil, ErrNotOnline
	}

	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "//"):
		s.commands.HandleAdminCommand(ctx, p, strings.TrimPrefix(text, "//"))
	case strings.HasPrefix(text, "/"):
		if !s.commands.HandleUserCommand(ctx, p, strings.TrimPrefix(text, "/")) {
			p.Reply("Unknown command: " + strings.Fields(text)[0])
		}
	default:
		return nil, nil
	}

	return p.TakeMessages(), nil
}

// Shutdown releases every player's zone state and empties the registry.
func (s *Server) Shutdown() {
	s.orch.Shutdown()
	s.players.Clear()

	slog.Info("zone server stopped")
}
