package adminapi

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/udisondev/riskzones/internal/gameserver"
)

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	p := s.game.Players().Get(id)
	if p == nil {
		writeError(w, gameserver.ErrNotOnline)
		return
	}

	out := playerJSON{
		ID:          id,
		Name:        p.Name(),
		AccessLevel: p.AccessLevel(),
		Position:    toPointJSON(p.Position()),
	}
	if st, ok := s.orch.Tracker().Get(id); ok {
		out.Zone = st.Zone
		out.Risk = st.Risk
		out.DangerConfirmed = st.DangerConfirmed
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req joinRequest
	if err := decode(r, s.schemas.join, &req); err != nil {
		writeError(w, err)
		return
	}

	pos := pointJSON{X: req.X, Y: req.Y, Z: req.Z}.point()
	l, err := s.game.Join(r.Context(), id, req.Name, req.AccessLevel, pos)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLookupJSON(l))
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body pointJSON
	if err := decode(r, s.schemas.point, &body); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.game.Move(r.Context(), id, body.point())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMoveJSON(res))
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.game.Leave(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeath(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	loot, err := s.game.Death(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLootJSON(loot))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req chatRequest
	if err := decode(r, s.schemas.chat, &req); err != nil {
		writeError(w, err)
		return
	}

	replies, err := s.game.Chat(r.Context(), id, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	if replies == nil {
		replies = []string{}
	}

	writeJSON(w, http.StatusOK, chatResponse{Replies: replies})
}

func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	attacker, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	victim, err := pathID(r, "victim")
	if err != nil {
		writeError(w, err)
		return
	}

	d, err := s.game.Attack(attacker, victim)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attackJSON{
		Allowed:      d.Allowed,
		AttackerZone: d.AttackerZone.Name,
		VictimZone:   d.VictimZone.Name,
	})
}

func pathID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[key])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %v", errBadRequest, key, err)
	}
	return id, nil
}
