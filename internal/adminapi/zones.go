package adminapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/model"
)

// adminIDHeader names the admin on whose behalf a zone is created.
const adminIDHeader = "X-Admin-ID"

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	idx := s.orch.Index()
	settings := idx.Settings()
	tracker := s.orch.Tracker()

	writeJSON(w, http.StatusOK, statusJSON{
		Zones:               idx.ZoneCount(),
		TrackedPlayers:      tracker.Len(),
		OnlinePlayers:       s.game.Players().PlayerCount(),
		NewbieRequiredHours: settings.NewbieRequiredHours,
		TrashChancePercent:  settings.TrashChancePercent,
		Wilderness: toLookupJSON(zone.Lookup{
			Name:               zone.WildernessName,
			Risk:               settings.Wilderness.Risk,
			PvPEnabled:         settings.Wilderness.PvPEnabled,
			DeathRule:          settings.Wilderness.DeathRule,
			PartialDropPercent: settings.DefaultPartialDrop,
		}),
		Selection:      toSelectionJSON(s.editor.Selection()),
		PlayersPerZone: tracker.CountByZone(),
	})
}

func (s *Server) handleListZones(w http.ResponseWriter, _ *http.Request) {
	regions := s.editor.List()
	out := make([]regionJSON, 0, len(regions))
	for _, r := range regions {
		out = append(out, toRegionJSON(r))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleZoneAt(w http.ResponseWriter, r *http.Request) {
	p, err := queryPoint(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLookupJSON(s.orch.Index().ZoneAt(p)))
}

func (s *Server) handleLootAt(w http.ResponseWriter, r *http.Request) {
	p, err := queryPoint(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLootJSON(zone.ComputeDeathLoot(s.orch.Index(), p)))
}

func (s *Server) handleCreateZone(w http.ResponseWriter, r *http.Request) {
	var req createZoneRequest
	if err := decode(r, s.schemas.createZone, &req); err != nil {
		writeError(w, err)
		return
	}

	createdBy := uuid.Nil
	if h := r.Header.Get(adminIDHeader); h != "" {
		id, err := uuid.Parse(h)
		if err != nil {
			writeError(w, fmt.Errorf("%w: %s: %v", errBadRequest, adminIDHeader, err))
			return
		}
		createdBy = id
	}

	region, err := s.editor.Create(r.Context(), req.Name, req.Risk, createdBy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRegionJSON(region))
}

func (s *Server) handleGetZone(w http.ResponseWriter, r *http.Request) {
	region, owner, err := s.editor.Zone(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toZoneJSON(region, owner))
}

func (s *Server) handleDeleteZone(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.editor.Delete(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSelection(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toSelectionJSON(s.editor.Selection()))
}

func (s *Server) handleClearSelection(w http.ResponseWriter, _ *http.Request) {
	s.editor.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetCorner(w http.ResponseWriter, r *http.Request) {
	var body pointJSON
	if err := decode(r, s.schemas.point, &body); err != nil {
		writeError(w, err)
		return
	}

	var sel zone.Selection
	if mux.Vars(r)["corner"] == "1" {
		sel = s.editor.SetPos1(body.point())
	} else {
		sel = s.editor.SetPos2(body.point())
	}

	writeJSON(w, http.StatusOK, toSelectionJSON(sel))
}

// queryPoint reads ?x=&y=&z=; all three are required.
func queryPoint(r *http.Request) (model.Point, error) {
	q := r.URL.Query()
	var v [3]float64
	for i, key := range []string{"x", "y", "z"} {
		raw := q.Get(key)
		if raw == "" {
			return model.Point{}, fmt.Errorf("%w: missing query parameter %q", errBadRequest, key)
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Point{}, fmt.Errorf("%w: query parameter %q: %v", errBadRequest, key, err)
		}
		v[i] = f
	}
	return model.NewPoint(v[0], v[1], v[2]), nil
}
