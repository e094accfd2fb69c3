package commands

import "github.com/udisondev/riskzones/internal/gameserver/admin"

// RegisterAll registers all zone admin and user commands into the handler.
func RegisterAll(h *admin.Handler, deps Deps) {
	// Admin commands (// prefix)
	h.RegisterAdmin(NewPos1(deps.Editor))
	h.RegisterAdmin(NewPos2(deps.Editor))
	h.RegisterAdmin(NewCreate(deps.Editor))
	h.RegisterAdmin(NewDelete(deps.Editor))
	h.RegisterAdmin(NewList(deps.Editor))
	h.RegisterAdmin(NewOverview(deps))

	// User commands (/ prefix)
	h.RegisterUser(NewZone(deps.Orchestrator, deps.Players))
}
