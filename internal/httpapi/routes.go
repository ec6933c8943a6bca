package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/groupstage/draw-backend/internal/hub"
	"github.com/groupstage/draw-backend/internal/lobby"
	"github.com/groupstage/draw-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Post("/lobbies", CreateLobby(h, logger))
	r.Get("/lobbies/{code}", GetLobbyState(h))
	r.Post("/lobbies/{code}/draw", Command(h, lobby.CmdDrawNext))
	r.Post("/lobbies/{code}/complete", Command(h, lobby.CmdCompleteDraw))
	r.Post("/lobbies/{code}/reset", ResetLobby(h))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, logger))
	return r
}
