package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/groupstage/draw-backend/internal/draw"
	"github.com/groupstage/draw-backend/internal/hub"
	"github.com/groupstage/draw-backend/internal/lobby"
	"github.com/groupstage/draw-backend/internal/types"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type createLobbyRequest struct {
	Seed *int64                `json:"seed,omitempty"`
	Pots [][]types.TeamPayload `json:"pots,omitempty"`
}

// CreateLobby starts a new draw lobby. An empty body gives the default
// 48-team field and an unseeded shuffle; clients may supply their own pots
// and a seed for reproducible draws.
func CreateLobby(h *hub.Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// An empty body is fine; malformed JSON is not.
		var req createLobbyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		pots := types.ToTeams(req.Pots)
		if pots == nil {
			pots = draw.DefaultPots()
		}
		session, err := draw.NewSession(pots, req.Seed)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			reply := make(chan *lobby.Lobby, 1)
			h.Inbox() <- hub.GetLobby{Code: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
			logger.Info("collision on code, regenerating", zap.String("code", c))
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.EnsureLobby{Code: code, Session: session, Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create lobby", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

// GetLobbyState returns the lobby's current view: version, groups, remaining
// pots, draw log, and any error marker.
func GetLobbyState(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb, ok := findLobby(h, w, r)
		if !ok {
			return
		}

		reply := make(chan lobby.View, 1)
		lb.Inbox() <- lobby.GetState{Reply: reply}
		view := <-reply

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Version int       `json:"version"`
			State   draw.View `json:"state"`
		}{Version: view.Version, State: view.State})
	}
}

// Command returns a handler that enqueues one draw command for the lobby.
// The lobby actor applies it asynchronously, so the response is 202 and the
// outcome shows up in the next snapshot.
func Command(h *hub.Hub, cmdType lobby.CommandType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb, ok := findLobby(h, w, r)
		if !ok {
			return
		}

		lb.Inbox() <- lobby.FromClient{Cmd: lobby.Command{Type: cmdType}}
		w.WriteHeader(http.StatusAccepted)
	}
}

type resetRequest struct {
	// Pots holds one text block per pot, one team per line as
	// "Name, Confederation". Omitted pots restore the lobby's baseline.
	Pots []string `json:"pots,omitempty"`
}

// ResetLobby restarts the lobby's draw, optionally with freshly parsed pots.
func ResetLobby(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb, ok := findLobby(h, w, r)
		if !ok {
			return
		}

		var req resetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		var pots [][]draw.Team
		if req.Pots != nil {
			parsed, err := ParsePots(req.Pots)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			pots = parsed
		}

		lb.Inbox() <- lobby.FromClient{Cmd: lobby.Command{Type: lobby.CmdReset, Pots: pots}}
		w.WriteHeader(http.StatusAccepted)
	}
}

func findLobby(h *hub.Hub, w http.ResponseWriter, r *http.Request) (*lobby.Lobby, bool) {
	code := chi.URLParam(r, "code")
	reply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- hub.GetLobby{Code: code, Reply: reply}
	lb := <-reply
	if lb == nil {
		http.Error(w, "lobby not found", http.StatusNotFound)
		return nil, false
	}
	return lb, true
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
