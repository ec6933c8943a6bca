package types

import "github.com/groupstage/draw-backend/internal/draw"

// TeamPayload is one team as sent over the wire when a client supplies
// custom pots.
type TeamPayload struct {
	Name          string `json:"name"`
	Confederation string `json:"confederation"`
	Pot           int    `json:"pot,omitempty"`
}

// ClientMessage is the client→server protocol:
//
//	DrawNext:     {}                       draw the next team
//	CompleteDraw: {}                       run the draw to the end
//	Reset:        { pots?: TeamPayload[][] }  restart; omitted pots restore
//	                                          the lobby's baseline
type ClientMessage struct {
	Type string          `json:"type"`
	Pots [][]TeamPayload `json:"pots,omitempty"`
}

// ServerMessage is the server→client protocol: a versioned StateSnapshot
// after every state change, or an Error for malformed input.
type ServerMessage struct {
	Type    string     `json:"type"` // "StateSnapshot" | "Error"
	Version int        `json:"version,omitempty"`
	State   *draw.View `json:"state,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// ToTeams converts a pots payload to engine teams, stamping origin pot
// numbers. Returns nil for a nil payload so "no pots" survives the trip.
func ToTeams(pots [][]TeamPayload) [][]draw.Team {
	if pots == nil {
		return nil
	}
	out := make([][]draw.Team, len(pots))
	for i, pot := range pots {
		out[i] = make([]draw.Team, len(pot))
		for j, t := range pot {
			out[i][j] = draw.Team{Name: t.Name, Confederation: t.Confederation, Pot: i + 1}
		}
	}
	return out
}
