package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/groupstage/draw-backend/internal/draw"
	"github.com/groupstage/draw-backend/internal/hub"
)

type stateResponse struct {
	Version int       `json:"version"`
	State   draw.View `json:"state"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := hub.NewHub(context.Background(), zap.NewNop())
	srv := httptest.NewServer(SetupRoutes(h, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func createLobby(t *testing.T, srv *httptest.Server, body string) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/lobbies", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Code, 6)
	return out.Code
}

func fetchState(t *testing.T, srv *httptest.Server, code string) stateResponse {
	t.Helper()
	resp, err := http.Get(srv.URL + "/lobbies/" + code)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out stateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateLobby_DefaultPots(t *testing.T) {
	srv := newTestServer(t)
	code := createLobby(t, srv, `{"seed": 7}`)

	state := fetchState(t, srv, code)
	require.Equal(t, 0, state.Version)
	require.False(t, state.State.Done)
	require.Empty(t, state.State.Log)
	for i, pot := range state.State.Pots {
		require.Len(t, pot, draw.PotSize, "pot %d", i+1)
	}
}

func TestCreateLobby_InvalidPots(t *testing.T) {
	srv := newTestServer(t)

	body := `{"pots": [[{"name":"Mexico","confederation":"CONCACAF"}],[],[],[]]}`
	resp, err := http.Post(srv.URL+"/lobbies", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLobbyNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/lobbies/NOPE99")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDrawCommand_AdvancesLobby(t *testing.T) {
	srv := newTestServer(t)
	code := createLobby(t, srv, `{"seed": 13}`)

	resp, err := http.Post(srv.URL+"/lobbies/"+code+"/draw", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	// Commands apply asynchronously in the lobby actor.
	require.Eventually(t, func() bool {
		state := fetchState(t, srv, code)
		return state.Version == 1 && len(state.State.Log) == 1
	}, 2*time.Second, 10*time.Millisecond)

	state := fetchState(t, srv, code)
	require.Equal(t, "Pot1: Mexico to Group A", state.State.Log[0])
}

func TestCompleteCommand_FinishesDraw(t *testing.T) {
	srv := newTestServer(t)
	code := createLobby(t, srv, `{"seed": 2}`)

	resp, err := http.Post(srv.URL+"/lobbies/"+code+"/complete", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.Eventually(t, func() bool {
		return fetchState(t, srv, code).State.Done
	}, 5*time.Second, 20*time.Millisecond)

	state := fetchState(t, srv, code)
	require.Len(t, state.State.Log, 48)
	for _, g := range draw.GroupLabels {
		require.Len(t, state.State.Groups[g], draw.GroupCapacity)
	}
}

func TestResetCommand(t *testing.T) {
	srv := newTestServer(t)
	code := createLobby(t, srv, `{"seed": 4}`)

	resp, err := http.Post(srv.URL+"/lobbies/"+code+"/draw", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/lobbies/"+code+"/reset", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.Eventually(t, func() bool {
		state := fetchState(t, srv, code)
		return state.Version == 2 && len(state.State.Log) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestResetCommand_BadPotText(t *testing.T) {
	srv := newTestServer(t)
	code := createLobby(t, srv, `{}`)

	body := `{"pots": ["not a valid line", "", "", ""]}`
	resp, err := http.Post(srv.URL+"/lobbies/"+code+"/reset", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateCode(t *testing.T) {
	c1, err := GenerateCode()
	require.NoError(t, err)
	require.Len(t, c1, 6)

	c2, err := GenerateCode()
	require.NoError(t, err)
	require.NotEqual(t, c1, c2, "codes should differ with overwhelming probability")
}
