package lobby

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/groupstage/draw-backend/internal/draw"
)

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvNoSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			// channel closed → that's fine; no further snapshots possible
			return
		}
		t.Fatalf("expected no snapshot within %v, but got: %+v", within, s)
	case <-time.After(within):
		// good: no snapshot
	}
}

func recvView(t *testing.T, ch <-chan View, within time.Duration) View {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(within):
		t.Fatalf("timed out waiting for view")
		return View{} // unreachable
	}
}

func newTestLobby(t *testing.T, seed int64) (*Lobby, context.CancelFunc) {
	t.Helper()
	session, err := draw.NewSession(draw.DefaultPots(), &seed)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	return NewLobby(ctx, session, zap.NewNop()), cancel
}

func TestLobby_DrawNext_BroadcastsSnapshotAndVersionIncrements(t *testing.T) {
	l, cancel := newTestLobby(t, 7)
	defer cancel()

	clientOut := make(chan Snapshot, 2) // small buffer so broadcast doesn’t block
	l.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}

	// on join, lobby sends the current snapshot immediately
	first := recvSnapshot(t, clientOut, 100*time.Millisecond)
	require.Equal(t, 0, first.Version)
	require.Empty(t, first.State.Log)

	l.Inbox() <- FromClient{Cmd: Command{Type: CmdDrawNext}}

	second := recvSnapshot(t, clientOut, 100*time.Millisecond)
	require.Equal(t, 1, second.Version)
	require.Len(t, second.State.Log, 1)
	// The first pot-1 draw is always the Mexico host placement.
	require.Equal(t, "Pot1: Mexico to Group A", second.State.Log[0])
	require.Equal(t, "Mexico", second.State.Groups["A"][0].Name)
}

func TestLobby_CompleteDraw_FinishesSession(t *testing.T) {
	l, cancel := newTestLobby(t, 3)
	defer cancel()

	clientOut := make(chan Snapshot, 2)
	l.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}
	recvSnapshot(t, clientOut, 100*time.Millisecond)

	l.Inbox() <- FromClient{Cmd: Command{Type: CmdCompleteDraw}}

	snap := recvSnapshot(t, clientOut, 2*time.Second)
	require.True(t, snap.State.Done)
	require.Len(t, snap.State.Log, 48)
	for _, g := range draw.GroupLabels {
		require.Len(t, snap.State.Groups[g], draw.GroupCapacity)
	}
}

func TestLobby_Reset_RestoresInitialState(t *testing.T) {
	l, cancel := newTestLobby(t, 5)
	defer cancel()

	clientOut := make(chan Snapshot, 8)
	l.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}
	recvSnapshot(t, clientOut, 100*time.Millisecond)

	l.Inbox() <- FromClient{Cmd: Command{Type: CmdDrawNext}}
	recvSnapshot(t, clientOut, 100*time.Millisecond)

	l.Inbox() <- FromClient{Cmd: Command{Type: CmdReset}}
	snap := recvSnapshot(t, clientOut, 100*time.Millisecond)
	require.Empty(t, snap.State.Log)
	require.Len(t, snap.State.Pots[0], draw.PotSize)
	require.Empty(t, snap.State.Groups["A"])
}

func TestLobby_UnknownCommand_NoBroadcast(t *testing.T) {
	l, cancel := newTestLobby(t, 1)
	defer cancel()

	clientOut := make(chan Snapshot, 2)
	l.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}
	recvSnapshot(t, clientOut, 100*time.Millisecond)

	l.Inbox() <- FromClient{Cmd: Command{Type: "Bogus"}}
	recvNoSnapshot(t, clientOut, 50*time.Millisecond)
}

func TestLobby_Leave_StopsSnapshots(t *testing.T) {
	l, cancel := newTestLobby(t, 1)
	defer cancel()

	clientOut := make(chan Snapshot, 8)
	l.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}
	recvSnapshot(t, clientOut, 100*time.Millisecond)

	l.Inbox() <- Leave{ClientID: "ch1"}
	l.Inbox() <- FromClient{Cmd: Command{Type: CmdDrawNext}}
	recvNoSnapshot(t, clientOut, 50*time.Millisecond)

	reply := make(chan View, 1)
	l.Inbox() <- GetState{Reply: reply}
	v := recvView(t, reply, 100*time.Millisecond)
	require.Equal(t, 0, v.NumClients)
	require.Equal(t, 1, v.Version)
}

func TestLobby_GetState_ReflectsSession(t *testing.T) {
	l, cancel := newTestLobby(t, 9)
	defer cancel()

	l.Inbox() <- FromClient{Cmd: Command{Type: CmdDrawNext}}
	l.Inbox() <- FromClient{Cmd: Command{Type: CmdDrawNext}}

	reply := make(chan View, 1)
	l.Inbox() <- GetState{Reply: reply}
	v := recvView(t, reply, 100*time.Millisecond)

	require.Equal(t, 2, v.Version)
	require.Len(t, v.State.Log, 2)
	require.Equal(t, "Mexico", v.State.Groups["A"][0].Name)
	require.Equal(t, "United States", v.State.Groups["B"][0].Name)
}
