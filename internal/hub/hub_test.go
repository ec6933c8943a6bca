package hub

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/groupstage/draw-backend/internal/draw"
	"github.com/groupstage/draw-backend/internal/lobby"
)

func newSession(t *testing.T) *draw.Session {
	t.Helper()
	s, err := draw.NewSession(draw.DefaultPots(), nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, zap.NewNop())
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- CreateLobby{Code: "ZED123", Session: newSession(t), Reply: reply}
	lb1 := <-reply

	h.Inbox() <- GetLobby{Code: "ZED123", Reply: reply}
	lb2 := <-reply

	if lb1 == nil || lb2 == nil || lb1 != lb2 {
		t.Fatalf("expected same lobby pointer")
	}
}

func TestHub_Ensure_DoesNotReplaceExisting(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, zap.NewNop())
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- EnsureLobby{Code: "AB12CD", Session: newSession(t), Reply: reply}
	lb1 := <-reply

	h.Inbox() <- EnsureLobby{Code: "AB12CD", Session: newSession(t), Reply: reply}
	lb2 := <-reply

	if lb1 != lb2 {
		t.Fatalf("ensure should return the existing lobby")
	}
}

func TestHub_Remove_ThenGetIsNil(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, zap.NewNop())
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- CreateLobby{Code: "GONE01", Session: newSession(t), Reply: reply}
	<-reply

	h.Inbox() <- RemoveLobby{Code: "GONE01"}

	h.Inbox() <- GetLobby{Code: "GONE01", Reply: reply}
	if lb := <-reply; lb != nil {
		t.Fatalf("expected nil after removal, got %v", lb)
	}
}
