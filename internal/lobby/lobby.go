package lobby

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/groupstage/draw-backend/internal/draw"
)

type Msg interface{ isLobbyMsg() }

type CommandType string

const (
	CmdDrawNext     CommandType = "DrawNext"
	CmdCompleteDraw CommandType = "CompleteDraw"
	CmdReset        CommandType = "Reset"
)

// Command is a client-driven draw operation. Pots is only read for Reset;
// nil restores the session's baseline pots.
type Command struct {
	Type CommandType
	Pots [][]draw.Team
}

type FromClient struct {
	Cmd Command
}

func (FromClient) isLobbyMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

type Snapshot struct {
	Version int
	State   draw.View
}

type View struct {
	Version    int
	NumClients int
	State      draw.View
}

// Lobby owns one draw session and serializes every operation on it through
// its inbox, so the session never sees concurrent mutation.
type Lobby struct {
	inbox   chan Msg
	session *draw.Session
	version int
	clients map[string]chan Snapshot
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewLobby(parent context.Context, session *draw.Session, logger *zap.Logger) *Lobby {
	ctx, cancel := context.WithCancel(parent)

	l := &Lobby{
		inbox:   make(chan Msg, 64), // Small buffer
		session: session,
		version: 0,
		clients: make(map[string]chan Snapshot),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}

	go l.loop()
	return l
}

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				l.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: l.version, State: l.session.Snapshot()}

			case Leave:
				delete(l.clients, msg.ClientID)

			case FromClient:
				if l.apply(msg.Cmd) {
					l.version++
					l.broadcast(Snapshot{Version: l.version, State: l.session.Snapshot()})
				}

			case GetState:
				// reflect internal state without data races
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					State:      l.session.Snapshot(),
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

// apply runs a command against the session and reports whether state changed
// and a broadcast is due. A transient stall mutates the session log and a
// fatal pot failure sets the marker, so both broadcast; a blocked or
// already-complete session refuses the command without mutating.
func (l *Lobby) apply(cmd Command) bool {
	var err error
	switch cmd.Type {
	case CmdDrawNext:
		err = l.session.AdvanceOne()
	case CmdCompleteDraw:
		err = l.session.CompleteAll()
	case CmdReset:
		err = l.session.Reset(cmd.Pots)
	default:
		l.logger.Warn("unsupported lobby command", zap.String("type", string(cmd.Type)))
		return false
	}

	if err != nil {
		l.logger.Warn("draw command failed",
			zap.String("type", string(cmd.Type)),
			zap.Error(err))
		var pf *draw.PotFailure
		return errors.As(err, &pf)
	}
	return true
}

func (l *Lobby) shutdown() {
	for id, ch := range l.clients {
		close(ch) // Tell client no more snapshots
		delete(l.clients, id)
	}
	l.cancel()
}

func (l *Lobby) broadcast(snap Snapshot) {
	for id, ch := range l.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(l.clients, id)
		}
	}
}

// Expose the inbox so tests or WS layer can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }
