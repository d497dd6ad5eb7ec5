package gateway

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"superego/apps/server/internal/session"
	"superego/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SessionLookup resolves a session address to a running *session.Session,
// letting the gateway stay ignorant of how sessions are registered or torn
// down (see apps/server/internal/registry).
type SessionLookup func(id string) (*session.Session, bool)

// Gateway owns every live WebSocket connection and the per-session
// broadcaster fan-out, mirroring the teacher's Gateway struct but keyed by
// session address instead of table ID, and JSON instead of protobuf.
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	broadcasts  map[string]*broadcaster
	nextConnID  uint64

	lookup SessionLookup
}

// New builds a Gateway that resolves sessions through lookup.
func New(lookup SessionLookup) *Gateway {
	return &Gateway{
		connections: make(map[string]*Connection),
		broadcasts:  make(map[string]*broadcaster),
		lookup:      lookup,
	}
}

// BroadcasterFor returns an observer-compatible function that fans a
// session's state out to every subscribed connection. The registry wires
// this in as a Session's onBroadcast callback at construction time.
func (g *Gateway) BroadcasterFor(sessionID string) func(game.GameState) {
	return func(st game.GameState) {
		g.broadcasterFor(sessionID).broadcast(mustMarshalFeedback(Feedback{Status: StatusGameState, Data: st}))
	}
}

// DropSession tears down the broadcaster for a finished/removed session.
func (g *Gateway) DropSession(sessionID string) {
	g.mu.Lock()
	b, ok := g.broadcasts[sessionID]
	if ok {
		delete(g.broadcasts, sessionID)
	}
	g.mu.Unlock()
	if ok {
		b.stop()
	}
}

func (g *Gateway) broadcasterFor(sessionID string) *broadcaster {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.broadcasts[sessionID]
	if !ok {
		b = newBroadcaster()
		g.broadcasts[sessionID] = b
	}
	return b
}

func mustMarshalFeedback(f Feedback) []byte {
	data, err := json.Marshal(f)
	if err != nil {
		log.Printf("[Gateway] failed to marshal game state: %v", err)
		return []byte(`{"status":"ERR","data":"internal error"}`)
	}
	return data
}

// HandleWebSocket upgrades the request and attaches the new connection to
// the named session.
func (g *Gateway) HandleWebSocket(sessionID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := g.lookup(sessionID); !ok {
			http.Error(w, "unknown session", http.StatusNotFound)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[Gateway] upgrade error: %v", err)
			return
		}

		g.mu.Lock()
		g.nextConnID++
		connID := fmt.Sprintf("conn_%d", g.nextConnID)
		c := &Connection{ID: connID, Conn: conn, Send: make(chan []byte, 256), Gateway: g, sessionID: sessionID}
		g.connections[connID] = c
		total := len(g.connections)
		g.mu.Unlock()

		log.Printf("[Gateway] client connected: %s -> session %s, total: %d", connID, sessionID, total)

		go c.readPump()
		go c.writePump()
	}
}

// handleMessage runs inside c.readPump()'s detached goroutine, outside the
// net/http request goroutine's own panic recovery, so it guards itself the
// same way the teacher's table.dispatchHandEndHooks does: a panic anywhere
// in decoding or dispatch is logged and turned into an ERR for this one
// connection instead of taking down every session and connection in the
// process (spec.md §7).
func (g *Gateway) handleMessage(c *Connection, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Gateway] recovered panic handling message from %s: %v", c.ID, r)
			c.sendError(fmt.Errorf("internal error"))
		}
	}()

	event, err := decodeEvent(raw)
	if err != nil {
		c.sendError(err)
		return
	}

	if session.Action(event.Action) == actionSubscribe {
		g.broadcasterFor(c.sessionID).addListener(c)
		c.sendFeedback(Feedback{Status: StatusAck})
		return
	}

	sess, ok := g.lookup(c.sessionID)
	if !ok {
		c.sendError(fmt.Errorf("session %s no longer running", c.sessionID))
		return
	}

	state, err := sess.Submit(event)
	if err != nil {
		c.sendError(err)
		return
	}

	if event.Action == session.ActionGetState {
		c.sendFeedback(Feedback{Status: StatusGameState, Data: state})
		return
	}
	c.sendFeedback(Feedback{Status: StatusAck})
}

// actionSubscribe is handled entirely at the gateway: it never touches
// game state, only the broadcaster's listener set.
const actionSubscribe session.Action = "SUBSCRIBE"

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	delete(g.connections, c.ID)
	g.mu.Unlock()
	g.broadcasterFor(c.sessionID).removeListener(c)
	log.Printf("[Gateway] client disconnected: %s", c.ID)
}

// CloseAll force-closes every live connection. net/http.Server.Shutdown
// only waits out connections still owned by the HTTP layer -- once a
// request is Hijacked into a WebSocket, as every Connection here is,
// Shutdown no longer tracks it. main.go's shutdown path calls this
// alongside srv.Shutdown so that stopping the server actually closes open
// sockets, per spec.md §4.9/§5.
func (g *Gateway) CloseAll() {
	g.mu.Lock()
	conns := make([]*Connection, 0, len(g.connections))
	for _, c := range g.connections {
		conns = append(conns, c)
	}
	g.mu.Unlock()

	for _, c := range conns {
		c.Conn.Close()
	}
}
