package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

const (
	// writeWait bounds a single frame write.
	writeWait = 10 * time.Second

	// sendBuffer is the number of frames queued per connection before
	// broadcasts to it are dropped.
	sendBuffer = 32

	// maxFrameSize bounds inbound frames.
	maxFrameSize = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// client is one socket attached to a room.
type client struct {
	conn  *websocket.Conn
	send  chan []byte
	token string
	admin bool
}

// enqueue queues a frame without blocking. Slow clients miss frames
// rather than stall the editor session.
func (c *client) enqueue(frame []byte) {
	select {
	case c.send <- frame:
	default:
		logger.Warn("[WS] Dropping frame for slow client %s", c.conn.RemoteAddr())
	}
}

// writePump is the only writer of c.conn.
func (c *client) writePump() {
	for frame := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			logger.Debug("[WS] Write failed: %v", err)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// room groups the sockets editing one property.
type room struct {
	session     driving.EditorSession
	clients     map[*client]struct{}
	unsubscribe func()

	// adminMu orders admin mode toggles; it is never held with Hub.mu.
	adminMu sync.Mutex
	admins  int
}

// Hub tracks rooms by property id.
type Hub struct {
	workspace driving.Workspace
	admin     driving.AdminService
	location  driving.LocationService

	mu    sync.Mutex
	rooms map[string]*room
}

// NewHub creates a hub opening sessions from workspace. location may be nil.
func NewHub(workspace driving.Workspace, admin driving.AdminService, location driving.LocationService) *Hub {
	return &Hub{
		workspace: workspace,
		admin:     admin,
		location:  location,
		rooms:     make(map[string]*room),
	}
}

// Connections returns the number of attached sockets.
func (h *Hub) Connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.rooms {
		n += len(r.clients)
	}
	return n
}

// join attaches c to the room of propertyID, creating it on first use.
// Session calls happen outside h.mu because commits call back into
// broadcast. A room is only registered once its session subscriptions
// exist, so leave always finds them.
func (h *Hub) join(propertyID string, session driving.EditorSession, c *client) *room {
	h.mu.Lock()
	r, ok := h.rooms[propertyID]
	if ok {
		r.clients[c] = struct{}{}
	}
	h.mu.Unlock()

	if !ok {
		unsubscribe := h.subscribe(propertyID, session)
		h.mu.Lock()
		if r, ok = h.rooms[propertyID]; !ok {
			r = &room{session: session, clients: make(map[*client]struct{}), unsubscribe: unsubscribe}
			h.rooms[propertyID] = r
		}
		r.clients[c] = struct{}{}
		h.mu.Unlock()

		// Another socket registered the room first.
		if ok {
			unsubscribe()
		}
	}

	h.mu.Lock()
	active := len(r.clients)
	h.mu.Unlock()

	if c.admin {
		r.adminMu.Lock()
		r.admins++
		if r.admins == 1 {
			session.SetAdmin(true)
		}
		r.adminMu.Unlock()
	}
	logger.Info("[WS] Connection registered for %s: %d active", propertyID, active)
	return r
}

// subscribe forwards committed documents and background failures of
// session to the room of propertyID.
func (h *Hub) subscribe(propertyID string, session driving.EditorSession) func() {
	cancelProperty := session.Subscribe(func(p domain.Property) {
		h.broadcast(propertyID, p)
	})
	cancelErrors := session.SubscribeErrors(func(err error) {
		h.broadcastError(propertyID, err)
	})
	return func() {
		cancelProperty()
		cancelErrors()
	}
}

// leave detaches c. The last admin leaving turns admin mode off, which
// commits pending edits, and the last client leaving drops the room.
func (h *Hub) leave(propertyID string, r *room, c *client) {
	if c.admin {
		r.adminMu.Lock()
		r.admins--
		if r.admins == 0 {
			r.session.SetAdmin(false)
		}
		r.adminMu.Unlock()
	}

	h.mu.Lock()
	delete(r.clients, c)
	active := len(r.clients)
	var unsubscribe func()
	if active == 0 && h.rooms[propertyID] == r {
		delete(h.rooms, propertyID)
		unsubscribe = r.unsubscribe
	}
	h.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	logger.Info("[WS] Connection unregistered for %s: %d active", propertyID, active)
}

// broadcast pushes a committed document to every socket of the room.
// It runs inside the session's commit, so it only queues frames.
func (h *Hub) broadcast(propertyID string, p domain.Property) {
	frame, err := encodeFrame(FrameProperty, "", p)
	if err != nil {
		logger.Error("[WS] %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[propertyID]
	if !ok {
		return
	}
	for c := range r.clients {
		c.enqueue(frame)
	}
}

// broadcastError tells the room's editors about a failure no request
// returned, such as a failed autosave.
func (h *Hub) broadcastError(propertyID string, err error) {
	frame, encErr := encodeFrame(FrameError, "", errorFrame{Code: errorCode(err), Message: err.Error()})
	if encErr != nil {
		logger.Error("[WS] %v", encErr)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[propertyID]
	if !ok {
		return
	}
	for c := range r.clients {
		if c.admin {
			c.enqueue(frame)
		}
	}
}

// serve runs the edit socket for one property.
// Visitors without an admin session may watch but not edit.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, propertyID, token string) {
	session, err := h.workspace.Open(r.Context(), propertyID)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("[WS] Failed to upgrade connection: %v", err)
		return
	}
	conn.SetReadLimit(maxFrameSize)

	c := &client{
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		token: token,
		admin: token != "" && h.admin.IsAdmin(token),
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.writePump()
	}()

	rm := h.join(propertyID, session, c)
	if frame, err := encodeFrame(FrameProperty, "", session.Property()); err == nil {
		c.enqueue(frame)
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("[WS] Unexpected close: %v", err)
			}
			break
		}
		h.handle(r.Context(), session, c, message)
	}

	h.leave(propertyID, rm, c)
	close(c.send)
	<-done
	conn.Close()
}

// handle answers one request frame.
func (h *Hub) handle(ctx context.Context, session driving.EditorSession, c *client, message []byte) {
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		h.reply(c, FrameError, "", errorFrame{Code: "bad_request", Message: "malformed frame"})
		return
	}

	// Logging out elsewhere ends editing on every socket of that session.
	if !c.admin || !h.admin.IsAdmin(c.token) {
		h.fail(c, env.ID, domain.ErrAdminRequired)
		return
	}

	switch env.Type {
	case requestFlush:
		if err := session.Flush(ctx); err != nil {
			h.fail(c, env.ID, err)
			return
		}
		h.reply(c, FrameOutcome, env.ID, outcomeFrame{Version: session.Property().Version})

	case requestSuggestLocation:
		h.suggestLocation(ctx, session, c, env)

	default:
		intent, err := decodeIntent(env)
		if err != nil {
			h.fail(c, env.ID, err)
			return
		}
		out, err := session.Apply(ctx, intent)
		if err != nil {
			h.fail(c, env.ID, err)
			return
		}
		frame := outcomeFrame{Version: out.Version, Changed: out.Changed, CreatedID: out.CreatedID}
		if ref, ok := session.Selected(); ok {
			frame.Selected = &ref
		}
		h.reply(c, FrameOutcome, env.ID, frame)
	}
}

func (h *Hub) suggestLocation(ctx context.Context, session driving.EditorSession, c *client, env Envelope) {
	if h.location == nil {
		h.fail(c, env.ID, domain.ErrNotImplemented)
		return
	}

	var req struct {
		Address string `json:"address"`
	}
	if err := unmarshal(env.Data, &req); err != nil {
		h.fail(c, env.ID, err)
		return
	}
	if req.Address == "" {
		req.Address = session.Property().Address
	}

	plan, err := h.location.SuggestLocation(ctx, req.Address)
	if err != nil {
		h.fail(c, env.ID, err)
		return
	}
	h.reply(c, FrameLocation, env.ID, locationFrame{
		Coordinates: plan.Coordinates,
		Places:      plan.Places,
		Warnings:    plan.Warnings,
	})
}

func (h *Hub) fail(c *client, id string, err error) {
	logger.Debug("[WS] Request %s failed: %v", id, err)
	h.reply(c, FrameError, id, errorFrame{Code: errorCode(err), Message: err.Error()})
}

func (h *Hub) reply(c *client, frameType, id string, payload any) {
	frame, err := encodeFrame(frameType, id, payload)
	if err != nil {
		logger.Error("[WS] %v", err)
		return
	}
	c.enqueue(frame)
}
