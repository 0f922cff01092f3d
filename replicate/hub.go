// Package replicate streams state frames to websocket clients
package replicate

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/state"
	"github.com/lixenwraith/pinball/status"
)

// Hub fans frames out to every connected client
// A joining client first receives a keyframe merged from all frames broadcast so far
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	// cache holds the latest value of every field per item, for keyframes
	cache    map[string]*entry
	timeMsec int64
	closed   bool

	statClients *atomic.Int64
	statFrames  *atomic.Int64
	statDropped *atomic.Int64
}

type entry struct {
	Name   string         `json:"name"`
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
}

type keyframe struct {
	Time   int64    `json:"time"`
	States []*entry `json:"states"`
	Key    bool     `json:"keyframe"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
		cache:   make(map[string]*entry),

		statClients: new(atomic.Int64),
		statFrames:  new(atomic.Int64),
		statDropped: new(atomic.Int64),
	}
}

// Instrument publishes hub statistics under "replicate." in reg; call before serving
func (h *Hub) Instrument(reg *status.Registry) {
	h.statClients = reg.Ints.Get("replicate.clients")
	h.statFrames = reg.Ints.Get("replicate.frames")
	h.statDropped = reg.Ints.Get("replicate.dropped")
}

// ServeHTTP upgrades the request and streams frames until the client leaves
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[replicate] upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, parameter.ReplicateSendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	key, err := h.keyframeLocked()
	if err != nil {
		h.mu.Unlock()
		log.Printf("[replicate] keyframe: %v", err)
		conn.Close()
		return
	}
	c.send <- key
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.statClients.Store(int64(n))
	h.mu.Unlock()

	log.Printf("[replicate] client %s joined, %d connected", conn.RemoteAddr(), n)
	go h.writePump(c)
	h.readPump(c)
}

// Broadcast sends f to every client and folds it into the keyframe cache
// Clients whose queue is full are disconnected
func (h *Hub) Broadcast(f *state.Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.merge(f)
	h.statFrames.Add(1)
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("[replicate] client %s too slow, dropping", c.conn.RemoteAddr())
			h.statDropped.Add(1)
			h.removeLocked(c)
		}
	}
	return nil
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) merge(f *state.Frame) {
	h.timeMsec = f.TimeMsec
	for _, s := range f.States {
		e, ok := h.cache[s.Name()]
		if !ok {
			e = &entry{Name: s.Name(), Kind: s.Kind(), Fields: make(map[string]any)}
			h.cache[s.Name()] = e
		}
		for k, v := range s.Fields() {
			e.Fields[k] = v
		}
	}
	for _, name := range f.Removed {
		delete(h.cache, name)
	}
}

func (h *Hub) keyframeLocked() ([]byte, error) {
	k := keyframe{Time: h.timeMsec, States: make([]*entry, 0, len(h.cache)), Key: true}
	for _, e := range h.cache {
		k.States = append(k.States, e)
	}
	sort.Slice(k.States, func(i, j int) bool { return k.States[i].Name < k.States[j].Name })
	return json.Marshal(k)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	h.statClients.Store(int64(len(h.clients)))
	c.once.Do(func() { close(c.send) })
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

// readPump discards client messages and returns when the connection fails
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadDeadline(time.Now().Add(2 * parameter.ReplicatePingInterval))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * parameter.ReplicatePingInterval))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ping := time.NewTicker(parameter.ReplicatePingInterval)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(parameter.ReplicateWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(parameter.ReplicateWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
